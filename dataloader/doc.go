// Package dataloader bridges backend-agnostic paged, filtered, and sorted
// loaders to the pull-based data protocol used by grid components: an item
// count plus item pages addressed by offset and limit.
package dataloader
