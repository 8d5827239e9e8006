// Package repository provides a generic repository abstraction built on Bun
// for typed entity queries, deletion, pagination, and single-result lookup.
package repository
