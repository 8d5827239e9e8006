/*
 * Copyright 2025 rowkit.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dataloader

import (
	"context"

	"github.com/rowkit/rowkit/types"
)

// Loader answers "how many rows match this filter" and "give me rows in
// this range, filtered and sorted". The filter is backend-specific and
// passed through unchanged; sort columns are backend column identifiers.
type Loader[T any] interface {
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)
	Fetch(ctx context.Context, filter *types.QueryFilter, sorts []types.Sort, r types.RowRange) ([]T, error)
}

// SortOrder is a grid-side sort declaration: a property name as the grid
// knows it, not yet a backend column.
type SortOrder struct {
	Property string
	Desc     bool
}

// Query bundles the parameters of one grid fetch: filter, declared sort
// orders, and the requested row window.
type Query struct {
	Filter *types.QueryFilter
	Sorts  []SortOrder
	Offset int
	Limit  int
}

// Provider is the grid pull protocol: item count, item pages, and a stable
// item identity for the grid's internal diffing.
type Provider[T any] interface {
	SizeInBackEnd(ctx context.Context, q Query) (int, error)
	FetchFromBackEnd(ctx context.Context, q Query) ([]T, error)
	ID(item T) interface{}
}
