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

	"github.com/uptrace/bun"

	"github.com/rowkit/rowkit/types"
)

// IDResolver supplies the grid-side identity of an item.
type IDResolver[T any] func(item T) interface{}

// Adapter turns a Loader into a grid Provider. Sort properties declared by
// the grid are translated to backend columns through the entity's Bun
// table metadata; the filter passes through untouched; the requested
// window is clamped instead of overflowing.
type Adapter[T any] struct {
	loader Loader[T]
	meta   *metadata
	id     IDResolver[T]
}

// Option customizes an Adapter.
type Option[T any] func(*Adapter[T])

// WithIDResolver overrides the default primary-key item identity.
func WithIDResolver[T any](fn IDResolver[T]) Option[T] {
	return func(a *Adapter[T]) { a.id = fn }
}

// NewAdapter wraps loader as a grid Provider for entity type T. The db is
// used only for table metadata.
func NewAdapter[T any](db *bun.DB, loader Loader[T], opts ...Option[T]) *Adapter[T] {
	a := &Adapter[T]{loader: loader, meta: newMetadata[T](db)}
	a.id = pkResolver[T](a.meta)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var _ Provider[struct{}] = (*Adapter[struct{}])(nil)

func (a *Adapter[T]) SizeInBackEnd(ctx context.Context, q Query) (int, error) {
	return a.loader.Count(ctx, q.Filter)
}

func (a *Adapter[T]) FetchFromBackEnd(ctx context.Context, q Query) ([]T, error) {
	sorts, err := a.meta.translateSorts(q.Sorts)
	if err != nil {
		return nil, err
	}
	return a.loader.Fetch(ctx, q.Filter, sorts, types.NewRowRange(q.Offset, q.Limit))
}

func (a *Adapter[T]) ID(item T) interface{} {
	return a.id(item)
}
