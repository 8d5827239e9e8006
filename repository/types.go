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

package repository

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/rowkit/rowkit/types"
)

// QueryRepository defines typed read operations for a generic entity type.
// All operations run against whichever session the repository was built on:
// a pooled database, a pinned request connection, or a transaction.
type QueryRepository[T any] interface {
	// FindAll returns every stored instance of T.
	FindAll(ctx context.Context) ([]*T, error)

	// FindByID returns the instance with the given id, or a
	// *database.NotFoundError naming the id and entity type.
	FindByID(ctx context.Context, id any) (*T, error)

	// List returns entities matching the provided filter.
	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	// SingleResult returns the sole entity matching the filter, nil when
	// none matches, and an error when more than one row matches.
	SingleResult(ctx context.Context, filter *types.QueryFilter) (*T, error)

	// Query executes a raw WHERE fragment and maps the results.
	Query(ctx context.Context, query string, args ...interface{}) ([]*T, error)
}

// MutationRepository defines typed write operations.
type MutationRepository[T any] interface {
	Create(ctx context.Context, entity ...*T) error
	Update(ctx context.Context, entity *T) error

	// DeleteByID removes the row with the given id and reports whether a
	// row was deleted.
	DeleteByID(ctx context.Context, id any) (bool, error)

	// DeleteAll removes every instance of T and returns the removed count.
	DeleteAll(ctx context.Context) (int64, error)
}

// PageRepository defines pagination functionality for listing entities.
type PageRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)
}

// Repository combines query, mutation, and pagination operations and
// exposes Bun query builders for advanced use cases.
type Repository[T any] interface {
	QueryRepository[T]
	MutationRepository[T]
	PageRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
