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

// Package rowkit is a data-access convenience layer over Bun: explicit
// transaction and request scopes, typed entity query helpers, and grid
// data providers.
package rowkit

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	"github.com/rowkit/rowkit/database"
	"github.com/rowkit/rowkit/dataloader"
	"github.com/rowkit/rowkit/repository"
	"github.com/rowkit/rowkit/scope"
	"github.com/rowkit/rowkit/types"
)

type Service[T any] interface {
	// Get returns a single entity by its identifier, failing with a
	// not-found error naming the id and type when nothing matches.
	Get(ctx context.Context, id any) (*T, error)

	// All returns all entities.
	All(ctx context.Context) ([]*T, error)

	// List returns entities that match the provided filter.
	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	// Single returns the sole entity matching the filter, nil when none
	// does, and an error when more than one row matches.
	Single(ctx context.Context, filter *types.QueryFilter) (*T, error)

	// Query executes a raw WHERE fragment and maps the results.
	Query(ctx context.Context, query string, args ...interface{}) ([]*T, error)

	// Page returns a paginated list of entities.
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	// Save inserts one or more new entities.
	Save(ctx context.Context, model ...*T) error

	// Update modifies an existing entity.
	Update(ctx context.Context, model *T) error

	// Delete removes an entity by its identifier and reports whether a
	// row was deleted.
	Delete(ctx context.Context, id any) (bool, error)

	// DeleteAll removes every entity and returns the removed count.
	DeleteAll(ctx context.Context) (int64, error)

	// InTx runs fn within a transaction scope on the global database.
	InTx(ctx context.Context, fn func(ctx context.Context, tx *scope.Tx) error) error

	// WithSession returns a repository bound to the given session, e.g. a
	// transaction or a request-scoped connection.
	WithSession(db bun.IDB) repository.Repository[T]

	// DataProvider returns a grid data provider for the entity.
	DataProvider(opts ...dataloader.Option[T]) dataloader.Provider[T]

	// SelectBuilder returns a Bun select query builder for the entity.
	SelectBuilder() *bun.SelectQuery

	// InsertBuilder returns a Bun insert query builder for the entity.
	InsertBuilder() *bun.InsertQuery

	// UpdateBuilder returns a Bun update query builder for the entity.
	UpdateBuilder() *bun.UpdateQuery

	// DeleteBuilder returns a Bun delete query builder for the entity.
	DeleteBuilder() *bun.DeleteQuery
}

type baseService[T any] struct {
	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a Service backed by the generic repository over the
// global database connection.
func NewService[T any]() Service[T] {
	return &baseService[T]{}
}

func (s *baseService[T]) baseRepo() repository.Repository[T] {
	s.once.Do(func() { s.repo = repository.New[T](database.GetDB()) })
	return s.repo
}

func (s *baseService[T]) Get(ctx context.Context, id any) (*T, error) {
	return s.baseRepo().FindByID(ctx, id)
}

func (s *baseService[T]) All(ctx context.Context) ([]*T, error) {
	return s.baseRepo().FindAll(ctx)
}

func (s *baseService[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	return s.baseRepo().List(ctx, filter)
}

func (s *baseService[T]) Single(ctx context.Context, filter *types.QueryFilter) (*T, error) {
	return s.baseRepo().SingleResult(ctx, filter)
}

func (s *baseService[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	return s.baseRepo().Query(ctx, query, args...)
}

func (s *baseService[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	return s.baseRepo().Page(ctx, page)
}

func (s *baseService[T]) Save(ctx context.Context, model ...*T) error {
	return s.baseRepo().Create(ctx, model...)
}

func (s *baseService[T]) Update(ctx context.Context, model *T) error {
	return s.baseRepo().Update(ctx, model)
}

func (s *baseService[T]) Delete(ctx context.Context, id any) (bool, error) {
	return s.baseRepo().DeleteByID(ctx, id)
}

func (s *baseService[T]) DeleteAll(ctx context.Context) (int64, error) {
	return s.baseRepo().DeleteAll(ctx)
}

func (s *baseService[T]) InTx(ctx context.Context, fn func(ctx context.Context, tx *scope.Tx) error) error {
	return scope.RunInTx(ctx, database.GetDB(), fn)
}

func (s *baseService[T]) WithSession(db bun.IDB) repository.Repository[T] {
	return repository.New[T](db)
}

func (s *baseService[T]) DataProvider(opts ...dataloader.Option[T]) dataloader.Provider[T] {
	db := database.GetDB()
	return dataloader.NewAdapter[T](db, dataloader.NewEntityLoader[T](db), opts...)
}

func (s *baseService[T]) SelectBuilder() *bun.SelectQuery {
	return s.baseRepo().NewSelect()
}

func (s *baseService[T]) InsertBuilder() *bun.InsertQuery {
	return s.baseRepo().NewInsert()
}

func (s *baseService[T]) UpdateBuilder() *bun.UpdateQuery {
	return s.baseRepo().NewUpdate()
}

func (s *baseService[T]) DeleteBuilder() *bun.DeleteQuery {
	return s.baseRepo().NewDelete()
}
