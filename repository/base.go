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
	"database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/rowkit/rowkit/database"
	"github.com/rowkit/rowkit/types"
)

type baseRepository[T any] struct {
	db bun.IDB
}

// New returns a generic repository over the provided session. Any bun.IDB
// works: *bun.DB, a pinned bun.Conn, or a bun.Tx.
func New[T any](db bun.IDB) Repository[T] {
	return &baseRepository[T]{db: db}
}

func (r *baseRepository[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepository[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepository[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepository[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepository[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepository[T]) FindAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Scan(ctx)
	return entities, err
}

func (r *baseRepository[T]) FindByID(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.db.NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.NewNotFoundError(entityName[T](), id)
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepository[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepository[T]) SingleResult(ctx context.Context, filter *types.QueryFilter) (*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities).Limit(2)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	switch len(entities) {
	case 0:
		return nil, nil
	case 1:
		return entities[0], nil
	default:
		return nil, fmt.Errorf("query for %s matched more than one row", entityName[T]())
	}
}

func (r *baseRepository[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Where(query, args...).Scan(ctx)
	return entities, err
}

func (r *baseRepository[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.Pagination[T], error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if filter := pageRequest.GetFilter(); filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	total, err := query.Count(ctx)
	if err != nil || total == 0 {
		return pagination, err
	}
	err = query.
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Order(types.SortExprs(pageRequest.GetSorts())...).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepository[T]) Create(ctx context.Context, entity ...*T) error {
	entities := make([]*T, len(entity))
	copy(entities, entity)
	_, err := r.db.NewInsert().Model(&entities).Exec(ctx)
	return err
}

func (r *baseRepository[T]) Update(ctx context.Context, entity *T) error {
	_, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepository[T]) DeleteByID(ctx context.Context, id any) (bool, error) {
	var entity T
	res, err := r.db.NewDelete().Model(&entity).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *baseRepository[T]) DeleteAll(ctx context.Context) (int64, error) {
	var entity T
	res, err := r.db.NewDelete().Model(&entity).Where("1 = 1").Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func entityName[T any]() string {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if name := typ.Name(); name != "" {
		return name
	}
	return typ.String()
}
