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

// EntityLoader is a Loader backed by Bun select queries on the entity's
// table. It works on any session: a pooled database, a pinned request
// connection, or a transaction.
type EntityLoader[T any] struct {
	db bun.IDB
}

// NewEntityLoader returns a Bun-backed loader for entity type T.
func NewEntityLoader[T any](db bun.IDB) *EntityLoader[T] {
	return &EntityLoader[T]{db: db}
}

var _ Loader[struct{}] = (*EntityLoader[struct{}])(nil)

func (l *EntityLoader[T]) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	query := l.db.NewSelect().Model((*T)(nil))
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	return query.Count(ctx)
}

func (l *EntityLoader[T]) Fetch(ctx context.Context, filter *types.QueryFilter, sorts []types.Sort, r types.RowRange) ([]T, error) {
	if r.IsEmpty() {
		return []T{}, nil
	}
	var entities []T
	query := l.db.NewSelect().Model(&entities)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	if len(sorts) > 0 {
		query = query.Order(types.SortExprs(sorts)...)
	}
	err := query.Offset(r.Offset).Limit(r.Limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}
