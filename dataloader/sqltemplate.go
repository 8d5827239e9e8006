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
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/rowkit/rowkit/types"
)

// Placeholder markers replaced by literal substitution in SQL templates.
const (
	MarkerWhere   = "{{WHERE}}"
	MarkerOrderBy = "{{ORDER_BY}}"
	MarkerPaged   = "{{PAGED}}"
)

// SQLLoader is a Loader built from a raw parametrized SQL template. The
// template contains the three placeholder markers, replaced per fetch by
// the rendered WHERE, ORDER BY, and LIMIT/OFFSET clauses. Values bind
// through parametrized args: the loader's own args first, then the
// filter's args, so template placeholders must precede the WHERE marker's.
// Sort columns are validated against the entity's table columns before
// substitution; unknown columns are rejected.
type SQLLoader[T any] struct {
	db         *bun.DB
	meta       *metadata
	query      string
	countQuery string
	args       []interface{}
}

// NewSQLLoader builds a template loader for entity type T. query must
// contain all three markers; countQuery must contain the WHERE marker and
// select a single count value.
func NewSQLLoader[T any](db *bun.DB, query, countQuery string, args ...interface{}) *SQLLoader[T] {
	return &SQLLoader[T]{
		db:         db,
		meta:       newMetadata[T](db),
		query:      query,
		countQuery: countQuery,
		args:       args,
	}
}

var _ Loader[struct{}] = (*SQLLoader[struct{}])(nil)

func (l *SQLLoader[T]) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	sqlStr := strings.ReplaceAll(l.countQuery, MarkerWhere, whereClause(filter))
	var count int
	err := l.db.NewRaw(sqlStr, l.bindArgs(filter)...).Scan(ctx, &count)
	return count, err
}

func (l *SQLLoader[T]) Fetch(ctx context.Context, filter *types.QueryFilter, sorts []types.Sort, r types.RowRange) ([]T, error) {
	if r.IsEmpty() {
		return []T{}, nil
	}
	orderBy, err := l.orderByClause(sorts)
	if err != nil {
		return nil, err
	}

	sqlStr := strings.ReplaceAll(l.query, MarkerWhere, whereClause(filter))
	sqlStr = strings.ReplaceAll(sqlStr, MarkerOrderBy, orderBy)
	sqlStr = strings.ReplaceAll(sqlStr, MarkerPaged, fmt.Sprintf("LIMIT %d OFFSET %d", r.Limit, r.Offset))

	var entities []T
	if err := l.db.NewRaw(sqlStr, l.bindArgs(filter)...).Scan(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (l *SQLLoader[T]) orderByClause(sorts []types.Sort) (string, error) {
	if len(sorts) == 0 {
		return "", nil
	}
	for _, s := range sorts {
		if !l.meta.hasColumn(s.Column) {
			return "", fmt.Errorf("sort column %q is not a column of %s", s.Column, l.meta.table.Name)
		}
	}
	return "ORDER BY " + strings.Join(types.SortExprs(sorts), ", "), nil
}

func (l *SQLLoader[T]) bindArgs(filter *types.QueryFilter) []interface{} {
	args := make([]interface{}, 0, len(l.args)+4)
	args = append(args, l.args...)
	if filter != nil {
		args = append(args, filter.Args...)
	}
	return args
}

func whereClause(filter *types.QueryFilter) string {
	if filter == nil || filter.Schema == "" {
		return ""
	}
	return "WHERE " + filter.Schema
}
