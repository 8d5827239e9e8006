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

package types

import (
	"fmt"
	"math"
)

// QueryFilter describes a WHERE clause schema and its argument values.
// The schema string is backend-specific and is passed through to the
// query layer unchanged.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// Sort is one (column, direction) pair of an ordering sequence.
type Sort struct {
	Column string
	Desc   bool
}

// Asc returns an ascending sort on the given column.
func Asc(column string) Sort { return Sort{Column: column} }

// Desc returns a descending sort on the given column.
func Desc(column string) Sort { return Sort{Column: column, Desc: true} }

// Expr renders the sort as an ORDER BY expression, e.g. "name DESC".
func (s Sort) Expr() string {
	if s.Desc {
		return fmt.Sprintf("%s DESC", s.Column)
	}
	return fmt.Sprintf("%s ASC", s.Column)
}

// SortExprs renders a sort sequence into ORDER BY expressions.
func SortExprs(sorts []Sort) []string {
	exprs := make([]string, len(sorts))
	for i, s := range sorts {
		exprs[i] = s.Expr()
	}
	return exprs
}

// RowRange is a window of rows addressed by 0-based offset and limit.
type RowRange struct {
	Offset int
	Limit  int
}

// NewRowRange constructs a row range, treating negative values as zero.
func NewRowRange(offset, limit int) RowRange {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	return RowRange{Offset: offset, Limit: limit}
}

// EndInclusive returns the inclusive index of the last row in the range,
// saturating at math.MaxInt instead of overflowing.
func (r RowRange) EndInclusive() int {
	if r.Limit == 0 {
		return r.Offset
	}
	if r.Offset > math.MaxInt-r.Limit+1 {
		return math.MaxInt
	}
	return r.Offset + r.Limit - 1
}

// IsEmpty reports whether the range selects no rows.
func (r RowRange) IsEmpty() bool { return r.Limit == 0 }

// PageRequest describes pagination, optional filter, and ordering.
type PageRequest struct {
	page     int
	pageSize int
	filter   *QueryFilter
	sorts    []Sort
}

func (p *PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		p.pageSize = 10
	}
	return p.pageSize
}

func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		p.page = 1
	}
	return p.page
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

func (p *PageRequest) GetFilter() *QueryFilter {
	return p.filter
}

func (p *PageRequest) GetSorts() []Sort {
	return p.sorts
}

// Range converts the page request into the equivalent row range.
func (p *PageRequest) Range() RowRange {
	return NewRowRange(p.GetOffset(), p.GetPageSize())
}

// NewPageRequest constructs a PageRequest with filter and sort settings.
func NewPageRequest(page int, pageSize int, filter *QueryFilter, sorts []Sort) *PageRequest {
	return &PageRequest{page, pageSize, filter, sorts}
}

// NewPageRequestWithFilter constructs a PageRequest with a filter only.
func NewPageRequestWithFilter(page int, pageSize int, filter *QueryFilter) *PageRequest {
	return NewPageRequest(page, pageSize, filter, nil)
}

// NewPageRequestWithSorts constructs a PageRequest with ordering only.
func NewPageRequestWithSorts(page int, pageSize int, sorts ...Sort) *PageRequest {
	return NewPageRequest(page, pageSize, nil, sorts)
}

// NewDefaultPageRequest constructs a PageRequest with no filter or ordering.
func NewDefaultPageRequest(page int, pageSize int) *PageRequest {
	return NewPageRequest(page, pageSize, nil, nil)
}

// Pagination holds paged result items along with pagination metadata.
type Pagination[T any] struct {
	Page     int
	PageSize int
	Total    int
	Items    []*T
}

// NewDefaultPagination constructs an empty pagination container.
func NewDefaultPagination[T any](page int, pageSize int) *Pagination[T] {
	return &Pagination[T]{page, pageSize, 0, make([]*T, 0)}
}
