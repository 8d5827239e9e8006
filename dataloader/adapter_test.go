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

package dataloader_test

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/rowkit/rowkit/dataloader"
	"github.com/rowkit/rowkit/types"
)

type Person struct {
	bun.BaseModel `bun:"table:people,alias:p"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	FullName string `bun:"full_name,notnull" json:"fullName"`
	Age      int    `bun:"age" json:"age"`
}

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:loader_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewCreateTable().Model((*Person)(nil)).Exec(context.Background())
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// recordingLoader captures the parameters of the last call.
type recordingLoader struct {
	filter *types.QueryFilter
	sorts  []types.Sort
	r      types.RowRange
}

func (l *recordingLoader) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	l.filter = filter
	return 0, nil
}

func (l *recordingLoader) Fetch(ctx context.Context, filter *types.QueryFilter, sorts []types.Sort, r types.RowRange) ([]Person, error) {
	l.filter = filter
	l.sorts = sorts
	l.r = r
	return nil, nil
}

func TestAdapterSortTranslation(t *testing.T) {
	db := newTestDB(t)
	rec := &recordingLoader{}
	adapter := dataloader.NewAdapter[Person](db, rec)

	_, err := adapter.FetchFromBackEnd(context.Background(), dataloader.Query{
		Sorts: []dataloader.SortOrder{
			{Property: "FullName", Desc: true}, // Go field name
			{Property: "age"},                  // json tag / column
			{Property: "id"},                   // column name
		},
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	want := []types.Sort{
		{Column: "full_name", Desc: true},
		{Column: "age"},
		{Column: "id"},
	}
	if len(rec.sorts) != len(want) {
		t.Fatalf("expected %d sorts, got %d", len(want), len(rec.sorts))
	}
	for i := range want {
		if rec.sorts[i] != want[i] {
			t.Fatalf("sort %d: expected %+v, got %+v", i, want[i], rec.sorts[i])
		}
	}
}

func TestAdapterUnknownSortProperty(t *testing.T) {
	db := newTestDB(t)
	adapter := dataloader.NewAdapter[Person](db, &recordingLoader{})

	_, err := adapter.FetchFromBackEnd(context.Background(), dataloader.Query{
		Sorts: []dataloader.SortOrder{{Property: "nope"}},
		Limit: 10,
	})
	if err == nil {
		t.Fatal("expected error for unknown sort property")
	}
}

func TestAdapterFilterPassthrough(t *testing.T) {
	db := newTestDB(t)
	rec := &recordingLoader{}
	adapter := dataloader.NewAdapter[Person](db, rec)

	filter := types.NewQueryFilter("age > ?", 30)
	if _, err := adapter.SizeInBackEnd(context.Background(), dataloader.Query{Filter: filter}); err != nil {
		t.Fatalf("size: %v", err)
	}
	if rec.filter != filter {
		t.Fatal("filter must pass through unchanged")
	}
}

func TestAdapterRangeClamps(t *testing.T) {
	db := newTestDB(t)
	rec := &recordingLoader{}
	adapter := dataloader.NewAdapter[Person](db, rec)

	_, err := adapter.FetchFromBackEnd(context.Background(), dataloader.Query{
		Offset: math.MaxInt - 10,
		Limit:  100,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rec.r.EndInclusive() != math.MaxInt {
		t.Fatalf("expected clamped end, got %d", rec.r.EndInclusive())
	}
}

func TestAdapterDefaultIDResolver(t *testing.T) {
	db := newTestDB(t)
	adapter := dataloader.NewAdapter[Person](db, &recordingLoader{})

	id := adapter.ID(Person{ID: 7, FullName: "x"})
	if id != int64(7) {
		t.Fatalf("expected primary key identity 7, got %v (%T)", id, id)
	}
}

func TestAdapterCustomIDResolver(t *testing.T) {
	db := newTestDB(t)
	adapter := dataloader.NewAdapter[Person](db, &recordingLoader{},
		dataloader.WithIDResolver[Person](func(p Person) interface{} { return p.FullName }))

	if id := adapter.ID(Person{ID: 7, FullName: "x"}); id != "x" {
		t.Fatalf("expected custom identity, got %v", id)
	}
}
