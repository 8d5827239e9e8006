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
	"fmt"
	"testing"

	"github.com/uptrace/bun"

	"github.com/rowkit/rowkit/dataloader"
	"github.com/rowkit/rowkit/types"
)

func seedPeople(t *testing.T, db *bun.DB, n int) {
	t.Helper()
	people := make([]*Person, n)
	for i := range people {
		people[i] = &Person{FullName: fmt.Sprintf("person-%03d", i), Age: 18 + i%60}
	}
	if _, err := db.NewInsert().Model(&people).Exec(context.Background()); err != nil {
		t.Fatalf("seed people: %v", err)
	}
}

func TestEntityLoaderWindows(t *testing.T) {
	db := newTestDB(t)
	seedPeople(t, db, 250)

	provider := dataloader.NewAdapter[Person](db, dataloader.NewEntityLoader[Person](db))
	ctx := context.Background()

	count, err := provider.SizeInBackEnd(ctx, dataloader.Query{})
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if count != 250 {
		t.Fatalf("expected 250 rows, got %d", count)
	}

	sorts := []dataloader.SortOrder{{Property: "id"}}

	first, err := provider.FetchFromBackEnd(ctx, dataloader.Query{Sorts: sorts, Offset: 0, Limit: 100})
	if err != nil {
		t.Fatalf("fetch first page: %v", err)
	}
	if len(first) != 100 {
		t.Fatalf("expected rows 0..99, got %d rows", len(first))
	}
	if first[0].FullName != "person-000" || first[99].FullName != "person-099" {
		t.Fatalf("unexpected window: first=%s last=%s", first[0].FullName, first[99].FullName)
	}

	tail, err := provider.FetchFromBackEnd(ctx, dataloader.Query{Sorts: sorts, Offset: 200, Limit: 100})
	if err != nil {
		t.Fatalf("fetch tail page: %v", err)
	}
	if len(tail) != 50 {
		t.Fatalf("expected rows 200..249, got %d rows", len(tail))
	}
	if tail[0].FullName != "person-200" || tail[49].FullName != "person-249" {
		t.Fatalf("unexpected window: first=%s last=%s", tail[0].FullName, tail[49].FullName)
	}
}

func TestEntityLoaderFiltered(t *testing.T) {
	db := newTestDB(t)
	seedPeople(t, db, 10)

	loader := dataloader.NewEntityLoader[Person](db)
	ctx := context.Background()

	filter := types.NewQueryFilter("full_name = ?", "person-003")
	count, err := loader.Count(ctx, filter)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 match, got %d", count)
	}

	rows, err := loader.Fetch(ctx, filter, nil, types.NewRowRange(0, 10))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 || rows[0].FullName != "person-003" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestSQLLoader(t *testing.T) {
	db := newTestDB(t)
	seedPeople(t, db, 50)

	loader := dataloader.NewSQLLoader[Person](db,
		"SELECT * FROM people {{WHERE}} {{ORDER_BY}} {{PAGED}}",
		"SELECT count(*) FROM people {{WHERE}}",
	)
	ctx := context.Background()

	count, err := loader.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 50 {
		t.Fatalf("expected 50 rows, got %d", count)
	}

	filter := types.NewQueryFilter("age >= ?", 18)
	rows, err := loader.Fetch(ctx, filter, []types.Sort{types.Desc("id")}, types.NewRowRange(0, 5))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0].FullName != "person-049" {
		t.Fatalf("expected descending order, got first=%s", rows[0].FullName)
	}
}

func TestSQLLoaderRejectsUnknownSortColumn(t *testing.T) {
	db := newTestDB(t)

	loader := dataloader.NewSQLLoader[Person](db,
		"SELECT * FROM people {{WHERE}} {{ORDER_BY}} {{PAGED}}",
		"SELECT count(*) FROM people {{WHERE}}",
	)

	_, err := loader.Fetch(context.Background(), nil,
		[]types.Sort{{Column: "age; DROP TABLE people"}},
		types.NewRowRange(0, 5))
	if err == nil {
		t.Fatal("expected unknown sort column to be rejected")
	}
}
