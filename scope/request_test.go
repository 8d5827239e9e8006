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

package scope_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rowkit/rowkit/scope"
)

func TestSessionCloseIsNoOp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := scope.NewManager(db)

	req := m.Begin()
	defer func() { _ = req.End() }()

	session, err := req.Session(ctx)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The delegate survives Close: the handle still works.
	sdb, err := session.DB()
	if err != nil {
		t.Fatalf("session db after close: %v", err)
	}
	if _, err := sdb.NewInsert().Model(&Note{Body: "still open"}).Exec(ctx); err != nil {
		t.Fatalf("insert on closed handle: %v", err)
	}
}

func TestSessionSpansTransactions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := scope.NewManager(db)

	req := m.Begin()
	defer func() { _ = req.End() }()

	session, err := req.Session(ctx)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	for i := 0; i < 3; i++ {
		err := session.RunInTx(ctx, func(ctx context.Context, tx *scope.Tx) error {
			return insertNote(ctx, tx, "txn")
		})
		if err != nil {
			t.Fatalf("tx %d on request session: %v", i, err)
		}
	}
	if got := countNotes(t, db); got != 3 {
		t.Fatalf("expected 3 notes, got %d", got)
	}
}

func TestSessionAfterEnd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	m := scope.NewManager(db)

	req := m.Begin()
	session, err := req.Session(ctx)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if err := req.End(); err != nil {
		t.Fatalf("end: %v", err)
	}

	if _, err := req.Session(ctx); !errors.Is(err, scope.ErrNoActiveRequest) {
		t.Fatalf("expected ErrNoActiveRequest, got %v", err)
	}
	if _, err := session.DB(); !errors.Is(err, scope.ErrNoActiveRequest) {
		t.Fatalf("expected ErrNoActiveRequest from stale handle, got %v", err)
	}

	// Ending twice is a no-op.
	if err := req.End(); err != nil {
		t.Fatalf("second end: %v", err)
	}

	// A fresh scope allocates a new delegate.
	fresh := m.Begin()
	defer func() { _ = fresh.End() }()
	session2, err := fresh.Session(ctx)
	if err != nil {
		t.Fatalf("fresh session: %v", err)
	}
	sdb, err := session2.DB()
	if err != nil {
		t.Fatalf("fresh session db: %v", err)
	}
	if _, err := sdb.NewSelect().Model((*Note)(nil)).Count(ctx); err != nil {
		t.Fatalf("query on fresh delegate: %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	db := newTestDB(t)
	m := scope.NewManager(db)

	var leaked *scope.Request
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, ok := scope.FromContext(r.Context())
		if !ok {
			t.Error("request scope missing from context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		session, err := req.Session(r.Context())
		if err != nil {
			t.Errorf("session in handler: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		sdb, err := session.DB()
		if err != nil {
			t.Errorf("session db in handler: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if _, err := sdb.NewSelect().Model((*Note)(nil)).Count(r.Context()); err != nil {
			t.Errorf("query in handler: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		leaked = req
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(scope.Middleware(m)(handler))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	// The middleware ended the scope on the way out.
	if _, err := leaked.Session(context.Background()); !errors.Is(err, scope.ErrNoActiveRequest) {
		t.Fatalf("expected scope to be ended after the request, got %v", err)
	}
}
