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

package scope

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/rowkit/rowkit/database"
)

// ErrNoActiveRequest is returned when a request-scoped session is accessed
// outside an active request scope.
var ErrNoActiveRequest = errors.New("no active request scope")

// Manager creates request scopes over one database.
type Manager struct {
	db     *bun.DB
	logger database.Logger
}

// NewManager returns a request-scope manager for db.
func NewManager(db *bun.DB) *Manager {
	return &Manager{db: db, logger: database.GetLogger()}
}

// Begin opens a new request scope. The caller must call End when the
// request finishes, on every exit path.
func (m *Manager) Begin() *Request {
	return &Request{manager: m, id: uuid.NewString()}
}

// Request is one request-processing scope. It lazily pins a dedicated
// connection on first session access and releases it on End. A Request is
// owned by the goroutine handling the request; it is not safe for use from
// other goroutines.
type Request struct {
	manager *Manager
	id      string
	conn    *bun.Conn
	session *Session
	ended   bool
}

// ID returns the scope's correlation id.
func (r *Request) ID() string { return r.id }

// Session returns the request-scoped session handle, pinning a dedicated
// connection on first use. After End it fails with ErrNoActiveRequest.
func (r *Request) Session(ctx context.Context) (*Session, error) {
	if r.ended {
		return nil, ErrNoActiveRequest
	}
	if r.session == nil {
		conn, err := r.manager.db.Conn(ctx)
		if err != nil {
			return nil, err
		}
		r.conn = &conn
		r.session = &Session{request: r}
		r.manager.logger.Debug("Request session pinned", "request_id", r.id)
	}
	return r.session, nil
}

// End closes the scope and releases the pinned connection, if any.
// Calling End more than once is a no-op.
func (r *Request) End() error {
	if r.ended {
		return nil
	}
	r.ended = true
	r.session = nil
	if r.conn == nil {
		return nil
	}
	conn := *r.conn
	r.conn = nil
	if err := conn.Close(); err != nil {
		r.manager.logger.Error("Failed to release request connection", "error", err, "request_id", r.id)
		return err
	}
	r.manager.logger.Debug("Request session released", "request_id", r.id)
	return nil
}

// Session is the handle to a request-scoped connection. It stays valid
// across multiple transactions within one request.
type Session struct {
	request *Request
}

// DB returns the pinned connection for query building, failing with
// ErrNoActiveRequest once the owning scope has ended.
func (s *Session) DB() (bun.IDB, error) {
	if s.request.ended || s.request.conn == nil {
		return nil, ErrNoActiveRequest
	}
	return *s.request.conn, nil
}

// Close is intentionally a no-op. The pinned connection must survive
// multiple transactions within the request; it is released by Request.End.
func (s *Session) Close() error { return nil }

// RunInTx runs fn in a transaction on the pinned connection.
func (s *Session) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	return RunInTx(ctx, db, fn)
}
