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
	"net/http"
)

type requestKey struct{}

// NewContext returns a context carrying the request scope.
func NewContext(ctx context.Context, r *Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// FromContext returns the request scope stored in ctx, if any.
func FromContext(ctx context.Context) (*Request, bool) {
	r, ok := ctx.Value(requestKey{}).(*Request)
	return r, ok
}

// Middleware opens a request scope around each HTTP request and ends it
// when the handler returns, on every exit path. The scope is available to
// handlers via FromContext.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			scope := m.Begin()
			defer func() {
				if err := scope.End(); err != nil {
					m.logger.Error("Failed to end request scope", "error", err, "request_id", scope.ID())
				}
			}()
			next.ServeHTTP(w, req.WithContext(NewContext(req.Context(), scope)))
		})
	}
}
