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

// Package listeners provides a generic deduplicated listener registry with
// fan-out broadcast. The capability interface is the type parameter;
// dispatch happens through ordinary virtual calls.
package listeners

import (
	"errors"
	"sync"
)

// Registry holds a deduplicated set of listeners of one capability type.
// Listeners are compared by their own equality; registering the same value
// twice is a no-op. Safe for concurrent use.
type Registry[L comparable] struct {
	mu        sync.RWMutex
	listeners []L
}

// NewRegistry returns an empty listener registry.
func NewRegistry[L comparable]() *Registry[L] {
	return &Registry[L]{}
}

// Add registers a listener; a no-op when already present.
func (r *Registry[L]) Add(listener L) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.listeners {
		if l == listener {
			return
		}
	}
	r.listeners = append(r.listeners, listener)
}

// Remove unregisters a listener; a no-op when absent. After Remove the
// listener receives no further broadcasts.
func (r *Registry[L]) Remove(listener L) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.listeners {
		if l == listener {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered listeners.
func (r *Registry[L]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Fire invokes fn once per registered listener, in unspecified order.
// Broadcast is fire-and-forget; fn is expected to call one capability
// method with captured arguments.
func (r *Registry[L]) Fire(fn func(L)) {
	for _, l := range r.snapshot() {
		fn(l)
	}
}

// FireE invokes fn once per registered listener. A failing listener does
// not stop the broadcast; all listeners run and the collected errors are
// returned joined.
func (r *Registry[L]) FireE(fn func(L) error) error {
	var errs []error
	for _, l := range r.snapshot() {
		if err := fn(l); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry[L]) snapshot() []L {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]L, len(r.listeners))
	copy(out, r.listeners)
	return out
}
