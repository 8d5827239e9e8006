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

package listeners

import (
	"errors"
	"testing"
)

type rowListener interface {
	RowChanged(id int64)
}

type countingListener struct {
	calls int
}

func (c *countingListener) RowChanged(id int64) { c.calls++ }

func TestRegistryDeduplicates(t *testing.T) {
	r := NewRegistry[rowListener]()
	l := &countingListener{}

	r.Add(l)
	r.Add(l)
	if r.Len() != 1 {
		t.Fatalf("expected 1 listener, got %d", r.Len())
	}

	r.Fire(func(l rowListener) { l.RowChanged(1) })
	if l.calls != 1 {
		t.Fatalf("expected exactly one invocation per broadcast, got %d", l.calls)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry[rowListener]()
	a := &countingListener{}
	b := &countingListener{}
	r.Add(a)
	r.Add(b)

	r.Remove(a)
	r.Remove(a) // absent, no-op

	r.Fire(func(l rowListener) { l.RowChanged(1) })
	if a.calls != 0 {
		t.Fatalf("removed listener was invoked %d times", a.calls)
	}
	if b.calls != 1 {
		t.Fatalf("expected 1 invocation for remaining listener, got %d", b.calls)
	}
}

type failingListener struct {
	err    error
	called bool
}

func (f *failingListener) RowChanged(id int64) { f.called = true }

func TestFireEContinuesPastFailures(t *testing.T) {
	errA := errors.New("listener a failed")
	errB := errors.New("listener b failed")

	a := &failingListener{err: errA}
	b := &failingListener{err: errB}
	c := &failingListener{}

	r := NewRegistry[*failingListener]()
	r.Add(a)
	r.Add(b)
	r.Add(c)

	err := r.FireE(func(l *failingListener) error {
		l.called = true
		return l.err
	})

	for i, l := range []*failingListener{a, b, c} {
		if !l.called {
			t.Fatalf("listener %d was skipped", i)
		}
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors in joined result, got %v", err)
	}
}
