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
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/rowkit/rowkit/database"
)

// Tx is an explicit transactional scope. Inside RunInTx the scope wraps a
// live transaction; nested RunInTx calls reuse it without opening a new
// begin/commit boundary.
type Tx struct {
	db   bun.IDB
	inTx bool
}

// DB returns the session backing the scope, suitable for repository.New.
func (t *Tx) DB() bun.IDB { return t.db }

// InTx reports whether the scope currently wraps a live transaction.
func (t *Tx) InTx() bool { return t.inTx }

// RunInTx runs fn within this scope. When the scope already wraps a
// transaction, fn runs against it directly; the inner call never gets its
// own commit or rollback boundary.
func (t *Tx) RunInTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	if t.inTx {
		return fn(ctx, t)
	}
	return RunInTx(ctx, t.db, fn)
}

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (bun.Tx, error)
}

// RunInTx executes fn within a transaction on db. On normal completion the
// transaction commits; on error it rolls back and the original error
// propagates. A secondary failure during rollback is logged, never
// propagated. When db is itself a transaction the call flattens: fn runs
// against the existing transaction with no new boundary.
func RunInTx(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx *Tx) error) error {
	if btx, ok := db.(bun.Tx); ok {
		return fn(ctx, &Tx{db: btx, inTx: true})
	}

	beginner, ok := db.(txBeginner)
	if !ok {
		return fmt.Errorf("session %T cannot begin a transaction", db)
	}

	btx, err := beginner.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := btx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			database.GetLogger().Error("Transaction rollback failed", "error", rbErr)
		}
	}()

	if err := fn(ctx, &Tx{db: btx, inTx: true}); err != nil {
		return err
	}
	if err := btx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
