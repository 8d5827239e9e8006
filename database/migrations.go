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

package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables creates tables for every registered model, in priority
// order, skipping tables that already exist.
func CreateTables(ctx context.Context, db *bun.DB, logger Logger) error {
	for _, m := range RegisteredModels() {
		_, err := db.NewCreateTable().
			Model(m.Instance).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m.Instance, err)
		}
		if logger != nil {
			logger.Debug("Table ensured", "model", fmt.Sprintf("%T", m.Instance))
		}
	}
	return nil
}
