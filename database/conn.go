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

var globalFactory *Factory

// GetDB returns the global Bun database instance, or nil before Init.
func GetDB() *bun.DB {
	if globalFactory != nil {
		return globalFactory.DB()
	}
	return nil
}

// GetManager returns the global database manager, or nil before Init.
func GetManager() Manager {
	if globalFactory != nil {
		return globalFactory.Manager()
	}
	return nil
}

// Init initializes the global database using the provided configuration.
func Init(cfg *Config) (*bun.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	factory := NewFactory()
	manager, err := factory.CreateFromConfig(&cfg.Connection)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}

	ctx := context.Background()
	if err := factory.Initialize(ctx, cfg.Migrate.CreateTablesOnStartup); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	globalFactory = factory
	db := manager.DB()
	if instances := RegisteredModelInstances(); len(instances) > 0 {
		db.RegisterModel(instances...)
	}
	return db, nil
}

// Close closes the global database connection.
func Close() error {
	if globalFactory != nil {
		return globalFactory.Close()
	}
	return nil
}

// GetHealthStatus returns the current global database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	if globalFactory != nil {
		return globalFactory.HealthStatus(ctx)
	}
	return &HealthStatus{
		Healthy:   false,
		Connected: false,
		LastError: "Database not initialized",
	}
}

// GetStats returns global pool statistics.
func GetStats() *PoolStats {
	if globalFactory != nil {
		return globalFactory.Stats()
	}
	return &PoolStats{}
}
