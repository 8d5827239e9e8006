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
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

var sqlLogSilent bool

// SetSQLLogSilent globally mutes the query and slow-query hooks.
func SetSQLLogSilent(b bool) {
	sqlLogSilent = b
}

var (
	selectColor  = color.New(color.FgGreen)
	insertColor  = color.New(color.FgBlue)
	updateColor  = color.New(color.FgYellow)
	deleteColor  = color.New(color.FgMagenta)
	defaultColor = color.New(color.FgRed)
	errColor     = color.New(color.BgRed, color.FgWhite)
	tagColor     = color.New(color.FgCyan)
	slowColor    = color.New(color.BgYellow, color.FgBlack)
)

// QueryHook prints executed queries. The environment variable named by
// envName overrides the static settings: empty/"0" disables, "2" enables
// verbose mode (successful queries included).
type QueryHook struct {
	envName string
	enabled bool
	verbose bool
	writer  io.Writer
}

var _ bun.QueryHook = (*QueryHook)(nil)

// NewQueryHook constructs a query log hook writing to stdout.
func NewQueryHook(enabled, verbose bool) *QueryHook {
	return &QueryHook{
		envName: "ROWKIT_SQL_LOG",
		enabled: enabled,
		verbose: verbose,
		writer:  os.Stdout,
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if sqlLogSilent {
		return
	}
	enabled := h.enabled
	verbose := h.verbose
	if env, ok := os.LookupEnv(h.envName); ok {
		enabled = env != "" && env != "0"
		verbose = env == "2"
	}
	if !enabled {
		return
	}

	if !verbose {
		switch {
		case event.Err == nil,
			errors.Is(event.Err, sql.ErrNoRows),
			errors.Is(event.Err, sql.ErrTxDone):
			return
		}
	}

	now := time.Now()
	dur := now.Sub(event.StartTime)

	args := []interface{}{
		now.Format("2006-01-02 15:04:05.000"),
		tagColor.Sprintf("%8s", "[SQL]"),
		fmt.Sprintf("%12s", dur.Round(time.Microsecond)),
		" ", operationColor(event.Operation()).Sprint(event.Query),
	}
	if event.Err != nil {
		args = append(args, " ", errColor.Sprintf(" %s ", event.Err.Error()))
	}
	_, _ = fmt.Fprintln(h.writer, args...)
}

// SlowQueryHook reports successful queries slower than the threshold. The
// environment variable named by envName ("1") force-enables it.
type SlowQueryHook struct {
	envName  string
	enabled  bool
	slowTime time.Duration
	writer   io.Writer
}

var _ bun.QueryHook = (*SlowQueryHook)(nil)

// NewSlowQueryHook constructs a slow-query hook writing to stdout.
func NewSlowQueryHook(slowTime time.Duration) *SlowQueryHook {
	return &SlowQueryHook{
		envName:  "ROWKIT_SQL_SLOW_LOG",
		enabled:  true,
		slowTime: slowTime,
		writer:   os.Stdout,
	}
}

func (h *SlowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *SlowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if sqlLogSilent || event.Err != nil {
		return
	}
	enabled := h.enabled
	if env, ok := os.LookupEnv(h.envName); ok {
		enabled = env == "1"
	}
	if !enabled {
		return
	}

	duration := time.Since(event.StartTime)
	if duration <= h.slowTime {
		return
	}
	_, _ = fmt.Fprintln(h.writer,
		time.Now().Format("2006-01-02 15:04:05.000"),
		slowColor.Sprintf("%8s", "[SLOW]"),
		fmt.Sprintf("%12s", duration.Round(time.Microsecond)),
		" ", operationColor(event.Operation()).Sprint(event.Query),
	)
}

func operationColor(operation string) *color.Color {
	switch operation {
	case "SELECT":
		return selectColor
	case "INSERT":
		return insertColor
	case "UPDATE":
		return updateColor
	case "DELETE":
		return deleteColor
	default:
		return defaultColor
	}
}
