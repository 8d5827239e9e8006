// Package database provides connection management, configuration,
// create-table migrations, query logging hooks, driver error
// classification, and health checks built on top of Bun.
package database
