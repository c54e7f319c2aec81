// Package persistence provides the GORM-backed run-history repository and
// the SQLite / PostgreSQL connection helpers it runs on.
package persistence
