// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It owns the schema migrations, the SQL,
// and the mapping from PostgreSQL error codes to store errors.
package postgres
