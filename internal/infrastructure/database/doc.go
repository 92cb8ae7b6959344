// Package database manages the SQLite connection for bookmarkd.
//
// It opens the database with WAL mode and a busy timeout, restricts file
// permissions, and applies embedded schema migrations. SQLite's
// single-writer model is embraced rather than fought: the connection pool
// is capped at one open connection, and uniqueness races (such as two
// concurrent signups with the same email) are settled by UNIQUE
// constraints instead of application-level locking.
package database
