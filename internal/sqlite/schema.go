// Package sqlite implements the SQLite-backed task store for the todos
// service. The database file is the source of truth; JSONL files are an
// export/import format only.
package sqlite

// Schema DDL. The step column is part of the current schema; databases
// created by earlier releases lack it, which is why the store probes
// for it at open instead of assuming it.
const createTodos = `CREATE TABLE IF NOT EXISTS todos (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    due TEXT,
    priority TEXT NOT NULL DEFAULT 'Medium',
    step TEXT
);`

const idxTodosCreatedAt = `CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);`

// schemaDDL lists all statements executed at open, in order.
var schemaDDL = []string{
	createTodos,
	idxTodosCreatedAt,
}
