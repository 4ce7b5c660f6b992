package database

import (
	"github.com/phuslu/log"
	"github.com/spaghetti-lover/persql/pkg/sql"
	"github.com/spaghetti-lover/persql/pkg/storage"
)

// Database owns the single table of a shell session
type Database struct {
	table    *storage.Table
	executor *sql.Executor
}

// Open opens or creates a database file
func Open(logger log.Logger, path string) (*Database, error) {
	table, err := storage.OpenTable(logger, path)
	if err != nil {
		return nil, err
	}

	return &Database{
		table:    table,
		executor: sql.NewExecutor(table),
	}, nil
}

// Close flushes every cached page and closes the file
func (db *Database) Close() error {
	return db.table.Close()
}

// Exec prepares and executes one statement line
func (db *Database) Exec(line string) (*sql.Result, error) {
	stmt, err := sql.PrepareStatement(line)
	if err != nil {
		return nil, err
	}
	return db.executor.Execute(stmt)
}

// Insert appends a row
func (db *Database) Insert(row storage.Row) error {
	_, err := db.executor.Execute(&sql.InsertStatement{Row: row})
	return err
}

// Select returns every row in insertion order
func (db *Database) Select() ([]storage.Row, error) {
	result, err := db.executor.Execute(&sql.SelectStatement{})
	if err != nil {
		return nil, err
	}
	return result.Rows, nil
}

// Stats returns database statistics
func (db *Database) Stats() storage.TableStats {
	return db.table.Stats()
}
