package sql

import (
	"fmt"

	"github.com/spaghetti-lover/persql/pkg/storage"
)

// Result holds the outcome of one statement
type Result struct {
	Rows         []storage.Row
	RowsAffected int
}

// Executor executes statements against a table
type Executor struct {
	table *storage.Table
}

// NewExecutor creates a new executor
func NewExecutor(table *storage.Table) *Executor {
	return &Executor{table: table}
}

// Execute executes a statement
func (e *Executor) Execute(stmt Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *SelectStatement:
		return e.executeSelect(s)
	case *InsertStatement:
		return e.executeInsert(s)
	default:
		return nil, fmt.Errorf("unsupported statement type: %T", stmt)
	}
}

// executeSelect scans every row from the start of the table
func (e *Executor) executeSelect(_ *SelectStatement) (*Result, error) {
	rows := make([]storage.Row, 0, e.table.NumRows())

	for c := storage.TableStart(e.table); !c.EndOfTable(); c.Advance() {
		row, err := c.Value()
		if err != nil {
			return nil, fmt.Errorf("select failed at row %d: %w", c.RowNum(), err)
		}
		rows = append(rows, row)
	}

	return &Result{Rows: rows}, nil
}

// executeInsert appends through a cursor at the end of the table
func (e *Executor) executeInsert(stmt *InsertStatement) (*Result, error) {
	if err := storage.TableEnd(e.table).AddRow(stmt.Row); err != nil {
		return nil, fmt.Errorf("insert failed: %w", err)
	}

	return &Result{RowsAffected: 1}, nil
}

// ParseAndExecute is a convenience function that prepares and executes one line
func ParseAndExecute(line string, table *storage.Table) (*Result, error) {
	stmt, err := PrepareStatement(line)
	if err != nil {
		return nil, err
	}

	return NewExecutor(table).Execute(stmt)
}
