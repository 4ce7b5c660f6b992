package storage

import "errors"

var ErrEndOfTable = errors.New("cursor is at end of table")

// Cursor walks a table in row order or appends at its end.
// The row count is captured when the cursor is created.
type Cursor struct {
	table      *Table
	rowNum     int
	numRows    int
	endOfTable bool
}

// TableStart positions a cursor at row 0
func TableStart(t *Table) *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     0,
		numRows:    t.numRows,
		endOfTable: t.numRows == 0,
	}
}

// TableEnd positions a cursor one past the last row, the append point for inserts
func TableEnd(t *Table) *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     t.numRows,
		numRows:    t.numRows,
		endOfTable: true,
	}
}

// Advance moves one row forward
func (c *Cursor) Advance() {
	c.rowNum++
	if c.rowNum >= c.numRows {
		c.endOfTable = true
	}
}

// EndOfTable reports whether the cursor has passed the last row
func (c *Cursor) EndOfTable() bool {
	return c.endOfTable
}

// RowNum returns the current row index
func (c *Cursor) RowNum() int {
	return c.rowNum
}

// Value decodes the row under the cursor
func (c *Cursor) Value() (Row, error) {
	if c.endOfTable {
		return Row{}, ErrEndOfTable
	}
	return c.table.readRow(c.rowNum)
}

// AddRow inserts row into the table and advances past it
func (c *Cursor) AddRow(row Row) error {
	if err := c.table.Insert(row); err != nil {
		return err
	}
	c.Advance()
	return nil
}
