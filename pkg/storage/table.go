package storage

import (
	"errors"
	"fmt"

	"github.com/phuslu/log"
)

var (
	ErrTableFull   = errors.New("table full")
	ErrCorruptFile = errors.New("database file is corrupt")
)

// Table maps row indices onto pager pages. Rows are only ever appended.
type Table struct {
	pager   *Pager
	numRows int
	path    string
	logger  log.Logger
}

// OpenTable opens the pager and recovers the row count from the file length
func OpenTable(logger log.Logger, path string) (*Table, error) {
	pager, err := OpenPager(logger, path)
	if err != nil {
		return nil, err
	}

	numRows := pager.NumRowsOnDisk()
	if numRows > TableMaxRows {
		pager.Close(0)
		return nil, fmt.Errorf("%w: %d bytes holds %d rows, max %d", ErrCorruptFile, pager.FileLength(), numRows, TableMaxRows)
	}

	t := &Table{
		pager:   pager,
		numRows: numRows,
		path:    path,
		logger:  logger,
	}

	logger.Info().Str("path", path).Int("rows", t.numRows).Msg("table opened")

	return t, nil
}

// Close flushes the page cache. It must be called once before exit.
func (t *Table) Close() error {
	return t.pager.Close(TableByteLength(t.numRows))
}

// NumRows returns the number of live rows
func (t *Table) NumRows() int {
	return t.numRows
}

// Path returns the database file path
func (t *Table) Path() string {
	return t.path
}

// Insert appends a row at index NumRows.
// One row of the page arena is held back, so at most TableMaxRows-1 rows are stored.
func (t *Table) Insert(row Row) error {
	if t.numRows >= TableMaxRows-1 {
		t.logger.Warn().Int("rows", t.numRows).Msg("insert rejected, table full")
		return ErrTableFull
	}

	slot, err := t.rowBytes(t.numRows)
	if err != nil {
		return err
	}

	if err := row.SerializeInto(slot); err != nil {
		return fmt.Errorf("failed to serialize row %d: %w", t.numRows, err)
	}

	t.numRows++
	return nil
}

// readRow decodes the row stored at rowNum
func (t *Table) readRow(rowNum int) (Row, error) {
	slot, err := t.rowBytes(rowNum)
	if err != nil {
		return Row{}, err
	}

	row, err := DecodeRow(slot)
	if err != nil {
		return Row{}, fmt.Errorf("row %d: %w", rowNum, err)
	}
	return row, nil
}

// rowBytes returns the cached page slot for rowNum
func (t *Table) rowBytes(rowNum int) ([]byte, error) {
	pageNum, offset := RowSlot(rowNum)

	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}

	return page.RowBytes(offset)
}

// Stats returns table and page cache statistics
func (t *Table) Stats() TableStats {
	return TableStats{
		Path:    t.path,
		NumRows: t.numRows,
		MaxRows: TableMaxRows - 1,
		Pager:   t.pager.Stats(),
	}
}

// TableStats holds table statistics
type TableStats struct {
	Path    string
	NumRows int
	MaxRows int
	Pager   PagerStats
}
