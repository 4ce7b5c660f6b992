package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorEmptyTable(t *testing.T) {
	table := openTestTable(t, filepath.Join(t.TempDir(), "test.db"))
	defer table.Close()

	c := TableStart(table)
	assert.True(t, c.EndOfTable())
	assert.Equal(t, 0, c.RowNum())

	_, err := c.Value()
	assert.ErrorIs(t, err, ErrEndOfTable)
}

func TestCursorTermination(t *testing.T) {
	table := openTestTable(t, filepath.Join(t.TempDir(), "test.db"))
	defer table.Close()

	const n = 2*RowsPerPage + 3
	for i := 0; i < n; i++ {
		require.NoError(t, table.Insert(testRow(i)))
	}

	c := TableStart(table)
	advances := 0
	for !c.EndOfTable() {
		row, err := c.Value()
		require.NoError(t, err)
		assert.Equal(t, testRow(advances), row)

		c.Advance()
		advances++
	}

	assert.Equal(t, n, advances)
	assert.Equal(t, n, c.RowNum())
}

func TestCursorSnapshotsRowCount(t *testing.T) {
	table := openTestTable(t, filepath.Join(t.TempDir(), "test.db"))
	defer table.Close()

	require.NoError(t, table.Insert(testRow(0)))
	require.NoError(t, table.Insert(testRow(1)))

	c := TableStart(table)
	require.NoError(t, table.Insert(testRow(2)))

	c.Advance()
	assert.False(t, c.EndOfTable())
	c.Advance()
	assert.True(t, c.EndOfTable(), "rows inserted after creation are not visited")
	assert.Equal(t, 3, table.NumRows())
}

func TestCursorTableEnd(t *testing.T) {
	table := openTestTable(t, filepath.Join(t.TempDir(), "test.db"))
	defer table.Close()

	require.NoError(t, table.Insert(testRow(0)))

	c := TableEnd(table)
	assert.True(t, c.EndOfTable())
	assert.Equal(t, 1, c.RowNum())

	require.NoError(t, c.AddRow(testRow(1)))
	assert.Equal(t, 2, c.RowNum())
	assert.True(t, c.EndOfTable())

	assert.Equal(t, []Row{testRow(0), testRow(1)}, scanAll(t, table))
}

func TestCursorAddRowTableFull(t *testing.T) {
	table := openTestTable(t, filepath.Join(t.TempDir(), "test.db"))
	defer table.Close()

	for i := 0; i < TableMaxRows-1; i++ {
		require.NoError(t, TableEnd(table).AddRow(testRow(i)))
	}

	c := TableEnd(table)
	err := c.AddRow(testRow(TableMaxRows))
	assert.ErrorIs(t, err, ErrTableFull)
	assert.Equal(t, TableMaxRows-1, c.RowNum(), "cursor does not advance on failure")
}
