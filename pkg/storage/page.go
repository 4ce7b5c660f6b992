package storage

import "fmt"

const (
	// PageSize is the size of each page in bytes (4KB)
	PageSize = 4096

	// TableMaxPages is the maximum number of pages a table may hold
	TableMaxPages = 100

	// RowsPerPage is the number of whole rows packed into one page.
	// Bytes past RowsPerPage*RowSize are unused padding.
	RowsPerPage = PageSize / RowSize

	// TableMaxRows is the hard capacity of the page arena
	TableMaxRows = RowsPerPage * TableMaxPages
)

// Page stand for a page of 4096 bytes holding packed rows from offset 0.
// There is no page header.
type Page struct {
	Data [PageSize]byte
}

// NewPage creates a zero filled page
func NewPage() *Page {
	return &Page{}
}

// RowBytes returns the slot holding the row at the given byte offset.
// The returned slice aliases the page buffer.
func (p *Page) RowBytes(offset int) ([]byte, error) {
	if offset < 0 || offset+RowSize > PageSize {
		return nil, fmt.Errorf("row offset %d out of page bounds", offset)
	}
	return p.Data[offset : offset+RowSize], nil
}

// RowSlot maps a row index to its page index and byte offset within that page
func RowSlot(rowNum int) (pageNum int, offset int) {
	pageNum = rowNum / RowsPerPage
	offset = (rowNum % RowsPerPage) * RowSize
	return pageNum, offset
}

// TableByteLength returns the file offset just past the last of numRows rows
func TableByteLength(numRows int) int64 {
	if numRows <= 0 {
		return 0
	}
	pageNum, offset := RowSlot(numRows - 1)
	return int64(pageNum)*PageSize + int64(offset) + RowSize
}
