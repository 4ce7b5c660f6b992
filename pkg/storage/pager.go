package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/phuslu/log"
)

var (
	ErrPageOutOfBounds = errors.New("page number out of bounds")
	ErrShortRead       = errors.New("short page read")
	ErrPagerClosed     = errors.New("pager file is closed")
)

// Pager owns the database file and the in-memory page cache.
// Pages are loaded on first request and stay cached until Close.
type Pager struct {
	file       *os.File
	path       string
	fileLength int64
	pages      []*Page
	closed     bool
	logger     log.Logger

	hits      uint64
	diskLoads uint64
	zeroFills uint64
}

// OpenPager opens or creates the database file. No page is read yet.
func OpenPager(logger log.Logger, path string) (*Pager, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	logger.Debug().Str("path", path).Int64("file_length", stat.Size()).Msg("pager opened")

	return &Pager{
		file:       file,
		path:       path,
		fileLength: stat.Size(),
		pages:      make([]*Page, 0),
		logger:     logger,
	}, nil
}

// NumRowsOnDisk derives the row count from the file length.
// Whole pages count RowsPerPage rows each; page padding is never counted as a row.
func (p *Pager) NumRowsOnDisk() int {
	fullPages := p.fileLength / PageSize
	rest := p.fileLength % PageSize
	return int(fullPages)*RowsPerPage + int(rest/RowSize)
}

// FileLength returns the length of the file when it was opened
func (p *Pager) FileLength() int64 {
	return p.fileLength
}

// NumPages returns the number of pages held in memory
func (p *Pager) NumPages() int {
	return len(p.pages)
}

// GetPage returns the cached page, loading it and every lower missing index first.
// The returned page is written in place by callers.
func (p *Pager) GetPage(pageNum int) (*Page, error) {
	if p.closed {
		return nil, ErrPagerClosed
	}

	if pageNum < 0 || pageNum >= TableMaxPages {
		return nil, fmt.Errorf("page %d: %w", pageNum, ErrPageOutOfBounds)
	}

	if pageNum < len(p.pages) {
		p.hits++
		return p.pages[pageNum], nil
	}

	for len(p.pages) <= pageNum {
		page, err := p.loadPage(len(p.pages))
		if err != nil {
			return nil, err
		}
		p.pages = append(p.pages, page)
	}

	return p.pages[pageNum], nil
}

// loadPage reads a page from disk, or zero fills it when it lies past the end of the file
func (p *Pager) loadPage(pageNum int) (*Page, error) {
	page := NewPage()
	offset := int64(pageNum) * PageSize

	if offset >= p.fileLength {
		p.zeroFills++
		return page, nil
	}

	// Only the final page of the file may be partial
	want := min(int64(PageSize), p.fileLength-offset)

	n, err := p.file.ReadAt(page.Data[:want], offset)
	if int64(n) != want {
		return nil, fmt.Errorf("page %d: read %d of %d bytes: %w (%v)", pageNum, n, want, ErrShortRead, err)
	}

	p.diskLoads++
	p.logger.Debug().Int("page", pageNum).Int64("offset", offset).Msg("page loaded from disk")

	return page, nil
}

// Close writes every loaded page back at its page aligned offset, syncs and closes the file.
// size is the number of meaningful bytes in the table: the page holding the end is
// written only up to size and loaded pages wholly past it are skipped.
func (p *Pager) Close(size int64) error {
	if p.closed {
		return ErrPagerClosed
	}
	p.closed = true

	written := 0
	for pageNum, page := range p.pages {
		offset := int64(pageNum) * PageSize
		if offset >= size {
			break
		}

		n := min(int64(PageSize), size-offset)
		if _, err := p.file.WriteAt(page.Data[:n], offset); err != nil {
			p.file.Close()
			return fmt.Errorf("failed to write page %d: %w", pageNum, err)
		}
		written++
	}

	if err := p.file.Sync(); err != nil {
		p.file.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}

	p.logger.Info().Str("path", p.path).Int("pages", written).Int64("bytes", size).Msg("pages flushed")

	return p.file.Close()
}

// Stats returns cache statistics
func (p *Pager) Stats() PagerStats {
	return PagerStats{
		CachedPages: len(p.pages),
		Hits:        p.hits,
		DiskLoads:   p.diskLoads,
		ZeroFills:   p.zeroFills,
		FileLength:  p.fileLength,
	}
}

// PagerStats holds page cache statistics
type PagerStats struct {
	CachedPages int
	Hits        uint64
	DiskLoads   uint64
	ZeroFills   uint64
	FileLength  int64
}

// String returns a formatted string of stats
func (s PagerStats) String() string {
	return fmt.Sprintf(
		"Pager{CachedPages: %d, Hits: %d, DiskLoads: %d, ZeroFills: %d, FileLength: %d}",
		s.CachedPages, s.Hits, s.DiskLoads, s.ZeroFills, s.FileLength,
	)
}
