// Package pager provides demand-loaded, cached access to the fixed-size
// pages of a single database file. It has no notion of what a page
// contains — that's the table package's job.
package pager

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"vqlite/dberr"
	"vqlite/internal/vlog"
)

const (
	// PageSize is the fixed size, in bytes, of every page in the file.
	PageSize = 4096
	// MaxPages bounds the pager's in-memory slot array. A page number at or
	// beyond this is a programmer error, not a recoverable condition.
	MaxPages = 100
)

// Page is a resident, in-memory copy of one page of the backing file.
type Page struct {
	Data    [PageSize]byte
	PageNum uint32
}

// Pager owns the file handle and the slot array. There is no eviction: the
// cache is bounded by MaxPages and every slot that was ever populated is
// considered dirty at Close, since individual pages are never tracked for
// dirtiness (see Close).
type Pager struct {
	file     *os.File
	Pages    [MaxPages]*Page
	NumPages uint32

	log *logrus.Entry
}

// Open opens or creates the file at path for read/write and primes the
// pager's page count from its length. A file whose length is not a whole
// multiple of PageSize is corrupt and yields a fatal error.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, dberr.WrapFatal(err, "Unable to open file")
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, dberr.WrapFatal(err, "Unable to stat file")
	}

	fileLength := fi.Size()
	if fileLength%PageSize != 0 {
		f.Close()
		return nil, dberr.NewFatal("Db file is not a whole number of pages. Corrupt file.")
	}

	p := &Pager{
		file:     f,
		NumPages: uint32(fileLength / PageSize),
		log:      vlog.For("pager"),
	}
	p.log.WithField("num_pages", p.NumPages).Debug("opened database file")
	return p, nil
}

// GetPage returns the buffer for pageNum, loading it from disk on first
// access. Asking for a page at or beyond MaxPages is a fatal programmer
// error: the cache is not allowed to grow past its bound.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum >= MaxPages {
		return nil, dberr.NewFatal(fmt.Sprintf("Tried to fetch page number out of bounds. %d > %d", pageNum, MaxPages))
	}

	if p.Pages[pageNum] == nil {
		page := &Page{PageNum: pageNum}
		if pageNum < p.NumPages {
			if err := p.readPage(pageNum, page); err != nil {
				return nil, err
			}
		}
		p.Pages[pageNum] = page
		p.log.WithField("page", pageNum).Debug("loaded page")
	}

	if pageNum >= p.NumPages {
		p.NumPages = pageNum + 1
	}

	return p.Pages[pageNum], nil
}

// readPage seeks to pageNum's offset and fills page.Data. A short read at
// the end of the file is permitted — the rest of the buffer stays zeroed.
func (p *Pager) readPage(pageNum uint32, page *Page) error {
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return dberr.WrapFatal(err, "Error seeking file")
	}
	if _, err := io.ReadFull(p.file, page.Data[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return dberr.WrapFatal(err, "Error reading file")
	}
	return nil
}

// AllocatePage hands out the next unused page number. Pages are only ever
// appended; there is no free list, so page numbers are never reused even
// after (future) deletion support.
func (p *Pager) AllocatePage() (uint32, error) {
	n := p.NumPages
	if n >= MaxPages {
		return 0, dberr.NewFatal(fmt.Sprintf("Tried to fetch page number out of bounds. %d > %d", n, MaxPages))
	}
	p.Pages[n] = &Page{PageNum: n}
	p.NumPages = n + 1
	return n, nil
}

// FlushPage writes the full PageSize buffer for pageNum back to the file.
// Flushing a slot that was never loaded is a programmer bug: fatal.
func (p *Pager) FlushPage(pageNum uint32) error {
	page := p.Pages[pageNum]
	if page == nil {
		return dberr.NewFatal("Tried to flush null page")
	}
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return dberr.WrapFatal(err, "Error seeking file")
	}
	if _, err := p.file.Write(page.Data[:]); err != nil {
		return dberr.WrapFatal(err, "Error writing file")
	}
	p.log.WithField("page", pageNum).Debug("flushed page")
	return nil
}

// Close flushes every populated slot and closes the file handle. There is
// no dirty tracking, so every resident page is rewritten — wasteful but
// correct, and simple enough for a single-user educational engine.
func (p *Pager) Close() error {
	for i := uint32(0); i < p.NumPages; i++ {
		if p.Pages[i] == nil {
			continue
		}
		if err := p.FlushPage(i); err != nil {
			return err
		}
	}
	if err := p.file.Close(); err != nil {
		return dberr.WrapFatal(err, "Error closing db file.")
	}
	return nil
}
