package table

import "vqlite/pager"

// Table is a handle onto a single-table, single-file database: the pager
// that owns the underlying pages, and the (fixed) root page number.
type Table struct {
	pager *pager.Pager
}

// Open opens (or creates) the database file at path. A brand-new file gets
// page 0 initialized as an empty leaf root; an existing file is assumed to
// already have one.
func Open(path string) (*Table, error) {
	p, err := pager.Open(path)
	if err != nil {
		return nil, err
	}

	t := &Table{pager: p}
	if p.NumPages == 0 {
		rootPage, err := p.GetPage(rootPageNum)
		if err != nil {
			return nil, err
		}
		root := AsLeaf(rootPage)
		root.InitializeLeaf()
		root.SetIsRoot(true)
	}
	return t, nil
}

// Close flushes every resident page back to disk and releases the file
// handle.
func (t *Table) Close() error {
	return t.pager.Close()
}
