package table

// Cursor is a transient pointer into a specific leaf cell — or the
// position one past the last cell, when EndOfTable is set. It does not
// survive across mutating calls to the tree; one is created per operation
// and discarded when that operation completes.
type Cursor struct {
	table      *Table
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Start returns a cursor at the leftmost leaf's first cell — equivalent to
// Find(0) followed by checking whether that leaf is empty, since no row id
// is smaller than 0 (a row with id 0 lands at cell 0 as well).
func (t *Table) Start() (*Cursor, error) {
	cursor, err := t.Find(0)
	if err != nil {
		return nil, err
	}

	page, err := t.pager.GetPage(cursor.PageNum)
	if err != nil {
		return nil, err
	}
	cursor.EndOfTable = AsLeaf(page).NumCells() == 0
	return cursor, nil
}

// Value returns the serialized row bytes at the cursor's current position.
// It is only valid to call while !EndOfTable.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.table.pager.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	return AsLeaf(page).Value(c.CellNum), nil
}

// Advance moves the cursor to the next cell in the current leaf. Once it
// runs past the leaf's last cell, EndOfTable is set — iteration does not
// currently cross to a sibling leaf via NextLeaf (see the B+tree package
// doc comment and spec.md's documented open boundary on multi-leaf
// traversal).
func (c *Cursor) Advance() error {
	page, err := c.table.pager.GetPage(c.PageNum)
	if err != nil {
		return err
	}
	c.CellNum++
	if c.CellNum >= AsLeaf(page).NumCells() {
		c.EndOfTable = true
	}
	return nil
}
