// Package table implements the fixed-schema row store: a B+tree built
// directly on pager pages, with leaf splitting and root promotion on the
// first split. Parent updates after a split are an acknowledged open
// boundary: splitting a leaf that is not the root is fatal, matching the
// original tutorial's own unimplemented boundary, rather than silently
// mishandled. Cursor iteration likewise stays within one leaf: Advance does
// not follow NextLeaf to the sibling leaf.
package table

import (
	"sort"

	"github.com/sirupsen/logrus"

	"vqlite/dberr"
	"vqlite/internal/vlog"
	"vqlite/pager"
)

var log = vlog.For("btree")

// rootPageNum is fixed for the life of a database file: page 0 is always
// the tree root, though its contents may be replaced wholesale by root
// promotion.
const rootPageNum uint32 = 0

// Find descends from the root to the leaf cell whose key is the smallest
// one >= key (the lower-bound search spec.md requires), returning a
// cursor positioned there. Callers distinguish an exact hit from a miss by
// comparing the key at the returned position.
func (t *Table) Find(key uint32) (*Cursor, error) {
	return t.findFrom(rootPageNum, key)
}

func (t *Table) findFrom(pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	switch NodeKindOf(page) {
	case NodeLeaf:
		return t.leafFind(pageNum, page, key)
	case NodeInternal:
		return t.internalFind(pageNum, page, key)
	default:
		return nil, dberr.NewFatal("table: unknown node type on page")
	}
}

func (t *Table) leafFind(pageNum uint32, page *pager.Page, key uint32) (*Cursor, error) {
	leaf := AsLeaf(page)
	numCells := leaf.NumCells()

	cellNum := uint32(sort.Search(int(numCells), func(i int) bool {
		return leaf.Key(uint32(i)) >= key
	}))

	return &Cursor{table: t, PageNum: pageNum, CellNum: cellNum}, nil
}

func (t *Table) internalFind(pageNum uint32, page *pager.Page, key uint32) (*Cursor, error) {
	node := AsInternal(page)
	numKeys := node.NumKeys()

	childIdx := uint32(sort.Search(int(numKeys), func(i int) bool {
		return node.Key(uint32(i)) >= key
	}))
	childPageNum := node.Child(childIdx)

	// Recurse into the resolved child, not this node — recursing on
	// pageNum here would spin forever on an internal child (see the
	// corrected recursion in the design notes).
	return t.findFrom(childPageNum, key)
}

// Insert adds row under key, splitting the target leaf (and promoting a
// new root, if the leaf being split is the root) when it is full.
// Duplicate keys are rejected without mutating the tree.
func (t *Table) Insert(row Row) error {
	cursor, err := t.Find(row.ID)
	if err != nil {
		return err
	}

	page, err := t.pager.GetPage(cursor.PageNum)
	if err != nil {
		return err
	}
	leaf := AsLeaf(page)
	if cursor.CellNum < leaf.NumCells() && leaf.Key(cursor.CellNum) == row.ID {
		return dberr.DuplicateKey
	}

	return t.leafInsert(cursor, row.ID, row)
}

// leafInsert writes key+row at cursor's position, shifting existing cells
// right to make room, or splits the leaf if it is already full.
func (t *Table) leafInsert(cursor *Cursor, key uint32, row Row) error {
	page, err := t.pager.GetPage(cursor.PageNum)
	if err != nil {
		return err
	}
	leaf := AsLeaf(page)
	numCells := leaf.NumCells()

	if numCells < LeafNodeMaxCells {
		for i := numCells; i > cursor.CellNum; i-- {
			copy(leaf.Cell(i), leaf.Cell(i-1))
		}
		leaf.SetNumCells(numCells + 1)
		leaf.SetKey(cursor.CellNum, key)
		SerializeRow(row, leaf.Value(cursor.CellNum))
		return nil
	}

	return t.leafSplitAndInsert(cursor, key, row)
}

// leafSplitAndInsert treats the full leaf's existing cells plus the new
// incoming one as a virtual sequence of LeafNodeMaxCells+1 cells and
// redistributes them LeftSplitCount/RightSplitCount between the old leaf
// and a freshly allocated right sibling, walking from the end backwards so
// each cell is moved at most once.
func (t *Table) leafSplitAndInsert(cursor *Cursor, key uint32, row Row) error {
	oldPage, err := t.pager.GetPage(cursor.PageNum)
	if err != nil {
		return err
	}
	oldLeaf := AsLeaf(oldPage)

	newPageNum, err := t.pager.AllocatePage()
	if err != nil {
		return err
	}
	newPage, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	newLeaf := AsLeaf(newPage)
	newLeaf.InitializeLeaf()
	newLeaf.SetNextLeaf(oldLeaf.NextLeaf())
	oldLeaf.SetNextLeaf(newPageNum)

	var rowBuf [RowSize]byte
	SerializeRow(row, rowBuf[:])

	for i := int(LeafNodeMaxCells); i >= 0; i-- {
		idx := uint32(i)
		var dest LeafView
		if idx >= LeftSplitCount {
			dest = newLeaf
		} else {
			dest = oldLeaf
		}
		destIdx := idx % LeftSplitCount

		switch {
		case idx == cursor.CellNum:
			dest.SetKey(destIdx, key)
			copy(dest.Value(destIdx), rowBuf[:])
		case idx > cursor.CellNum:
			copy(dest.Cell(destIdx), oldLeaf.Cell(idx-1))
		default:
			copy(dest.Cell(destIdx), oldLeaf.Cell(idx))
		}
	}

	oldLeaf.SetNumCells(LeftSplitCount)
	newLeaf.SetNumCells(RightSplitCount)

	log.WithFields(logrus.Fields{
		"old_page": oldPage.PageNum,
		"new_page": newPageNum,
	}).Info("split leaf node")

	if oldLeaf.IsRoot() {
		return t.createNewRoot(newPageNum)
	}

	return dberr.NewFatal("Need to implement updating parent after split")
}

// createNewRoot copies the current root's bytes to a freshly allocated
// page (the left child), demotes that copy from root status, and
// reinitializes page 0 as a 2-child internal root: left child is the old
// root's contents, right child is the leaf created by the split that
// triggered promotion.
func (t *Table) createNewRoot(rightChildPageNum uint32) error {
	rootPage, err := t.pager.GetPage(rootPageNum)
	if err != nil {
		return err
	}
	rightChildPage, err := t.pager.GetPage(rightChildPageNum)
	if err != nil {
		return err
	}
	rightChild := AsLeaf(rightChildPage)

	leftChildPageNum, err := t.pager.AllocatePage()
	if err != nil {
		return err
	}
	leftChildPage, err := t.pager.GetPage(leftChildPageNum)
	if err != nil {
		return err
	}

	*leftChildPage = *rootPage
	leftChildPage.PageNum = leftChildPageNum
	leftChild := AsLeaf(leftChildPage)
	leftChild.SetIsRoot(false)
	leftChild.SetParentPointer(rootPageNum)

	rightChild.SetParentPointer(rootPageNum)

	root := AsInternal(rootPage)
	root.InitializeInternal()
	root.SetIsRoot(true)
	root.SetNumKeys(1)
	root.SetChild(0, leftChildPageNum)
	root.SetKey(0, leftChild.MaxKey())
	root.SetRightChild(rightChildPageNum)

	log.WithFields(logrus.Fields{
		"left_child":  leftChildPageNum,
		"right_child": rightChildPageNum,
	}).Info("promoted new root")

	return nil
}
