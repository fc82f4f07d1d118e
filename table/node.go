package table

import (
	"encoding/binary"

	"vqlite/pager"
)

// NodeKind is the tagged-union discriminant stored in every page's first
// byte: which of the two node shapes (leaf or internal) its bytes should
// be interpreted as.
type NodeKind uint8

const (
	NodeInternal NodeKind = 0
	NodeLeaf     NodeKind = 1
)

// commonHeader reads and writes the 6-byte header shared by every node:
// node_type, is_root, parent_page_num. It is embedded in LeafView and
// InternalView rather than duplicated across them.
type commonHeader struct {
	page *pager.Page
}

func (h commonHeader) NodeType() NodeKind {
	return NodeKind(h.page.Data[nodeTypeOffset])
}

func (h commonHeader) setNodeType(k NodeKind) {
	h.page.Data[nodeTypeOffset] = byte(k)
}

func (h commonHeader) IsRoot() bool {
	return h.page.Data[isRootOffset] != 0
}

func (h commonHeader) SetIsRoot(isRoot bool) {
	if isRoot {
		h.page.Data[isRootOffset] = 1
	} else {
		h.page.Data[isRootOffset] = 0
	}
}

func (h commonHeader) ParentPointer() uint32 {
	return binary.LittleEndian.Uint32(h.page.Data[parentPointerOffset : parentPointerOffset+parentPointerSize])
}

func (h commonHeader) SetParentPointer(parent uint32) {
	binary.LittleEndian.PutUint32(h.page.Data[parentPointerOffset:parentPointerOffset+parentPointerSize], parent)
}

// NodeKindOf inspects the first byte of page without committing to either
// typed view — used by code descending the tree that doesn't yet know
// whether the next page is a leaf or an internal node.
func NodeKindOf(page *pager.Page) NodeKind {
	return NodeKind(page.Data[nodeTypeOffset])
}

// LeafView is a typed accessor over a page known to hold a leaf node.
type LeafView struct {
	commonHeader
}

// AsLeaf wraps page as a LeafView. It does not check page's node_type;
// callers are expected to have checked NodeKindOf first.
func AsLeaf(page *pager.Page) LeafView {
	return LeafView{commonHeader{page}}
}

// InitializeLeaf resets page to an empty, non-root leaf node.
func (l LeafView) InitializeLeaf() {
	l.setNodeType(NodeLeaf)
	l.SetIsRoot(false)
	l.SetNumCells(0)
	l.SetNextLeaf(0)
}

func (l LeafView) NumCells() uint32 {
	return binary.LittleEndian.Uint32(l.page.Data[leafNodeNumCellsOffset : leafNodeNumCellsOffset+leafNodeNumCellsSize])
}

func (l LeafView) SetNumCells(n uint32) {
	binary.LittleEndian.PutUint32(l.page.Data[leafNodeNumCellsOffset:leafNodeNumCellsOffset+leafNodeNumCellsSize], n)
}

// NextLeaf is the page number of the next sibling leaf, 0 if none. It is
// reserved for range scans that cross leaf boundaries; cursor_advance does
// not currently follow it (see the B+tree package doc comment).
func (l LeafView) NextLeaf() uint32 {
	return binary.LittleEndian.Uint32(l.page.Data[leafNodeNextLeafOffset : leafNodeNextLeafOffset+leafNodeNextLeafSize])
}

func (l LeafView) SetNextLeaf(pageNum uint32) {
	binary.LittleEndian.PutUint32(l.page.Data[leafNodeNextLeafOffset:leafNodeNextLeafOffset+leafNodeNextLeafSize], pageNum)
}

func (l LeafView) cellOffset(cellNum uint32) uint32 {
	return leafNodeHeaderSize + cellNum*leafNodeCellSize
}

// Cell returns the full key+value bytes of cellNum.
func (l LeafView) Cell(cellNum uint32) []byte {
	off := l.cellOffset(cellNum)
	return l.page.Data[off : off+leafNodeCellSize]
}

func (l LeafView) Key(cellNum uint32) uint32 {
	return binary.LittleEndian.Uint32(l.Cell(cellNum)[leafNodeKeyOffset : leafNodeKeyOffset+leafNodeKeySize])
}

func (l LeafView) SetKey(cellNum uint32, key uint32) {
	binary.LittleEndian.PutUint32(l.Cell(cellNum)[leafNodeKeyOffset:leafNodeKeyOffset+leafNodeKeySize], key)
}

// Value returns the value portion (a serialized Row) of cellNum.
func (l LeafView) Value(cellNum uint32) []byte {
	cell := l.Cell(cellNum)
	return cell[leafNodeKeySize : leafNodeKeySize+leafNodeValueSize]
}

// MaxKey is the key of the last cell — the maximum key in this leaf.
func (l LeafView) MaxKey() uint32 {
	return l.Key(l.NumCells() - 1)
}

// InternalView is a typed accessor over a page known to hold an internal
// node. Key i is the maximum key present in the subtree rooted at child i;
// the subtree under RightChild holds everything greater than the last key.
type InternalView struct {
	commonHeader
}

// AsInternal wraps page as an InternalView. Like AsLeaf, it trusts the
// caller to have checked NodeKindOf already.
func AsInternal(page *pager.Page) InternalView {
	return InternalView{commonHeader{page}}
}

// InitializeInternal resets page to an empty, non-root internal node.
func (n InternalView) InitializeInternal() {
	n.setNodeType(NodeInternal)
	n.SetIsRoot(false)
	n.SetNumKeys(0)
}

func (n InternalView) NumKeys() uint32 {
	return binary.LittleEndian.Uint32(n.page.Data[internalNodeNumKeysOffset : internalNodeNumKeysOffset+internalNodeNumKeysSize])
}

func (n InternalView) SetNumKeys(k uint32) {
	binary.LittleEndian.PutUint32(n.page.Data[internalNodeNumKeysOffset:internalNodeNumKeysOffset+internalNodeNumKeysSize], k)
}

func (n InternalView) RightChild() uint32 {
	return binary.LittleEndian.Uint32(n.page.Data[internalNodeRightChildOffset : internalNodeRightChildOffset+internalNodeRightChildSize])
}

func (n InternalView) SetRightChild(pageNum uint32) {
	binary.LittleEndian.PutUint32(n.page.Data[internalNodeRightChildOffset:internalNodeRightChildOffset+internalNodeRightChildSize], pageNum)
}

func (n InternalView) cellOffset(cellNum uint32) uint32 {
	return internalNodeHeaderSize + cellNum*internalNodeCellSize
}

func (n InternalView) Key(cellNum uint32) uint32 {
	off := n.cellOffset(cellNum)
	return binary.LittleEndian.Uint32(n.page.Data[off+internalNodeKeyOffset : off+internalNodeKeyOffset+internalNodeKeySize])
}

func (n InternalView) SetKey(cellNum uint32, key uint32) {
	off := n.cellOffset(cellNum)
	binary.LittleEndian.PutUint32(n.page.Data[off+internalNodeKeyOffset:off+internalNodeKeyOffset+internalNodeKeySize], key)
}

func (n InternalView) childAt(cellNum uint32) uint32 {
	off := n.cellOffset(cellNum)
	return binary.LittleEndian.Uint32(n.page.Data[off+internalNodeChildOffset : off+internalNodeChildOffset+internalNodeChildSize])
}

func (n InternalView) setChildAt(cellNum uint32, pageNum uint32) {
	off := n.cellOffset(cellNum)
	binary.LittleEndian.PutUint32(n.page.Data[off+internalNodeChildOffset:off+internalNodeChildOffset+internalNodeChildSize], pageNum)
}

// Child returns the page number of the i-th child: RightChild when i ==
// NumKeys, the cell's child pointer otherwise. i > NumKeys is a
// programmer error.
func (n InternalView) Child(i uint32) uint32 {
	numKeys := n.NumKeys()
	if i > numKeys {
		panic("table: internal node child index out of bounds")
	}
	if i == numKeys {
		return n.RightChild()
	}
	return n.childAt(i)
}

// SetChild sets the i-th child pointer. i must be < NumKeys; use
// SetRightChild for the rightmost pointer.
func (n InternalView) SetChild(i uint32, pageNum uint32) {
	n.setChildAt(i, pageNum)
}

// SetCell writes both the child pointer and key of cellNum in one call.
func (n InternalView) SetCell(cellNum uint32, childPageNum uint32, key uint32) {
	n.setChildAt(cellNum, childPageNum)
	n.SetKey(cellNum, key)
}

// MaxKey is the key at the last occupied cell: the maximum key under child
// NumKeys-1. Keys under RightChild are larger and are not reflected here.
func (n InternalView) MaxKey() uint32 {
	return n.Key(n.NumKeys() - 1)
}
