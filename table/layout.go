package table

import "vqlite/pager"

// Row field widths. USERNAME_SIZE/EMAIL_SIZE are the on-disk buffer sizes —
// one byte larger than the maximum content length, to hold the trailing
// NUL terminator, matching the fixed-width layout the original tutorial's
// Row struct uses (char username[COLUMN_USERNAME_SIZE+1]).
const (
	UsernameMaxLen = 32
	EmailMaxLen    = 255

	idSize       = 4
	usernameSize = UsernameMaxLen + 1
	emailSize    = EmailMaxLen + 1

	idOffset       = 0
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + usernameSize

	// RowSize is the total serialized width of a Row.
	RowSize = idSize + usernameSize + emailSize
)

// Common node header: node_type(1) | is_root(1) | parent_page_num(4).
const (
	nodeTypeSize   = 1
	nodeTypeOffset = 0

	isRootSize   = 1
	isRootOffset = nodeTypeSize

	parentPointerSize   = 4
	parentPointerOffset = isRootOffset + isRootSize

	commonNodeHeaderSize = nodeTypeSize + isRootSize + parentPointerSize
)

// Leaf node layout: common header, then num_cells(4), next_leaf(4), then a
// packed array of key(4)+value(RowSize) cells.
const (
	leafNodeNumCellsSize   = 4
	leafNodeNumCellsOffset = commonNodeHeaderSize

	leafNodeNextLeafSize   = 4
	leafNodeNextLeafOffset = leafNodeNumCellsOffset + leafNodeNumCellsSize

	leafNodeHeaderSize = leafNodeNextLeafOffset + leafNodeNextLeafSize

	leafNodeKeySize   = 4
	leafNodeKeyOffset = 0
	leafNodeValueSize = RowSize
	leafNodeCellSize  = leafNodeKeySize + leafNodeValueSize

	leafNodeSpaceForCells = pager.PageSize - leafNodeHeaderSize
)

// LeafNodeMaxCells is the most cells a single leaf page can hold.
const LeafNodeMaxCells = leafNodeSpaceForCells / leafNodeCellSize

// RightSplitCount and LeftSplitCount are how a full leaf's MaxCells+1
// virtual cells (its existing cells plus the one being inserted) are
// divided between the left (old) and right (new) leaf on a split.
const (
	RightSplitCount = (LeafNodeMaxCells + 1 + 1) / 2 // ceil((max+1)/2)
	LeftSplitCount  = (LeafNodeMaxCells + 1) - RightSplitCount
)

// Internal node layout: common header, then num_keys(4), right_child(4),
// then a packed array of child_page_num(4)+key(4) cells.
const (
	internalNodeNumKeysSize   = 4
	internalNodeNumKeysOffset = commonNodeHeaderSize

	internalNodeRightChildSize   = 4
	internalNodeRightChildOffset = internalNodeNumKeysOffset + internalNodeNumKeysSize

	internalNodeHeaderSize = internalNodeRightChildOffset + internalNodeRightChildSize

	internalNodeChildSize   = 4
	internalNodeChildOffset = 0
	internalNodeKeySize     = 4
	internalNodeKeyOffset   = internalNodeChildSize
	internalNodeCellSize    = internalNodeChildSize + internalNodeKeySize

	internalNodeSpaceForCells = pager.PageSize - internalNodeHeaderSize
)

// InternalNodeMaxCells is the most keys a single internal page can hold.
// The B+tree core never needs to split an internal node (leaf splits and
// the initial root promotion create exactly one); the bound is only
// reported by the .constants diagnostic dump.
const InternalNodeMaxCells = internalNodeSpaceForCells / internalNodeCellSize
