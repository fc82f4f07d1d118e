package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"vqlite/pager"
)

// PrintConstants renders the engine's fixed layout widths as a name/value
// table via tablewriter, naming the same six constants (in the same order)
// the original tutorial's print_constants() did, followed by the two
// internal-node widths — reachable from the shell's .constants meta-command.
func PrintConstants(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"constant", "value"})
	tw.SetAutoFormatHeaders(false)

	rows := []struct {
		name  string
		value int
	}{
		{"ROW_SIZE", RowSize},
		{"COMMON_NODE_HEADER_SIZE", commonNodeHeaderSize},
		{"LEAF_NODE_HEADER_SIZE", leafNodeHeaderSize},
		{"LEAF_NODE_CELL_SIZE", leafNodeCellSize},
		{"LEAF_NODE_SPACE_FOR_CELLS", leafNodeSpaceForCells},
		{"LEAF_NODE_MAX_CELLS", LeafNodeMaxCells},
		{"INTERNAL_NODE_CELL_SIZE", internalNodeCellSize},
		{"INTERNAL_NODE_MAX_CELLS", InternalNodeMaxCells},
	}
	for _, r := range rows {
		tw.Append([]string{r.name, strconv.Itoa(r.value)})
	}
	tw.Render()
}

// PrintTree writes a recursive dump of the tree rooted at pageNum to w,
// indented by depth — leaves show their cell keys, internal nodes show
// their child subtrees followed by each separating key.
func (t *Table) PrintTree(w io.Writer, pageNum uint32, depth int) error {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)

	switch NodeKindOf(page) {
	case NodeLeaf:
		leaf := AsLeaf(page)
		numCells := leaf.NumCells()
		fmt.Fprintf(w, "%sleaf (size %d)\n", indent, numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(w, "%s  - %d\n", indent, leaf.Key(i))
		}
	case NodeInternal:
		node := AsInternal(page)
		numKeys := node.NumKeys()
		fmt.Fprintf(w, "%sinternal (size %d)\n", indent, numKeys)
		for i := uint32(0); i < numKeys; i++ {
			if err := t.PrintTree(w, node.Child(i), depth+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s- key %d\n", indent, node.Key(i))
		}
		if err := t.PrintTree(w, node.RightChild(), depth+1); err != nil {
			return err
		}
	default:
		return fmt.Errorf("table: unknown node type on page %d", pageNum)
	}
	return nil
}

// Root returns the fixed root page number, for callers (the .btree
// meta-command) that want to start a PrintTree dump from the top.
func Root() uint32 {
	return rootPageNum
}

// PageSize re-exports the pager's page size for callers that report
// capacity without importing the pager package directly.
const PageSize = pager.PageSize
