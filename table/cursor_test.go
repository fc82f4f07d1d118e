package table

import "testing"

func TestStartOnEmptyTable(t *testing.T) {
	tbl := openTestTable(t)

	cursor, err := tbl.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !cursor.EndOfTable {
		t.Fatalf("Start on empty table should set EndOfTable")
	}
}

func TestAdvancePastLastCellSetsEndOfTable(t *testing.T) {
	tbl := openTestTable(t)

	for _, id := range []uint32{1, 2, 3} {
		if err := tbl.Insert(Row{ID: id, Username: "u", Email: "u@example.com"}); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}

	cursor, err := tbl.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	count := 0
	for !cursor.EndOfTable {
		count++
		if err := cursor.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if count != 3 {
		t.Fatalf("scanned %d rows, want 3", count)
	}
}
