package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vqlite/table"
)

func TestParseInsertValid(t *testing.T) {
	stmt, err := Parse("insert 1 alice alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatementInsert, stmt.Type)
	assert.Equal(t, table.Row{ID: 1, Username: "alice", Email: "alice@example.com"}, stmt.RowToInsert)
}

func TestParseSelect(t *testing.T) {
	stmt, err := Parse("select")
	require.NoError(t, err)
	assert.Equal(t, StatementSelect, stmt.Type)
}

func TestParseInsertNegativeID(t *testing.T) {
	_, err := Parse("insert -1 alice alice@example.com")
	require.Error(t, err)
	assert.Equal(t, "ID must be positive.", err.Error())
}

func TestParseInsertUsernameTooLong(t *testing.T) {
	long := strings.Repeat("a", table.UsernameMaxLen+1)
	_, err := Parse("insert 1 " + long + " alice@example.com")
	require.Error(t, err)
	assert.Equal(t, "String is too long.", err.Error())
}

func TestParseInsertEmailTooLong(t *testing.T) {
	long := strings.Repeat("a", table.EmailMaxLen+1)
	_, err := Parse("insert 1 alice " + long)
	require.Error(t, err)
	assert.Equal(t, "String is too long.", err.Error())
}

func TestParseInsertMissingFields(t *testing.T) {
	_, err := Parse("insert 1 alice")
	require.Error(t, err)
	assert.Equal(t, "Syntax error. Could not parse statement.", err.Error())
}

func TestParseUnrecognizedKeyword(t *testing.T) {
	_, err := Parse("delete 1")
	require.Error(t, err)
	assert.Equal(t, "Unrecognized keyword at start of 'delete 1'.", err.Error())
}

func TestParseMetaCommands(t *testing.T) {
	assert.Equal(t, MetaExit, ParseMetaCommand(".exit"))
	assert.Equal(t, MetaBTree, ParseMetaCommand(".btree"))
	assert.Equal(t, MetaConstants, ParseMetaCommand(".constants"))
	assert.Equal(t, MetaHelp, ParseMetaCommand(".help"))
	assert.Equal(t, MetaUnrecognized, ParseMetaCommand(".bogus"))
}

func TestIsMetaCommand(t *testing.T) {
	assert.True(t, IsMetaCommand(".exit"))
	assert.False(t, IsMetaCommand("select"))
}
