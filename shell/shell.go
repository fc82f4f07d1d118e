// Package shell is the interactive REPL: it reads lines via readline,
// dispatches meta-commands and statements, and prints the exact protocol
// strings the engine's test suite and original tutorial both rely on.
package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"vqlite/dberr"
	"vqlite/internal/vlog"
	"vqlite/lang"
	"vqlite/table"
)

var log = vlog.For("shell")

// Shell owns the open table and the readline instance driving the
// interactive loop.
type Shell struct {
	table *table.Table
	rl    *readline.Instance
	out   io.Writer
}

// New opens path as a table and wires up a readline-backed prompt.
func New(path string) (*Shell, error) {
	tbl, err := table.Open(path)
	if err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "db > "})
	if err != nil {
		tbl.Close()
		return nil, dberr.WrapFatal(err, "Unable to start readline")
	}

	return &Shell{table: tbl, rl: rl, out: os.Stdout}, nil
}

// Close releases the readline instance and flushes the table to disk.
func (s *Shell) Close() error {
	s.rl.Close()
	return s.table.Close()
}

// Run drives the read-eval-print loop until the user types .exit or sends
// EOF (Ctrl-D). It returns nil on a clean exit; a *dberr.Fatal error
// propagates out so main can report it and exit non-zero — the shell
// itself never calls os.Exit.
func (s *Shell) Run() error {
	for {
		line, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return s.fatal(dberr.WrapFatal(err, "Error reading input"))
		}
		if line == "" {
			continue
		}

		if lang.IsMetaCommand(line) {
			done, err := s.handleMetaCommand(line)
			if err != nil {
				return s.fatal(err)
			}
			if done {
				return nil
			}
			continue
		}

		if err := s.handleStatement(line); err != nil {
			if dberr.IsFatal(err) {
				return s.fatal(err)
			}
			log.WithError(err).Debug("statement execution failed")
		}
	}
}

// fatal logs a fatal engine error at Error level before it propagates up
// to main, which is the only place that actually exits the process.
func (s *Shell) fatal(err error) error {
	log.WithError(err).Error("fatal engine error")
	return err
}

// handleMetaCommand executes a dot-command. The bool return reports
// whether the shell should stop running (true only for .exit).
func (s *Shell) handleMetaCommand(line string) (bool, error) {
	switch lang.ParseMetaCommand(line) {
	case lang.MetaExit:
		return true, nil
	case lang.MetaBTree:
		fmt.Fprintln(s.out, "Tree:")
		if err := s.table.PrintTree(s.out, table.Root(), 0); err != nil {
			return false, err
		}
		return false, nil
	case lang.MetaConstants:
		fmt.Fprintln(s.out, "Constants:")
		table.PrintConstants(s.out)
		return false, nil
	case lang.MetaHelp:
		fmt.Fprintln(s.out, "Available commands: .exit  .btree  .constants  .help")
		return false, nil
	default:
		fmt.Fprintf(s.out, "Unrecognized command '%s'.\n", line)
		return false, nil
	}
}

// handleStatement parses and executes one insert/select line, printing
// the outcome in the same wording the original tutorial's REPL does.
func (s *Shell) handleStatement(line string) error {
	stmt, err := lang.Parse(line)
	if err != nil {
		fmt.Fprintln(s.out, err.Error())
		return nil
	}

	switch stmt.Type {
	case lang.StatementInsert:
		if err := s.table.Insert(stmt.RowToInsert); err != nil {
			if err == dberr.DuplicateKey {
				fmt.Fprintln(s.out, "Error: Duplicate Key.")
				return nil
			}
			if err == dberr.TableFull {
				fmt.Fprintln(s.out, "Error: Table full.")
				return nil
			}
			return err
		}
		fmt.Fprintln(s.out, "Executed.")
	case lang.StatementSelect:
		if err := s.executeSelect(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Executed.")
	}
	return nil
}

// executeSelect scans from the start of the table and prints each row as
// "(id, username, email)", matching the original tutorial's print_row and
// every worked scenario in spec.md §8.
func (s *Shell) executeSelect() error {
	cursor, err := s.table.Start()
	if err != nil {
		return err
	}

	for !cursor.EndOfTable {
		value, err := cursor.Value()
		if err != nil {
			return err
		}
		row := table.DeserializeRow(value)
		fmt.Fprintf(s.out, "(%d, %s, %s)\n", row.ID, row.Username, row.Email)
		if err := cursor.Advance(); err != nil {
			return err
		}
	}

	return nil
}
