// Command vqlite is the interactive shell binary: open a database file
// and start a REPL against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"vqlite/internal/vlog"
	"vqlite/pager"
	"vqlite/shell"
)

func main() {
	var (
		dbPath    = pflag.StringP("db", "d", "", "path to the database file")
		pageCache = pflag.IntP("page-cache", "p", pager.MaxPages, "page cache size; the pager always keeps its fixed ceiling of resident pages, and larger values are reported")
		verbose   = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	path := *dbPath
	if path == "" {
		if args := pflag.Args(); len(args) > 0 {
			path = args[0]
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Must supply a database filename.")
		os.Exit(1)
	}
	if *pageCache > pager.MaxPages {
		fmt.Fprintf(os.Stderr, "--page-cache %d exceeds the engine's fixed ceiling of %d; using %d.\n", *pageCache, pager.MaxPages, pager.MaxPages)
	}

	vlog.SetVerbose(*verbose)

	s, err := shell.New(path)
	if err != nil {
		reportAndExit(err)
	}
	defer s.Close()

	if err := s.Run(); err != nil {
		reportAndExit(err)
	}
}

// reportAndExit is where engine errors end the process: apart from the
// missing-filename check in main, every fatal condition is carried up to
// here as a *dberr.Fatal error before os.Exit is called.
func reportAndExit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
