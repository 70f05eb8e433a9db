// Command recallctl is the maintenance CLI for recall's local database.
//
// Usage:
//
//	recallctl                       Show help
//	recallctl history               List fields with stored history
//	recallctl history <field>       Show a field's history
//	recallctl history -clear <field>  Clear a field's history
//	recallctl searches              List saved searches
//	recallctl searches -rm <name>   Delete a saved search
//	recallctl stats                 Database statistics
package main

import (
	"fmt"
	"os"
)

const usage = `recallctl — recall database maintenance CLI

Usage:
  recallctl <command> [flags]

Commands:
  history     List history fields, show or clear a field's entries
  searches    List or delete saved searches
  stats       Database statistics

Run 'recallctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "history":
		runHistory()
	case "searches":
		runSearches()
	case "stats":
		runStats()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "recallctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
