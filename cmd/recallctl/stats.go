package main

import (
	"flag"
	"fmt"
	"os"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	fields, err := st.Fields()
	if err != nil {
		fmt.Fprintf(os.Stderr, "recallctl: %v\n", err)
		os.Exit(1)
	}

	total := 0
	for _, f := range fields {
		values, _ := st.GetHistory(f)
		total += len(values)
	}

	searches, _ := st.SavedSearches()

	fmt.Printf("History fields:   %d\n", len(fields))
	fmt.Printf("History entries:  %d\n", total)
	fmt.Printf("Saved searches:   %d\n", len(searches))
}
