package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func runSearches() {
	fs := flag.NewFlagSet("searches", flag.ExitOnError)
	remove := fs.String("rm", "", "Delete the named saved search")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	if *remove != "" {
		if err := st.DeleteSavedSearches([]string{*remove}); err != nil {
			log.Fatalf("delete saved search: %v", err)
		}
		fmt.Printf("deleted saved search %q\n", *remove)
		return
	}

	searches, err := st.SavedSearches()
	if err != nil {
		log.Fatalf("list saved searches: %v", err)
	}
	if len(searches) == 0 {
		fmt.Println("no saved searches")
		return
	}

	for _, ss := range searches {
		flags := ""
		if ss.Mode == "regex" {
			flags += " [regex]"
		}
		if ss.CaseSensitive {
			flags += " [case]"
		}
		fmt.Printf("%-24s %s%s\n", ss.Name, ss.Find, flags)
	}
}
