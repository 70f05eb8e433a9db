package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	clearField := fs.String("clear", "", "Clear the named field's history")
	fs.Parse(os.Args[1:])

	st := openDB()
	defer st.Close()

	if *clearField != "" {
		if err := st.ClearHistory(*clearField); err != nil {
			log.Fatalf("clear history: %v", err)
		}
		fmt.Printf("cleared history for %q\n", *clearField)
		return
	}

	// With a field argument, show its entries; otherwise list fields.
	if fs.NArg() > 0 {
		field := fs.Arg(0)
		values, err := st.GetHistory(field)
		if err != nil {
			log.Fatalf("get history: %v", err)
		}
		if len(values) == 0 {
			fmt.Printf("no history for %q\n", field)
			return
		}
		for i, v := range values {
			fmt.Printf("%3d  %s\n", i+1, v)
		}
		return
	}

	fields, err := st.Fields()
	if err != nil {
		log.Fatalf("list fields: %v", err)
	}
	if len(fields) == 0 {
		fmt.Println("no history stored")
		return
	}
	for _, f := range fields {
		values, _ := st.GetHistory(f)
		fmt.Printf("%-20s %d entries\n", f, len(values))
	}
}
