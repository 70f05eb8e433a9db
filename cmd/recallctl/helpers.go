package main

import (
	"log"

	"github.com/abelbrown/recall/internal/config"
	"github.com/abelbrown/recall/internal/store"
)

// openDB opens the store at the configured path or fatals.
func openDB() *store.Store {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	st, err := store.Open(cfg.ResolveDBPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}
