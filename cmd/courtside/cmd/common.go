package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/courtside/config"
	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/journal"
)

// openFeed loads a recorded game. format is "json" or "csv"; empty picks by
// file extension.
func openFeed(path, format string) (feed.Feed, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "csv":
		return feed.LoadCSV(path)
	case "json", "":
		return feed.LoadJSON(path)
	default:
		return nil, fmt.Errorf("unknown feed format %q (supported: json, csv)", format)
	}
}

func loadItems(path, format string) ([]feed.Item, error) {
	f, err := openFeed(path, format)
	if err != nil {
		return nil, err
	}
	return feed.Collect(f)
}

// openJournal returns nil for type "none".
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.Dir)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
