package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a JSON array of event records.
func ReadJSON(r io.Reader) ([]Item, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	items := make([]Item, len(recs))
	for i, rec := range recs {
		items[i] = rec.Item()
	}
	return items, nil
}

// LoadJSON reads a recorded game from path.
func LoadJSON(path string) (*SliceFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewSliceFeed(items), nil
}
