package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// FieldValues is the set of distinct values one key takes across a file.
type FieldValues struct {
	Key    string
	Values []any // sorted, null last
}

// UniqueValues reads a JSON array of objects and returns, for every key, the
// distinct values it takes. Keys are sorted by name. Values sort booleans,
// then numbers, then strings, then anything else, with null last.
func UniqueValues(r io.Reader) ([]FieldValues, error) {
	var recs []map[string]any
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	seen := map[string]map[string]any{}
	for _, rec := range recs {
		for k, v := range rec {
			set, ok := seen[k]
			if !ok {
				set = map[string]any{}
				seen[k] = set
			}
			set[fmt.Sprintf("%T:%v", v, v)] = v
		}
	}

	out := make([]FieldValues, 0, len(seen))
	for k, set := range seen {
		vals := make([]any, 0, len(set))
		for _, v := range set {
			vals = append(vals, v)
		}
		sort.Slice(vals, func(i, j int) bool { return lessValue(vals[i], vals[j]) })
		out = append(out, FieldValues{Key: k, Values: vals})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func rank(v any) int {
	switch v.(type) {
	case bool:
		return 0
	case float64:
		return 1
	case string:
		return 2
	case nil:
		return 4
	}
	return 3
}

func lessValue(a, b any) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	switch x := a.(type) {
	case bool:
		return !x && b.(bool)
	case float64:
		return x < b.(float64)
	case string:
		return x < b.(string)
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
