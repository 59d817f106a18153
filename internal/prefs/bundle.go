package prefs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Bundle is the export format for favorites and history.
type Bundle struct {
	Favorites []Favorite     `json:"favorites"`
	History   []HistoryEntry `json:"history"`
}

const bundleSchema = `{
  "type": "object",
  "properties": {
    "favorites": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "framework", "features", "timestamp"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "framework": {"type": "string", "minLength": 1},
          "features": {"type": "array", "items": {"type": "string"}},
          "timestamp": {"type": "integer"}
        }
      }
    },
    "history": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "command", "timestamp", "framework", "features", "projectName"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "command": {"type": "string", "minLength": 1},
          "timestamp": {"type": "integer"},
          "framework": {"type": "string", "minLength": 1},
          "features": {"type": "array", "items": {"type": "string"}},
          "projectName": {"type": "string"}
        }
      }
    }
  },
  "additionalProperties": false
}`

// ValidationError lists every schema violation found in an import.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid import: " + strings.Join(e.Errors, "; ")
}

// Export snapshots both sequences.
func Export(f *Favorites, h *History) Bundle {
	b := Bundle{Favorites: f.List(), History: h.List()}
	if b.Favorites == nil {
		b.Favorites = []Favorite{}
	}
	if b.History == nil {
		b.History = []HistoryEntry{}
	}
	return b
}

// ImportResult counts the entries an import added.
type ImportResult struct {
	Favorites int `json:"favorites"`
	History   int `json:"history"`
}

// Import validates data against the bundle schema and appends its entries.
// Entries whose id already exists are skipped.
func Import(f *Favorites, h *History, data []byte) (ImportResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(bundleSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return ImportResult{}, fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return ImportResult{}, &ValidationError{Errors: msgs}
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return ImportResult{}, fmt.Errorf("decode import: %w", err)
	}

	var res ImportResult
	if res.Favorites, err = f.seq.appendAll(b.Favorites); err != nil {
		return res, fmt.Errorf("import favorites: %w", err)
	}
	if res.History, err = h.seq.appendAll(b.History); err != nil {
		return res, fmt.Errorf("import history: %w", err)
	}
	return res, nil
}
