// Package reader loads JSON and JSON Lines files.
//
// It reads the whole file into memory and returns the parsed value(s) for
// flattening. A file is treated as a single JSON document first; if that
// parse fails it is treated as JSON Lines, one value per non-blank line.
package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/encoding/json"
)

// ParseError reports input that is neither a valid JSON document nor valid
// JSON Lines.
type ParseError struct {
	Path string
	Line int // 1-based line of the failing JSONL value, 0 for whole-document failures
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadFile parses the file at path and returns its top-level value.
//
// A JSON Lines file yields a []interface{} with one element per line.
// Returns a *ParseError if the content is not parseable either way, or a
// wrapped OS error if the file cannot be read.
func ReadFile(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var doc interface{}
	docErr := json.Unmarshal(data, &doc)
	if docErr == nil {
		return doc, nil
	}

	// JSON Lines fallback: one value per non-blank line.
	var records []interface{}
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec interface{}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Err: err}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		// Nothing parsed either way: report the document error.
		return nil, &ParseError{Path: path, Err: docErr}
	}
	return records, nil
}
