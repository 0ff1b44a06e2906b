// Package records reads scoring batches from disk and writes their results.
package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spigell/hr-matcher/internal/profile"
)

// LoadRows reads a JSON array of objects or a JSON lines file. Blank lines are skipped.
func LoadRows(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []map[string]any{}, nil
	}

	if trimmed[0] == '[' {
		var rows []map[string]any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return rows, nil
	}

	return decodeLines(bytes.NewReader(trimmed), path)
}

func decodeLines(r io.Reader, path string) ([]map[string]any, error) {
	rows := make([]map[string]any, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		var row map[string]any
		if err := json.Unmarshal(text, &row); err != nil {
			return nil, fmt.Errorf("decode %s line %d: %w", path, line, err)
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadPairs reads curated rows from path and turns every one of them into a MatchPair.
func LoadPairs(path string) ([]profile.MatchPair, error) {
	rows, err := LoadRows(path)
	if err != nil {
		return nil, err
	}

	pairs := make([]profile.MatchPair, 0, len(rows))
	for i, row := range rows {
		pair, err := profile.FromRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// LoadPayload reads one structured scoring request.
func LoadPayload(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if payload == nil {
		return nil, errors.New("payload is empty")
	}
	return payload, nil
}
