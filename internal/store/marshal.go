package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/siqr/internal/model"
)

// marshalParams converts parameters to JSON TEXT for storage.
func marshalParams(p model.Parameters) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func unmarshalParams(data string) (model.Parameters, error) {
	var p model.Parameters
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return p, fmt.Errorf("unmarshal params: %w", err)
	}
	return p, nil
}

// Seeds are stored as decimal TEXT: SQLite integers are signed 64-bit.
func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

func parseSeed(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse seed %q: %w", s, err)
	}
	return v, nil
}
