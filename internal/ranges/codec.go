package ranges

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
)

// ExportVersion is written into every exported document.
const ExportVersion = "1.0"

// Format selects the range file encoding.
type Format string

// Supported encodings.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension, defaulting to JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Document is the import/export envelope.
type Document struct {
	Version    string                       `json:"version" yaml:"version"`
	ExportDate string                       `json:"exportDate" yaml:"exportDate"`
	Ranges     map[string]map[string]string `json:"ranges" yaml:"ranges"`
}

// Encode writes set as an export document.
func Encode(set Set, format Format, now time.Time) ([]byte, error) {
	doc := Document{
		Version:    ExportVersion,
		ExportDate: now.UTC().Format(time.RFC3339),
		Ranges:     toRaw(set),
	}
	switch format {
	case YAML:
		return yaml.Marshal(doc)
	default:
		return json.MarshalIndent(doc, "", "  ")
	}
}

// Decode reads either the wrapped document or a bare
// {matchupKey: {hand: action}} map. Any invalid key, hand or action rejects
// the whole input.
func Decode(data []byte, format Format) (Set, error) {
	unmarshal := json.Unmarshal
	if format == YAML {
		unmarshal = yaml.Unmarshal
	}
	var doc Document
	if err := unmarshal(data, &doc); err == nil && doc.Ranges != nil {
		return fromRaw(doc.Ranges)
	}
	var bare map[string]map[string]string
	if err := unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("decode ranges: %w", err)
	}
	if bare == nil {
		return nil, errors.New("decode ranges: empty document")
	}
	return fromRaw(bare)
}

// ReadFile decodes a range file, choosing the format by extension.
func ReadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ranges: %w", err)
	}
	set, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// WriteFile exports set to path, choosing the format by extension.
func WriteFile(path string, set Set, now time.Time) error {
	data, err := Encode(set, FormatFor(path), now)
	if err != nil {
		return fmt.Errorf("encode ranges: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write ranges: %w", err)
	}
	return nil
}

// LoadDefaults returns the default charts from path, or the embedded ones
// when path is empty.
func LoadDefaults(path string) (Set, error) {
	if path == "" {
		set, err := Decode(embeddedDefaults, JSON)
		if err != nil {
			return nil, fmt.Errorf("embedded defaults: %w", err)
		}
		return set, nil
	}
	return ReadFile(path)
}

func fromRaw(raw map[string]map[string]string) (Set, error) {
	set := make(Set, len(raw))
	for key, entries := range raw {
		if _, _, err := model.ParseMatchupKey(key); err != nil {
			return nil, err
		}
		r := make(Range, len(entries))
		for h, a := range entries {
			if !hand.Valid(model.Hand(h)) {
				return nil, fmt.Errorf("%s: invalid hand %q", key, h)
			}
			action, ok := model.ParseAction(a)
			if !ok {
				return nil, fmt.Errorf("%s: %s: invalid action %q", key, h, a)
			}
			r[model.Hand(h)] = action
		}
		set[key] = r
	}
	return set, nil
}

func toRaw(set Set) map[string]map[string]string {
	raw := make(map[string]map[string]string, len(set))
	for key, r := range set {
		entries := make(map[string]string, len(r))
		for h, a := range r {
			entries[string(h)] = string(a)
		}
		raw[key] = entries
	}
	return raw
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
