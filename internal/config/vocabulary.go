package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/audit"
	"github.com/cmlabs-hris/timesheet-auditor/internal/fixtures"
	"gopkg.in/yaml.v3"
)

// LoadVocabulary returns the built-in justification vocabulary extended with
// the terms of the YAML file at path. An empty path yields the defaults.
//
//	full:
//	  TRAINING: [TREINAMENTO, CURSO]
//	partial:
//	  FORGOTTEN_PUNCH: [ESQUECI]
func LoadVocabulary(path string) (audit.Vocabulary, error) {
	defaults := fixtures.GetDefaultVocabulary()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return audit.Vocabulary{}, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	extra, err := ParseVocabulary(data)
	if err != nil {
		return audit.Vocabulary{}, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}

	return defaults.Merge(extra), nil
}

// ParseVocabulary decodes and normalizes a YAML vocabulary document.
// Unknown top-level keys are rejected so typos do not silently drop terms.
func ParseVocabulary(data []byte) (audit.Vocabulary, error) {
	var v audit.Vocabulary

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return audit.Vocabulary{}, err
	}

	return v.Normalize(), nil
}
