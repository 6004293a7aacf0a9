// Package config reads and writes sparse loan parameter documents in
// JSON, YAML or TOML.
//
// Documents are decoded to a generic map first and then mapped onto
// models.Params through their JSON field names, so every format accepts
// the same keys (interest_rate, principal, pay_every, data, ...).
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mcclellann/loanengine/pkg/format"
	"github.com/mcclellann/loanengine/pkg/models"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a parameter document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// ErrUnsupportedFormat is returned for a Format outside the known set.
var ErrUnsupportedFormat = errors.New("unsupported format")

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// FormatFromExt picks the format from the extension of name. Names
// without a known extension are read as JSON.
func FormatFromExt(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// DecodeParams parses a parameter document.
func DecodeParams(content []byte, f Format) (models.Params, error) {
	var p models.Params

	raw, err := parseContent(content, f)
	if err != nil {
		return p, err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return p, fmt.Errorf("failed to normalize %s document: %w", f, err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("invalid loan parameters in %s document: %w", f, err)
	}
	return p, nil
}

// DecodeLoan parses a parameter document and builds the loan it describes.
func DecodeLoan(content []byte, f Format) (models.Loan, error) {
	p, err := DecodeParams(content, f)
	if err != nil {
		return models.Loan{}, err
	}
	return models.New(p), nil
}

// EncodeParams writes p as a document. Absent fields are left out.
func EncodeParams(p models.Params, f Format) ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode loan parameters: %w", err)
	}
	if f == FormatJSON {
		return b, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to encode loan parameters: %w", err)
	}

	switch f {
	case FormatYAML:
		out, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml document: %w", err)
		}
		return out, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
			return nil, fmt.Errorf("failed to encode toml document: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// EncodeLoan writes the smallest document describing l.
func EncodeLoan(l models.Loan, f Format) ([]byte, error) {
	return EncodeParams(format.Minimal(l), f)
}

func parseContent(content []byte, f Format) (map[string]any, error) {
	data := map[string]any{}

	switch f {
	case FormatJSON:
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("json parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return data, nil
}
