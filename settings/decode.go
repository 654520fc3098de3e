package settings

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the section path is not found in the document.
var ErrPathNotFound = errors.New("path not found")

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// Decoder decodes a document, or the section at path, into target.
// The path uses colon (:) as separator. Empty path decodes the whole document.
type Decoder interface {
	Decode(data []byte, target any, path string) error
}

// DecoderFor picks a decoder from the file extension.
func DecoderFor(filename string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAMLDecoder{}, nil
	case ".toml":
		return TOMLDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

// YAMLDecoder decodes YAML using goccy/go-yaml PathString for section navigation.
type YAMLDecoder struct{}

// Decode implements Decoder.
func (YAMLDecoder) Decode(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "services:bluecommit" -> "$.services.bluecommit"
func convertToYAMLPath(path string) string {
	return "$." + strings.Join(strings.Split(path, ":"), ".")
}

// TOMLDecoder decodes TOML using pelletier/go-toml/v2. Sections are selected
// by walking the generic document and re-encoding the selected table.
type TOMLDecoder struct{}

// Decode implements Decoder.
func (TOMLDecoder) Decode(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := toml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	var document map[string]any

	err := toml.Unmarshal(data, &document)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	var node any = document

	for _, key := range strings.Split(path, ":") {
		table, isTable := node.(map[string]any)
		if !isTable {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		child, found := table[key]
		if !found {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		node = child
	}

	table, isTable := node.(map[string]any)
	if !isTable {
		return fmt.Errorf("reading path %q: not a table", path)
	}

	section, err := toml.Marshal(table)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = toml.Unmarshal(section, target)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}
