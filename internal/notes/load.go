package notes

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	notesSchemaFile   = "notes.schema.json"
	catalogSchemaFile = "catalog.schema.json"
)

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

// LoadEntries reads a notes document (YAML or JSON) and returns its entries.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes file: %w", err)
	}
	return ParseEntries(data, filepath.Ext(path))
}

// ParseEntries decodes and checks a notes document. ext selects the format
// (".json"; anything else is read as YAML).
func ParseEntries(data []byte, ext string) ([]Entry, error) {
	raw, err := decode(data, ext, notesSchemaFile)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode notes document: %w", err)
	}

	seen := make(map[string]bool, len(doc.Entries))
	for _, e := range doc.Entries {
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: duplicate entry id %q", ErrInvalidDocument, e.ID)
		}
		seen[e.ID] = true
	}
	return doc.Entries, nil
}

// LoadCatalog reads a field catalog (YAML or JSON).
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog decodes and checks a field catalog.
func ParseCatalog(data []byte, ext string) (*Catalog, error) {
	raw, err := decode(data, ext, catalogSchemaFile)
	if err != nil {
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &cat, nil
}

// decode normalizes YAML or JSON input to JSON and validates it against the
// named embedded schema.
func decode(data []byte, ext, schemaFile string) (json.RawMessage, error) {
	var doc any
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	// Round-trip through JSON so YAML scalars get JSON types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}

	schema, err := loadSchema(schemaFile)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(normalized); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return raw, nil
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[string]*jsonschema.Schema)
		for _, file := range []string{notesSchemaFile, catalogSchemaFile} {
			data, err := schemaFS.ReadFile("schemas/" + file)
			if err != nil {
				schemasErr = fmt.Errorf("failed to read schema %s: %w", file, err)
				return
			}
			compiler := jsonschema.NewCompiler()
			if err := compiler.AddResource(file, bytes.NewReader(data)); err != nil {
				schemasErr = fmt.Errorf("failed to load schema %s: %w", file, err)
				return
			}
			schema, err := compiler.Compile(file)
			if err != nil {
				schemasErr = fmt.Errorf("failed to compile schema %s: %w", file, err)
				return
			}
			schemas[file] = schema
		}
	})
	if schemasErr != nil {
		return nil, schemasErr
	}
	return schemas[name], nil
}
