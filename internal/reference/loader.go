// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxDocumentSize caps how much of a reference file is read.
const MaxDocumentSize = 4 * 1024 * 1024

// =============================================================================
// FORMATS
// =============================================================================

// Format is a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the format from the file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// =============================================================================
// LOADER
// =============================================================================

// Loader produces validated reference data.
type Loader interface {
	Load(ctx context.Context) (*Data, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*Data, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) (*Data, error) {
	return f(ctx)
}

// FileLoader reads the two documents from disk.
type FileLoader struct {
	CompanyPath string
	CatalogPath string
}

// Load reads, decodes and validates both documents.
func (l FileLoader) Load(ctx context.Context) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var company Company
	if err := decodeFile(l.CompanyPath, "company", &company); err != nil {
		return nil, err
	}
	if err := company.Validate(); err != nil {
		return nil, withPath(err, l.CompanyPath)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var catalog Catalog
	if err := decodeFile(l.CatalogPath, "catalog", &catalog); err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, withPath(err, l.CatalogPath)
	}

	return &Data{Company: company, Catalog: catalog, LoadedAt: time.Now()}, nil
}

// Paths returns the files this loader reads.
func (l FileLoader) Paths() []string {
	return []string{l.CompanyPath, l.CatalogPath}
}

// =============================================================================
// DECODING
// =============================================================================

// DecodeCompany decodes and validates a company document.
func DecodeCompany(r io.Reader, format Format) (Company, error) {
	var c Company
	if err := decode(r, format, "company", &c); err != nil {
		return Company{}, err
	}
	if err := c.Validate(); err != nil {
		return Company{}, err
	}
	return c, nil
}

// DecodeCatalog decodes and validates a product catalog.
func DecodeCatalog(r io.Reader, format Format) (Catalog, error) {
	var c Catalog
	if err := decode(r, format, "catalog", &c); err != nil {
		return Catalog{}, err
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func decodeFile(path, document string, v any) error {
	if path == "" {
		return &SchemaError{Document: document, Message: "no file configured"}
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s document: %w", document, err)
	}
	defer f.Close()

	if err := decode(f, FormatForPath(path), document, v); err != nil {
		return withPath(err, path)
	}
	return nil
}

// decode reads one document strictly: unknown fields and trailing data are
// schema errors.
func decode(r io.Reader, format Format, document string, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return fmt.Errorf("read %s document: %w", document, err)
	}
	if len(data) > MaxDocumentSize {
		return &SchemaError{Document: document, Message: fmt.Sprintf("exceeds %d bytes", MaxDocumentSize)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &SchemaError{Document: document, Message: "document is empty"}
	}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return &SchemaError{Document: document, Message: err.Error()}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return &SchemaError{Document: document, Message: err.Error()}
		}
		if dec.More() {
			return &SchemaError{Document: document, Message: "unexpected data after document"}
		}
	}
	return nil
}

func withPath(err error, path string) error {
	var se *SchemaError
	if errors.As(err, &se) && se.Path == "" {
		se.Path = path
	}
	return err
}
