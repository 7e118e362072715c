// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reference

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// =============================================================================
// SCHEMA
// =============================================================================

// Company holds the facts about the business the assistant represents.
type Company struct {
	Name        string `json:"name" yaml:"name"`
	Tagline     string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Description string `json:"description" yaml:"description"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty"`

	// Kind describes the business, e.g. "smart sprinkler system company".
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Domain lists the subjects the assistant may answer, e.g.
	// "smart sprinkler systems, lawn care, gardening, or water management".
	Domain string `json:"domain" yaml:"domain"`

	// Persona is the short description used in the assistant greeting,
	// e.g. "smart sprinkler". Defaults to the company name.
	Persona string `json:"persona,omitempty" yaml:"persona,omitempty"`

	Support         Support  `json:"support" yaml:"support"`
	Topics          []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	FAQs            []FAQ    `json:"faqs,omitempty" yaml:"faqs,omitempty"`
	Troubleshooting []Issue  `json:"troubleshooting,omitempty" yaml:"troubleshooting,omitempty"`
	Policies        []Policy `json:"policies,omitempty" yaml:"policies,omitempty"`
}

// Support lists customer support channels.
type Support struct {
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Hours string `json:"hours,omitempty" yaml:"hours,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// FAQ is a frequently asked question.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Issue is a known problem with its fix.
type Issue struct {
	Problem string   `json:"problem" yaml:"problem"`
	Steps   []string `json:"steps" yaml:"steps"`
}

// Policy is a named policy such as warranty or returns.
type Policy struct {
	Name    string `json:"name" yaml:"name"`
	Details string `json:"details" yaml:"details"`
}

// Catalog is the product list.
type Catalog struct {
	Products []Product `json:"products" yaml:"products"`
}

// Product is one catalog entry.
type Product struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Price       string            `json:"price,omitempty" yaml:"price,omitempty"`
	Features    []string          `json:"features,omitempty" yaml:"features,omitempty"`
	Specs       map[string]string `json:"specs,omitempty" yaml:"specs,omitempty"`
	Compatible  []string          `json:"compatible_with,omitempty" yaml:"compatible_with,omitempty"`
}

// Data is a loaded, validated pair of documents. It is read-only once built.
type Data struct {
	Company  Company
	Catalog  Catalog
	LoadedAt time.Time
}

// PersonaName returns the name used in the greeting.
func (c Company) PersonaName() string {
	if c.Persona != "" {
		return c.Persona
	}
	return c.Name
}

// ProductByID returns the product with the given ID.
func (c Catalog) ProductByID(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrInvalidReference is wrapped by every schema failure.
var ErrInvalidReference = errors.New("invalid reference document")

// SchemaError reports a document whose shape or content is unexpected.
type SchemaError struct {
	Document string // "company" or "catalog"
	Path     string // file the document came from, if any
	Field    string // dotted field path, empty for decode failures
	Message  string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Document)
	b.WriteString(" document")
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	return b.String()
}

// Unwrap lets errors.Is match ErrInvalidReference.
func (e *SchemaError) Unwrap() error {
	return ErrInvalidReference
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the company document.
func (c Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &SchemaError{Document: "company", Field: "name", Message: "is required"}
	}
	if strings.TrimSpace(c.Description) == "" {
		return &SchemaError{Document: "company", Field: "description", Message: "is required"}
	}
	if strings.TrimSpace(c.Domain) == "" {
		return &SchemaError{Document: "company", Field: "domain", Message: "is required"}
	}
	if c.Website != "" {
		if u, err := url.Parse(c.Website); err != nil || u.Scheme == "" || u.Host == "" {
			return &SchemaError{Document: "company", Field: "website", Message: fmt.Sprintf("invalid URL %q", c.Website)}
		}
	}
	for i, faq := range c.FAQs {
		if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
			return &SchemaError{Document: "company", Field: fmt.Sprintf("faqs[%d]", i), Message: "question and answer are required"}
		}
	}
	for i, issue := range c.Troubleshooting {
		if strings.TrimSpace(issue.Problem) == "" {
			return &SchemaError{Document: "company", Field: fmt.Sprintf("troubleshooting[%d].problem", i), Message: "is required"}
		}
		if len(issue.Steps) == 0 {
			return &SchemaError{Document: "company", Field: fmt.Sprintf("troubleshooting[%d].steps", i), Message: "at least one step is required"}
		}
	}
	return nil
}

// Validate checks the product catalog.
func (c Catalog) Validate() error {
	if len(c.Products) == 0 {
		return &SchemaError{Document: "catalog", Field: "products", Message: "at least one product is required"}
	}
	seen := make(map[string]int, len(c.Products))
	for i, p := range c.Products {
		field := fmt.Sprintf("products[%d]", i)
		if strings.TrimSpace(p.ID) == "" {
			return &SchemaError{Document: "catalog", Field: field + ".id", Message: "is required"}
		}
		if strings.TrimSpace(p.Name) == "" {
			return &SchemaError{Document: "catalog", Field: field + ".name", Message: "is required"}
		}
		if prev, dup := seen[p.ID]; dup {
			return &SchemaError{Document: "catalog", Field: field + ".id", Message: fmt.Sprintf("duplicate of products[%d]", prev)}
		}
		seen[p.ID] = i
	}
	return nil
}
