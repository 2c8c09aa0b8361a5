// Package notes loads product notes and field catalogs from disk and runs the
// tag markup over them in bulk.
//
// A notes document lists entries, one notes string per product, tagged with
// the product type whose field catalog decides how the notes are rewritten:
//
//	entries:
//	  - id: gid://shopify/Product/1
//	    product_type: Sofa
//	    notes: "<Fabric> Use {fabric} only. </>"
//
// A field catalog maps product types to their ordered field names. Fields
// listed under the "*" product type are shared by every type:
//
//	product_types:
//	  Sofa: [Fabric Type, Frame Material]
//	  "*": [Color]
//
// Entries are validated in parallel by a Checker before anything is
// rewritten; a single invalid entry fails the whole run.
package notes

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackzampolin/notetags/internal/tags"
)

var (
	// ErrInvalidDocument is returned when a notes or catalog file does not
	// match its schema.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidNotes is returned by Report.Err when any entry has markup errors.
	ErrInvalidNotes = errors.New("notes contain markup errors")

	// ErrUnknownProductType is returned when an entry's product type is
	// missing from the catalog.
	ErrUnknownProductType = errors.New("unknown product type")
)

// SharedProductType is the catalog key whose fields apply to every product type.
const SharedProductType = "*"

// Entry is one product's notes.
type Entry struct {
	ID          string `json:"id" yaml:"id"`
	ProductType string `json:"product_type" yaml:"product_type"`
	Notes       string `json:"notes" yaml:"notes"`
}

// Document is the on-disk notes file.
type Document struct {
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Catalog maps product types to their ordered field names.
type Catalog struct {
	ProductTypes map[string][]string `json:"product_types" yaml:"product_types"`
}

// Fields returns the field universe for a product type: its own fields
// followed by any shared fields not already listed.
func (c *Catalog) Fields(productType string) ([]string, bool) {
	own, ok := c.ProductTypes[productType]
	if !ok {
		return nil, false
	}
	shared := c.ProductTypes[SharedProductType]
	if productType == SharedProductType || len(shared) == 0 {
		return own, true
	}

	fields := make([]string, 0, len(own)+len(shared))
	seen := make(map[string]bool, len(own)+len(shared))
	for _, list := range [][]string{own, shared} {
		for _, f := range list {
			if seen[f] {
				continue
			}
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields, true
}

// EntryResult is the validation outcome for one entry.
type EntryResult struct {
	ID          string            `json:"id" yaml:"id"`
	ProductType string            `json:"product_type" yaml:"product_type"`
	Valid       bool              `json:"valid" yaml:"valid"`
	Blocks      int               `json:"blocks" yaml:"blocks"`
	Errors      []tags.ParseError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Report summarizes a Checker run. Results follow entry order.
type Report struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	CheckedAt time.Time     `json:"checked_at" yaml:"checked_at"`
	Total     int           `json:"total" yaml:"total"`
	Invalid   int           `json:"invalid" yaml:"invalid"`
	Results   []EntryResult `json:"results" yaml:"results"`
}

// Failed returns only the results with markup errors.
func (r *Report) Failed() []EntryResult {
	var failed []EntryResult
	for _, res := range r.Results {
		if !res.Valid {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err returns an error wrapping ErrInvalidNotes if any entry is invalid.
func (r *Report) Err() error {
	if r.Invalid == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d entries failed validation", ErrInvalidNotes, r.Invalid, r.Total)
}

// Optimized is an entry's notes rewritten for its product type.
type Optimized struct {
	ID          string   `json:"id" yaml:"id"`
	ProductType string   `json:"product_type" yaml:"product_type"`
	Fields      []string `json:"fields" yaml:"fields"`
	Notes       string   `json:"notes" yaml:"notes"`
}
