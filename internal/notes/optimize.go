package notes

import (
	"fmt"

	"github.com/jackzampolin/notetags/internal/tags"
)

// Optimize rewrites each entry's notes with the field universe of its product
// type. It does not validate; run a Checker first and stop on Report.Err.
func Optimize(entries []Entry, catalog *Catalog) ([]Optimized, error) {
	out := make([]Optimized, 0, len(entries))
	for _, e := range entries {
		fields, ok := catalog.Fields(e.ProductType)
		if !ok {
			return nil, fmt.Errorf("%w: %q (entry %s)", ErrUnknownProductType, e.ProductType, e.ID)
		}
		out = append(out, Optimized{
			ID:          e.ID,
			ProductType: e.ProductType,
			Fields:      fields,
			Notes:       tags.Rewrite(e.Notes, fields),
		})
	}
	return out, nil
}
