package notes

import (
	"errors"
	"testing"
)

func TestOptimize(t *testing.T) {
	catalog := &Catalog{ProductTypes: map[string][]string{
		"Sofa":  {"Fabric Type", "Frame Material"},
		"Table": {"Top Material"},
		"*":     {"Color"},
	}}
	entries := []Entry{
		{ID: "sku-1", ProductType: "Sofa", Notes: "Read the tag. <Fabric> Use {fabric, color}. </> <Top> gone </>"},
		{ID: "sku-2", ProductType: "Table", Notes: "<Top> Use {top}. </>"},
	}

	out, err := Optimize(entries, catalog)
	if err != nil {
		t.Fatalf("Optimize error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}

	if want := "Read the tag. Use Fabric Type or Color."; out[0].Notes != want {
		t.Errorf("sku-1 notes = %q, want %q", out[0].Notes, want)
	}
	if len(out[0].Fields) != 3 {
		t.Errorf("expected shared field appended, got %#v", out[0].Fields)
	}
	if want := " Use Top Material."; out[1].Notes != want {
		t.Errorf("sku-2 notes = %q, want %q", out[1].Notes, want)
	}
}

func TestOptimize_UnknownProductType(t *testing.T) {
	catalog := &Catalog{ProductTypes: map[string][]string{"Sofa": {"Fabric"}}}
	_, err := Optimize([]Entry{{ID: "x", ProductType: "Chair"}}, catalog)
	if !errors.Is(err, ErrUnknownProductType) {
		t.Fatalf("expected ErrUnknownProductType, got %v", err)
	}
}
