package advisory

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"
)

//go:embed data/diseases.json
var defaultTable []byte

// Entry is the advisory text for one condition. Every field is optional.
type Entry struct {
	Name       string   `json:"name,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Symptoms   []string `json:"symptoms,omitempty"`
	Management []string `json:"management,omitempty"`
	Organic    []string `json:"organic,omitempty"`
	Chemicals  []string `json:"chemicals,omitempty"`
}

// clone returns a copy that shares no slices with e.
func (e Entry) clone() Entry {
	e.Symptoms = slices.Clone(e.Symptoms)
	e.Management = slices.Clone(e.Management)
	e.Organic = slices.Clone(e.Organic)
	e.Chemicals = slices.Clone(e.Chemicals)
	return e
}

// record is one label's base entry plus its crop entries, already merged.
type record struct {
	base  Entry
	crops map[string]Entry
}

// Catalog is a parsed advisory table. It is never modified after Parse.
type Catalog struct {
	records map[string]record
}

// Parse decodes an advisory table and resolves all crop overrides.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse advisory table: %w", err)
	}

	c := &Catalog{records: make(map[string]record, len(raw))}
	for label, msg := range raw {
		var base Entry
		if err := json.Unmarshal(msg, &base); err != nil {
			return nil, fmt.Errorf("advisory %q: %w", label, err)
		}

		var nested struct {
			PerCrop map[string]json.RawMessage `json:"per_crop"`
		}
		if err := json.Unmarshal(msg, &nested); err != nil {
			return nil, fmt.Errorf("advisory %q: per_crop: %w", label, err)
		}

		rec := record{base: base, crops: make(map[string]Entry, len(nested.PerCrop))}
		for crop, override := range nested.PerCrop {
			// Decoding onto a private copy replaces exactly the fields the
			// override names.
			merged := base.clone()
			if err := json.Unmarshal(override, &merged); err != nil {
				return nil, fmt.Errorf("advisory %q crop %q: %w", label, crop, err)
			}
			rec.crops[crop] = merged
		}
		c.records[label] = rec
	}

	return c, nil
}

// Load reads and parses an advisory table from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read advisory table: %w", err)
	}
	return Parse(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded advisory table.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("embedded advisory table: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Lookup returns the advisory for label, specialized for crop when the table
// has an override for it. An empty crop selects the base entry.
//
// The boolean is false when the label is empty or unknown. A known label with
// no text still returns true with an empty Entry.
func (c *Catalog) Lookup(label, crop string) (Entry, bool) {
	if c == nil || label == "" {
		return Entry{}, false
	}
	rec, ok := c.records[label]
	if !ok {
		return Entry{}, false
	}
	if crop != "" {
		if e, ok := rec.crops[crop]; ok {
			return e.clone(), true
		}
	}
	return rec.base.clone(), true
}

// Labels returns the labels in the table, sorted.
func (c *Catalog) Labels() []string {
	if c == nil {
		return nil
	}
	labels := make([]string, 0, len(c.records))
	for l := range c.records {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Crops returns the crops with an override for label, sorted.
func (c *Catalog) Crops(label string) []string {
	if c == nil {
		return nil
	}
	rec := c.records[label]
	crops := make([]string, 0, len(rec.crops))
	for crop := range rec.crops {
		crops = append(crops, crop)
	}
	sort.Strings(crops)
	return crops
}

// AllCrops returns every crop with an override for any label, sorted and
// deduplicated.
func (c *Catalog) AllCrops() []string {
	seen := make(map[string]bool)
	for _, label := range c.Labels() {
		for _, crop := range c.Crops(label) {
			seen[crop] = true
		}
	}
	crops := make([]string, 0, len(seen))
	for crop := range seen {
		crops = append(crops, crop)
	}
	sort.Strings(crops)
	return crops
}
