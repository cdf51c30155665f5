package rows

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one tabular row: a flat field map plus the sheet it came from.
// Records are built once at load time and never mutated.
type Record struct {
	Fields map[string]string
	Sheet  string
}

// RowSource yields the records the index is built from.
type RowSource interface {
	Load() ([]Record, error)
}

// Field-name fallback chains used to derive text and links from a record.
// Lookups are case-insensitive; field names are lowercased at load time.
var (
	PrimaryTextFields = []string{"title", "name", "topic", "description"}
	LinkFields        = []string{"link", "url", "website", "source"}
)

// Get returns the value of a field by name, or "" when absent.
func (r Record) Get(name string) string {
	return r.Fields[strings.ToLower(strings.TrimSpace(name))]
}

// FirstNonEmpty walks the given field names in order and returns the first
// non-empty value found.
func (r Record) FirstNonEmpty(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.Get(name)); v != "" {
			return v
		}
	}
	return ""
}

// PrimaryText is the text a record is indexed under: the first non-empty of
// the prioritized title-like fields, else every field value concatenated.
func (r Record) PrimaryText() string {
	if v := r.FirstNonEmpty(PrimaryTextFields...); v != "" {
		return v
	}
	return r.AllText()
}

// Link resolves the record's source URL, or "" when no link field is set.
func (r Record) Link() string {
	return r.FirstNonEmpty(LinkFields...)
}

// AllText concatenates every field value in sorted field order, so the
// result is deterministic for a given record.
func (r Record) AllText() string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		if v := strings.TrimSpace(r.Fields[k]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Dump renders the record as "Field: value" lines for structured fallback
// answers. Empty fields are skipped.
func (r Record) Dump() string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := strings.TrimSpace(r.Fields[k])
		if v == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", capitalize(k), v)
	}
	return strings.TrimRight(b.String(), "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// newRecord builds a record from a header row and a data row, lowercasing
// field names and skipping cells without a header.
func newRecord(sheet string, headers, cells []string) Record {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" || i >= len(cells) {
			continue
		}
		fields[h] = strings.TrimSpace(cells[i])
	}
	return Record{Fields: fields, Sheet: sheet}
}

// isBlank reports whether a raw row has no non-empty cells.
func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
