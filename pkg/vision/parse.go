package vision

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is returned when a labelled line is absent from the answer.
var ErrMissingField = errors.New("missing field in extraction result")

// TagFields are the three values read off a clothing tag.
type TagFields struct {
	StyleNumber string `json:"style_number"`
	Description string `json:"description"`
	PONumber    string `json:"po_number"`
}

var fieldLabels = []struct {
	label string
	set   func(f *TagFields, v string)
}{
	{"style number", func(f *TagFields, v string) { f.StyleNumber = v }},
	{"description", func(f *TagFields, v string) { f.Description = v }},
	{"po number", func(f *TagFields, v string) { f.PONumber = v }},
}

// ParseTagFields reads the "Style Number:", "Description:" and "PO Number:"
// lines out of a model answer. Labels match case-insensitively and may be
// wrapped in markdown bullets or bold markers. The first occurrence of each
// label wins. A label that is missing or has an empty value yields
// ErrMissingField.
func ParseTagFields(text string) (TagFields, error) {
	var fields TagFields
	seen := make(map[string]bool, len(fieldLabels))

	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(cleanLine(line), ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.Trim(strings.TrimSpace(key), "*_ "))
		value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), "*_"))
		for _, fl := range fieldLabels {
			if key == fl.label && !seen[fl.label] && value != "" {
				fl.set(&fields, value)
				seen[fl.label] = true
			}
		}
	}

	var missing []string
	for _, fl := range fieldLabels {
		if !seen[fl.label] {
			missing = append(missing, fl.label)
		}
	}
	if len(missing) > 0 {
		return fields, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return fields, nil
}

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-•# ")
	return strings.TrimSpace(line)
}
