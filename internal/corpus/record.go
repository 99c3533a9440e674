// File path: internal/corpus/record.go
package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnknownNumber is used when a source record carries no usable number.
const UnknownNumber = "Unknown"

// Record is one hadith in canonical form. Records are built once at load
// time and never mutated.
type Record struct {
	Collection Collection `json:"collection"`
	Arabic     string     `json:"arabic"`
	English    string     `json:"english,omitempty"`
	Number     string     `json:"number"`
	Reference  string     `json:"reference"`
}

type sourceDocument struct {
	Hadiths json.RawMessage `json:"hadiths"`
}

// DecodeCollection parses a raw collection document of the shape
// {"hadiths": [...]}. A missing or malformed hadiths array yields no records
// and a non-nil warning; individual undecodable entries are skipped.
func DecodeCollection(c Collection, data []byte) ([]Record, error) {
	var doc sourceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", c, err)
	}
	if trimmed := bytes.TrimSpace(doc.Hadiths); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%s document has no hadiths array", c)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(doc.Hadiths, &entries); err != nil {
		return nil, fmt.Errorf("%s hadiths is not an array: %w", c, err)
	}
	records := make([]Record, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		rec, ok := decodeRecord(c, entry)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		return records, fmt.Errorf("%s: skipped %d malformed entries", c, skipped)
	}
	return records, nil
}

func decodeRecord(c Collection, raw json.RawMessage) (Record, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Record{}, false
	}
	rec := Record{
		Collection: c,
		Arabic:     strings.TrimSpace(stringValue(fields["arabic"])),
		English:    strings.TrimSpace(englishText(fields)),
		Number:     referenceNumber(fields),
	}
	rec.Reference = FormatReference(c, rec.Number)
	return rec, true
}

// englishText resolves the English matn from, in order: english as a plain
// string, english as an object with text or body, then top-level text, then
// top-level body.
func englishText(fields map[string]json.RawMessage) string {
	if raw, ok := fields["english"]; ok {
		if s := stringValue(raw); s != "" {
			return s
		}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			if s := stringValue(nested["text"]); s != "" {
				return s
			}
			if s := stringValue(nested["body"]); s != "" {
				return s
			}
		}
	}
	if s := stringValue(fields["text"]); s != "" {
		return s
	}
	return stringValue(fields["body"])
}

func referenceNumber(fields map[string]json.RawMessage) string {
	for _, key := range []string{"hadithnumber", "id", "number"} {
		if s := strings.TrimSpace(stringValue(fields[key])); s != "" {
			return s
		}
	}
	return UnknownNumber
}

// stringValue accepts JSON strings and numbers; everything else is empty.
func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// FormatReference renders the citation used for display and classification,
// e.g. "Sahih al-Bukhari 3637".
func FormatReference(c Collection, number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		number = UnknownNumber
	}
	return c.DisplayName() + " " + number
}
