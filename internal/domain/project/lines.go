package project

import (
	"encoding/json"
	"strings"
)

// LineItems is a list of short status lines. Saved state written before the
// list form existed stored these fields as a single newline-joined string,
// so unmarshaling accepts either a JSON array or a JSON string and
// normalizes both to a list.
type LineItems []string

// UnmarshalJSON accepts a JSON array of strings or a legacy JSON string.
// String input is split on newlines; array input is kept as-is apart from
// dropping blank entries.
func (l *LineItems) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*l = SplitLines(text)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = Normalize(items)
	return nil
}

// Normalize drops blank and whitespace-only entries, preserving the order
// of the rest. It is the write-side counterpart of UnmarshalJSON: the store
// runs every incoming list through it so persisted state never carries
// blank items.
func Normalize(items []string) LineItems {
	var out LineItems
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

// SplitLines converts newline-joined text to line items. Trailing carriage
// returns are stripped and whitespace-only lines are dropped; non-blank
// lines keep their content and order.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// JoinLines converts line items back to newline-joined text, dropping blank
// items. JoinLines(SplitLines(text)) may differ from text when text carried
// blank lines; SplitLines(JoinLines(items)) equals items when every item is
// non-blank and newline-free.
func JoinLines(items []string) string {
	var b strings.Builder
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(item)
	}
	return b.String()
}
