package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager is implemented by zerr errors, which report their own message
// without the cause chain.
type messager interface {
	Message() string
}

// metadataer is implemented by zerr errors carrying key/value context.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of err. zerr levels contribute their own
// message and metadata; the first plain error contributes its full text and
// ends the walk. A zerr level with an empty message only adds metadata to the
// level below it.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var carried map[string]any

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: carried})
			break
		}

		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}

		if m.Message() == "" {
			if carried == nil {
				carried = map[string]any{}
			}
			maps.Copy(carried, meta)
		} else {
			if carried != nil {
				if meta == nil {
					meta = map[string]any{}
				}
				maps.Copy(meta, carried)
				carried = nil
			}
			entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: meta})
		}
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders entries as:
//
//	Error: <message>
//	       key: value
//
//	  Caused by:
//	    → <cause>
//	      key: value
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, e := range entries {
		msgLines := strings.Split(e.Message, "\n")
		indent := "       "
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			lines = append(lines, "    → "+msgLines[0])
			indent = "      "
		}
		for _, l := range msgLines[1:] {
			lines = append(lines, indent+l)
		}
		for _, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, e.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}
