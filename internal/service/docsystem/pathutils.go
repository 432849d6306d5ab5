package docsystem

import (
	"fmt"
	"path"
	"strings"
)

// pathutils.go - Archive path construction for exports.
//
// Container and document names are user-editable display names. They are
// turned into single path segments here so no archive entry can climb out
// of its owner's directory or collide with a sibling.

// untitledSegment stands in for a name that sanitizes to nothing
const untitledSegment = "untitled"

// BuildFullPath joins sanitized segments into an archive entry path.
// Empty leading segments are dropped, so a supplier export has no root.
//
// Examples:
//   - BuildFullPath("Acme", "Batch1", "invoice.txt") → "Acme/Batch1/invoice.txt"
//   - BuildFullPath("", "Acme", "a/b.txt") → "Acme/a-b.txt"
func BuildFullPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		if seg == "" && i == 0 {
			continue
		}
		parts = append(parts, SanitizeDocName(seg))
	}
	return strings.Join(parts, "/")
}

// SanitizeDocName turns a display name into one safe path segment.
//
// Currently handles:
//   - "/" and "\" → "-"
//   - "." and ".." → "_" (no relative segments)
//   - blank → "untitled"
func SanitizeDocName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer("/", "-", `\`, "-").Replace(name)

	switch name {
	case "":
		return untitledSegment
	case ".", "..":
		return strings.Repeat("_", len(name))
	}
	return name
}

// entryNamer hands out archive paths, suffixing repeats with " (n)"
type entryNamer struct {
	used map[string]struct{}
}

func newEntryNamer() *entryNamer {
	return &entryNamer{used: make(map[string]struct{})}
}

// Unique returns p, or p with " (n)" before its extension if p was already taken
//
// Example:
//   - "Acme/Batch1/invoice.txt" twice → "Acme/Batch1/invoice.txt", "Acme/Batch1/invoice (1).txt"
func (n *entryNamer) Unique(p string) string {
	candidate := p
	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for i := 1; ; i++ {
		if _, taken := n.used[candidate]; !taken {
			n.used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, i, ext)
	}
}
