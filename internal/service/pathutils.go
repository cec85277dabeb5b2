package service

import (
	"strings"
)

// pathutils.go - Pure materialized-path string operations.
//
// A folder's stored path is the materialized path of its PARENT chain,
// always starting and ending with "/". These helpers centralize every
// composition and rewrite of those strings so the repository and the
// cascade orchestrators never concatenate path fragments by hand.

// ChildPath returns the path every direct child of a folder carries:
// the folder's own path followed by its name and a trailing slash.
//
// Examples:
//   - ChildPath("/", "Docs") → "/Docs/"
//   - ChildPath("/Docs/", "Reports") → "/Docs/Reports/"
func ChildPath(parentPath, parentName string) string {
	return parentPath + parentName + "/"
}

// IsPrefixedBy reports whether path lies inside the subtree selected by
// prefix. This is an exact string-prefix test; prefixes always end with "/"
// so "/Doc/" never matches "/Docs/x".
func IsPrefixedBy(path, prefix string) bool {
	return strings.HasPrefix(path, prefix)
}

// RewritePrefix replaces exactly the leading occurrence of oldPrefix in
// path with newPrefix. When path does not start with oldPrefix the input is
// returned unchanged and ok is false.
func RewritePrefix(path, oldPrefix, newPrefix string) (rewritten string, ok bool) {
	if !strings.HasPrefix(path, oldPrefix) {
		return path, false
	}
	return newPrefix + path[len(oldPrefix):], true
}

// SplitRelativePath splits a slash-delimited relative path into folder
// segments, dropping empty segments and "." / ".." entries. Traversal
// outside the resolution root is not a supported operation, so dot segments
// are normalized away rather than rejected.
func SplitRelativePath(relative string) []string {
	parts := strings.Split(relative, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
