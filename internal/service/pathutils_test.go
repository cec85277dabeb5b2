package service

import (
	"reflect"
	"testing"
)

func TestChildPath(t *testing.T) {
	tests := []struct {
		name       string
		parentPath string
		parentName string
		want       string
	}{
		{
			name:       "folder under root",
			parentPath: "/",
			parentName: "Docs",
			want:       "/Docs/",
		},
		{
			name:       "nested folder",
			parentPath: "/Docs/",
			parentName: "Reports",
			want:       "/Docs/Reports/",
		},
		{
			name:       "name with spaces",
			parentPath: "/",
			parentName: "My Stuff",
			want:       "/My Stuff/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChildPath(tt.parentPath, tt.parentName); got != tt.want {
				t.Errorf("ChildPath(%q, %q) = %q, want %q", tt.parentPath, tt.parentName, got, tt.want)
			}
		})
	}
}

func TestIsPrefixedBy(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		prefix string
		want   bool
	}{
		{"inside subtree", "/Docs/Reports/", "/Docs/", true},
		{"the prefix itself", "/Docs/", "/Docs/", true},
		{"sibling with shared leading text", "/Docs2/", "/Docs/", false},
		{"shorter path", "/", "/Docs/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPrefixedBy(tt.path, tt.prefix); got != tt.want {
				t.Errorf("IsPrefixedBy(%q, %q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestRewritePrefix(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		oldPrefix string
		newPrefix string
		want      string
		wantOK    bool
	}{
		{
			name:      "direct child path",
			path:      "/Work/",
			oldPrefix: "/Work/",
			newPrefix: "/Archive/",
			want:      "/Archive/",
			wantOK:    true,
		},
		{
			name:      "deep descendant path",
			path:      "/Work/2024/Q1/",
			oldPrefix: "/Work/",
			newPrefix: "/Archive/",
			want:      "/Archive/2024/Q1/",
			wantOK:    true,
		},
		{
			name:      "non-matching path untouched",
			path:      "/Personal/2024/",
			oldPrefix: "/Work/",
			newPrefix: "/Archive/",
			want:      "/Personal/2024/",
			wantOK:    false,
		},
		{
			name:      "partial name is not a prefix",
			path:      "/Workspace/",
			oldPrefix: "/Work/",
			newPrefix: "/Archive/",
			want:      "/Workspace/",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RewritePrefix(tt.path, tt.oldPrefix, tt.newPrefix)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RewritePrefix(%q, %q, %q) = (%q, %v), want (%q, %v)",
					tt.path, tt.oldPrefix, tt.newPrefix, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// A rename of folder F rewrites descendant paths from ChildPath(F.Path, old)
// to ChildPath(F.Path, new). Any path built by chaining ChildPath below F
// must rewrite cleanly.
func TestRewritePrefixComposesWithChildPath(t *testing.T) {
	base := ChildPath("/", "Work")          // "/Work/"
	deep := ChildPath(base, "2024")         // "/Work/2024/"
	deeper := ChildPath(deep, "Q1")         // "/Work/2024/Q1/"
	renamed := ChildPath("/", "Archive")    // "/Archive/"

	for _, path := range []string{base, deep, deeper} {
		got, ok := RewritePrefix(path, base, renamed)
		if !ok {
			t.Fatalf("RewritePrefix(%q, %q, %q): path should match its own ancestor prefix", path, base, renamed)
		}
		if !IsPrefixedBy(got, renamed) {
			t.Errorf("rewritten path %q does not live under %q", got, renamed)
		}
	}
}

func TestSplitRelativePath(t *testing.T) {
	tests := []struct {
		name     string
		relative string
		want     []string
	}{
		{
			name:     "plain chain",
			relative: "folderA/subfolderB/file1.txt",
			want:     []string{"folderA", "subfolderB", "file1.txt"},
		},
		{
			name:     "empty path",
			relative: "",
			want:     []string{},
		},
		{
			name:     "leading and trailing slashes",
			relative: "/Docs/Reports/",
			want:     []string{"Docs", "Reports"},
		},
		{
			name:     "duplicate slashes collapse",
			relative: "Docs//Reports",
			want:     []string{"Docs", "Reports"},
		},
		{
			name:     "dot segments dropped",
			relative: "./Docs/../Reports",
			want:     []string{"Docs", "Reports"},
		},
		{
			name:     "only dots",
			relative: "././..",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRelativePath(tt.relative)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitRelativePath(%q) = %v, want %v", tt.relative, got, tt.want)
			}
		})
	}
}
