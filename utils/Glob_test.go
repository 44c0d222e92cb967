package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func makeGlobTree(t *testing.T) Directory {
	t.Helper()
	root := t.TempDir()
	for _, it := range []string{
		"src/a.cpp",
		"src/b.h",
		"src/sub/c.cpp",
		"src/sub/deep/d.CPP",
		"other/e.cpp",
	} {
		path := filepath.Join(root, filepath.FromSlash(it))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(it), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return MakeDirectory(root)
}

func expectGlob(t *testing.T, root Directory, pattern string, expected []string, options ...GlobOptionFunc) {
	t.Helper()
	found, err := Glob(root, pattern, options...)
	if err != nil {
		t.Fatalf("Glob(%q): %v", pattern, err)
	}
	if diff := cmp.Diff(expected, found); diff != "" {
		t.Errorf("Glob(%q) mismatch (-want +got):\n%s", pattern, diff)
	}
}

func TestGlobSingleStarStaysInDirectory(t *testing.T) {
	root := makeGlobTree(t)
	expectGlob(t, root, "src/*.cpp", []string{"src/a.cpp"})
}

func TestGlobDoubleStarRecurses(t *testing.T) {
	root := makeGlobTree(t)
	expectGlob(t, root, "src/**.cpp", []string{
		"src/a.cpp",
		"src/sub/c.cpp",
		"src/sub/deep/d.CPP",
	})
}

func TestGlobWildcardDirectory(t *testing.T) {
	root := makeGlobTree(t)
	expectGlob(t, root, "*/a.cpp", []string{"src/a.cpp"})
	expectGlob(t, root, `*\*.cpp`, []string{"other/e.cpp", "src/a.cpp"})
}

func TestGlobParentSegmentIsKeptVerbatim(t *testing.T) {
	root := makeGlobTree(t)
	expectGlob(t, root, "src/../other/*.cpp", []string{"src/../other/e.cpp"})
}

func TestGlobQuestionMark(t *testing.T) {
	root := makeGlobTree(t)
	expectGlob(t, root, "src/?.h", []string{"src/b.h"})
}

func TestGlobNoMatch(t *testing.T) {
	root := makeGlobTree(t)
	expectGlob(t, root, "src/*.xyz", nil)
}

func TestGlobLiteralIsExistenceCheck(t *testing.T) {
	root := makeGlobTree(t)
	expectGlob(t, root, "src/a.cpp", []string{"src/a.cpp"})
	expectGlob(t, root, "./src/missing.cpp", nil)

	known := GlobOptionKnown(func(rel string) bool { return rel == "src/missing.cpp" })
	expectGlob(t, root, "./src/missing.cpp", []string{"src/missing.cpp"}, known)
}

func TestGlobReusesDirectoryCache(t *testing.T) {
	root := makeGlobTree(t)
	cache := NewDirectoryCache(16)
	expectGlob(t, root, "src/*.cpp", []string{"src/a.cpp"}, GlobOptionCache(cache))
	_, misses := cache.Stats()
	expectGlob(t, root, "src/*.h", []string{"src/b.h"}, GlobOptionCache(cache))
	hits, missesAfter := cache.Stats()
	if hits == 0 || missesAfter != misses {
		t.Errorf("directory cache was not reused: %d hits, %d/%d misses", hits, misses, missesAfter)
	}
}

func TestGlobSegmentRegexpAnchoring(t *testing.T) {
	inner, recursive := MakeGlobSegmentRegexp("s*", false)
	if recursive || !inner.MatchString("src") || !inner.MatchString("SRC") {
		t.Errorf("inner segment %v should match case-insensitively", inner)
	}
	last, _ := MakeGlobSegmentRegexp("*.h", true)
	if last.MatchString("a.hpp") {
		t.Errorf("last segment %v should be anchored at the end", last)
	}
	if _, recursive := MakeGlobSegmentRegexp("**", true); !recursive {
		t.Errorf("double star should recurse")
	}
}
