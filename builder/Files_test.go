package builder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/syncproj/vstudio"
)

func fileNames(project *vstudio.Project) (result []string) {
	for _, it := range project.Files {
		result = append(result, it.RelativePath)
	}
	return
}

func TestFilesGlob(t *testing.T) {
	s, dir := newTestSession(t)
	touchFiles(t, dir, "src/a.cpp", "src/b.cpp", "src/sub/c.cpp", "src/a.h")
	must(t,
		s.Project("P"),
		s.Files("src/**.cpp", "src/*.h"))

	expected := []string{"src/a.cpp", "src/b.cpp", "src/sub/c.cpp", "src/a.h"}
	if diff := cmp.Diff(expected, fileNames(s.ActiveProject())); diff != "" {
		t.Errorf("registered files (-want +got):\n%s", diff)
	}
	if got := s.ActiveProject().Files[3].IncludeType; got != vstudio.INCLUDE_CLINCLUDE {
		t.Errorf("header include type: got %v", got)
	}
}

func TestFilesUnmatchedPattern(t *testing.T) {
	s, _ := newTestSession(t)
	must(t, s.Project("P"))

	err := s.Files("src/*.cpp")
	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected a file error, got %v", err)
	}
	if !errors.Is(err, errPatternUnmatched) {
		t.Errorf("unexpected cause: %v", err)
	}
}

func TestFilesOptionalPattern(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Project("P"),
		s.Files(FILES_OPTIONAL_PREFIX+"generated/gen.cpp"))

	if diff := cmp.Diff([]string{"generated/gen.cpp"}, fileNames(s.ActiveProject())); diff != "" {
		t.Errorf("optional file should be registered as is (-want +got):\n%s", diff)
	}
}

func TestFilesMergeCaseDuplicates(t *testing.T) {
	s, dir := newTestSession(t)
	touchFiles(t, dir, "Main.cpp")
	must(t,
		s.Project("P"),
		s.Files("Main.cpp", FILES_OPTIONAL_PREFIX+"main.cpp", "Main.cpp"))

	if diff := cmp.Diff([]string{"Main.cpp"}, fileNames(s.ActiveProject())); diff != "" {
		t.Errorf("duplicates should be merged (-want +got):\n%s", diff)
	}
}

func TestFilesRelativeToProjectLocation(t *testing.T) {
	s, dir := newTestSession(t)
	touchFiles(t, dir, "src/a.cpp")
	must(t,
		s.Project("P"),
		s.Location("build"),
		s.Files("src/a.cpp"))

	if diff := cmp.Diff([]string{"../src/a.cpp"}, fileNames(s.ActiveProject())); diff != "" {
		t.Errorf("file should be relative to the project file (-want +got):\n%s", diff)
	}
}

func TestRemoveFiles(t *testing.T) {
	s, dir := newTestSession(t)
	touchFiles(t, dir, "a.cpp", "b.cpp", "b_test.cpp")
	must(t,
		s.Project("P"),
		s.Configurations("Debug"),
		s.Platforms("x64"),
		s.Files("*.cpp"),
		s.Filter("files:b.cpp"),
		s.RemoveFiles("b*.cpp"))

	if diff := cmp.Diff([]string{"a.cpp"}, fileNames(s.ActiveProject())); diff != "" {
		t.Errorf("remaining files (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Selection(ProjectWide{All: true}), s.CurrentSelection()); diff != "" {
		t.Errorf("selection of a removed file should be reset (-want +got):\n%s", diff)
	}

	// no match only warns
	must(t, s.RemoveFiles("nothing.cpp"))
}

func TestPrecompiledHeader(t *testing.T) {
	s, dir := newTestSession(t)
	touchFiles(t, dir, "a.cpp", "pch.cpp", "pch.h")
	must(t,
		s.Project("P"),
		s.Configurations("Debug", "Release"),
		s.Platforms("x64"),
		s.Files("*.cpp", "*.h"),
		s.PchHeader("pch.h"),
		s.PchSource("pch.cpp"))

	project := s.ActiveProject()
	for i, config := range project.Configurations {
		if config.PrecompiledHeaderFile != "pch.h" || config.PrecompiledHeader != vstudio.PCH_USE {
			t.Errorf("configuration %d: header %q, mode %v", i, config.PrecompiledHeaderFile, config.PrecompiledHeader)
		}
	}

	source, _ := project.FindFile("pch.cpp")
	if len(source.Overrides) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(source.Overrides))
	}
	for i, it := range source.Overrides {
		if it.PrecompiledHeader != vstudio.PCH_CREATE {
			t.Errorf("override %d: got %v, want %v", i, it.PrecompiledHeader, vstudio.PCH_CREATE)
		}
	}

	expectConfigurationError(t, s.PchSource("missing.cpp"), "pchsource")
}
