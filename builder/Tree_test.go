package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/vstudio"
)

func TestGroupCreatesFolders(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Solution("S"),
		s.Group("libs/core"),
		s.Project("A"),
		s.Project("B"),
		s.Group(""),
		s.Project("C"))

	solution := s.ActiveSolution()
	libs := solution.FindProjectByName("libs")
	core := solution.FindProjectByName("core")
	if libs == nil || core == nil || !libs.IsFolder || !core.IsFolder {
		t.Fatalf("missing solution folders: %v", solution.Projects)
	}
	if libs.Guid != base.MakeGuid("libs") || core.Guid != base.MakeGuid("libs/core") {
		t.Errorf("folder guids: %v %v", libs.Guid, core.Guid)
	}
	if core.Parent != libs {
		t.Errorf("core should be nested in libs")
	}
	for _, name := range []string{"A", "B"} {
		if project := solution.FindProjectByName(name); project.Parent != core {
			t.Errorf("%s should be nested in core", name)
		}
	}
	if c := solution.FindProjectByName("C"); c.Parent != solution.Root {
		t.Errorf("C should be at the root of the solution")
	}
	if n := len(solution.Projects); n != 5 {
		t.Errorf("expected 2 folders and 3 projects, got %d entries", n)
	}
}

func TestGroupFolderCollidesWithProject(t *testing.T) {
	s, dir := newTestSession(t)
	touchFiles(t, dir, "a.cpp")
	must(t,
		s.Solution("S"),
		s.Configurations("Debug"),
		s.Platforms("x64"),
		s.Project("libs"),
		s.Files("a.cpp"),
		s.Group("libs"))

	err := s.Project("B")
	configErr := expectConfigurationError(t, err, "project")
	expectContains(t, configErr.Error(), `solution folder "libs"`, `as "libs"`)

	solution := s.ActiveSolution()
	guid := base.MakeGuid("libs")
	shared := 0
	for _, it := range solution.Projects {
		if it.Guid == guid {
			shared++
		}
	}
	if shared != 1 {
		t.Errorf("%d solution entries use %v, want 1", shared, guid)
	}
	if solution.FindProjectByName("B") != nil {
		t.Error("B should not be added to the solution")
	}
}

func TestProjectDuplicateName(t *testing.T) {
	s, _ := newTestSession(t)
	must(t, s.Solution("S"), s.Project("A"))
	expectConfigurationError(t, s.Project("A"), "project")
}

func TestUuid(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Solution("S"),
		s.Project("A"),
		s.Uuid("{01234567-89AB-CDEF-0123-456789ABCDEF}"))

	expected, _ := base.ParseGuid("01234567-89ab-cdef-0123-456789abcdef")
	if got := s.ActiveProject().Guid; got != expected {
		t.Errorf("uuid: got %v, want %v", got, expected)
	}

	expectConfigurationError(t, s.Uuid("not-a-guid"), "uuid")

	must(t, s.Project("B"))
	expectConfigurationError(t, s.Uuid(expected.String()), "uuid")
	if s.ActiveProject().Guid != base.MakeGuid("B") {
		t.Errorf("guid of B should be left untouched")
	}
}

func TestLanguageDefaultsToCpp(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Project("P"),
		s.Invoke("language", "C"))
	if got := s.ActiveProject().Language; got != vstudio.LANGUAGE_C {
		t.Fatalf("language: got %v", got)
	}

	must(t, s.Invoke("language"))
	if got := s.ActiveProject().Language; got != vstudio.LANGUAGE_CPP {
		t.Errorf("language without argument: got %v, want %v", got, vstudio.LANGUAGE_CPP)
	}
	expectConfigurationError(t, s.Invoke("language", "C", "C#"), "language")
	expectConfigurationError(t, s.Invoke("language", "Fortran"), "language")
}

func TestLanguageAndVsVer(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Project("P"),
		s.Language("C"),
		s.VsVer("2017"))

	project := s.ActiveProject()
	if project.Language != vstudio.LANGUAGE_C {
		t.Errorf("language: got %v", project.Language)
	}
	if project.VisualStudio != vstudio.VS_2017 {
		t.Errorf("visual studio: got %v", project.VisualStudio)
	}
	expectConfigurationError(t, s.VsVer("1999"), "vsver")
	expectConfigurationError(t, s.VsVer("latest"), "vsver")
}

func TestReferences(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Solution("S"),
		s.Project("zlib"),
		s.Project("app"),
		s.References("../zlib/zlib.vcxproj", "", "ext/png.vcxproj", "{00000000-0000-0000-0000-000000000001}"),
		s.References("../zlib/zlib.vcxproj", ""))

	zlib := s.ActiveSolution().FindProjectByName("zlib")
	png, _ := base.ParseGuid("{00000000-0000-0000-0000-000000000001}")
	expected := []vstudio.ProjectReference{
		{Path: `..\zlib\zlib.vcxproj`, Guid: zlib.GetGuid()},
		{Path: `ext\png.vcxproj`, Guid: png},
	}
	if diff := cmp.Diff(expected, s.ActiveProject().References); diff != "" {
		t.Errorf("references (-want +got):\n%s", diff)
	}
	expectConfigurationError(t, s.References("odd"), "references")
}

func TestDependsOn(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Configurations("Debug"),
		s.Platforms("x64"),
		s.Solution("S"),
		s.Project("A"),
		s.Project("B"),
		s.DependsOn("A", "A"),
		s.Close())

	b := s.Solutions()[0].FindProjectByName("B")
	if diff := cmp.Diff([]base.Guid{base.MakeGuid("A")}, b.Dependencies); diff != "" {
		t.Errorf("dependencies (-want +got):\n%s", diff)
	}
}

func TestDependsOnUnknownProject(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Configurations("Debug"),
		s.Platforms("x64"),
		s.Solution("S"),
		s.Project("A"),
		s.DependsOn("Z"))

	expectConfigurationError(t, s.Close(), "dependson")
}

func TestConfigMap(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Configurations("Debug", "Release", "Shipping"),
		s.Platforms("x64"),
		s.Solution("S"),
		s.Project("P"),
		s.Configurations("Debug", "Release"),
		s.ConfigMap("Shipping", "Release"))

	project := s.ActiveProject()
	expected := []vstudio.ConfigLabel{"Debug|x64", "Release|x64", "Release|x64"}
	if diff := cmp.Diff(expected, project.SlnConfigurations); diff != "" {
		t.Errorf("mapped labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, true}, project.SlnBuildProject); diff != "" {
		t.Errorf("mapped builds (-want +got):\n%s", diff)
	}

	expectConfigurationError(t, s.ConfigMap("Shipping"), "configmap")
	expectConfigurationError(t, s.ConfigMap("Profile", "Release"), "configmap")
	expectConfigurationError(t, s.ConfigMap("Shipping", "Profile"), "configmap")
}

func TestConfigMapPlatforms(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Configurations("Debug", "Release"),
		s.Platforms("x86", "x64"),
		s.Solution("S"),
		s.Project("P"),
		s.Platforms("x64"),
		s.ConfigMap("x86", "x64", "Debug|x64", "Release|x64"))

	expected := []vstudio.ConfigLabel{"Debug|x64", "Release|x64", "Release|x64", "Release|x64"}
	if diff := cmp.Diff(expected, s.ActiveProject().SlnConfigurations); diff != "" {
		t.Errorf("mapped labels (-want +got):\n%s", diff)
	}
}

func TestConfigMapAmbiguousName(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Configurations("Debug", "ARM"),
		s.Platforms("ARM"),
		s.Solution("S"),
		s.Project("P"))

	expectConfigurationError(t, s.ConfigMap("ARM", "Debug"), "configmap")
}
