package builder

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/syncproj/vstudio"
)

func TestMatrixIsConfigurationsMajor(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Project("P"),
		s.Configurations("Debug", "Release"),
		s.Platforms("Win32", "x64"))

	expected := []vstudio.ConfigLabel{"Debug|Win32", "Debug|x64", "Release|Win32", "Release|x64"}
	if diff := cmp.Diff(expected, s.ActiveProject().ProjectConfigurations); diff != "" {
		t.Errorf("project configurations mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrixDeduplicates(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Configurations("Debug", "Debug", "Release"),
		s.Platforms("x64"),
		s.Solution("S"))

	expected := []vstudio.ConfigLabel{"Debug|x64", "Release|x64"}
	if diff := cmp.Diff(expected, s.ActiveSolution().Configurations); diff != "" {
		t.Errorf("solution configurations mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrixAfterSettingsFails(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Project("P"),
		s.Configurations("Debug"),
		s.Platforms("x64"),
		s.Defines("A"))

	expectConfigurationError(t, s.Platforms("Win32"), "platforms")
	if got := s.ActiveProject().ProjectConfigurations; len(got) != 1 || got[0] != "Debug|x64" {
		t.Errorf("project configurations should be left untouched, got %v", got)
	}
}

func TestSettingWithoutProjectFails(t *testing.T) {
	s, _ := newTestSession(t)
	expectConfigurationError(t, s.Defines("A"), "defines")
	expectConfigurationError(t, s.Kind("ConsoleApp"), "kind")
}

func TestInvokeByName(t *testing.T) {
	s, _ := newTestSession(t)
	must(t,
		s.Invoke("project", "P"),
		s.Invoke("configurations", "Debug"),
		s.Invoke("platforms", "x64"),
		s.Invoke("kind", "StaticLib"),
		s.Invoke("buildrule", "gen.bat", "", "gen.h"))

	config := s.ActiveProject().Configurations[0]
	if config.ConfigurationType != vstudio.CONFIGURATION_STATICLIBRARY {
		t.Errorf("kind: got %v", config.ConfigurationType)
	}
	expected := &vstudio.CustomBuildRule{Command: "gen.bat", Message: vstudio.CUSTOMBUILD_DEFAULT_MESSAGE, Outputs: "gen.h"}
	if diff := cmp.Diff(expected, config.CustomBuildRule); diff != "" {
		t.Errorf("build rule mismatch (-want +got):\n%s", diff)
	}

	expectConfigurationError(t, s.Invoke("nosuchcall"), "nosuchcall")
	expectConfigurationError(t, s.Invoke("project"), "project")
}

func TestOperationsAreSorted(t *testing.T) {
	names := Operations()
	if !sort.StringsAreSorted(names) {
		t.Errorf("operations are not sorted: %v", names)
	}
	for _, it := range []string{"solution", "project", "filter", "configmap", "files", "kind", "wholeprogramoptimization"} {
		if _, ok := LookupOperation(it); !ok {
			t.Errorf("missing operation %q", it)
		}
	}
}
