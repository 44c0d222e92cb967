package vstudio

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/poppolopoppo/syncproj/internal/base"
)

func newTestSolution() *Solution {
	solution := NewSolution("test.sln")
	solution.VisualStudio = VS_2019
	solution.Configurations = []ConfigLabel{"Release|x64", "Debug|x64"}

	libs := NewFolderProject("libs", base.MakeGuid("libs"))
	solution.AddProject(libs, nil)

	core := NewProject("core")
	core.RelativePath = "core"
	core.ProjectConfigurations = []ConfigLabel{"Debug|x64", "Release|x64"}
	solution.AddProject(core, libs)

	app := NewProject("app")
	app.RelativePath = "app"
	app.ProjectConfigurations = []ConfigLabel{"Debug|x64", "Release|x64"}
	app.Dependencies = []base.Guid{core.GetGuid()}
	solution.AddProject(app, nil)

	return solution
}

func writeSolutionString(t *testing.T, solution *Solution) string {
	t.Helper()
	var buf strings.Builder
	if err := WriteSolution(&buf, solution); err != nil {
		t.Fatalf("write solution: %v", err)
	}
	return buf.String()
}

func TestWriteSolutionLayout(t *testing.T) {
	const (
		folder = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"
		cpp    = "{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}"
		libs   = "{6C696273-0000-0000-0000-000000000000}"
		core   = "{636F7265-0000-0000-0000-000000000000}"
		app    = "{61707000-0000-0000-0000-000000000000}"
	)
	expected := strings.Join([]string{
		``,
		`Microsoft Visual Studio Solution File, Format Version 12.00`,
		`# Visual Studio Version 16`,
		`MinimumVisualStudioVersion = 10.0.40219.1`,
		`Project("` + folder + `") = "libs", "libs", "` + libs + `"`,
		`EndProject`,
		`Project("` + cpp + `") = "core", "core.vcxproj", "` + core + `"`,
		`EndProject`,
		`Project("` + cpp + `") = "app", "app.vcxproj", "` + app + `"`,
		`	ProjectSection(ProjectDependencies) = postProject`,
		`		` + core + ` = ` + core,
		`	EndProjectSection`,
		`EndProject`,
		`Global`,
		`	GlobalSection(SolutionConfigurationPlatforms) = preSolution`,
		`		Debug|x64 = Debug|x64`,
		`		Release|x64 = Release|x64`,
		`	EndGlobalSection`,
		`	GlobalSection(ProjectConfigurationPlatforms) = postSolution`,
		`		` + core + `.Debug|x64.ActiveCfg = Debug|x64`,
		`		` + core + `.Debug|x64.Build.0 = Debug|x64`,
		`		` + core + `.Release|x64.ActiveCfg = Release|x64`,
		`		` + core + `.Release|x64.Build.0 = Release|x64`,
		`		` + app + `.Debug|x64.ActiveCfg = Debug|x64`,
		`		` + app + `.Debug|x64.Build.0 = Debug|x64`,
		`		` + app + `.Release|x64.ActiveCfg = Release|x64`,
		`		` + app + `.Release|x64.Build.0 = Release|x64`,
		`	EndGlobalSection`,
		`	GlobalSection(SolutionProperties) = preSolution`,
		`		HideSolutionNode = FALSE`,
		`	EndGlobalSection`,
		`	GlobalSection(NestedProjects) = preSolution`,
		`		` + core + ` = ` + libs,
		`	EndGlobalSection`,
		`EndGlobal`,
		``,
	}, "\n")

	if diff := cmp.Diff(expected, writeSolutionString(t, newTestSolution())); diff != "" {
		t.Errorf("solution layout mismatch (-want +got):\n%s", diff)
	}
}

func TestSolutionRoundTrip(t *testing.T) {
	first := writeSolutionString(t, newTestSolution())

	parsed, err := ReadSolution(strings.NewReader(first), "test.sln")
	if err != nil {
		t.Fatalf("read solution: %v", err)
	}
	if parsed.VisualStudio != VS_2019 {
		t.Errorf("visual studio: got %v, want %v", parsed.VisualStudio, VS_2019)
	}
	if core := parsed.FindProjectByName("core"); core == nil || core.Parent == nil || core.Parent.Name != "libs" {
		t.Errorf("core should be nested under libs")
	}
	if app := parsed.FindProjectByName("app"); app == nil || len(app.Dependencies) != 1 {
		t.Errorf("app should keep its dependency")
	}
	if libs := parsed.FindProjectByName("libs"); libs == nil || !libs.IsFolder {
		t.Errorf("libs should be parsed as a folder")
	}

	second := writeSolutionString(t, parsed)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("solution did not round-trip (-first +second):\n%s", diff)
	}
}

func TestReadSolutionCRLFAndBOM(t *testing.T) {
	text := "\ufeff" + strings.ReplaceAll(writeSolutionString(t, newTestSolution()), "\n", "\r\n")
	parsed, err := ReadSolution(strings.NewReader(text), "crlf.sln")
	if err != nil {
		t.Fatalf("read solution: %v", err)
	}
	if len(parsed.Projects) != 3 {
		t.Errorf("expected 3 projects, got %d", len(parsed.Projects))
	}
	if diff := cmp.Diff([]ConfigLabel{"Debug|x64", "Release|x64"}, parsed.Configurations); diff != "" {
		t.Errorf("configurations mismatch (-want +got):\n%s", diff)
	}
}

func TestReadSolutionMissingBanner(t *testing.T) {
	_, err := ReadSolution(strings.NewReader("Global\nEndGlobal\n"), "broken.sln")
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected a format error, got %v", err)
	}
	if formatErr.Path != "broken.sln" {
		t.Errorf("format error should name the file, got %q", formatErr.Path)
	}
}

func TestReadSolutionSkipsUnknownMappings(t *testing.T) {
	text := strings.Join([]string{
		`Microsoft Visual Studio Solution File, Format Version 12.00`,
		`# Visual Studio 14`,
		`Project("{8BC9CEB8-8B4A-11D0-8D11-00A0C91BC942}") = "a", "a.vcxproj", "{00000000-0000-0000-0000-00000000000A}"`,
		`EndProject`,
		`Global`,
		`	GlobalSection(SolutionConfigurationPlatforms) = preSolution`,
		`		Debug|Win32 = Debug|Win32`,
		`	EndGlobalSection`,
		`	GlobalSection(ProjectConfigurationPlatforms) = postSolution`,
		`		{00000000-0000-0000-0000-00000000000A}.Debug|Win32.ActiveCfg = Debug|x86`,
		`		{00000000-0000-0000-0000-00000000000B}.Debug|Win32.ActiveCfg = Debug|Win32`,
		`		{00000000-0000-0000-0000-00000000000A}.Release|Win32.ActiveCfg = Release|Win32`,
		`	EndGlobalSection`,
		`EndGlobal`,
	}, "\n")

	parsed, err := ReadSolution(strings.NewReader(text), "skip.sln")
	if err != nil {
		t.Fatalf("read solution: %v", err)
	}
	if parsed.VisualStudio != VS_2015 {
		t.Errorf("visual studio: got %v, want %v", parsed.VisualStudio, VS_2015)
	}
	a := parsed.FindProjectByName("a")
	if diff := cmp.Diff([]ConfigLabel{"Debug|x86"}, a.SlnConfigurations); diff != "" {
		t.Errorf("mapped configurations mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false}, a.SlnBuildProject); diff != "" {
		t.Errorf("build flags mismatch (-want +got):\n%s", diff)
	}
	if a.Dependencies != nil {
		t.Errorf("no dependency section should leave a nil list")
	}
}

func TestSortSolutionConfigurations(t *testing.T) {
	sorted := SortSolutionConfigurations([]ConfigLabel{
		"Release|x64", "Debug|x86", "Debug|Win32", "Debug|ARM", "Debug|x64",
	})
	expected := []ConfigLabel{"Debug|ARM", "Debug|Win32", "Debug|x64", "Debug|x86", "Release|x64"}
	if diff := cmp.Diff(expected, sorted); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
}

func TestSolutionMappingDefaults(t *testing.T) {
	solution := NewSolution("map.sln")
	solution.Configurations = []ConfigLabel{"Debug|x86", "Debug|ARM", "Release|x64"}

	project := NewProject("p")
	project.ProjectConfigurations = []ConfigLabel{"Debug|Win32", "Release|x64"}
	solution.AddProject(project, nil)

	expected := []SolutionMapping{
		{Label: "Debug|Win32", Build: true},
		{Label: "Debug|Win32", Build: false},
		{Label: "Release|x64", Build: true},
	}
	for i, want := range expected {
		if got := project.GetSolutionMapping(solution, i); got != want {
			t.Errorf("mapping %d: got %+v, want %+v", i, got, want)
		}
	}

	project.Keyword = KEYWORD_PACKAGE
	if got := project.GetSolutionMapping(solution, 2); !got.Deploy {
		t.Errorf("packaging projects should deploy by default")
	}
}

func TestVisualStudioFromSlnNumber(t *testing.T) {
	for n, want := range map[int]VisualStudioVersion{
		2010: VS_2010,
		2013: VS_2013,
		14:   VS_2015,
		15:   VS_2017,
		16:   VS_2019,
		17:   VS_2022,
	} {
		got, err := VisualStudioVersionFromSlnNumber(n)
		if err != nil {
			t.Errorf("%d: %v", n, err)
		} else if got != want {
			t.Errorf("%d: got %v, want %v", n, got, want)
		}
	}
	if _, err := VisualStudioVersionFromSlnNumber(9); err == nil {
		t.Errorf("expected an error for an unsupported version")
	}
}

func TestSolutionCloneIsIndependent(t *testing.T) {
	solution := newTestSolution()
	clone := solution.Clone()

	clone.FindProjectByName("app").Dependencies[0] = base.MakeGuid("other")
	clone.FindProjectByName("core").Name = "renamed"

	if solution.FindProjectByName("core") == nil {
		t.Errorf("renaming the clone changed the original")
	}
	if solution.FindProjectByName("app").Dependencies[0] != base.MakeGuid("core") {
		t.Errorf("clone shares its dependency list with the original")
	}
	if parent := clone.FindProjectByName("renamed").Parent; parent == nil || parent.Name != "libs" || parent == solution.Projects[0] {
		t.Errorf("clone tree should be relinked to cloned folders")
	}
}
