package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poppolopoppo/syncproj/builder"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
	"github.com/stretchr/testify/require"
)

func writeScriptFiles(t *testing.T, dir utils.Directory, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir.String(), filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newTestHost(t *testing.T) (*Host, *builder.Session, utils.Directory) {
	t.Helper()
	dir := utils.MakeDirectory(t.TempDir())
	session := builder.NewSession(
		builder.OptionWorkDir(dir),
		builder.OptionVisualStudio(vstudio.VS_2019))
	host := NewHost(session.Context)
	t.Cleanup(host.Close)
	return host, session, dir
}

func readFile(t *testing.T, filename utils.Filename) string {
	t.Helper()
	data, err := os.ReadFile(filename.String())
	require.NoError(t, err)
	return string(data)
}

func TestRunScript(t *testing.T) {
	host, session, dir := newTestHost(t)
	writeScriptFiles(t, dir, map[string]string{
		"a.cpp": "int main() { return 0; }\n",
		"build.lua": `
solution("S")
configurations("Debug", "Release")
platforms("Win32")
project("P")
configurations("Debug", "Release")
platforms("Win32")
kind("ConsoleApp")
files("a.cpp")
`,
	})

	require.NoError(t, host.RunFile(dir.File("build.lua")))
	require.NoError(t, session.Close())

	sln := readFile(t, dir.File("S.sln"))
	require.Contains(t, sln, "{50000000-0000-0000-0000-000000000000}.Debug|Win32.Build.0 = Debug|Win32")
	require.Contains(t, sln, "{50000000-0000-0000-0000-000000000000}.Release|Win32.Build.0 = Release|Win32")

	vcxproj := readFile(t, dir.File("P.vcxproj"))
	require.Contains(t, vcxproj, `<ClCompile Include="a.cpp" />`)
	require.Equal(t, 2, strings.Count(vcxproj, "<ConfigurationType>Application</ConfigurationType>"))
}

func TestBuilderErrorPosition(t *testing.T) {
	host, _, dir := newTestHost(t)
	writeScriptFiles(t, dir, map[string]string{
		"build.lua": `project("P")
configurations("Debug")
platforms("Win32")

filter("platforms:x64")
`,
	})

	err := host.RunFile(dir.File("build.lua"))
	require.Error(t, err)

	var scriptErr *ScriptError
	require.True(t, errors.As(err, &scriptErr), "unexpected error type: %v", err)
	require.Equal(t, 5, scriptErr.Line)
	require.Equal(t, dir.File("build.lua").String(), scriptErr.Path)

	var configErr *builder.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	require.Equal(t, "filter", configErr.Call)
	require.Contains(t, err.Error(), "build.lua:5: filter: platform \"x64\" unmatched, supported platforms: Win32")
}

func TestArgumentsAreFlattened(t *testing.T) {
	host, session, dir := newTestHost(t)
	writeScriptFiles(t, dir, map[string]string{
		"a.cpp": "", "b.cpp": "", "c.cpp": "",
	})

	require.NoError(t, host.RunString("flatten", `
local sources = { "a.cpp", { "b.cpp" } }
project("P")
configurations("Debug")
platforms("x64")
files(sources, "c.cpp")
defines({ "A", "B" }, "C", nil)
vsver(2017)
`))

	project := session.ActiveProject()
	require.NotNil(t, project)
	var files []string
	for _, it := range project.Files {
		files = append(files, it.RelativePath)
	}
	require.Equal(t, []string{"a.cpp", "b.cpp", "c.cpp"}, files)
	require.Equal(t, []string{"A", "B", "C"}, project.Configurations[0].PreprocessorDefinitions.Slice())
	require.Equal(t, vstudio.VS_2017, project.VisualStudio)
}

func TestUnsupportedArgument(t *testing.T) {
	host, _, _ := newTestHost(t)
	err := host.RunString("args", `project("P")
defines(function() end)`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "args:2:")
}

func TestBuildRuleTable(t *testing.T) {
	host, session, _ := newTestHost(t)
	require.NoError(t, host.RunString("rule", `
project("P")
configurations("Debug")
platforms("x64")
buildrule { command = "gen.bat", outputs = "gen.h" }
`))

	rule := session.ActiveProject().Configurations[0].CustomBuildRule
	require.Equal(t, &vstudio.CustomBuildRule{
		Command: "gen.bat",
		Message: vstudio.CUSTOMBUILD_DEFAULT_MESSAGE,
		Outputs: "gen.h",
	}, rule)

	err := host.RunString("rule", `buildrule { command = "gen.bat", output = "typo" }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "output")
}

func TestSandbox(t *testing.T) {
	host, _, _ := newTestHost(t)
	for _, name := range []string{"dofile", "loadfile", "load", "require", "io", "os", "debug", "package"} {
		require.NoError(t, host.RunString("sandbox", `assert(`+name+` == nil, "`+name+` is reachable")`), name)
	}
	require.NoError(t, host.RunString("libs", `
assert(string.upper("a") == "A")
assert(table.concat({ "a", "b" }, ",") == "a,b")
assert(math.max(1, 2) == 2)
print("sandbox", 1, true)
`))
}

func TestLuaError(t *testing.T) {
	host, _, _ := newTestHost(t)
	err := host.RunString("fails", `
error("custom failure")
`)
	require.Error(t, err)
	require.Equal(t, "fails:2: custom failure", err.Error())

	err = host.RunString("syntax", `project(`)
	var scriptErr *ScriptError
	require.True(t, errors.As(err, &scriptErr))
	require.Equal(t, "syntax", scriptErr.Path)
}

func TestInclude(t *testing.T) {
	host, session, dir := newTestHost(t)
	writeScriptFiles(t, dir, map[string]string{
		"lib/lib.cpp": "",
		"lib/lib.lua": `
project("lib")
kind("StaticLib")
files("lib.cpp")
`,
		"build.lua": `
solution("S")
configurations("Debug")
platforms("x64")
include("lib/lib.lua")
project("app")
dependson("lib")
`,
	})

	require.NoError(t, host.RunFile(dir.File("build.lua")))
	require.NoError(t, session.Close())

	sln := readFile(t, dir.File("S.sln"))
	require.Contains(t, sln, `"lib", "lib\lib.vcxproj"`)
	require.Contains(t, sln, `"app", "app.vcxproj"`)

	vcxproj := readFile(t, dir.Folder("lib").File("lib.vcxproj"))
	require.Contains(t, vcxproj, `<ClCompile Include="lib.cpp" />`)
	require.Equal(t, dir, session.ScriptDir())
}

func TestIncludeErrorPosition(t *testing.T) {
	host, _, dir := newTestHost(t)
	writeScriptFiles(t, dir, map[string]string{
		"lib/lib.lua": `project("lib")
files("missing.cpp")
`,
		"build.lua": `include("lib/lib.lua")`,
	})

	err := host.RunFile(dir.File("build.lua"))
	var scriptErr *ScriptError
	require.True(t, errors.As(err, &scriptErr), "unexpected error: %v", err)
	require.Equal(t, dir.Folder("lib").File("lib.lua").String(), scriptErr.Path)
	require.Equal(t, 2, scriptErr.Line)

	var fileErr *builder.FileError
	require.True(t, errors.As(err, &fileErr))

	err = host.RunString("missing", `include("nowhere.lua")`)
	require.True(t, errors.As(err, &fileErr))
	require.Contains(t, err.Error(), "missing:1:")
}
