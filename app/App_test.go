package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poppolopoppo/syncproj/builder"
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

const testScript = `
solution("S")
configurations("Debug", "Release")
platforms("x64")
group("libs")
project("core")
kind("StaticLib")
files("core.cpp")
project("app")
kind("ConsoleApp")
files("main.cpp")
dependson("core")
`

func newTestApp(t *testing.T) (*App, utils.Directory) {
	t.Helper()
	dir := utils.MakeDirectory(t.TempDir())
	for name, content := range map[string]string{
		"build.lua": testScript,
		"core.cpp":  "",
		"main.cpp":  "int main() { return 0; }\n",
	} {
		if err := os.WriteFile(filepath.Join(dir.String(), name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	config := DefaultConfig()
	config.VisualStudio = vstudio.VS_2022
	return NewApp(config, dir, &bytes.Buffer{}), dir
}

func TestRunCommand(t *testing.T) {
	app, dir := newTestApp(t)
	app.Config.Report = "report.json"

	if err := app.Run(COMMAND_RUN, "build.lua"); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, it := range []string{"S.sln", "core.vcxproj", "app.vcxproj", "report.json"} {
		if !dir.File(it).Exists() {
			t.Errorf("%s was not written", it)
		}
	}
	if !builder.SnapshotFile(app.CacheDir(), dir.File("S.sln").String()).Exists() {
		t.Error("snapshot was not written")
	}

	var report struct {
		Files []utils.UpdateEntry `json:"files"`
	}
	if err := utils.UFS.Open(dir.File("report.json"), func(r io.Reader) error {
		return base.JsonDeserialize(&report, r)
	}); err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(report.Files) != 5 {
		t.Errorf("expected 5 files in the report, got %d", len(report.Files))
	}
	for _, it := range report.Files {
		if it.Status != utils.UPDATE_UPDATED {
			t.Errorf("%s: got %v, want %v", it.Path, it.Status, utils.UPDATE_UPDATED)
		}
	}
}

func TestRunCommandScriptError(t *testing.T) {
	app, dir := newTestApp(t)
	if err := os.WriteFile(dir.File("broken.lua").String(), []byte("solution(\"S\")\nfiles(\"x.cpp\")\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := app.Run(COMMAND_RUN, "broken.lua")
	if err == nil || !strings.Contains(err.Error(), "broken.lua:2:") {
		t.Errorf("expected an error at broken.lua:2, got %v", err)
	}
	if dir.File("S.sln").Exists() {
		t.Error("nothing should be saved after a script error")
	}
}

func TestResaveIsStable(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.Run(COMMAND_RUN, "build.lua"); err != nil {
		t.Fatalf("run: %v", err)
	}

	resave := NewApp(app.Config, app.WorkDir, &bytes.Buffer{})
	if err := resave.Run(COMMAND_RESAVE, "S.sln"); err != nil {
		t.Fatalf("resave: %v", err)
	}
	if n := resave.Ledger().Count(utils.UPDATE_UPDATED); n != 0 {
		t.Errorf("resave should not change anything, %d files updated: %v", n, resave.Ledger().Entries())
	}

	project := NewApp(app.Config, app.WorkDir, &bytes.Buffer{})
	if err := project.Run(COMMAND_RESAVE, "core.vcxproj"); err != nil {
		t.Fatalf("resave project: %v", err)
	}
	if n := project.Ledger().Count(utils.UPDATE_UPDATED); n != 0 {
		t.Errorf("resave project should not change anything, %d files updated", n)
	}

	if err := project.Run(COMMAND_RESAVE, "build.lua"); err == nil {
		t.Error("resave should reject scripts")
	}
}

func TestInspect(t *testing.T) {
	app, dir := newTestApp(t)
	if err := app.Run(COMMAND_RUN, "build.lua"); err != nil {
		t.Fatalf("run: %v", err)
	}

	inspect := func() SolutionView {
		t.Helper()
		var out bytes.Buffer
		if err := app.Inspect(dir.File("S.sln"), &out); err != nil {
			t.Fatalf("inspect: %v", err)
		}
		var view SolutionView
		if err := base.JsonDeserialize(&view, &out, base.OptionJsonStrict(true)); err != nil {
			t.Fatalf("decode: %v\n%s", err, out.String())
		}
		return view
	}

	view := inspect()
	if !view.Snapshot {
		t.Error("fresh snapshot should be used")
	}
	if len(view.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %+v", view.Projects)
	}
	byName := make(map[string]ProjectView)
	for _, it := range view.Projects {
		byName[it.Name] = it
	}
	if core := byName["core"]; core.Folder != "libs" || len(core.Files) != 1 {
		t.Errorf("unexpected core project: %+v", core)
	}
	if main := byName["app"]; len(main.Dependencies) != 1 || main.Dependencies[0] != "core" {
		t.Errorf("unexpected app dependencies: %+v", main.Dependencies)
	}

	// any edit of the solution text invalidates the snapshot
	sln := dir.File("S.sln").String()
	text, err := os.ReadFile(sln)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sln, append(text, "\n"...), 0o644); err != nil {
		t.Fatal(err)
	}
	if view := inspect(); view.Snapshot || len(view.Projects) != 2 {
		t.Errorf("stale snapshot should be ignored, got snapshot=%v with %d projects", view.Snapshot, len(view.Projects))
	}
}

func TestRunExpectsOneArgument(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.Run(COMMAND_INSPECT); err == nil {
		t.Error("missing argument should fail")
	}
}
