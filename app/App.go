package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/poppolopoppo/syncproj/builder"
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/script"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

var LogApp = base.NewLogCategory("App")

/***************************************
 * Command
 ***************************************/

type Command byte

const (
	COMMAND_RUN Command = iota
	COMMAND_RESAVE
	COMMAND_INSPECT
)

var commandTags = base.EnumTagTable[Command]{
	{"run", COMMAND_RUN},
	{"resave", COMMAND_RESAVE},
	{"inspect", COMMAND_INSPECT},
}

func Commands() []Command { return commandTags.Values() }
func (x Command) String() string {
	return base.EnumString(x, commandTags)
}
func (x *Command) Set(in string) error {
	return base.ParseEnum(x, in, commandTags)
}
func (x Command) Usage() string {
	switch x {
	case COMMAND_RUN:
		return "run <script.lua>: run a build script and save what it declares"
	case COMMAND_RESAVE:
		return "resave <file.sln|file.vcxproj>: load a solution or a project and save it again"
	case COMMAND_INSPECT:
		return "inspect <file.sln>: print the solution model as json"
	default:
		base.UnexpectedValuePanic(x, x)
		return ""
	}
}

/***************************************
 * App
 ***************************************/

type App struct {
	Config  Config
	WorkDir utils.Directory
	Stdout  io.Writer

	ledger *utils.UpdateLedger
	cache  *utils.DirectoryCache
}

func NewApp(config Config, workDir utils.Directory, stdout io.Writer) *App {
	return &App{
		Config:  config,
		WorkDir: workDir,
		Stdout:  stdout,
		ledger:  utils.NewUpdateLedger(),
		cache:   utils.NewDirectoryCache(utils.DIRECTORYCACHE_DEFAULT_SIZE),
	}
}

func (x *App) Ledger() *utils.UpdateLedger { return x.ledger }

// CacheDir is invalid when the cache is disabled.
func (x *App) CacheDir() utils.Directory {
	switch {
	case len(x.Config.CacheDir) == 0:
		return utils.Directory{}
	case filepath.IsAbs(x.Config.CacheDir):
		return utils.MakeDirectory(x.Config.CacheDir)
	default:
		return x.WorkDir.Folder(x.Config.CacheDir)
	}
}

func (x *App) resolve(path string) utils.Filename {
	if filepath.IsAbs(path) {
		return utils.MakeFilename(path)
	}
	return x.WorkDir.File(path)
}

// Run executes a command, then writes the json report when one was asked for.
func (x *App) Run(command Command, args ...string) (err error) {
	if len(args) != 1 {
		return fmt.Errorf("%v: expected 1 argument, got %d\nusage: %s", command, len(args), command.Usage())
	}
	src := x.resolve(args[0])
	startedAt := time.Now()

	err = x.withLock(func() error {
		switch command {
		case COMMAND_RUN:
			return x.RunScript(src)
		case COMMAND_RESAVE:
			return x.Resave(src)
		case COMMAND_INSPECT:
			return x.Inspect(src, x.Stdout)
		default:
			return base.MakeUnexpectedValueError(&command, command)
		}
	})

	if len(x.Config.Report) > 0 {
		report := x.resolve(x.Config.Report)
		if er := utils.UFS.CreateBuffered(report, x.ledger.DumpJson); er != nil {
			base.LogError(LogApp, "failed to write report %q: %v", report, er)
			if err == nil {
				err = er
			}
		}
	}

	base.LogVerbose(LogApp, "%v %q took %v", command, src, time.Since(startedAt))
	return err
}

func (x *App) withLock(scope func() error) error {
	cache := x.CacheDir()
	if !cache.Valid() {
		return scope()
	}
	lock := utils.NewProcessLock(cache)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			base.LogWarning(LogApp, "failed to release %q: %v", lock.Path(), err)
		}
	}()
	return scope()
}

func (x *App) newSession(workDir utils.Directory) *builder.Session {
	return builder.NewSession(
		builder.OptionWorkDir(workDir),
		builder.OptionCacheDir(x.CacheDir()),
		builder.OptionVisualStudio(x.Config.VisualStudio),
		builder.OptionCompression(x.Config.Compression),
		builder.OptionKeepTrying(x.Config.KeepTrying),
		builder.OptionLedger(x.ledger),
		builder.OptionDirectoryCache(x.cache))
}

func (x *App) logSummary() {
	updated := x.ledger.Count(utils.UPDATE_UPDATED)
	upToDate := x.ledger.Count(utils.UPDATE_UPTODATE)
	if updated > 0 {
		base.LogClaim(LogApp, "%d files updated, %d up-to-date", updated, upToDate)
	} else {
		base.LogInfo(LogApp, "%d files up-to-date", upToDate)
	}
}

/***************************************
 * run
 ***************************************/

// RunScript runs a Lua build script, solutions are created next to it.
func (x *App) RunScript(src utils.Filename) error {
	session := x.newSession(src.Dirname)
	host := script.NewHost(session.Context)
	defer host.Close()

	if err := host.RunFile(src); err != nil {
		base.LogError(LogApp, "%v", err)
		session.Fail(err)
	}
	err := session.Close()
	x.logSummary()
	return err
}

/***************************************
 * resave
 ***************************************/

func (x *App) Resave(src utils.Filename) error {
	session := x.newSession(src.Dirname)

	var err error
	switch ext := strings.ToLower(src.Ext()); ext {
	case ".sln":
		err = session.OpenSolution(src)
	case ".vcxproj":
		err = session.OpenProject(src)
	default:
		err = fmt.Errorf("resave: unsupported file extension %q, expected .sln or .vcxproj", ext)
	}
	if err != nil {
		session.Fail(err)
	}

	err = session.Close()
	x.logSummary()
	return err
}

/***************************************
 * inspect
 ***************************************/

// LoadFreshSnapshot returns the snapshot of src when it was produced from
// the current text of src.
func LoadFreshSnapshot(cache utils.Directory, src utils.Filename) (*vstudio.Snapshot, bool) {
	if !cache.Valid() {
		return nil, false
	}
	archive := builder.SnapshotFile(cache, src.String())
	if !archive.Exists() {
		return nil, false
	}

	text, err := utils.UFS.ReadAll(src)
	if err != nil {
		return nil, false
	}

	var snapshot *vstudio.Snapshot
	if err = utils.UFS.Open(archive, func(r io.Reader) (er error) {
		snapshot, er = vstudio.LoadSnapshot(r)
		return
	}); err != nil {
		base.LogWarning(LogApp, "ignoring invalid snapshot %q: %v", archive, err)
		return nil, false
	}

	fingerprint := base.StringFingerprint(base.NormalizeNewlines(string(text)))
	if snapshot.Source != fingerprint {
		base.LogVerbose(LogApp, "snapshot %q is out-of-date", archive)
		return nil, false
	}
	return snapshot, true
}

// Inspect prints the solution model, from the snapshot when it is fresh.
func (x *App) Inspect(src utils.Filename, dst io.Writer) error {
	var view SolutionView
	if snapshot, ok := LoadFreshSnapshot(x.CacheDir(), src); ok {
		view = MakeSolutionView(snapshot.Solution)
		view.Snapshot = true
	} else {
		solution, err := builder.LoadSolution(src)
		if err != nil {
			return err
		}
		view = MakeSolutionView(solution)
	}
	view.Path = src.String()
	return base.JsonSerialize(&view, dst, base.OptionJsonPrettyPrint(true))
}
