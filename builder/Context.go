package builder

import (
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

var LogBuilder = base.NewLogCategory("Builder")

/***************************************
 * Context options
 ***************************************/

type ContextOptions struct {
	WorkDir      utils.Directory
	CacheDir     utils.Directory
	VisualStudio vstudio.VisualStudioVersion
	Compression  base.CompressionFormat
	KeepTrying   bool
	Ledger       *utils.UpdateLedger
	Cache        *utils.DirectoryCache
}

type ContextOptionFunc func(*ContextOptions)

func OptionWorkDir(dir utils.Directory) ContextOptionFunc {
	return func(o *ContextOptions) {
		o.WorkDir = dir
	}
}

// OptionCacheDir enables model snapshots, written in dir when a solution is saved.
func OptionCacheDir(dir utils.Directory) ContextOptionFunc {
	return func(o *ContextOptions) {
		o.CacheDir = dir
	}
}
func OptionVisualStudio(version vstudio.VisualStudioVersion) ContextOptionFunc {
	return func(o *ContextOptions) {
		o.VisualStudio = version
	}
}
func OptionCompression(format base.CompressionFormat) ContextOptionFunc {
	return func(o *ContextOptions) {
		o.Compression = format
	}
}

// OptionKeepTrying still saves what was built when the build script failed.
func OptionKeepTrying(enabled bool) ContextOptionFunc {
	return func(o *ContextOptions) {
		o.KeepTrying = enabled
	}
}
func OptionLedger(ledger *utils.UpdateLedger) ContextOptionFunc {
	return func(o *ContextOptions) {
		o.Ledger = ledger
	}
}
func OptionDirectoryCache(cache *utils.DirectoryCache) ContextOptionFunc {
	return func(o *ContextOptions) {
		o.Cache = cache
	}
}

/***************************************
 * Context
 ***************************************/

type projectState struct {
	// directory the project relative path starts from
	Root      utils.Directory
	External  bool
	// read from disk, selecting it again is allowed
	Loaded    bool
	DependsOn []string
}

// Context holds the state of one build run: the active solution and project
// cursor, the declared configuration matrix and the current selection.
type Context struct {
	options ContextOptions

	workDir   utils.Directory
	scriptDir utils.Directory

	solution  *vstudio.Solution
	solutions []*vstudio.Solution
	project   *vstudio.Project
	projects  map[*vstudio.Project]*projectState
	// flushed with no active solution, already saved
	standalone []*vstudio.Project

	platforms      []string
	configurations []string
	groupPath      string
	folders        map[string]*vstudio.Project
	selection      Selection
}

func NewContext(options ...ContextOptionFunc) *Context {
	x := &Context{
		options: ContextOptions{
			Compression: base.COMPRESSION_FORMAT_LZ4,
		},
		projects:  make(map[*vstudio.Project]*projectState),
		folders:   make(map[string]*vstudio.Project),
		selection: selectAll(),
	}
	for _, it := range options {
		it(&x.options)
	}
	if !x.options.WorkDir.Valid() {
		wd, err := utils.UFS.GetWorkingDir()
		base.LogPanicIfFailed(LogBuilder, err)
		x.options.WorkDir = wd
	}
	if x.options.Ledger == nil {
		x.options.Ledger = utils.NewUpdateLedger()
	}
	if x.options.Cache == nil {
		x.options.Cache = utils.NewDirectoryCache(utils.DIRECTORYCACHE_DEFAULT_SIZE)
	}
	x.workDir = x.options.WorkDir
	x.scriptDir = x.options.WorkDir
	return x
}

func (x *Context) Options() ContextOptions { return x.options }
func (x *Context) Ledger() *utils.UpdateLedger { return x.options.Ledger }
func (x *Context) ActiveSolution() *vstudio.Solution { return x.solution }
func (x *Context) ActiveProject() *vstudio.Project { return x.project }
func (x *Context) CurrentSelection() Selection { return x.selection }
func (x *Context) Solutions() []*vstudio.Solution { return x.solutions }
func (x *Context) StandaloneProjects() []*vstudio.Project { return x.standalone }
func (x *Context) WorkDir() utils.Directory { return x.workDir }
func (x *Context) ScriptDir() utils.Directory { return x.scriptDir }

// WithScriptDir runs scope with file patterns and project paths resolved
// from dir, as for an included script.
func (x *Context) WithScriptDir(dir utils.Directory, scope func() error) error {
	previous := x.scriptDir
	x.scriptDir = dir
	defer func() {
		x.scriptDir = previous
	}()
	return scope()
}

func (x *Context) visualStudio() vstudio.VisualStudioVersion {
	if x.solution != nil && x.solution.VisualStudio != vstudio.VS_DEFAULT {
		return x.solution.VisualStudio
	}
	return x.options.VisualStudio
}

func (x *Context) requireProject(call string) (*vstudio.Project, error) {
	if x.project == nil {
		return nil, configurationError(call, "no project selected")
	}
	return x.project, nil
}

// matrix is the cartesian product of the declared lists, configurations outer.
func (x *Context) matrix() (labels []vstudio.ConfigLabel) {
	labels = make([]vstudio.ConfigLabel, 0, len(x.configurations)*len(x.platforms))
	for _, configuration := range x.configurations {
		for _, platform := range x.platforms {
			labels = append(labels, vstudio.MakeConfigLabel(configuration, platform))
		}
	}
	return
}

/***************************************
 * Platforms / Configurations
 ***************************************/

func (x *Context) Platforms(platforms ...string) error {
	return x.declareMatrix("platforms", &x.platforms, platforms)
}

func (x *Context) Configurations(configurations ...string) error {
	return x.declareMatrix("configurations", &x.configurations, configurations)
}

func (x *Context) declareMatrix(call string, dst *[]string, values []string) error {
	if project := x.project; project != nil && hasConfigurationSettings(project) {
		return configurationError(call, "project %q already has per-configuration settings, declare %s before any setting", project.Name, call)
	}

	*dst = base.AppendUniq([]string{}, values...)
	labels := x.matrix()

	switch {
	case x.project != nil:
		x.project.ProjectConfigurations = labels
		x.selection = selectAll()
	case x.solution != nil:
		x.solution.Configurations = labels
	}
	base.LogDebug(LogBuilder, "%s(%v) -> %v", call, values, labels)
	return nil
}

func hasConfigurationSettings(project *vstudio.Project) bool {
	if len(project.Configurations) > 0 {
		return true
	}
	for _, it := range project.Files {
		if it.HasOverrides() {
			return true
		}
	}
	return false
}
