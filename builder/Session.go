package builder

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

/***************************************
 * Session
 ***************************************/

// Session is a build run: builder calls go through its Context, and Close
// saves everything which was built, exactly once.
type Session struct {
	*Context

	once    sync.Once
	failure error
	closed  error
}

func NewSession(options ...ContextOptionFunc) *Session {
	return &Session{Context: NewContext(options...)}
}

// Fail records an error of the build script. Close won't save anything
// afterwards, unless keep trying was enabled.
func (x *Session) Fail(err error) {
	if err != nil {
		x.failure = errors.Join(x.failure, err)
	}
}

func (x *Session) Failed() bool { return x.failure != nil }

// Close flushes the active project and saves every solution, later calls
// return the result of the first one.
func (x *Session) Close() error {
	x.once.Do(func() {
		x.closed = x.close()
	})
	return x.closed
}

func (x *Session) close() error {
	if x.failure != nil && !x.options.KeepTrying {
		base.LogWarning(LogBuilder, "build failed, solutions were not saved")
		return x.failure
	}

	errs := []error{x.failure}
	if err := x.flush(); err != nil {
		errs = append(errs, err)
	}
	for _, solution := range x.solutions {
		if err := x.saveSolution(solution); err != nil {
			base.LogError(LogBuilder, "failed to save %q: %v", solution.Path, err)
			errs = append(errs, err)
		}
	}

	ledger := x.Ledger()
	base.LogVerbose(LogBuilder, "%d files updated, %d up-to-date, %d errors",
		ledger.Count(utils.UPDATE_UPDATED), ledger.Count(utils.UPDATE_UPTODATE), ledger.Count(utils.UPDATE_ERROR))
	return errors.Join(errs...)
}

/***************************************
 * Persistence
 ***************************************/

func FiltersFile(projectFile utils.Filename) utils.Filename {
	return utils.Filename{
		Dirname:  projectFile.Dirname,
		Basename: projectFile.Basename + vstudio.FILTERS_EXTENSION,
	}
}

// SnapshotFile is where the model of a solution is archived in cache, named
// after the solution and keyed by its full path.
func SnapshotFile(cache utils.Directory, solutionPath string) utils.Filename {
	key := base.StringFingerprint(filepath.ToSlash(filepath.Clean(solutionPath)))
	return cache.File(fmt.Sprint(utils.MakeFilename(solutionPath).TrimExt(), "-", key.ShortString(), vstudio.SNAPSHOT_EXTENSION))
}

func (x *Context) saveProject(project *vstudio.Project) error {
	project.Normalize()
	dst := x.projectFile(project)

	if _, err := utils.UpdateFile(x.Ledger(), FiltersFile(dst), func(w io.Writer) error {
		return vstudio.WriteFilters(w, project)
	}); err != nil {
		return err
	}
	_, err := utils.UpdateFile(x.Ledger(), dst, func(w io.Writer) error {
		return vstudio.WriteProject(w, project)
	})
	return err
}

func (x *Context) saveSolution(solution *vstudio.Solution) error {
	if err := x.resolveDependencies(solution); err != nil {
		return err
	}
	solution.Normalize()

	var errs []error
	for _, project := range solution.Projects {
		state, ok := x.projects[project]
		if !ok || state.External || !project.IsGenerated() {
			continue
		}
		if project.VisualStudio == vstudio.VS_DEFAULT {
			project.VisualStudio = solution.VisualStudio
		}
		if err := x.saveProject(project); err != nil {
			errs = append(errs, err)
		}
	}

	dst := utils.MakeFilename(solution.Path)
	if _, err := utils.UpdateFile(x.Ledger(), dst, func(w io.Writer) error {
		return vstudio.WriteSolution(w, solution)
	}); err != nil {
		return errors.Join(append(errs, err)...)
	}

	if x.options.CacheDir.Valid() {
		entry, _ := x.Ledger().Find(dst.String())
		if err := x.saveSnapshot(solution, entry.Fingerprint); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (x *Context) saveSnapshot(solution *vstudio.Solution, source base.Fingerprint) error {
	dst := SnapshotFile(x.options.CacheDir, solution.Path)
	base.LogVeryVerbose(LogBuilder, "snapshot %q in %q (%v)", solution.Path, dst, x.options.Compression)
	return utils.UFS.CreateBuffered(dst, func(w io.Writer) error {
		return vstudio.SaveSnapshot(w, &vstudio.Snapshot{Source: source, Solution: solution}, x.options.Compression)
	})
}

/***************************************
 * Loading
 ***************************************/

func LoadProject(src utils.Filename) (project *vstudio.Project, err error) {
	err = utils.UFS.Open(src, func(r io.Reader) (er error) {
		project, er = vstudio.ReadProject(r, src.String())
		return
	})
	if err != nil && !errors.As(err, new(*vstudio.FormatError)) {
		err = &FileError{Path: src.String(), Err: err}
	}
	return
}

// LoadSolution reads a solution and the project files it generates.
func LoadSolution(src utils.Filename) (solution *vstudio.Solution, err error) {
	err = utils.UFS.Open(src, func(r io.Reader) (er error) {
		solution, er = vstudio.ReadSolution(r, src.String())
		return
	})
	if err != nil {
		if !errors.As(err, new(*vstudio.FormatError)) {
			err = &FileError{Path: src.String(), Err: err}
		}
		return nil, err
	}

	for _, project := range solution.Projects {
		if !project.IsGenerated() {
			continue
		}
		loaded, err := LoadProject(src.Dirname.File(utils.ToSlashPath(project.GetRelativePath())))
		if err != nil {
			return nil, err
		}
		project.AdoptProjectFile(loaded)
	}
	return solution, nil
}

// OpenSolution loads a solution and makes it the active one, so that its
// projects can be selected again with Project() and saved on Close.
func (x *Context) OpenSolution(src utils.Filename) error {
	if err := x.flush(); err != nil {
		return err
	}
	solution, err := LoadSolution(src)
	if err != nil {
		return err
	}

	for _, project := range solution.Projects {
		x.projects[project] = &projectState{
			Root:     src.Dirname,
			External: !project.IsGenerated(),
			Loaded:   true,
		}
	}
	x.folders = make(map[string]*vstudio.Project)
	solution.Walk(func(node *vstudio.Project) {
		if node.IsFolder {
			x.folders[folderPath(node)] = node
		}
	})

	x.solution = solution
	x.solutions = append(x.solutions, solution)
	x.configurations = solution.ConfigurationNames()
	x.platforms = solution.Platforms()
	base.LogVerbose(LogBuilder, "opened solution %q with %d projects", src, len(solution.Projects))
	return nil
}

// OpenProject loads a project file and makes it the active project, outside
// of any solution: it is saved again when flushed.
func (x *Context) OpenProject(src utils.Filename) error {
	if err := x.flush(); err != nil {
		return err
	}
	project, err := LoadProject(src)
	if err != nil {
		return err
	}
	project.RelativePath = src.TrimExt()

	x.projects[project] = &projectState{Root: src.Dirname, Loaded: true}
	x.solution = nil
	x.project = project
	x.selection = selectAll()
	x.configurations = project.ConfigurationNames()
	x.platforms = project.Platforms()
	base.LogVerbose(LogBuilder, "opened project %q with %d files", src, len(project.Files))
	return nil
}

func folderPath(folder *vstudio.Project) string {
	path := folder.Name
	for it := folder.Parent; it != nil && it.Parent != nil; it = it.Parent {
		path = utils.JoinRelative(it.Name, path)
	}
	return path
}
