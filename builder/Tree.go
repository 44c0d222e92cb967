package builder

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

/***************************************
 * Solution / Project cursor
 ***************************************/

// Solution starts a new solution, the active project is flushed first.
func (x *Context) Solution(name string) error {
	if err := x.flush(); err != nil {
		return err
	}
	if len(name) == 0 {
		return configurationError("solution", "empty solution name")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".sln") {
		name += ".sln"
	}

	x.solution = vstudio.NewSolution(x.workDir.File(filepath.FromSlash(name)).String())
	x.solution.VisualStudio = x.options.VisualStudio
	x.solution.Configurations = x.matrix()
	x.solutions = append(x.solutions, x.solution)
	x.folders = make(map[string]*vstudio.Project)

	base.LogVerbose(LogBuilder, "new solution %q", x.solution.Path)
	return nil
}

func (x *Context) Project(name string) error {
	return x.specifyProject("project", name, false)
}

// ExternalProject references a project which is listed in the solution but
// never generated.
func (x *Context) ExternalProject(name string) error {
	return x.specifyProject("externalproject", name, true)
}

func (x *Context) specifyProject(call, name string, external bool) error {
	if err := x.flush(); err != nil {
		return err
	}
	if len(name) == 0 {
		return configurationError(call, "empty project name")
	}

	if x.solution != nil {
		if existing := x.solution.FindProjectByName(name); existing != nil && !existing.IsFolder {
			if state, ok := x.projects[existing]; ok && state.Loaded {
				x.project = existing
				x.selection = selectAll()
				base.LogVerbose(LogBuilder, "%s %q selected again", call, name)
				return nil
			}
			return configurationError(call, "project %q is already defined in %q", name, x.solution.Path)
		}
	}

	state := &projectState{
		Root:     x.workDir,
		External: external,
	}
	project := vstudio.NewProject(name)
	project.Guid = base.MakeGuid(name)
	project.RelativePath = utils.JoinRelative(x.scriptRelativeDir(), name)
	project.ProjectConfigurations = x.matrix()
	project.VisualStudio = x.visualStudio()

	if x.solution != nil {
		if other := x.solution.FindProjectByGuid(project.Guid); other != nil {
			return configurationError(call, "project %q has the same identifier as %q, %v", name, other.Name, project.Guid)
		}
		parent, err := x.makeGroupFolders(call)
		if err != nil {
			return err
		}
		state.Root = utils.MakeFilename(x.solution.Path).Dirname
		x.solution.AddProject(project, parent)
	}

	x.projects[project] = state
	x.project = project
	x.selection = selectAll()

	base.LogVerbose(LogBuilder, "new %s %q in %q", call, name, project.RelativePath)
	return nil
}

// flush retires the active project: it stays in the active solution, or is
// saved on its own when there is no solution.
func (x *Context) flush() error {
	project := x.project
	if project == nil {
		return nil
	}
	x.project = nil
	x.selection = selectAll()
	project.Normalize()

	if x.solution != nil {
		return nil
	}
	x.standalone = append(x.standalone, project)
	if state := x.projects[project]; state.External {
		return nil
	}
	return x.saveProject(project)
}

func (x *Context) scriptRelativeDir() string {
	root := x.workDir
	if x.solution != nil {
		root = utils.MakeFilename(x.solution.Path).Dirname
	}
	if relative := x.scriptDir.Relative(root); relative != "." {
		return relative
	}
	return ""
}

/***************************************
 * Group
 ***************************************/

// Group sets the solution folder path of the next projects.
func (x *Context) Group(path string) error {
	x.groupPath = path
	return nil
}

// makeGroupFolders creates the missing folders along the group path.
func (x *Context) makeGroupFolders(call string) (*vstudio.Project, error) {
	var parent *vstudio.Project
	pathSoFar := ""
	for _, part := range utils.SplitPath(x.groupPath) {
		pathSoFar = utils.JoinRelative(pathSoFar, part)
		folder, ok := x.folders[pathSoFar]
		if !ok {
			guid := base.MakeGuid(pathSoFar)
			if other := x.solution.FindProjectByGuid(guid); other != nil {
				return nil, configurationError(call, "solution folder %q has the same identifier as %q, %v", pathSoFar, other.Name, guid)
			}
			folder = vstudio.NewFolderProject(part, guid)
			x.solution.AddProject(folder, parent)
			x.folders[pathSoFar] = folder
			base.LogVeryVerbose(LogBuilder, "new solution folder %q %v", pathSoFar, folder.Guid)
		}
		parent = folder
	}
	return parent, nil
}

/***************************************
 * Identity
 ***************************************/

func (x *Context) Uuid(value string) error {
	project, err := x.requireProject("uuid")
	if err != nil {
		return err
	}
	guid, err := base.ParseGuid(value)
	if err != nil {
		return wrapConfigurationError("uuid", err, "invalid uuid value %q", value)
	}
	if x.solution != nil {
		for _, it := range x.solution.Projects {
			if it != project && it.GetGuid() == guid {
				return configurationError("uuid", "%v is already used by %q", guid, it.Name)
			}
		}
	}
	project.Guid = guid
	return nil
}

func (x *Context) Language(lang string) error {
	project, err := x.requireProject("language")
	if err != nil {
		return err
	}
	var language vstudio.Language
	if err := language.Set(lang); err != nil || language == vstudio.LANGUAGE_NONE {
		return configurationError("language", "language %q is not supported", lang)
	}
	project.Language = language
	return nil
}

// Location moves the working directory when no project is active, else it
// re-roots the project file.
func (x *Context) Location(path string) error {
	if x.project == nil {
		if filepath.IsAbs(path) {
			x.workDir = utils.MakeDirectory(path)
		} else {
			x.workDir = x.scriptDir.Folder(filepath.FromSlash(path))
		}
		x.scriptDir = x.workDir
		return nil
	}
	x.project.RelativePath = utils.JoinRelative(utils.CleanRelative(path), x.project.Name)
	return nil
}

// VsVer selects the IDE version of the active project, or of the active
// solution, or of everything created next.
func (x *Context) VsVer(version string) error {
	year, err := strconv.Atoi(version)
	if err != nil {
		return wrapConfigurationError("vsver", err, "invalid Visual Studio version %q", version)
	}
	vs, err := vstudio.VisualStudioVersionFromYear(year)
	if err != nil {
		return wrapConfigurationError("vsver", err, "unsupported Visual Studio version")
	}

	switch {
	case x.project != nil:
		x.project.VisualStudio = vs
	case x.solution != nil:
		x.solution.VisualStudio = vs
	default:
		x.options.VisualStudio = vs
	}
	return nil
}

/***************************************
 * Dependencies / References
 ***************************************/

// DependsOn records project names, resolved when the solution is saved.
func (x *Context) DependsOn(names ...string) error {
	project, err := x.requireProject("dependson")
	if err != nil {
		return err
	}
	state := x.projects[project]
	state.DependsOn = base.AppendUniq(state.DependsOn, names...)
	return nil
}

// References takes (path, guid) pairs, an empty guid is looked up among the
// sibling projects or derived from the project name.
func (x *Context) References(pairs ...string) error {
	project, err := x.requireProject("references")
	if err != nil {
		return err
	}
	if len(pairs)%2 != 0 {
		return configurationError("references", "expected (path, guid) pairs, got %d arguments", len(pairs))
	}

	for i := 0; i < len(pairs); i += 2 {
		path := utils.ToWindowsPath(pairs[i])
		var guid base.Guid
		if len(pairs[i+1]) > 0 {
			if guid, err = base.ParseGuid(pairs[i+1]); err != nil {
				return wrapConfigurationError("references", err, "invalid guid for %q", path)
			}
		} else {
			guid = x.guessReferenceGuid(path)
		}

		if _, ok := base.IndexIf(func(it vstudio.ProjectReference) bool {
			return strings.EqualFold(it.Path, path)
		}, project.References...); ok {
			base.LogWarning(LogBuilder, "references: %q is already referenced by %q", path, project.Name)
			continue
		}
		project.References = append(project.References, vstudio.ProjectReference{Path: path, Guid: guid})
	}
	return nil
}

func (x *Context) guessReferenceGuid(reference string) base.Guid {
	name := path.Base(utils.ToSlashPath(reference))
	name = strings.TrimSuffix(name, path.Ext(name))
	if x.solution != nil {
		if sibling := x.solution.FindProjectByName(name); sibling != nil {
			return sibling.GetGuid()
		}
	}
	return base.MakeGuid(name)
}

func (x *Context) resolveDependencies(solution *vstudio.Solution) error {
	for _, project := range solution.Projects {
		state, ok := x.projects[project]
		if !ok || len(state.DependsOn) == 0 {
			continue
		}
		dependencies := make([]base.Guid, 0, len(state.DependsOn))
		for _, name := range state.DependsOn {
			dependency := solution.FindProjectByName(name)
			if dependency == nil || dependency.IsFolder {
				return configurationError("dependson", "project %q depends on unknown project %q", project.Name, name)
			}
			dependencies = base.AppendUniq(dependencies, dependency.GetGuid())
		}
		project.Dependencies = dependencies
	}
	return nil
}
