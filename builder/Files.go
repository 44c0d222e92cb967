package builder

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

var errPatternUnmatched = errors.New("pattern did not match any file")

// FILES_OPTIONAL_PREFIX marks a pattern which may match nothing, the literal
// pattern is then registered instead.
const FILES_OPTIONAL_PREFIX = "?"

/***************************************
 * Project paths
 ***************************************/

func (x *Context) projectFile(project *vstudio.Project) utils.Filename {
	root := x.workDir
	if state, ok := x.projects[project]; ok {
		root = state.Root
	}
	return root.File(filepath.FromSlash(utils.ToSlashPath(project.GetRelativePath())))
}

func (x *Context) projectDir(project *vstudio.Project) utils.Directory {
	return x.projectFile(project).Dirname
}

// projectRelativePath converts a path given relative to the script directory
// into a path relative to the project file.
func (x *Context) projectRelativePath(project *vstudio.Project, path string) string {
	absolute := path
	if !filepath.IsAbs(path) {
		absolute = x.scriptDir.File(filepath.FromSlash(utils.ToSlashPath(path))).String()
	}
	return utils.RelativePath(x.projectDir(project), absolute)
}

// isKnownPath accepts the files of sibling projects, which may not be
// generated yet.
func (x *Context) isKnownPath(relative string) bool {
	if x.solution == nil {
		return false
	}
	path := x.scriptDir.File(filepath.FromSlash(relative)).String()
	for _, it := range x.solution.Projects {
		if it.IsFolder {
			continue
		}
		if strings.EqualFold(x.projectFile(it).String(), path) {
			return true
		}
	}
	return false
}

/***************************************
 * Files / RemoveFiles
 ***************************************/

// Files registers the files matching each glob pattern.
func (x *Context) Files(patterns ...string) error {
	project, err := x.requireProject("files")
	if err != nil {
		return err
	}

	for _, pattern := range patterns {
		optional := strings.HasPrefix(pattern, FILES_OPTIONAL_PREFIX)
		pattern = utils.ToSlashPath(strings.TrimPrefix(pattern, FILES_OPTIONAL_PREFIX))

		matches, err := utils.Glob(x.scriptDir, pattern,
			utils.GlobOptionCache(x.options.Cache),
			utils.GlobOptionKnown(x.isKnownPath))
		if err != nil {
			return &FileError{Path: pattern, Err: err}
		}

		if len(matches) == 0 {
			if !optional {
				return &FileError{Path: x.scriptDir.File(filepath.FromSlash(pattern)).String(), Err: errPatternUnmatched}
			}
			base.LogVerbose(LogBuilder, "files: optional pattern %q matched nothing, registered as is", pattern)
			matches = []string{pattern}
		}

		for _, it := range matches {
			x.addFile(project, x.projectRelativePath(project, it))
		}
	}
	return nil
}

func (x *Context) addFile(project *vstudio.Project, relativePath string) {
	if existing, _ := project.FindFile(relativePath); existing != nil {
		if existing.RelativePath != relativePath {
			base.LogWarning(LogBuilder, "files: %q only differs by case from %q, merged into the latter", relativePath, existing.RelativePath)
		}
		return
	}

	file := vstudio.NewFileEntry(relativePath)
	project.Files = append(project.Files, file)
	base.LogDebug(LogBuilder, "files: %q registered as %v in %q", file.RelativePath, file.IncludeType, project.Name)
}

// RemoveFiles drops the registered files matching each glob pattern.
func (x *Context) RemoveFiles(patterns ...string) error {
	project, err := x.requireProject("removefiles")
	if err != nil {
		return err
	}

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(pattern, FILES_OPTIONAL_PREFIX)
		re, _ := utils.MakeGlobSegmentRegexp(x.projectRelativePath(project, pattern), true)

		removed := 0
		project.Files = base.RemoveUnless(func(file *vstudio.FileEntry) bool {
			if !re.MatchString(file.RelativePath) {
				return true
			}
			if scoped, ok := x.selection.(FileScoped); ok && scoped.File == file {
				x.selection = selectAll()
			}
			removed++
			return false
		}, project.Files...)

		if removed == 0 {
			base.LogWarning(LogBuilder, "removefiles: %q did not match any file of %q", pattern, project.Name)
		} else {
			base.LogDebug(LogBuilder, "removefiles: %q removed %d files from %q", pattern, removed, project.Name)
		}
	}
	return nil
}
