package builder

import (
	"github.com/poppolopoppo/syncproj/vstudio"
)

/***************************************
 * Selection
 ***************************************/

// Selection is what setting calls apply to, either ProjectWide or FileScoped.
type Selection interface {
	// Len is the number of selected configuration labels.
	Len(project *vstudio.Project) int
	isSelection()
}

// ProjectWide selects project configurations, every label when All is set.
type ProjectWide struct {
	All     bool
	Indices []int
}

// FileScoped selects the per-configuration overrides of one file.
type FileScoped struct {
	File    *vstudio.FileEntry
	Indices []int
}

func (x ProjectWide) isSelection() {}
func (x FileScoped) isSelection()  {}

func (x ProjectWide) Len(project *vstudio.Project) int {
	if x.All {
		return len(project.ProjectConfigurations)
	}
	return len(x.Indices)
}
func (x FileScoped) Len(*vstudio.Project) int {
	return len(x.Indices)
}

// Resolve returns the selected indices, expanding All against project.
func (x ProjectWide) Resolve(project *vstudio.Project) []int {
	if !x.All {
		return x.Indices
	}
	indices := make([]int, len(project.ProjectConfigurations))
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func selectAll() Selection {
	return ProjectWide{All: true}
}
