package app

import (
	"github.com/poppolopoppo/syncproj/vstudio"
)

// SolutionView is the json document printed by inspect, the model itself
// links children to parents and can't be encoded as is.
type SolutionView struct {
	Path           string                `json:"path"`
	Snapshot       bool                  `json:"snapshot"`
	VisualStudio   string                `json:"visualstudio"`
	Configurations []vstudio.ConfigLabel `json:"configurations"`
	Projects       []ProjectView         `json:"projects"`
}

type ProjectView struct {
	Name           string                `json:"name"`
	Guid           string                `json:"guid"`
	Folder         string                `json:"folder,omitempty"`
	Path           string                `json:"path,omitempty"`
	Language       string                `json:"language,omitempty"`
	Configurations []vstudio.ConfigLabel `json:"configurations,omitempty"`
	Files          []string              `json:"files,omitempty"`
	Dependencies   []string              `json:"dependencies,omitempty"`
}

func MakeSolutionView(solution *vstudio.Solution) SolutionView {
	view := SolutionView{
		Path:           solution.Path,
		VisualStudio:   solution.GetVisualStudio().String(),
		Configurations: solution.Configurations,
		Projects:       []ProjectView{},
	}
	solution.Walk(func(project *vstudio.Project) {
		if project.IsFolder {
			return
		}
		it := ProjectView{
			Name:           project.Name,
			Guid:           project.GetGuid().String(),
			Path:           project.GetRelativePath(),
			Language:       project.Language.String(),
			Configurations: project.ProjectConfigurations,
		}
		if parent := project.Parent; parent != nil && parent != solution.Root {
			it.Folder = parent.Name
		}
		for _, file := range project.Files {
			it.Files = append(it.Files, file.RelativePath)
		}
		for _, guid := range project.Dependencies {
			if dependency := solution.FindProjectByGuid(guid); dependency != nil {
				it.Dependencies = append(it.Dependencies, dependency.Name)
			} else {
				it.Dependencies = append(it.Dependencies, guid.String())
			}
		}
		view.Projects = append(view.Projects, it)
	})
	return view
}
