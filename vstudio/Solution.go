package vstudio

import (
	"github.com/poppolopoppo/syncproj/internal/base"
)

const MINIMUM_VISUALSTUDIO_VERSION_DEFAULT = "10.0.40219.1"

/***************************************
 * Solution
 ***************************************/

type Solution struct {
	Path string

	VisualStudio               VisualStudioVersion
	VisualStudioVersion        string
	MinimumVisualStudioVersion string

	Configurations []ConfigLabel
	// folders included, in insertion order
	Projects []*Project

	// synthetic folder, never serialized in a .sln
	Root *Project
}

func NewSolution(path string) *Solution {
	return &Solution{
		Path: path,
		Root: &Project{IsFolder: true},
	}
}

func (x *Solution) GetVisualStudio() VisualStudioVersion {
	return x.VisualStudio.Or(VS_LATEST)
}

func (x *Solution) GetMinimumVisualStudioVersion() string {
	if len(x.MinimumVisualStudioVersion) > 0 {
		return x.MinimumVisualStudioVersion
	}
	return MINIMUM_VISUALSTUDIO_VERSION_DEFAULT
}

func (x *Solution) Platforms() (result []string) {
	for _, it := range x.Configurations {
		result = base.AppendUniq(result, it.Platform())
	}
	return
}
func (x *Solution) ConfigurationNames() (result []string) {
	for _, it := range x.Configurations {
		result = base.AppendUniq(result, it.Configuration())
	}
	return
}

func (x *Solution) IndexOfConfiguration(label ConfigLabel) int {
	for i, it := range x.Configurations {
		if it == label {
			return i
		}
	}
	return -1
}

// AddProject appends project to the list and links it under parent, or
// under the root when parent is nil.
func (x *Solution) AddProject(project *Project, parent *Project) {
	if parent == nil {
		parent = x.Root
	}
	x.Projects = append(x.Projects, project)
	parent.AddChild(project)
}

func (x *Solution) FindProjectByName(name string) *Project {
	for _, it := range x.Projects {
		if it.Name == name {
			return it
		}
	}
	return nil
}
func (x *Solution) FindProjectByGuid(guid base.Guid) *Project {
	for _, it := range x.Projects {
		if it.GetGuid() == guid {
			return it
		}
	}
	return nil
}

// Walk visits the tree breadth-first, the root itself excluded.
func (x *Solution) Walk(each func(*Project)) {
	queue := base.CopySlice(x.Root.Children...)
	for i := 0; i < len(queue); i++ {
		each(queue[i])
		queue = append(queue, queue[i].Children...)
	}
}

func (x *Solution) Normalize() {
	for _, it := range x.Projects {
		it.Normalize()
	}
}

// Clone deep-copies every project, keeping the tree shape.
func (x *Solution) Clone() *Solution {
	clone := &Solution{
		Path:                       x.Path,
		VisualStudio:               x.VisualStudio,
		VisualStudioVersion:        x.VisualStudioVersion,
		MinimumVisualStudioVersion: x.MinimumVisualStudioVersion,
		Configurations:             base.CopySlice(x.Configurations...),
		Projects:                   make([]*Project, len(x.Projects)),
		Root:                       x.Root.cloneNode(),
	}

	mapping := make(map[*Project]*Project, len(x.Projects)+1)
	mapping[x.Root] = clone.Root
	for i, it := range x.Projects {
		clone.Projects[i] = it.cloneNode()
		mapping[it] = clone.Projects[i]
	}

	var relink func(*Project)
	relink = func(node *Project) {
		for _, child := range node.Children {
			if cloned, ok := mapping[child]; ok {
				mapping[node].AddChild(cloned)
				relink(child)
			}
		}
	}
	relink(x.Root)
	return clone
}

func (x *Solution) Serialize(ar base.Archive) {
	ar.String(&x.Path)
	ar.Serializable(&x.VisualStudio)
	ar.String(&x.VisualStudioVersion)
	ar.String(&x.MinimumVisualStudioVersion)
	serializeConfigLabels(ar, &x.Configurations)
	base.SerializePointers[Project](ar, &x.Projects)

	// the tree is archived as one list of child indices per node, root first
	if ar.Flags().IsLoading() {
		x.Root = &Project{IsFolder: true}
	}
	nodes := append([]*Project{x.Root}, x.Projects...)
	for _, node := range nodes {
		var children []int32
		if !ar.Flags().IsLoading() {
			for _, child := range node.Children {
				if i, ok := base.IndexOf(child, x.Projects...); ok {
					children = append(children, int32(i))
				}
			}
		}
		base.SerializeMany(ar, ar.Int32, &children)
		if ar.Flags().IsLoading() {
			for _, i := range children {
				if i < 0 || int(i) >= len(x.Projects) {
					ar.OnErrorf("solution: invalid child index %d", i)
					return
				}
				node.AddChild(x.Projects[i])
			}
		}
	}
}
