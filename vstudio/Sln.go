package vstudio

import (
	"io"
	"sort"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	internal_io "github.com/poppolopoppo/syncproj/internal/io"
)

/***************************************
 * Solution configuration order
 ***************************************/

// SortSolutionConfigurations orders by configuration name, then puts the
// platforms not starting with 'x' first, then by lower-case platform.
func SortSolutionConfigurations(labels []ConfigLabel) []ConfigLabel {
	sorted := base.CopySlice(labels...)
	sort.SliceStable(sorted, func(i, j int) bool {
		c1, p1 := sorted[i].Split()
		c2, p2 := sorted[j].Split()
		if c1 != c2 {
			return c1 < c2
		}
		p1, p2 = strings.ToLower(p1), strings.ToLower(p2)
		if x1, x2 := strings.HasPrefix(p1, "x"), strings.HasPrefix(p2, "x"); x1 != x2 {
			return x2
		}
		return p1 < p2
	})
	return sorted
}

/***************************************
 * Solution to project configuration mapping
 ***************************************/

type SolutionMapping struct {
	Label  ConfigLabel
	Build  bool
	Deploy bool
}

// GetSolutionMapping resolves which project configuration is built for the
// solution configuration at index.
func (x *Project) GetSolutionMapping(solution *Solution, index int) (result SolutionMapping) {
	label := solution.Configurations[index]
	result.Label = label
	result.Build = true
	result.Deploy = (x.Keyword == KEYWORD_PACKAGE)

	if index < len(x.SlnConfigurations) && len(x.SlnConfigurations[index]) > 0 {
		result.Label = x.SlnConfigurations[index]
	} else if len(x.ProjectConfigurations) > 0 && x.IndexOfConfiguration(label) < 0 {
		configuration, platform := label.Split()
		if win32 := MakeConfigLabel(configuration, "Win32"); platform == "x86" && x.IndexOfConfiguration(win32) >= 0 {
			result.Label = win32
		} else {
			// can't be built, but still needs a mapping or the IDE rewrites the solution
			result.Build = false
			result.Deploy = false
			result.Label = x.ProjectConfigurations[0]
			for _, it := range x.ProjectConfigurations {
				if strings.HasPrefix(string(it), configuration) {
					result.Label = it
					break
				}
			}
		}
	}

	if index < len(x.SlnBuildProject) {
		result.Build = x.SlnBuildProject[index]
	}
	if index < len(x.SlnDeployProject) {
		result.Deploy = x.SlnDeployProject[index]
	}
	return
}

/***************************************
 * Solution writer
 ***************************************/

// WriteSolution regenerates the whole .sln text from the model.
func WriteSolution(dst io.Writer, solution *Solution) error {
	sln := internal_io.NewStructuredFile(dst, "\t")
	vs := solution.GetVisualStudio()

	sln.EmptyLine()
	sln.Println("Microsoft Visual Studio Solution File, Format Version %s", vs.SlnFormatVersion())
	sln.Println("# Visual Studio %s", vs.SlnHeader())
	if len(solution.VisualStudioVersion) > 0 {
		sln.Println("VisualStudioVersion = %s", solution.VisualStudioVersion)
	}
	if vs.Year() >= 2015 {
		sln.Println("MinimumVisualStudioVersion = %s", solution.GetMinimumVisualStudioVersion())
	}

	for _, project := range solution.Projects {
		sln.Println(`Project("%v") = "%s", "%s", "%v"`,
			project.GetHostGuid(), project.Name, project.GetRelativePath(), project.GetGuid())

		if project.Dependencies != nil {
			sln.BeginIndent()
			sln.Println("ProjectSection(ProjectDependencies) = postProject")
			sln.BeginIndent()
			for _, guid := range project.Dependencies {
				sln.Println("%v = %v", guid, guid)
			}
			sln.EndIndent()
			sln.Println("EndProjectSection")
			sln.EndIndent()
		}

		sln.Println("EndProject")
	}

	sortedConfigurations := SortSolutionConfigurations(solution.Configurations)

	sln.Println("Global")
	sln.BeginIndent()

	writeGlobalSection(sln, "SolutionConfigurationPlatforms", "preSolution", func() {
		for _, label := range sortedConfigurations {
			sln.Println("%s = %s", label, label)
		}
	})

	writeGlobalSection(sln, "ProjectConfigurationPlatforms", "postSolution", func() {
		for _, project := range solution.Projects {
			if project.IsFolder {
				continue
			}
			guid := project.GetGuid()
			for _, label := range sortedConfigurations {
				mapping := project.GetSolutionMapping(solution, solution.IndexOfConfiguration(label))
				sln.Println("%v.%s.ActiveCfg = %s", guid, label, mapping.Label)
				if mapping.Build {
					sln.Println("%v.%s.Build.0 = %s", guid, label, mapping.Label)
				}
				if mapping.Deploy {
					sln.Println("%v.%s.Deploy.0 = %s", guid, label, mapping.Label)
				}
			}
		}
	})

	writeGlobalSection(sln, "SolutionProperties", "preSolution", func() {
		sln.Println("HideSolutionNode = FALSE")
	})

	if len(solution.Projects) > 0 {
		writeGlobalSection(sln, "NestedProjects", "preSolution", func() {
			solution.Walk(func(project *Project) {
				if project.Parent != nil && project.Parent != solution.Root {
					sln.Println("%v = %v", project.GetGuid(), project.Parent.GetGuid())
				}
			})
		})
	}

	sln.EndIndent()
	sln.Println("EndGlobal")
	return sln.Err()
}

func writeGlobalSection(sln *internal_io.StructuredFile, name, when string, inner func()) {
	sln.Println("GlobalSection(%s) = %s", name, when)
	sln.BeginIndent()
	inner()
	sln.EndIndent()
	sln.Println("EndGlobalSection")
}
