package vstudio

import (
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
)

var (
	reSlnFormatVersion    = regexp.MustCompile(`(?m)^Microsoft Visual Studio Solution File, Format Version ([0-9.]+)`)
	reSlnVisualStudio     = regexp.MustCompile(`(?m)^# Visual Studio (Express |Version )?([0-9]+)`)
	reSlnVsVersion        = regexp.MustCompile(`(?m)^VisualStudioVersion = ([0-9.]+)`)
	reSlnMinimumVsVersion = regexp.MustCompile(`(?m)^MinimumVisualStudioVersion = ([0-9.]+)`)
	reSlnProject          = regexp.MustCompile(`(?s)Project\("(\{[A-Fa-f0-9-]+\})"\) = "(.*?)", "(.*?)", "(\{[A-Fa-f0-9-]+\})"[\r\n]*(.*?)EndProject[ \t]*(?:\r?\n|$)`)
	reSlnDependencies     = regexp.MustCompile(`(?s)ProjectSection\(ProjectDependencies\)[^\r\n]*[\r\n]+(.*?)EndProjectSection`)
	reSlnGuidPair         = regexp.MustCompile(`(\{[A-Fa-f0-9-]+\})\s*=\s*(\{[A-Fa-f0-9-]+\})`)
	reSlnMapping          = regexp.MustCompile(`(?m)^\s*(\{[A-Fa-f0-9-]+\})\.(.*)\.(ActiveCfg|Build[.0-9]*|Deploy[.0-9]*)\s*=\s*(.*?)\s*$`)
)

func findSlnGlobalSection(text, name string) (string, bool) {
	re := regexp.MustCompile(`(?s)GlobalSection\(` + regexp.QuoteMeta(name) + `\)[^\r\n]*[\r\n]+(.*?)EndGlobalSection`)
	if m := re.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ReadSolution parses a .sln, unknown guids and labels are skipped.
func ReadSolution(src io.Reader, filename string) (*Solution, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	text := base.NormalizeNewlines(base.UnsafeStringFromBytes(raw))
	text = strings.TrimPrefix(text, "\ufeff")

	if reSlnFormatVersion.FindStringSubmatch(text) == nil {
		return nil, newFormatError(filename, "missing solution file banner")
	}

	solution := NewSolution(filename)

	if m := reSlnVisualStudio.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[2])
		if solution.VisualStudio, err = VisualStudioVersionFromSlnNumber(n); err != nil {
			base.LogWarning(LogVStudio, "%s: %v", filename, err)
			solution.VisualStudio = VS_DEFAULT
		}
	}
	if m := reSlnVsVersion.FindStringSubmatch(text); m != nil {
		solution.VisualStudioVersion = m[1]
	}
	if m := reSlnMinimumVsVersion.FindStringSubmatch(text); m != nil {
		solution.MinimumVisualStudioVersion = m[1]
	}

	for _, m := range reSlnProject.FindAllStringSubmatch(text, -1) {
		project, err := parseSlnProject(m)
		if err != nil {
			return nil, &FormatError{Path: filename, Err: err}
		}
		solution.Projects = append(solution.Projects, project)
	}

	if section, ok := findSlnGlobalSection(text, "SolutionConfigurationPlatforms"); ok {
		for _, line := range strings.Split(section, "\n") {
			if i := strings.IndexByte(line, '='); i >= 0 {
				if label := ConfigLabel(strings.TrimSpace(line[:i])); len(label) > 0 {
					solution.Configurations = base.AppendUniq(solution.Configurations, label)
				}
			}
		}
	}

	if section, ok := findSlnGlobalSection(text, "ProjectConfigurationPlatforms"); ok {
		parseSlnMappings(solution, section)
	}

	parents := make(map[*Project]*Project)
	if section, ok := findSlnGlobalSection(text, "NestedProjects"); ok {
		for _, m := range reSlnGuidPair.FindAllStringSubmatch(section, -1) {
			child := findProjectByGuidText(solution, m[1])
			parent := findProjectByGuidText(solution, m[2])
			if child != nil && parent != nil && child != parent {
				parents[child] = parent
			}
		}
	}
	for _, project := range solution.Projects {
		parent, ok := parents[project]
		if !ok {
			parent = solution.Root
		}
		parent.AddChild(project)
	}

	base.LogVerbose(LogVStudio, "read solution %q with %d projects and %d configurations",
		filename, len(solution.Projects), len(solution.Configurations))
	return solution, nil
}

func parseSlnProject(m []string) (*Project, error) {
	hostGuid, err := base.ParseGuid(m[1])
	if err != nil {
		return nil, err
	}
	guid, err := base.ParseGuid(m[4])
	if err != nil {
		return nil, err
	}

	project := &Project{
		Name:     m[2],
		Guid:     guid,
		HostGuid: hostGuid,
		IsFolder: (hostGuid == HOSTGUID_FOLDER),
	}
	if hostGuid == HOSTGUID_PACKAGE {
		project.Keyword = KEYWORD_PACKAGE
	}

	relativePath := strings.ReplaceAll(m[3], "\\", "/")
	switch strings.ToLower(path.Ext(relativePath)) {
	case ".vcxproj":
		project.Language = LANGUAGE_CPP
		relativePath = strings.TrimSuffix(relativePath, path.Ext(relativePath))
	case ".csproj":
		project.Language = LANGUAGE_CSHARP
		relativePath = strings.TrimSuffix(relativePath, path.Ext(relativePath))
	}
	project.RelativePath = relativePath

	if deps := reSlnDependencies.FindStringSubmatch(m[5]); deps != nil {
		project.Dependencies = []base.Guid{}
		for _, pair := range reSlnGuidPair.FindAllStringSubmatch(deps[1], -1) {
			dep, err := base.ParseGuid(pair[1])
			if err != nil {
				return nil, err
			}
			project.Dependencies = base.AppendUniq(project.Dependencies, dep)
		}
	}
	return project, nil
}

func parseSlnMappings(solution *Solution, section string) {
	n := len(solution.Configurations)
	for _, m := range reSlnMapping.FindAllStringSubmatch(section, -1) {
		project := findProjectByGuidText(solution, m[1])
		if project == nil {
			continue
		}
		index := solution.IndexOfConfiguration(ConfigLabel(m[2]))
		if index < 0 {
			continue
		}

		for len(project.SlnConfigurations) < n {
			project.SlnConfigurations = append(project.SlnConfigurations, "")
			project.SlnBuildProject = append(project.SlnBuildProject, false)
		}

		switch action := m[3]; {
		case action == "ActiveCfg":
			project.SlnConfigurations[index] = ConfigLabel(m[4])
		case strings.HasPrefix(action, "Build"):
			project.SlnBuildProject[index] = true
		case strings.HasPrefix(action, "Deploy"):
			for len(project.SlnDeployProject) < n {
				project.SlnDeployProject = append(project.SlnDeployProject, false)
			}
			project.SlnDeployProject[index] = true
		}
	}
}

func findProjectByGuidText(solution *Solution, text string) *Project {
	guid, err := base.ParseGuid(text)
	if err != nil {
		return nil
	}
	return solution.FindProjectByGuid(guid)
}
