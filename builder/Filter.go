package builder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/vstudio"
)

const (
	FILTER_CONFIGURATIONS = "configurations:"
	FILTER_PLATFORMS      = "platforms:"
	FILTER_FILES          = "files:"
)

/***************************************
 * Filter tokens
 ***************************************/

type filterTokens struct {
	Configuration string
	Platform      string
	File          string
}

func parseFilterTokens(tokens ...string) (result filterTokens) {
	assign := func(dst *string, kind, value string) {
		if len(*dst) > 0 {
			base.LogWarning(LogBuilder, "filter: %s %q replaces %q", kind, value, *dst)
		}
		*dst = value
	}
	for _, token := range tokens {
		switch {
		case strings.HasPrefix(token, FILTER_CONFIGURATIONS):
			assign(&result.Configuration, "configuration", strings.TrimPrefix(token, FILTER_CONFIGURATIONS))
		case strings.HasPrefix(token, FILTER_PLATFORMS):
			assign(&result.Platform, "platform", strings.TrimPrefix(token, FILTER_PLATFORMS))
		case strings.HasPrefix(token, FILTER_FILES):
			assign(&result.File, "file", strings.TrimPrefix(token, FILTER_FILES))
		default:
			assign(&result.Configuration, "configuration", token)
		}
	}
	return
}

func orMatchAll(pattern string) string {
	if len(pattern) == 0 {
		return ".*"
	}
	return pattern
}

func (x filterTokens) Regexp() (*regexp.Regexp, error) {
	return regexp.Compile(fmt.Sprintf(`^(%s)\|(%s)$`, orMatchAll(x.Configuration), orMatchAll(x.Platform)))
}

/***************************************
 * Filter
 ***************************************/

// Filter selects the configurations, and optionally the file, the next
// setting calls apply to. No arguments selects everything project-wide.
func (x *Context) Filter(tokens ...string) error {
	if len(tokens) == 0 {
		x.selection = selectAll()
		return nil
	}

	project, err := x.requireProject("filter")
	if err != nil {
		return err
	}

	filter := parseFilterTokens(tokens...)
	re, err := filter.Regexp()
	if err != nil {
		return wrapConfigurationError("filter", err, "invalid filter %q", strings.Join(tokens, ", "))
	}

	var file *vstudio.FileEntry
	if len(filter.File) > 0 {
		if file, _ = project.FindFile(x.projectRelativePath(project, filter.File)); file == nil {
			return configurationError("filter", "file %q is not registered in project %q, add it with files() first", filter.File, project.Name)
		}
	}

	var indices []int
	for i, label := range project.ProjectConfigurations {
		if !re.MatchString(label.String()) {
			continue
		}
		if file != nil {
			file.Override(i)
		} else {
			project.Configuration(i)
		}
		indices = append(indices, i)
	}

	if len(indices) == 0 {
		return unmatchedFilterError(project, filter)
	}

	if file != nil {
		x.selection = FileScoped{File: file, Indices: indices}
	} else {
		x.selection = ProjectWide{Indices: indices}
	}
	base.LogDebug(LogBuilder, "filter(%v) selected %d configurations of %q", tokens, len(indices), project.Name)
	return nil
}

// unmatchedFilterError names the half of the filter which matched nothing.
func unmatchedFilterError(project *vstudio.Project, filter filterTokens) error {
	matchAny := func(pattern string, values []string) bool {
		re, err := regexp.Compile(fmt.Sprintf(`^(%s)$`, orMatchAll(pattern)))
		if err != nil {
			return false
		}
		_, ok := base.IndexIf(re.MatchString, values...)
		return ok
	}

	if configurations := project.ConfigurationNames(); !matchAny(filter.Configuration, configurations) {
		return configurationError("filter", "configuration %q unmatched, supported configurations: %s",
			filter.Configuration, strings.Join(configurations, ", "))
	}
	if platforms := project.Platforms(); !matchAny(filter.Platform, platforms) {
		return configurationError("filter", "platform %q unmatched, supported platforms: %s",
			filter.Platform, strings.Join(platforms, ", "))
	}
	return configurationError("filter", "no configuration of project %q matches %q", project.Name,
		orMatchAll(filter.Configuration)+"|"+orMatchAll(filter.Platform))
}
