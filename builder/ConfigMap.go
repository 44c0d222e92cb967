package builder

import (
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/vstudio"
)

type configMapMode byte

const (
	CONFIGMAP_UNKNOWN configMapMode = iota
	CONFIGMAP_CONFIGURATION
	CONFIGMAP_PLATFORM
)

func (x configMapMode) String() string {
	switch x {
	case CONFIGMAP_CONFIGURATION:
		return "configuration"
	case CONFIGMAP_PLATFORM:
		return "platform"
	default:
		return "unknown"
	}
}

// ConfigMap maps solution configurations onto project configurations, given
// as (from, to) pairs. A "from" with '|' names whole labels, otherwise it
// names either a configuration or a platform, decided by the first pair.
func (x *Context) ConfigMap(pairs ...string) error {
	project, err := x.requireProject("configmap")
	if err != nil {
		return err
	}
	solution := x.solution
	if solution == nil {
		return configurationError("configmap", "no solution selected")
	}
	if len(pairs)%2 != 0 {
		return configurationError("configmap", "expected (from, to) pairs, got %d arguments", len(pairs))
	}

	n := len(solution.Configurations)
	mapped := make([]vstudio.ConfigLabel, n)
	build := make([]bool, n)
	for i := range solution.Configurations {
		mapping := project.GetSolutionMapping(solution, i)
		mapped[i] = mapping.Label
		build[i] = mapping.Build
	}

	configurations := solution.ConfigurationNames()
	platforms := solution.Platforms()

	mode := CONFIGMAP_UNKNOWN
	for p := 0; p < len(pairs); p += 2 {
		from, to := pairs[p], pairs[p+1]

		var matches func(vstudio.ConfigLabel) bool
		var substitute func(vstudio.ConfigLabel) vstudio.ConfigLabel

		if strings.ContainsRune(from, '|') {
			matches = func(label vstudio.ConfigLabel) bool { return string(label) == from }
			substitute = func(vstudio.ConfigLabel) vstudio.ConfigLabel { return vstudio.ConfigLabel(to) }
		} else {
			isConfiguration := base.Contains(configurations, from)
			isPlatform := base.Contains(platforms, from)
			if isConfiguration && isPlatform {
				return configurationError("configmap", "%q names both a configuration and a platform of the solution", from)
			}

			if mode == CONFIGMAP_UNKNOWN {
				switch {
				case isConfiguration:
					mode = CONFIGMAP_CONFIGURATION
				case isPlatform:
					mode = CONFIGMAP_PLATFORM
				default:
					return configurationError("configmap", "%q is neither a configuration (%s) nor a platform (%s) of the solution",
						from, strings.Join(configurations, ", "), strings.Join(platforms, ", "))
				}
			}

			switch mode {
			case CONFIGMAP_CONFIGURATION:
				if !isConfiguration {
					return configurationError("configmap", "%q is not a configuration of the solution, supported configurations: %s", from, strings.Join(configurations, ", "))
				}
				matches = func(label vstudio.ConfigLabel) bool { return label.Configuration() == from }
				substitute = func(label vstudio.ConfigLabel) vstudio.ConfigLabel {
					return vstudio.MakeConfigLabel(to, label.Platform())
				}
			case CONFIGMAP_PLATFORM:
				if !isPlatform {
					return configurationError("configmap", "%q is not a platform of the solution, supported platforms: %s", from, strings.Join(platforms, ", "))
				}
				matches = func(label vstudio.ConfigLabel) bool { return label.Platform() == from }
				substitute = func(label vstudio.ConfigLabel) vstudio.ConfigLabel {
					return vstudio.MakeConfigLabel(label.Configuration(), to)
				}
			}
		}

		found := false
		for i, label := range solution.Configurations {
			if !matches(label) {
				continue
			}
			found = true
			target := substitute(label)
			if project.IndexOfConfiguration(target) < 0 {
				return configurationError("configmap", "project %q has no configuration %q (mapped from %q)", project.Name, target, label)
			}
			mapped[i] = target
			build[i] = true
		}
		if !found {
			return configurationError("configmap", "%q does not match any configuration of the solution", from)
		}
	}

	project.SlnConfigurations = mapped
	project.SlnBuildProject = build
	base.LogDebug(LogBuilder, "configmap(%v) on %q -> %v", pairs, project.Name, mapped)
	return nil
}
