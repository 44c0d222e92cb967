package builder

import (
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

/***************************************
 * Selected records
 ***************************************/

// selectedSettings returns the records shared by projects and files which
// the current selection designates.
func (x *Context) selectedSettings(call string) ([]vstudio.BuildSettings, error) {
	project, err := x.requireProject(call)
	if err != nil {
		return nil, err
	}

	var result []vstudio.BuildSettings
	switch selection := x.selection.(type) {
	case ProjectWide:
		for _, i := range selection.Resolve(project) {
			result = append(result, project.Configuration(i))
		}
	case FileScoped:
		for _, i := range selection.Indices {
			result = append(result, selection.File.Override(i))
		}
	default:
		base.UnexpectedValuePanic(selection, x.selection)
	}
	return result, nil
}

// selectedConfigurations rejects file selections, for settings which only
// make sense for a whole project.
func (x *Context) selectedConfigurations(call string) ([]*vstudio.ProjectConfiguration, error) {
	project, err := x.requireProject(call)
	if err != nil {
		return nil, err
	}

	var result []*vstudio.ProjectConfiguration
	switch selection := x.selection.(type) {
	case ProjectWide:
		for _, i := range selection.Resolve(project) {
			result = append(result, project.Configuration(i))
		}
	case FileScoped:
		return nil, configurationError(call, "can't be applied to file %q, only to a whole project (use filter() without files: first)", selection.File.RelativePath)
	default:
		base.UnexpectedValuePanic(selection, x.selection)
	}
	return result, nil
}

func (x *Context) forEachSettings(call string, each func(*vstudio.CommonBuildSettings)) error {
	settings, err := x.selectedSettings(call)
	if err != nil {
		return err
	}
	for _, it := range settings {
		each(it.Common())
	}
	return nil
}

func (x *Context) forEachConfiguration(call string, each func(*vstudio.ProjectConfiguration)) error {
	configurations, err := x.selectedConfigurations(call)
	if err != nil {
		return err
	}
	for _, it := range configurations {
		each(it)
	}
	return nil
}

func parseValue(call string, dst interface{ Set(string) error }, in string) error {
	if err := dst.Set(in); err != nil {
		return wrapConfigurationError(call, err, "unsupported value %q", in)
	}
	return nil
}

func toWindowsPaths(paths []string) []string {
	result := make([]string, len(paths))
	for i, it := range paths {
		result[i] = utils.ToWindowsPath(it)
	}
	return result
}

func appendOptions(options string, more ...string) string {
	return strings.TrimSpace(strings.Join(append([]string{options}, more...), " "))
}

func withTrailingSeparator(dir string) string {
	dir = utils.ToWindowsPath(dir)
	if len(dir) > 0 && !strings.HasSuffix(dir, `\`) {
		dir += `\`
	}
	return dir
}

/***************************************
 * Project or file settings
 ***************************************/

func (x *Context) Defines(defines ...string) error {
	return x.forEachSettings("defines", func(settings *vstudio.CommonBuildSettings) {
		settings.PreprocessorDefinitions.Append(defines...)
	})
}

func (x *Context) IncludeDirs(dirs ...string) error {
	dirs = toWindowsPaths(dirs)
	return x.forEachSettings("includedirs", func(settings *vstudio.CommonBuildSettings) {
		settings.AdditionalIncludeDirectories.Append(dirs...)
	})
}

func (x *Context) Optimize(level string) error {
	var optimization vstudio.Optimization
	if err := parseValue("optimize", &optimization, level); err != nil {
		return err
	}
	return x.forEachSettings("optimize", func(settings *vstudio.CommonBuildSettings) {
		settings.Optimization = optimization
	})
}

// BuildRule attaches a custom build step, per file when a file is selected.
func (x *Context) BuildRule(rule vstudio.CustomBuildRule) error {
	if len(rule.Command) == 0 {
		return configurationError("buildrule", "custom build rule without command")
	}
	if len(rule.Message) == 0 {
		rule.Message = vstudio.CUSTOMBUILD_DEFAULT_MESSAGE
	}
	return x.forEachSettings("buildrule", func(settings *vstudio.CommonBuildSettings) {
		settings.CustomBuildRule = rule.Clone()
	})
}

func (x *Context) PchHeader(header string) error {
	return x.forEachSettings("pchheader", func(settings *vstudio.CommonBuildSettings) {
		settings.PrecompiledHeaderFile = header
		if !settings.PrecompiledHeader.IsSet() {
			settings.PrecompiledHeader = vstudio.PCH_USE
		}
	})
}

// PchSource marks a registered file as the one creating the precompiled
// header, for the selected configurations.
func (x *Context) PchSource(source string) error {
	project, err := x.requireProject("pchsource")
	if err != nil {
		return err
	}
	file, _ := project.FindFile(x.projectRelativePath(project, source))
	if file == nil {
		return configurationError("pchsource", "file %q is not registered in project %q", source, project.Name)
	}

	var indices []int
	switch selection := x.selection.(type) {
	case ProjectWide:
		indices = selection.Resolve(project)
	case FileScoped:
		indices = selection.Indices
	default:
		base.UnexpectedValuePanic(selection, x.selection)
	}
	for _, i := range indices {
		file.Override(i).PrecompiledHeader = vstudio.PCH_CREATE
	}
	return nil
}

func (x *Context) BuildOptions(options ...string) error {
	return x.forEachSettings("buildoptions", func(settings *vstudio.CommonBuildSettings) {
		settings.AdditionalOptions = appendOptions(settings.AdditionalOptions, options...)
	})
}

/***************************************
 * Project only settings
 ***************************************/

// Kind sets the configuration type, os is "windows" (default) or "android".
func (x *Context) Kind(kind string, os ...string) error {
	project, err := x.requireProject("kind")
	if err != nil {
		return err
	}

	var configurationType vstudio.ConfigurationType
	if err := parseValue("kind", &configurationType, kind); err != nil {
		return err
	}

	subSystem := vstudio.SUBSYSTEM_NOTSET
	switch strings.ToLower(kind) {
	case "consoleapp":
		subSystem = vstudio.SUBSYSTEM_CONSOLE
	case "windowedapp":
		subSystem = vstudio.SUBSYSTEM_WINDOWS
	}

	keyword := project.Keyword
	for _, it := range os {
		switch strings.ToLower(it) {
		case "", "windows":
		case "android":
			keyword = vstudio.KEYWORD_ANDROID
		default:
			return configurationError("kind", "unsupported os %q, expected windows or android", it)
		}
	}

	err = x.forEachConfiguration("kind", func(config *vstudio.ProjectConfiguration) {
		config.ConfigurationType = configurationType
		if subSystem.IsSet() && !config.SubSystem.IsSet() {
			config.SubSystem = subSystem
		}
	})
	if err == nil {
		project.Keyword = keyword
	}
	return err
}

func (x *Context) Toolset(name string) error {
	return x.forEachConfiguration("toolset", func(config *vstudio.ProjectConfiguration) {
		config.PlatformToolset = name
	})
}

func (x *Context) CharacterSet(name string) error {
	var charset vstudio.CharacterSet
	if err := parseValue("characterset", &charset, name); err != nil {
		return err
	}
	return x.forEachConfiguration("characterset", func(config *vstudio.ProjectConfiguration) {
		config.CharacterSet = charset
	})
}

// Symbols toggles debug information, with a matching format unless one was set.
func (x *Context) Symbols(mode string) error {
	var debugInfo vstudio.GenerateDebugInformation
	if err := parseValue("symbols", &debugInfo, mode); err != nil {
		return err
	}
	format := vstudio.DEBUGFORMAT_PROGRAMDATABASE
	if debugInfo == vstudio.DEBUGINFO_FALSE {
		format = vstudio.DEBUGFORMAT_NONE
	}
	return x.forEachConfiguration("symbols", func(config *vstudio.ProjectConfiguration) {
		config.GenerateDebugInformation = debugInfo
		if debugInfo != vstudio.DEBUGINFO_PROJECTDEFAULT && !config.DebugInformationFormat.IsSet() {
			config.DebugInformationFormat = format
		}
	})
}

func (x *Context) LibDirs(dirs ...string) error {
	dirs = toWindowsPaths(dirs)
	return x.forEachConfiguration("libdirs", func(config *vstudio.ProjectConfiguration) {
		config.AdditionalLibraryDirectories.Append(dirs...)
	})
}

func (x *Context) Links(libraries ...string) error {
	return x.forEachConfiguration("links", func(config *vstudio.ProjectConfiguration) {
		config.AdditionalDependencies.Append(libraries...)
	})
}

func (x *Context) TargetDir(dir string) error {
	dir = withTrailingSeparator(dir)
	return x.forEachConfiguration("targetdir", func(config *vstudio.ProjectConfiguration) {
		config.OutDir = dir
	})
}

func (x *Context) ObjDir(dir string) error {
	dir = withTrailingSeparator(dir)
	return x.forEachConfiguration("objdir", func(config *vstudio.ProjectConfiguration) {
		config.IntDir = dir
	})
}

func (x *Context) TargetName(name string) error {
	return x.forEachConfiguration("targetname", func(config *vstudio.ProjectConfiguration) {
		config.TargetName = name
	})
}

func (x *Context) TargetExtension(ext string) error {
	if len(ext) > 0 && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return x.forEachConfiguration("targetextension", func(config *vstudio.ProjectConfiguration) {
		config.TargetExt = ext
	})
}

func appendCommands(event *vstudio.BuildEvent, commands []string) {
	lines := commands
	if len(event.Command) > 0 {
		lines = append([]string{event.Command}, commands...)
	}
	event.Command = strings.Join(lines, "\n")
}

func (x *Context) PreBuildCommands(commands ...string) error {
	return x.forEachConfiguration("prebuildcommands", func(config *vstudio.ProjectConfiguration) {
		appendCommands(&config.PreBuildEvent, commands)
	})
}

func (x *Context) PreLinkCommands(commands ...string) error {
	return x.forEachConfiguration("prelinkcommands", func(config *vstudio.ProjectConfiguration) {
		appendCommands(&config.PreLinkEvent, commands)
	})
}

func (x *Context) PostBuildCommands(commands ...string) error {
	return x.forEachConfiguration("postbuildcommands", func(config *vstudio.ProjectConfiguration) {
		appendCommands(&config.PostBuildEvent, commands)
	})
}

func (x *Context) LinkOptions(options ...string) error {
	return x.forEachConfiguration("linkoptions", func(config *vstudio.ProjectConfiguration) {
		config.LinkAdditionalOptions = appendOptions(config.LinkAdditionalOptions, options...)
	})
}

func (x *Context) Warnings(level string) error {
	var warningLevel vstudio.WarningLevel
	if err := parseValue("warnings", &warningLevel, level); err != nil {
		return err
	}
	return x.forEachConfiguration("warnings", func(config *vstudio.ProjectConfiguration) {
		config.WarningLevel = warningLevel
	})
}

func (x *Context) SubSystem(name string) error {
	var subSystem vstudio.SubSystem
	if err := parseValue("subsystem", &subSystem, name); err != nil {
		return err
	}
	return x.forEachConfiguration("subsystem", func(config *vstudio.ProjectConfiguration) {
		config.SubSystem = subSystem
	})
}

func (x *Context) WholeProgramOptimization(value string) error {
	var wpo vstudio.WholeProgramOptimization
	if err := parseValue("wholeprogramoptimization", &wpo, value); err != nil {
		return err
	}
	return x.forEachConfiguration("wholeprogramoptimization", func(config *vstudio.ProjectConfiguration) {
		config.WholeProgramOptimization = wpo
	})
}
