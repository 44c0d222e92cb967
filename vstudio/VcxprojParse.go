package vstudio

import (
	"encoding/xml"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
)

var reLabelCondition = regexp.MustCompile(`^ *'\$\(Configuration\)\|\$\(Platform\)' *== *'(.*)'`)

/***************************************
 * Generic element tree
 ***************************************/

type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []xmlNode  `xml:",any"`
}

func (x *xmlNode) Name() string { return x.XMLName.Local }
func (x *xmlNode) Text() string { return strings.TrimSpace(x.Content) }
func (x *xmlNode) Attr(name string) string {
	for _, it := range x.Attrs {
		if it.Name.Local == name {
			return it.Value
		}
	}
	return ""
}
func (x *xmlNode) Child(name string) *xmlNode {
	for i := range x.Nodes {
		if x.Nodes[i].Name() == name {
			return &x.Nodes[i]
		}
	}
	return nil
}

func parseLabelCondition(condition string) (ConfigLabel, bool) {
	if m := reLabelCondition.FindStringSubmatch(condition); m != nil {
		return ConfigLabel(m[1]), true
	}
	return "", false
}

/***************************************
 * Inherited list parsing
 ***************************************/

func splitInherited(value, name string) (result base.StringSet) {
	value = strings.TrimSuffix(value, "%("+name+")")
	value = strings.TrimSuffix(value, "$("+name+")")
	for _, it := range strings.Split(value, ";") {
		if it = strings.TrimSpace(it); len(it) > 0 {
			result.Append(it)
		}
	}
	return
}
func trimInheritedOptions(value, name string) string {
	return strings.TrimSpace(strings.TrimSuffix(value, "%("+name+")"))
}
func trimInheritedPath(value, name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(value, "$("+name+")"), ";")
}

func VisualStudioVersionFromToolsVersion(toolsVersion string) VisualStudioVersion {
	for _, vs := range VisualStudioVersions() {
		if vs.ToolsVersion() == toolsVersion {
			return vs
		}
	}
	return VS_DEFAULT
}

/***************************************
 * Project reader
 ***************************************/

type vcxprojReader struct {
	filename string
	project  *Project
}

// ReadProject parses a .vcxproj, unknown elements and labels are skipped.
func ReadProject(src io.Reader, filename string) (*Project, error) {
	var root xmlNode
	if err := xml.NewDecoder(src).Decode(&root); err != nil {
		return nil, &FormatError{Path: filename, Err: err}
	}
	if root.Name() != "Project" {
		return nil, newFormatError(filename, "unexpected root element <%s>", root.Name())
	}

	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSuffix(name, path.Ext(name))

	r := vcxprojReader{
		filename: filename,
		project: &Project{
			Name:         name,
			RelativePath: strings.TrimSuffix(filename, path.Ext(filename)),
			Language:     LANGUAGE_CPP,
			VisualStudio: VisualStudioVersionFromToolsVersion(root.Attr("ToolsVersion")),
		},
	}

	for i := range root.Nodes {
		node := &root.Nodes[i]
		label, conditional := parseLabelCondition(node.Attr("Condition"))

		switch node.Name() {
		case "ItemGroup":
			if node.Attr("Label") == "ProjectConfigurations" {
				r.projectConfigurations(node)
			} else {
				r.items(node)
			}
		case "PropertyGroup":
			switch {
			case node.Attr("Label") == "Globals":
				r.globals(node)
			case !conditional:
			case node.Attr("Label") == "Configuration":
				if config := r.configuration(label); config != nil {
					r.configurationProperties(config, node)
				}
			case len(node.Attr("Label")) == 0:
				if config := r.configuration(label); config != nil {
					r.globalProperties(config, node)
				}
			}
		case "ItemDefinitionGroup":
			if !conditional {
				continue
			}
			if config := r.configuration(label); config != nil {
				r.itemDefinitions(config, node)
			}
		}
	}

	r.project.Normalize()
	base.LogVerbose(LogVStudio, "read project %q with %d configurations and %d files",
		filename, len(r.project.ProjectConfigurations), len(r.project.Files))
	return r.project, nil
}

func (r *vcxprojReader) configuration(label ConfigLabel) *ProjectConfiguration {
	if index := r.project.IndexOfConfiguration(label); index >= 0 {
		return r.project.Configuration(index)
	}
	base.LogVeryVerbose(LogVStudio, "%s: ignored unknown configuration %q", r.filename, label)
	return nil
}

func (r *vcxprojReader) setEnum(dst interface{ Set(string) error }, node *xmlNode) {
	if err := dst.Set(node.Text()); err != nil {
		base.LogWarning(LogVStudio, "%s: <%s>: %v", r.filename, node.Name(), err)
	}
}

func (r *vcxprojReader) projectConfigurations(group *xmlNode) {
	for i := range group.Nodes {
		if node := &group.Nodes[i]; node.Name() == "ProjectConfiguration" {
			label := ConfigLabel(node.Attr("Include"))
			if r.project.IndexOfConfiguration(label) < 0 {
				r.project.ProjectConfigurations = append(r.project.ProjectConfigurations, label)
			}
		}
	}
}

func (r *vcxprojReader) globals(group *xmlNode) {
	for i := range group.Nodes {
		node := &group.Nodes[i]
		switch node.Name() {
		case "ProjectGuid":
			guid, err := base.ParseGuid(node.Text())
			if err != nil {
				base.LogWarning(LogVStudio, "%s: %v", r.filename, err)
				continue
			}
			r.project.Guid = guid
		case "Keyword":
			r.setEnum(&r.project.Keyword, node)
		case "RootNamespace":
			r.project.Namespace = node.Text()
		case "WindowsTargetPlatformVersion":
			r.project.WindowsTargetPlatformVersion = node.Text()
		}
	}
}

func (r *vcxprojReader) configurationProperties(config *ProjectConfiguration, group *xmlNode) {
	for i := range group.Nodes {
		node := &group.Nodes[i]
		switch node.Name() {
		case "ConfigurationType":
			r.setEnum(&config.ConfigurationType, node)
		case "UseDebugLibraries":
			r.setEnum(&config.UseDebugLibraries, node)
		case "PlatformToolset":
			config.PlatformToolset = node.Text()
		case "CharacterSet":
			r.setEnum(&config.CharacterSet, node)
		case "WholeProgramOptimization":
			r.setEnum(&config.WholeProgramOptimization, node)
		case "UseOfMfc":
			r.setEnum(&config.UseOfMfc, node)
		}
	}
}

func (r *vcxprojReader) globalProperties(config *ProjectConfiguration, group *xmlNode) {
	for i := range group.Nodes {
		node := &group.Nodes[i]
		switch node.Name() {
		case "LinkIncremental":
			r.setEnum(&config.LinkIncremental, node)
		case "OutDir":
			config.OutDir = node.Text()
		case "IntDir":
			config.IntDir = node.Text()
		case "TargetName":
			config.TargetName = node.Text()
		case "TargetExt":
			config.TargetExt = node.Text()
		case "IncludePath":
			config.IncludePath = trimInheritedPath(node.Text(), "IncludePath")
		case "LibraryPath":
			config.LibraryPath = trimInheritedPath(node.Text(), "LibraryPath")
		}
	}
}

func (r *vcxprojReader) itemDefinitions(config *ProjectConfiguration, group *xmlNode) {
	for i := range group.Nodes {
		tool := &group.Nodes[i]
		switch tool.Name() {
		case "ClCompile":
			for j := range tool.Nodes {
				node := &tool.Nodes[j]
				if r.commonSetting(&config.CommonBuildSettings, node) {
					continue
				}
				switch node.Name() {
				case "WarningLevel":
					r.setEnum(&config.WarningLevel, node)
				case "FunctionLevelLinking":
					r.setEnum(&config.FunctionLevelLinking, node)
				case "IntrinsicFunctions":
					r.setEnum(&config.IntrinsicFunctions, node)
				case "DebugInformationFormat":
					r.setEnum(&config.DebugInformationFormat, node)
				}
			}
		case "Link", "Lib":
			for j := range tool.Nodes {
				node := &tool.Nodes[j]
				switch node.Name() {
				case "SubSystem":
					r.setEnum(&config.SubSystem, node)
				case "GenerateDebugInformation":
					r.setEnum(&config.GenerateDebugInformation, node)
				case "EnableCOMDATFolding":
					r.setEnum(&config.EnableCOMDATFolding, node)
				case "OptimizeReferences":
					r.setEnum(&config.OptimizeReferences, node)
				case "AdditionalDependencies":
					config.AdditionalDependencies = splitInherited(node.Text(), "AdditionalDependencies")
				case "AdditionalLibraryDirectories":
					config.AdditionalLibraryDirectories = splitInherited(node.Text(), "AdditionalLibraryDirectories")
				case "AdditionalOptions":
					config.LinkAdditionalOptions = trimInheritedOptions(node.Text(), "AdditionalOptions")
				}
			}
		case "PreBuildEvent":
			config.PreBuildEvent = parseBuildEvent(tool)
		case "PreLinkEvent":
			config.PreLinkEvent = parseBuildEvent(tool)
		case "PostBuildEvent":
			config.PostBuildEvent = parseBuildEvent(tool)
		case "CustomBuildStep":
			rule := &CustomBuildRule{Message: CUSTOMBUILD_DEFAULT_MESSAGE}
			for j := range tool.Nodes {
				node := &tool.Nodes[j]
				switch node.Name() {
				case "Command":
					rule.Command = node.Text()
				case "Message":
					rule.Message = node.Text()
				case "Outputs":
					rule.Outputs = node.Text()
				case "Inputs":
					rule.AdditionalInputs = node.Text()
				}
			}
			config.CustomBuildRule = rule
		}
	}
}

func parseBuildEvent(node *xmlNode) (result BuildEvent) {
	if it := node.Child("Command"); it != nil {
		result.Command = it.Text()
	}
	if it := node.Child("Message"); it != nil {
		result.Message = it.Text()
	}
	return
}

// commonSetting returns false when node is not a field shared with files.
func (r *vcxprojReader) commonSetting(settings *CommonBuildSettings, node *xmlNode) bool {
	switch node.Name() {
	case "ExcludedFromBuild":
		settings.ExcludedFromBuild = strings.EqualFold(node.Text(), "true")
	case "PreprocessorDefinitions":
		settings.PreprocessorDefinitions = splitInherited(node.Text(), "PreprocessorDefinitions")
	case "AdditionalIncludeDirectories":
		settings.AdditionalIncludeDirectories = splitInherited(node.Text(), "AdditionalIncludeDirectories")
	case "PrecompiledHeader":
		r.setEnum(&settings.PrecompiledHeader, node)
	case "PrecompiledHeaderFile":
		settings.PrecompiledHeaderFile = node.Text()
	case "ObjectFileName":
		settings.ObjectFileName = node.Text()
	case "XMLDocumentationFileName":
		settings.XMLDocumentationFileName = node.Text()
	case "Optimization":
		r.setEnum(&settings.Optimization, node)
	case "AdditionalOptions":
		settings.AdditionalOptions = trimInheritedOptions(node.Text(), "AdditionalOptions")
	case "Command", "Message", "Outputs", "AdditionalInputs":
		if settings.CustomBuildRule == nil {
			settings.CustomBuildRule = &CustomBuildRule{Message: CUSTOMBUILD_DEFAULT_MESSAGE}
		}
		rule := settings.CustomBuildRule
		switch node.Name() {
		case "Command":
			rule.Command = node.Text()
		case "Message":
			rule.Message = node.Text()
		case "Outputs":
			rule.Outputs = node.Text()
		case "AdditionalInputs":
			rule.AdditionalInputs = strings.TrimSuffix(node.Text(), ";%(AdditionalInputs)")
		}
	default:
		return false
	}
	return true
}

func (r *vcxprojReader) items(group *xmlNode) {
	for i := range group.Nodes {
		node := &group.Nodes[i]
		include := strings.TrimPrefix(node.Attr("Include"), ".\\")

		if node.Name() == "ProjectReference" {
			reference := ProjectReference{Path: strings.ReplaceAll(include, "\\", "/")}
			if it := node.Child("Project"); it != nil {
				guid, err := base.ParseGuid(it.Text())
				if err != nil {
					base.LogWarning(LogVStudio, "%s: project reference %q: %v", r.filename, include, err)
					continue
				}
				reference.Guid = guid
				r.project.References = append(r.project.References, reference)
			}
			continue
		}

		includeType, ok := IncludeTypeFromTag(node.Name())
		if !ok || len(include) == 0 {
			base.LogVeryVerbose(LogVStudio, "%s: ignored item <%s>", r.filename, node.Name())
			continue
		}

		file := NewFileEntry(include)
		file.IncludeType = includeType
		for j := range node.Nodes {
			setting := &node.Nodes[j]
			label, ok := parseLabelCondition(setting.Attr("Condition"))
			if !ok {
				continue
			}
			index := r.project.IndexOfConfiguration(label)
			if index < 0 {
				continue
			}
			r.commonSetting(&file.Override(index).CommonBuildSettings, setting)
		}
		r.project.Files = append(r.project.Files, file)
	}
}
