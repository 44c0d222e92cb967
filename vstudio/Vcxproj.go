package vstudio

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	internal_io "github.com/poppolopoppo/syncproj/internal/io"
)

const MSBUILD_XMLNS = "http://schemas.microsoft.com/developer/msbuild/2003"

func labelCondition(label ConfigLabel) internal_io.XmlAttr {
	return internal_io.XmlAttr{
		Name:  "Condition",
		Value: fmt.Sprintf("'$(Configuration)|$(Platform)'=='%s'", label),
	}
}

func xmlLabel(label string) internal_io.XmlAttr {
	return internal_io.XmlAttr{Name: "Label", Value: label}
}

/***************************************
 * Inherited list formatting
 ***************************************/

func inheritedList(set base.StringSet, name string) string {
	if set.Len() == 0 {
		return ""
	}
	return set.Join(";") + ";%(" + name + ")"
}
func inheritedOptions(options, name string) string {
	if len(options) == 0 {
		return ""
	}
	return options + " %(" + name + ")"
}
func inheritedMetadata(value, name string) string {
	if len(value) == 0 {
		return ""
	}
	return value + ";%(" + name + ")"
}
func inheritedPath(value, name string) string {
	if len(value) == 0 {
		return ""
	}
	return value + ";$(" + name + ")"
}

/***************************************
 * Buffered property list
 ***************************************/

type xmlProperty struct {
	Name, Value string
	Attrs       []internal_io.XmlAttr
}

// xmlProperties are collected before writing, so empty groups can self-close.
type xmlProperties []xmlProperty

func (x *xmlProperties) Add(name, value string, attrs ...internal_io.XmlAttr) {
	if len(value) > 0 {
		*x = append(*x, xmlProperty{Name: name, Value: value, Attrs: attrs})
	}
}
func (x *xmlProperties) AddToggle(name string, value Toggle, attrs ...internal_io.XmlAttr) {
	if value.IsSet() {
		x.Add(name, value.String(), attrs...)
	}
}
func (x xmlProperties) Empty() bool { return len(x) == 0 }
func (x xmlProperties) Write(xml *internal_io.XmlFile, tag string, attrs ...internal_io.XmlAttr) {
	if x.Empty() {
		xml.Tag(tag, nil, attrs...)
		return
	}
	xml.Tag(tag, func() {
		for _, it := range x {
			xml.InnerStringAlways(it.Name, it.Value, it.Attrs...)
		}
	}, attrs...)
}

/***************************************
 * Project writer
 ***************************************/

type vcxprojWriter struct {
	xml     *internal_io.XmlFile
	project *Project
	objects map[*FileEntry]string
}

// WriteProject renders a .vcxproj. The model is only read, lazily grown
// arrays are treated as default-filled.
func WriteProject(dst io.Writer, project *Project) error {
	w := vcxprojWriter{
		xml:     internal_io.NewXmlFile(dst),
		project: project,
		objects: uniqueObjectFileNames(project),
	}
	w.write()
	return w.xml.Err()
}

func (x *Project) configurationOrDefault(index int) *ProjectConfiguration {
	if index < len(x.Configurations) {
		return x.Configurations[index]
	}
	return NewProjectConfiguration()
}
func (x *FileEntry) overrideOrNil(index int) *FileOverride {
	if index < len(x.Overrides) {
		return x.Overrides[index]
	}
	return nil
}

func (x *FileEntry) effectiveIncludeType() IncludeType {
	if x.HasCustomBuildRule() {
		return INCLUDE_CUSTOMBUILD
	}
	return x.IncludeType
}

func (x *Project) usesMasm() bool {
	for _, it := range x.Files {
		if it.effectiveIncludeType() == INCLUDE_MASM {
			return true
		}
	}
	return false
}

// uniqueObjectFileNames assigns $(IntDir)\name<N>.obj to every compiled file
// after the first sharing a lower-case basename.
func uniqueObjectFileNames(project *Project) map[*FileEntry]string {
	result := make(map[*FileEntry]string)
	seen := make(map[string]int)
	for _, file := range project.Files {
		if file.effectiveIncludeType() != INCLUDE_CLCOMPILE {
			continue
		}
		name := strings.ToLower(path.Base(file.RelativePath))
		name = strings.TrimSuffix(name, path.Ext(name))
		if n, ok := seen[name]; ok {
			result[file] = fmt.Sprintf(`$(IntDir)\%s%d.obj`, name, n)
			seen[name] = n + 1
		} else {
			seen[name] = 1
		}
	}
	return result
}

func (w *vcxprojWriter) write() {
	vs := w.project.GetVisualStudio()
	w.xml.Declaration()
	w.xml.Tag("Project", func() {
		w.projectConfigurations()
		w.globals()
		w.importProps(`$(VCTargetsPath)\Microsoft.Cpp.Default.props`)
		w.eachLabel(w.configurationProperties)
		w.importProps(`$(VCTargetsPath)\Microsoft.Cpp.props`)
		w.extensionGroup("ExtensionSettings", `$(VCTargetsPath)\BuildCustomizations\masm.props`)
		w.eachLabel(w.propertySheets)
		w.xml.Tag("PropertyGroup", nil, xmlLabel("UserMacros"))
		w.eachLabel(w.globalProperties)
		w.eachLabel(w.itemDefinitions)
		w.files()
		w.projectReferences()
		w.importProps(`$(VCTargetsPath)\Microsoft.Cpp.targets`)
		w.extensionGroup("ExtensionTargets", `$(VCTargetsPath)\BuildCustomizations\masm.targets`)
	},
		internal_io.XmlAttr{Name: "DefaultTargets", Value: "Build"},
		internal_io.XmlAttr{Name: "ToolsVersion", Value: vs.ToolsVersion()},
		internal_io.XmlAttr{Name: "xmlns", Value: MSBUILD_XMLNS})
}

func (w *vcxprojWriter) eachLabel(each func(int, ConfigLabel, *ProjectConfiguration)) {
	for i, label := range w.project.ProjectConfigurations {
		each(i, label, w.project.configurationOrDefault(i))
	}
}

func (w *vcxprojWriter) importProps(props string) {
	w.xml.Tag("Import", nil, internal_io.XmlAttr{Name: "Project", Value: props})
}

func (w *vcxprojWriter) extensionGroup(label, masm string) {
	if w.project.Keyword.IsPackaging() {
		w.xml.Tag("ImportGroup", nil, xmlLabel(label))
		return
	}
	w.xml.Tag("ImportGroup", func() {
		if w.project.usesMasm() {
			w.importProps(masm)
		}
	}, xmlLabel(label))
}

func (w *vcxprojWriter) projectConfigurations() {
	w.xml.Tag("ItemGroup", func() {
		for _, label := range w.project.ProjectConfigurations {
			w.xml.Tag("ProjectConfiguration", func() {
				w.xml.InnerStringAlways("Configuration", label.Configuration())
				w.xml.InnerStringAlways("Platform", label.Platform())
			}, internal_io.XmlAttr{Name: "Include", Value: label.String()})
		}
	}, xmlLabel("ProjectConfigurations"))
}

func (w *vcxprojWriter) globals() {
	var props xmlProperties
	props.Add("ProjectGuid", w.project.GetGuid().String())
	if w.project.Keyword.IgnoresDuplicatedFilenames() {
		props.Add("IgnoreWarnCompileDuplicatedFilename", "true")
	}
	props.Add("Keyword", w.project.Keyword.String())
	props.Add("RootNamespace", w.project.RootNamespace())
	props.Add("WindowsTargetPlatformVersion", w.project.WindowsTargetPlatformVersion)
	props.Write(w.xml, "PropertyGroup", xmlLabel("Globals"))
}

func (w *vcxprojWriter) configurationProperties(_ int, label ConfigLabel, config *ProjectConfiguration) {
	var props xmlProperties
	props.Add("ConfigurationType", config.ConfigurationType.String())
	props.Add("UseDebugLibraries", MakeToggle(config.GetUseDebugLibraries(label)).String())
	props.Add("PlatformToolset", config.GetPlatformToolset(w.project))
	if config.WholeProgramOptimization.IsSet() {
		props.Add("WholeProgramOptimization", config.WholeProgramOptimization.String())
	}
	switch w.project.Keyword {
	case KEYWORD_WIN32PROJ, KEYWORD_MFCPROJ:
		props.Add("CharacterSet", config.GetCharacterSet().String())
	}
	if w.project.Keyword == KEYWORD_MFCPROJ && config.UseOfMfc != MFC_FALSE {
		props.Add("UseOfMfc", config.UseOfMfc.String())
	}
	props.Write(w.xml, "PropertyGroup", labelCondition(label), xmlLabel("Configuration"))
}

func (w *vcxprojWriter) propertySheets(_ int, label ConfigLabel, _ *ProjectConfiguration) {
	const userProps = `$(UserRootDir)\Microsoft.Cpp.$(Platform).user.props`
	w.xml.Tag("ImportGroup", func() {
		w.xml.Tag("Import", nil,
			internal_io.XmlAttr{Name: "Project", Value: userProps},
			internal_io.XmlAttr{Name: "Condition", Value: "exists('" + userProps + "')"},
			xmlLabel("LocalAppDataPlatform"))
	}, xmlLabel("PropertySheets"), labelCondition(label))
}

func (w *vcxprojWriter) globalProperties(_ int, label ConfigLabel, config *ProjectConfiguration) {
	var props xmlProperties
	if w.project.Keyword != KEYWORD_ANDROID {
		props.Add("LinkIncremental", MakeToggle(config.GetLinkIncremental(label)).String())
	}
	if config.OutDir != OUTDIR_DEFAULT {
		props.Add("OutDir", config.OutDir)
	}
	if config.IntDir != OUTDIR_DEFAULT {
		props.Add("IntDir", config.IntDir)
	}
	props.Add("IncludePath", inheritedPath(config.IncludePath, "IncludePath"))
	props.Add("TargetName", config.TargetName)
	props.Add("TargetExt", config.TargetExt)
	props.Add("LibraryPath", inheritedPath(config.LibraryPath, "LibraryPath"))
	props.Write(w.xml, "PropertyGroup", labelCondition(label))
}

func (w *vcxprojWriter) itemDefinitions(_ int, label ConfigLabel, config *ProjectConfiguration) {
	w.xml.Tag("ItemDefinitionGroup", func() {
		var compile xmlProperties
		if config.PrecompiledHeader.IsSet() {
			compile.Add("PrecompiledHeader", config.PrecompiledHeader.String())
		}
		compile.Add("PrecompiledHeaderFile", config.PrecompiledHeaderFile)
		if config.WarningLevel.IsSet() {
			compile.Add("WarningLevel", config.WarningLevel.String())
		}
		compile.Add("Optimization", config.GetOptimization(label).String())
		compile.AddToggle("FunctionLevelLinking", config.FunctionLevelLinking)
		compile.AddToggle("IntrinsicFunctions", config.IntrinsicFunctions)
		compile.Add("ObjectFileName", config.ObjectFileName)
		compile.Add("XMLDocumentationFileName", config.XMLDocumentationFileName)
		compile.Add("PreprocessorDefinitions", inheritedList(config.PreprocessorDefinitions, "PreprocessorDefinitions"))
		if config.DebugInformationFormat.IsSet() {
			compile.Add("DebugInformationFormat", config.DebugInformationFormat.String())
		}
		compile.Add("AdditionalIncludeDirectories", inheritedList(config.AdditionalIncludeDirectories, "AdditionalIncludeDirectories"))
		compile.Add("AdditionalOptions", inheritedOptions(config.AdditionalOptions, "AdditionalOptions"))
		if config.ExcludedFromBuild {
			compile.Add("ExcludedFromBuild", "true")
		}
		compile.Write(w.xml, "ClCompile")

		var link, lib xmlProperties
		if config.SubSystem.IsSet() {
			link.Add("SubSystem", config.SubSystem.String())
		}
		link.Add("GenerateDebugInformation", config.GetGenerateDebugInformation(label).String())
		link.AddToggle("EnableCOMDATFolding", config.EnableCOMDATFolding)
		link.AddToggle("OptimizeReferences", config.OptimizeReferences)

		archive := &link
		if config.ConfigurationType == CONFIGURATION_STATICLIBRARY {
			archive = &lib
		}
		archive.Add("AdditionalDependencies", inheritedList(config.AdditionalDependencies, "AdditionalDependencies"))
		archive.Add("AdditionalLibraryDirectories", config.AdditionalLibraryDirectories.Join(";"))
		archive.Add("AdditionalOptions", inheritedOptions(config.LinkAdditionalOptions, "AdditionalOptions"))

		link.Write(w.xml, "Link")
		if !lib.Empty() {
			lib.Write(w.xml, "Lib")
		}

		w.buildEvent("PreBuildEvent", config.PreBuildEvent)
		w.buildEvent("PreLinkEvent", config.PreLinkEvent)
		w.buildEvent("PostBuildEvent", config.PostBuildEvent)

		if rule := config.CustomBuildRule; rule != nil {
			var step xmlProperties
			step.Add("Command", rule.Command)
			if rule.Message != CUSTOMBUILD_DEFAULT_MESSAGE {
				step.Add("Message", rule.Message)
			}
			step.Add("Outputs", rule.Outputs)
			step.Add("Inputs", rule.AdditionalInputs)
			step.Write(w.xml, "CustomBuildStep")
		}
	}, labelCondition(label))
}

func (w *vcxprojWriter) buildEvent(tag string, event BuildEvent) {
	if event.IsEmpty() {
		return
	}
	var props xmlProperties
	props.Add("Command", event.Command)
	props.Add("Message", event.Message)
	props.Write(w.xml, tag)
}

/***************************************
 * File items
 ***************************************/

func (w *vcxprojWriter) files() {
	var group IncludeType
	opened := false
	closeGroup := func() {
		if opened {
			w.xml.EndIndent()
			w.xml.Println("</ItemGroup>")
		}
	}

	for _, file := range w.project.Files {
		includeType := file.effectiveIncludeType()
		if !opened || group != includeType {
			closeGroup()
			w.xml.Println("<ItemGroup>")
			w.xml.BeginIndent()
			opened = true
			group = includeType
		}

		var props xmlProperties
		if includeType == INCLUDE_CUSTOMBUILD {
			w.customBuildProperties(&props, file)
		} else {
			w.fileProperties(&props, file)
		}
		props.Write(w.xml, includeType.String(), internal_io.XmlAttr{
			Name:  "Include",
			Value: strings.ReplaceAll(file.RelativePath, "/", "\\"),
		})
	}
	closeGroup()
}

func (w *vcxprojWriter) customBuildProperties(props *xmlProperties, file *FileEntry) {
	for i, label := range w.project.ProjectConfigurations {
		cond := labelCondition(label)
		override := file.overrideOrNil(i)
		if override == nil || override.CustomBuildRule == nil {
			props.Add("ExcludedFromBuild", "true", cond)
			continue
		}
		rule := override.CustomBuildRule
		props.Add("Command", rule.Command, cond)
		props.Add("AdditionalInputs", inheritedMetadata(rule.AdditionalInputs, "AdditionalInputs"), cond)
		props.Add("Outputs", rule.Outputs, cond)
		if rule.Message != CUSTOMBUILD_DEFAULT_MESSAGE {
			props.Add("Message", rule.Message, cond)
		}
	}
}

func (w *vcxprojWriter) fileProperties(props *xmlProperties, file *FileEntry) {
	object, hasObject := w.objects[file]
	for i, label := range w.project.ProjectConfigurations {
		cond := labelCondition(label)
		config := w.project.configurationOrDefault(i)
		override := file.overrideOrNil(i)
		if override == nil {
			if hasObject {
				props.Add("ObjectFileName", object, cond)
			}
			continue
		}

		if override.ExcludedFromBuild {
			props.Add("ExcludedFromBuild", "true", cond)
		}
		if len(override.ObjectFileName) > 0 {
			props.Add("ObjectFileName", override.ObjectFileName, cond)
		} else if hasObject {
			props.Add("ObjectFileName", object, cond)
		}
		if defines := override.PreprocessorDefinitions.Join(";"); len(defines) > 0 && defines != config.PreprocessorDefinitions.Join(";") {
			props.Add("PreprocessorDefinitions", inheritedList(override.PreprocessorDefinitions, "PreprocessorDefinitions"), cond)
		}
		if dirs := override.AdditionalIncludeDirectories.Join(";"); len(dirs) > 0 && dirs != config.AdditionalIncludeDirectories.Join(";") {
			props.Add("AdditionalIncludeDirectories", inheritedList(override.AdditionalIncludeDirectories, "AdditionalIncludeDirectories"), cond)
		}
		if override.PrecompiledHeader.IsSet() && override.PrecompiledHeader != config.PrecompiledHeader {
			props.Add("PrecompiledHeader", override.PrecompiledHeader.String(), cond)
		}
		if override.PrecompiledHeaderFile != config.PrecompiledHeaderFile {
			props.Add("PrecompiledHeaderFile", override.PrecompiledHeaderFile, cond)
		}
		props.Add("XMLDocumentationFileName", override.XMLDocumentationFileName, cond)
		if override.Optimization.IsSet() && override.Optimization != config.GetOptimization(label) {
			props.Add("Optimization", override.Optimization.String(), cond)
		}
		if override.AdditionalOptions != config.AdditionalOptions {
			props.Add("AdditionalOptions", inheritedOptions(override.AdditionalOptions, "AdditionalOptions"), cond)
		}
	}
}

func (w *vcxprojWriter) projectReferences() {
	if len(w.project.References) == 0 {
		return
	}
	w.xml.Tag("ItemGroup", func() {
		for _, it := range w.project.References {
			w.xml.Tag("ProjectReference", func() {
				w.xml.InnerStringAlways("Project", it.Guid.String())
			}, internal_io.XmlAttr{Name: "Include", Value: strings.ReplaceAll(it.Path, "/", "\\")})
		}
	})
}
