package vstudio

import (
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
)

/***************************************
 * CustomBuildRule
 ***************************************/

const CUSTOMBUILD_DEFAULT_MESSAGE = "Performing Custom Build Tools"

type CustomBuildRule struct {
	Command          string
	Message          string
	Outputs          string
	AdditionalInputs string
}

func (x *CustomBuildRule) Clone() *CustomBuildRule {
	if x == nil {
		return nil
	}
	clone := *x
	return &clone
}
func (x *CustomBuildRule) Serialize(ar base.Archive) {
	ar.String(&x.Command)
	ar.String(&x.Message)
	ar.String(&x.Outputs)
	ar.String(&x.AdditionalInputs)
}

/***************************************
 * BuildEvent
 ***************************************/

type BuildEvent struct {
	Command string
	Message string
}

func (x BuildEvent) IsEmpty() bool { return len(x.Command) == 0 && len(x.Message) == 0 }
func (x *BuildEvent) Serialize(ar base.Archive) {
	ar.String(&x.Command)
	ar.String(&x.Message)
}

/***************************************
 * CommonBuildSettings
 ***************************************/

// CommonBuildSettings holds what can be set both project-wide and per file.
type CommonBuildSettings struct {
	PreprocessorDefinitions      base.StringSet
	AdditionalIncludeDirectories base.StringSet
	PrecompiledHeader            PrecompiledHeaderUse
	PrecompiledHeaderFile        string
	ObjectFileName               string
	XMLDocumentationFileName     string
	Optimization                 Optimization
	AdditionalOptions            string
	CustomBuildRule              *CustomBuildRule
	ExcludedFromBuild            bool
}

// BuildSettings is implemented by every record holding CommonBuildSettings.
type BuildSettings interface {
	Common() *CommonBuildSettings
}

func (x *CommonBuildSettings) Common() *CommonBuildSettings { return x }

// IsEmpty is true when nothing would be emitted for these settings.
func (x *CommonBuildSettings) IsEmpty() bool {
	return x.PreprocessorDefinitions.Len() == 0 &&
		x.AdditionalIncludeDirectories.Len() == 0 &&
		!x.PrecompiledHeader.IsSet() &&
		len(x.PrecompiledHeaderFile) == 0 &&
		len(x.ObjectFileName) == 0 &&
		len(x.XMLDocumentationFileName) == 0 &&
		!x.Optimization.IsSet() &&
		len(x.AdditionalOptions) == 0 &&
		x.CustomBuildRule == nil &&
		!x.ExcludedFromBuild
}

func (x *CommonBuildSettings) CloneCommon() CommonBuildSettings {
	return CommonBuildSettings{
		PreprocessorDefinitions:      x.PreprocessorDefinitions.Clone(),
		AdditionalIncludeDirectories: x.AdditionalIncludeDirectories.Clone(),
		PrecompiledHeader:            x.PrecompiledHeader,
		PrecompiledHeaderFile:        x.PrecompiledHeaderFile,
		ObjectFileName:               x.ObjectFileName,
		XMLDocumentationFileName:     x.XMLDocumentationFileName,
		Optimization:                 x.Optimization,
		AdditionalOptions:            x.AdditionalOptions,
		CustomBuildRule:              x.CustomBuildRule.Clone(),
		ExcludedFromBuild:            x.ExcludedFromBuild,
	}
}

func (x *CommonBuildSettings) Serialize(ar base.Archive) {
	ar.Serializable(&x.PreprocessorDefinitions)
	ar.Serializable(&x.AdditionalIncludeDirectories)
	ar.Serializable(&x.PrecompiledHeader)
	ar.String(&x.PrecompiledHeaderFile)
	ar.String(&x.ObjectFileName)
	ar.String(&x.XMLDocumentationFileName)
	ar.Serializable(&x.Optimization)
	ar.String(&x.AdditionalOptions)

	hasRule := (x.CustomBuildRule != nil)
	ar.Bool(&hasRule)
	if hasRule {
		if ar.Flags().IsLoading() {
			x.CustomBuildRule = &CustomBuildRule{}
		}
		ar.Serializable(x.CustomBuildRule)
	} else {
		x.CustomBuildRule = nil
	}

	ar.Bool(&x.ExcludedFromBuild)
}

/***************************************
 * ProjectConfiguration
 ***************************************/

type ProjectConfiguration struct {
	CommonBuildSettings

	ConfigurationType        ConfigurationType
	UseDebugLibraries        Toggle
	PlatformToolset          string
	CharacterSet             CharacterSet
	WholeProgramOptimization WholeProgramOptimization
	UseOfMfc                 UseOfMfc

	LinkIncremental Toggle
	OutDir          string
	IntDir          string
	TargetName      string
	TargetExt       string
	IncludePath     string
	LibraryPath     string

	WarningLevel           WarningLevel
	FunctionLevelLinking   Toggle
	IntrinsicFunctions     Toggle
	DebugInformationFormat DebugInformationFormat

	SubSystem                    SubSystem
	GenerateDebugInformation     GenerateDebugInformation
	AdditionalDependencies       base.StringSet
	AdditionalLibraryDirectories base.StringSet
	EnableCOMDATFolding          Toggle
	OptimizeReferences           Toggle
	LinkAdditionalOptions        string

	PreBuildEvent  BuildEvent
	PreLinkEvent   BuildEvent
	PostBuildEvent BuildEvent
}

func NewProjectConfiguration() *ProjectConfiguration {
	return &ProjectConfiguration{}
}

func (x *ProjectConfiguration) Clone() *ProjectConfiguration {
	return &ProjectConfiguration{
		CommonBuildSettings: x.CloneCommon(),

		ConfigurationType:        x.ConfigurationType,
		UseDebugLibraries:        x.UseDebugLibraries,
		PlatformToolset:          x.PlatformToolset,
		CharacterSet:             x.CharacterSet,
		WholeProgramOptimization: x.WholeProgramOptimization,
		UseOfMfc:                 x.UseOfMfc,

		LinkIncremental: x.LinkIncremental,
		OutDir:          x.OutDir,
		IntDir:          x.IntDir,
		TargetName:      x.TargetName,
		TargetExt:       x.TargetExt,
		IncludePath:     x.IncludePath,
		LibraryPath:     x.LibraryPath,

		WarningLevel:           x.WarningLevel,
		FunctionLevelLinking:   x.FunctionLevelLinking,
		IntrinsicFunctions:     x.IntrinsicFunctions,
		DebugInformationFormat: x.DebugInformationFormat,

		SubSystem:                    x.SubSystem,
		GenerateDebugInformation:     x.GenerateDebugInformation,
		AdditionalDependencies:       x.AdditionalDependencies.Clone(),
		AdditionalLibraryDirectories: x.AdditionalLibraryDirectories.Clone(),
		EnableCOMDATFolding:          x.EnableCOMDATFolding,
		OptimizeReferences:           x.OptimizeReferences,
		LinkAdditionalOptions:        x.LinkAdditionalOptions,

		PreBuildEvent:  x.PreBuildEvent,
		PreLinkEvent:   x.PreLinkEvent,
		PostBuildEvent: x.PostBuildEvent,
	}
}

func (x *ProjectConfiguration) Serialize(ar base.Archive) {
	ar.Serializable(&x.CommonBuildSettings)

	ar.Serializable(&x.ConfigurationType)
	ar.Serializable(&x.UseDebugLibraries)
	ar.String(&x.PlatformToolset)
	ar.Serializable(&x.CharacterSet)
	ar.Serializable(&x.WholeProgramOptimization)
	ar.Serializable(&x.UseOfMfc)

	ar.Serializable(&x.LinkIncremental)
	ar.String(&x.OutDir)
	ar.String(&x.IntDir)
	ar.String(&x.TargetName)
	ar.String(&x.TargetExt)
	ar.String(&x.IncludePath)
	ar.String(&x.LibraryPath)

	ar.Serializable(&x.WarningLevel)
	ar.Serializable(&x.FunctionLevelLinking)
	ar.Serializable(&x.IntrinsicFunctions)
	ar.Serializable(&x.DebugInformationFormat)

	ar.Serializable(&x.SubSystem)
	ar.Serializable(&x.GenerateDebugInformation)
	ar.Serializable(&x.AdditionalDependencies)
	ar.Serializable(&x.AdditionalLibraryDirectories)
	ar.Serializable(&x.EnableCOMDATFolding)
	ar.Serializable(&x.OptimizeReferences)
	ar.String(&x.LinkAdditionalOptions)

	ar.Serializable(&x.PreBuildEvent)
	ar.Serializable(&x.PreLinkEvent)
	ar.Serializable(&x.PostBuildEvent)
}

/***************************************
 * Lazy defaults, never stored
 ***************************************/

func isDebugConfiguration(label ConfigLabel) bool {
	return strings.Contains(strings.ToLower(label.Configuration()), "debug")
}

func (x *ProjectConfiguration) GetUseDebugLibraries(label ConfigLabel) bool {
	return x.UseDebugLibraries.Get(isDebugConfiguration(label))
}
func (x *ProjectConfiguration) GetPlatformToolset(project *Project) string {
	if len(x.PlatformToolset) > 0 {
		return x.PlatformToolset
	}
	return project.GetVisualStudio().DefaultToolset()
}
func (x *ProjectConfiguration) GetCharacterSet() CharacterSet {
	return x.CharacterSet.Or(CHARSET_UNICODE)
}
func (x *ProjectConfiguration) GetOptimization(label ConfigLabel) Optimization {
	if x.Optimization.IsSet() {
		return x.Optimization
	}
	if x.GetUseDebugLibraries(label) {
		return OPTIMIZATION_DISABLED
	}
	return OPTIMIZATION_MAXSPEED
}
func (x *ProjectConfiguration) GetLinkIncremental(label ConfigLabel) bool {
	return x.LinkIncremental.Get(x.GetUseDebugLibraries(label))
}
func (x *ProjectConfiguration) GetGenerateDebugInformation(label ConfigLabel) GenerateDebugInformation {
	if x.GenerateDebugInformation != DEBUGINFO_PROJECTDEFAULT {
		return x.GenerateDebugInformation
	}
	if x.GetUseDebugLibraries(label) {
		return DEBUGINFO_TRUE
	}
	return DEBUGINFO_FALSE
}

const OUTDIR_DEFAULT = `$(SolutionDir)$(Configuration)\`

func (x *ProjectConfiguration) GetOutDir() string {
	if len(x.OutDir) > 0 {
		return x.OutDir
	}
	return OUTDIR_DEFAULT
}

/***************************************
 * FileOverride
 ***************************************/

// FileOverride is the per-file, per-configuration record.
type FileOverride struct {
	CommonBuildSettings
}

func NewFileOverride() *FileOverride {
	return &FileOverride{}
}

func (x *FileOverride) Clone() *FileOverride {
	return &FileOverride{CommonBuildSettings: x.CloneCommon()}
}
func (x *FileOverride) Serialize(ar base.Archive) {
	ar.Serializable(&x.CommonBuildSettings)
}
