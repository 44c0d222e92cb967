package vstudio

import (
	"fmt"
	"strconv"

	"github.com/poppolopoppo/syncproj/internal/base"
)

/***************************************
 * VisualStudioVersion
 ***************************************/

type VisualStudioVersion byte

const (
	VS_DEFAULT VisualStudioVersion = iota
	VS_2010
	VS_2012
	VS_2013
	VS_2015
	VS_2017
	VS_2019
	VS_2022
)

var visualStudioVersionTags = base.EnumTagTable[VisualStudioVersion]{
	{"default", VS_DEFAULT},
	{"2010", VS_2010},
	{"2012", VS_2012},
	{"2013", VS_2013},
	{"2015", VS_2015},
	{"2017", VS_2017},
	{"2019", VS_2019},
	{"2022", VS_2022},
}

type visualStudioTraits struct {
	Year         int
	Number       int // as written after "# Visual Studio"
	Toolset      string
	ToolsVersion string
}

var visualStudioVersionTraits = map[VisualStudioVersion]visualStudioTraits{
	VS_2010: {2010, 2010, "v100", "4.0"},
	VS_2012: {2012, 2012, "v110", "4.0"},
	VS_2013: {2013, 2013, "v120", "12.0"},
	VS_2015: {2015, 14, "v140", "14.0"},
	VS_2017: {2017, 15, "v141", "15.0"},
	VS_2019: {2019, 16, "v142", "16.0"},
	VS_2022: {2022, 17, "v143", "17.0"},
}

const VS_LATEST = VS_2022

func VisualStudioVersions() []VisualStudioVersion {
	return []VisualStudioVersion{VS_2010, VS_2012, VS_2013, VS_2015, VS_2017, VS_2019, VS_2022}
}

func (x VisualStudioVersion) traits() visualStudioTraits {
	if traits, ok := visualStudioVersionTraits[x]; ok {
		return traits
	}
	return visualStudioVersionTraits[VS_LATEST]
}

// Or returns def when x was never set.
func (x VisualStudioVersion) Or(def VisualStudioVersion) VisualStudioVersion {
	if x == VS_DEFAULT {
		return def
	}
	return x
}
func (x VisualStudioVersion) Year() int              { return x.traits().Year }
func (x VisualStudioVersion) DefaultToolset() string { return x.traits().Toolset }
func (x VisualStudioVersion) ToolsVersion() string   { return x.traits().ToolsVersion }

func (x VisualStudioVersion) SlnFormatVersion() string {
	if x.Year() <= 2010 {
		return "11.00"
	}
	return "12.00"
}

// SlnHeader is the text following "# Visual Studio " in a solution banner.
func (x VisualStudioVersion) SlnHeader() string {
	traits := x.traits()
	switch {
	case traits.Year <= 2013:
		return strconv.Itoa(traits.Year)
	case traits.Year <= 2017:
		return strconv.Itoa(traits.Number)
	default:
		return fmt.Sprint("Version ", traits.Number)
	}
}

// VisualStudioVersionFromSlnNumber decodes the number of a solution banner,
// which is either a year or an internal version number.
func VisualStudioVersionFromSlnNumber(n int) (VisualStudioVersion, error) {
	year := n
	if n < 2000 {
		year = n - 14 + 2015
		for version, traits := range visualStudioVersionTraits {
			if traits.Year > 2013 && traits.Number == n {
				year = version.Year()
			}
		}
	}
	return VisualStudioVersionFromYear(year)
}

func VisualStudioVersionFromYear(year int) (VisualStudioVersion, error) {
	for version, traits := range visualStudioVersionTraits {
		if traits.Year == year {
			return version, nil
		}
	}
	return VS_DEFAULT, fmt.Errorf("unsupported Visual Studio version %d, expected one of %v", year, visualStudioVersionTags.Tags()[1:])
}

func (x VisualStudioVersion) String() string {
	return base.EnumString(x, visualStudioVersionTags)
}
func (x *VisualStudioVersion) Set(in string) error {
	return base.ParseEnum(x, in, visualStudioVersionTags)
}
func (x *VisualStudioVersion) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x VisualStudioVersion) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *VisualStudioVersion) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * Toggle
 ***************************************/

// Toggle is an optional boolean, unset means "use the computed default".
type Toggle byte

const (
	TOGGLE_UNSET Toggle = iota
	TOGGLE_FALSE
	TOGGLE_TRUE
)

var toggleTags = base.EnumTagTable[Toggle]{
	{"", TOGGLE_UNSET},
	{"false", TOGGLE_FALSE},
	{"true", TOGGLE_TRUE},
}
var toggleAliases = base.EnumTagTable[Toggle]{
	{"off", TOGGLE_FALSE},
	{"on", TOGGLE_TRUE},
	{"no", TOGGLE_FALSE},
	{"yes", TOGGLE_TRUE},
}

func MakeToggle(enabled bool) Toggle {
	if enabled {
		return TOGGLE_TRUE
	}
	return TOGGLE_FALSE
}
func (x Toggle) IsSet() bool { return x != TOGGLE_UNSET }
func (x Toggle) Get(def bool) bool {
	switch x {
	case TOGGLE_TRUE:
		return true
	case TOGGLE_FALSE:
		return false
	default:
		return def
	}
}
func (x Toggle) String() string {
	return base.EnumString(x, toggleTags)
}
func (x *Toggle) Set(in string) error {
	return base.ParseEnum(x, in, toggleTags, toggleAliases)
}
func (x *Toggle) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x Toggle) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *Toggle) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * ConfigurationType
 ***************************************/

type ConfigurationType byte

const (
	CONFIGURATION_APPLICATION ConfigurationType = iota
	CONFIGURATION_DYNAMICLIBRARY
	CONFIGURATION_STATICLIBRARY
	CONFIGURATION_UTILITY
	CONFIGURATION_MAKEFILE
)

var configurationTypeTags = base.EnumTagTable[ConfigurationType]{
	{"Application", CONFIGURATION_APPLICATION},
	{"DynamicLibrary", CONFIGURATION_DYNAMICLIBRARY},
	{"StaticLibrary", CONFIGURATION_STATICLIBRARY},
	{"Utility", CONFIGURATION_UTILITY},
	{"Makefile", CONFIGURATION_MAKEFILE},
}
var configurationTypeAliases = base.EnumTagTable[ConfigurationType]{
	{"ConsoleApp", CONFIGURATION_APPLICATION},
	{"WindowedApp", CONFIGURATION_APPLICATION},
	{"SharedLib", CONFIGURATION_DYNAMICLIBRARY},
	{"StaticLib", CONFIGURATION_STATICLIBRARY},
}

func (x ConfigurationType) String() string {
	return base.EnumString(x, configurationTypeTags)
}
func (x *ConfigurationType) Set(in string) error {
	return base.ParseEnum(x, in, configurationTypeAliases, configurationTypeTags)
}
func (x *ConfigurationType) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x ConfigurationType) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *ConfigurationType) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * CharacterSet
 ***************************************/

type CharacterSet byte

const (
	CHARSET_DEFAULT CharacterSet = iota
	CHARSET_NOTSET
	CHARSET_UNICODE
	CHARSET_MULTIBYTE
)

var characterSetTags = base.EnumTagTable[CharacterSet]{
	{"Default", CHARSET_DEFAULT},
	{"NotSet", CHARSET_NOTSET},
	{"Unicode", CHARSET_UNICODE},
	{"MultiByte", CHARSET_MULTIBYTE},
}
var characterSetAliases = base.EnumTagTable[CharacterSet]{
	{"MBCS", CHARSET_MULTIBYTE},
	{"ASCII", CHARSET_NOTSET},
}

func (x CharacterSet) Or(def CharacterSet) CharacterSet {
	if x == CHARSET_DEFAULT {
		return def
	}
	return x
}
func (x CharacterSet) String() string {
	return base.EnumString(x, characterSetTags)
}
func (x *CharacterSet) Set(in string) error {
	return base.ParseEnum(x, in, characterSetAliases, characterSetTags)
}
func (x *CharacterSet) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x CharacterSet) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *CharacterSet) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * Optimization
 ***************************************/

type Optimization byte

const (
	OPTIMIZATION_PROJECTDEFAULT Optimization = iota
	OPTIMIZATION_CUSTOM
	OPTIMIZATION_DISABLED
	OPTIMIZATION_MINSPACE
	OPTIMIZATION_MAXSPEED
	OPTIMIZATION_FULL
)

var optimizationTags = base.EnumTagTable[Optimization]{
	{"ProjectDefault", OPTIMIZATION_PROJECTDEFAULT},
	{"Custom", OPTIMIZATION_CUSTOM},
	{"Disabled", OPTIMIZATION_DISABLED},
	{"MinSpace", OPTIMIZATION_MINSPACE},
	{"MaxSpeed", OPTIMIZATION_MAXSPEED},
	{"Full", OPTIMIZATION_FULL},
}
var optimizationAliases = base.EnumTagTable[Optimization]{
	{"custom", OPTIMIZATION_CUSTOM},
	{"off", OPTIMIZATION_DISABLED},
	{"debug", OPTIMIZATION_DISABLED},
	{"size", OPTIMIZATION_MINSPACE},
	{"speed", OPTIMIZATION_MAXSPEED},
	{"on", OPTIMIZATION_FULL},
	{"full", OPTIMIZATION_FULL},
}

func (x Optimization) IsSet() bool { return x != OPTIMIZATION_PROJECTDEFAULT }
func (x Optimization) String() string {
	return base.EnumString(x, optimizationTags)
}
func (x *Optimization) Set(in string) error {
	return base.ParseEnum(x, in, optimizationAliases, optimizationTags)
}
func (x *Optimization) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x Optimization) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *Optimization) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * GenerateDebugInformation
 ***************************************/

type GenerateDebugInformation byte

const (
	DEBUGINFO_PROJECTDEFAULT GenerateDebugInformation = iota
	DEBUGINFO_FALSE
	DEBUGINFO_TRUE
	DEBUGINFO_FASTLINK
)

var generateDebugInformationTags = base.EnumTagTable[GenerateDebugInformation]{
	{"ProjectDefault", DEBUGINFO_PROJECTDEFAULT},
	{"false", DEBUGINFO_FALSE},
	{"true", DEBUGINFO_TRUE},
	{"DebugFastLink", DEBUGINFO_FASTLINK},
}
var generateDebugInformationAliases = base.EnumTagTable[GenerateDebugInformation]{
	{"off", DEBUGINFO_FALSE},
	{"on", DEBUGINFO_TRUE},
	{"full", DEBUGINFO_TRUE},
	{"fastlink", DEBUGINFO_FASTLINK},
	{"default", DEBUGINFO_PROJECTDEFAULT},
}

func (x GenerateDebugInformation) String() string {
	return base.EnumString(x, generateDebugInformationTags)
}
func (x *GenerateDebugInformation) Set(in string) error {
	return base.ParseEnum(x, in, generateDebugInformationAliases, generateDebugInformationTags)
}
func (x *GenerateDebugInformation) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x GenerateDebugInformation) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *GenerateDebugInformation) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * PrecompiledHeaderUse
 ***************************************/

type PrecompiledHeaderUse byte

const (
	PCH_PROJECTDEFAULT PrecompiledHeaderUse = iota
	PCH_CREATE
	PCH_USE
	PCH_NOTUSING
)

var precompiledHeaderUseTags = base.EnumTagTable[PrecompiledHeaderUse]{
	{"ProjectDefault", PCH_PROJECTDEFAULT},
	{"Create", PCH_CREATE},
	{"Use", PCH_USE},
	{"NotUsing", PCH_NOTUSING},
}

func (x PrecompiledHeaderUse) IsSet() bool { return x != PCH_PROJECTDEFAULT }
func (x PrecompiledHeaderUse) String() string {
	return base.EnumString(x, precompiledHeaderUseTags)
}
func (x *PrecompiledHeaderUse) Set(in string) error {
	return base.ParseEnum(x, in, precompiledHeaderUseTags)
}
func (x *PrecompiledHeaderUse) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x PrecompiledHeaderUse) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *PrecompiledHeaderUse) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * WarningLevel
 ***************************************/

type WarningLevel byte

const (
	WARNING_PROJECTDEFAULT WarningLevel = iota
	WARNING_TURNOFFALLWARNINGS
	WARNING_LEVEL1
	WARNING_LEVEL2
	WARNING_LEVEL3
	WARNING_LEVEL4
	WARNING_ENABLEALLWARNINGS
)

var warningLevelTags = base.EnumTagTable[WarningLevel]{
	{"ProjectDefault", WARNING_PROJECTDEFAULT},
	{"TurnOffAllWarnings", WARNING_TURNOFFALLWARNINGS},
	{"Level1", WARNING_LEVEL1},
	{"Level2", WARNING_LEVEL2},
	{"Level3", WARNING_LEVEL3},
	{"Level4", WARNING_LEVEL4},
	{"EnableAllWarnings", WARNING_ENABLEALLWARNINGS},
}
var warningLevelAliases = base.EnumTagTable[WarningLevel]{
	{"off", WARNING_TURNOFFALLWARNINGS},
	{"default", WARNING_LEVEL3},
	{"extra", WARNING_LEVEL4},
	{"high", WARNING_LEVEL4},
	{"everything", WARNING_ENABLEALLWARNINGS},
}

func (x WarningLevel) IsSet() bool { return x != WARNING_PROJECTDEFAULT }
func (x WarningLevel) String() string {
	return base.EnumString(x, warningLevelTags)
}
func (x *WarningLevel) Set(in string) error {
	return base.ParseEnum(x, in, warningLevelAliases, warningLevelTags)
}
func (x *WarningLevel) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x WarningLevel) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *WarningLevel) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * DebugInformationFormat
 ***************************************/

type DebugInformationFormat byte

const (
	DEBUGFORMAT_PROJECTDEFAULT DebugInformationFormat = iota
	DEBUGFORMAT_NONE
	DEBUGFORMAT_OLDSTYLE
	DEBUGFORMAT_PROGRAMDATABASE
	DEBUGFORMAT_EDITANDCONTINUE
)

var debugInformationFormatTags = base.EnumTagTable[DebugInformationFormat]{
	{"ProjectDefault", DEBUGFORMAT_PROJECTDEFAULT},
	{"None", DEBUGFORMAT_NONE},
	{"OldStyle", DEBUGFORMAT_OLDSTYLE},
	{"ProgramDatabase", DEBUGFORMAT_PROGRAMDATABASE},
	{"EditAndContinue", DEBUGFORMAT_EDITANDCONTINUE},
}

func (x DebugInformationFormat) IsSet() bool { return x != DEBUGFORMAT_PROJECTDEFAULT }
func (x DebugInformationFormat) String() string {
	return base.EnumString(x, debugInformationFormatTags)
}
func (x *DebugInformationFormat) Set(in string) error {
	return base.ParseEnum(x, in, debugInformationFormatTags)
}
func (x *DebugInformationFormat) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x DebugInformationFormat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *DebugInformationFormat) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * SubSystem
 ***************************************/

type SubSystem byte

const (
	SUBSYSTEM_NOTSET SubSystem = iota
	SUBSYSTEM_CONSOLE
	SUBSYSTEM_WINDOWS
	SUBSYSTEM_NATIVE
	SUBSYSTEM_EFI_APPLICATION
	SUBSYSTEM_EFI_BOOT_SERVICE_DRIVER
	SUBSYSTEM_EFI_ROM
	SUBSYSTEM_EFI_RUNTIME
	SUBSYSTEM_POSIX
)

var subSystemTags = base.EnumTagTable[SubSystem]{
	{"NotSet", SUBSYSTEM_NOTSET},
	{"Console", SUBSYSTEM_CONSOLE},
	{"Windows", SUBSYSTEM_WINDOWS},
	{"Native", SUBSYSTEM_NATIVE},
	{"EFI Application", SUBSYSTEM_EFI_APPLICATION},
	{"EFI Boot Service Driver", SUBSYSTEM_EFI_BOOT_SERVICE_DRIVER},
	{"EFI ROM", SUBSYSTEM_EFI_ROM},
	{"EFI Runtime", SUBSYSTEM_EFI_RUNTIME},
	{"POSIX", SUBSYSTEM_POSIX},
}

func (x SubSystem) IsSet() bool { return x != SUBSYSTEM_NOTSET }
func (x SubSystem) String() string {
	return base.EnumString(x, subSystemTags)
}
func (x *SubSystem) Set(in string) error {
	return base.ParseEnum(x, in, subSystemTags)
}
func (x *SubSystem) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x SubSystem) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *SubSystem) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * WholeProgramOptimization
 ***************************************/

type WholeProgramOptimization byte

const (
	WPO_PROJECTDEFAULT WholeProgramOptimization = iota
	WPO_FALSE
	WPO_TRUE
	WPO_PGINSTRUMENT
	WPO_PGOPTIMIZE
	WPO_PGUPDATE
)

var wholeProgramOptimizationTags = base.EnumTagTable[WholeProgramOptimization]{
	{"ProjectDefault", WPO_PROJECTDEFAULT},
	{"false", WPO_FALSE},
	{"true", WPO_TRUE},
	{"PGInstrument", WPO_PGINSTRUMENT},
	{"PGOptimize", WPO_PGOPTIMIZE},
	{"PGUpdate", WPO_PGUPDATE},
}
var wholeProgramOptimizationAliases = base.EnumTagTable[WholeProgramOptimization]{
	{"off", WPO_FALSE},
	{"on", WPO_TRUE},
	{"ltcg", WPO_TRUE},
	{"instrument", WPO_PGINSTRUMENT},
	{"optimize", WPO_PGOPTIMIZE},
	{"update", WPO_PGUPDATE},
}

func (x WholeProgramOptimization) IsSet() bool { return x != WPO_PROJECTDEFAULT }
func (x WholeProgramOptimization) String() string {
	return base.EnumString(x, wholeProgramOptimizationTags)
}
func (x *WholeProgramOptimization) Set(in string) error {
	return base.ParseEnum(x, in, wholeProgramOptimizationAliases, wholeProgramOptimizationTags)
}
func (x *WholeProgramOptimization) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x WholeProgramOptimization) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *WholeProgramOptimization) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * UseOfMfc
 ***************************************/

type UseOfMfc byte

const (
	MFC_FALSE UseOfMfc = iota
	MFC_STATIC
	MFC_DYNAMIC
)

var useOfMfcTags = base.EnumTagTable[UseOfMfc]{
	{"false", MFC_FALSE},
	{"Static", MFC_STATIC},
	{"Dynamic", MFC_DYNAMIC},
}

func (x UseOfMfc) String() string {
	return base.EnumString(x, useOfMfcTags)
}
func (x *UseOfMfc) Set(in string) error {
	return base.ParseEnum(x, in, useOfMfcTags)
}
func (x *UseOfMfc) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x UseOfMfc) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *UseOfMfc) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * Keyword
 ***************************************/

type Keyword byte

const (
	KEYWORD_NONE Keyword = iota
	KEYWORD_WIN32PROJ
	KEYWORD_MFCPROJ
	KEYWORD_ANDROID
	KEYWORD_PACKAGE
	KEYWORD_ANTPACKAGE
	KEYWORD_GRADLEPACKAGE
)

var keywordTags = base.EnumTagTable[Keyword]{
	{"None", KEYWORD_NONE},
	{"Win32Proj", KEYWORD_WIN32PROJ},
	{"MFCProj", KEYWORD_MFCPROJ},
	{"Android", KEYWORD_ANDROID},
	{"Package", KEYWORD_PACKAGE},
	{"AntPackage", KEYWORD_ANTPACKAGE},
	{"GradlePackage", KEYWORD_GRADLEPACKAGE},
}

// IgnoresDuplicatedFilenames is true for the keywords which get
// <IgnoreWarnCompileDuplicatedFilename>.
func (x Keyword) IgnoresDuplicatedFilenames() bool {
	switch x {
	case KEYWORD_NONE, KEYWORD_WIN32PROJ, KEYWORD_MFCPROJ, KEYWORD_ANDROID:
		return true
	default:
		return false
	}
}
func (x Keyword) IsPackaging() bool {
	switch x {
	case KEYWORD_PACKAGE, KEYWORD_ANTPACKAGE, KEYWORD_GRADLEPACKAGE:
		return true
	default:
		return false
	}
}
func (x Keyword) String() string {
	return base.EnumString(x, keywordTags)
}
func (x *Keyword) Set(in string) error {
	return base.ParseEnum(x, in, keywordTags)
}
func (x *Keyword) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x Keyword) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *Keyword) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * IncludeType
 ***************************************/

type IncludeType byte

const (
	INCLUDE_NONE IncludeType = iota
	INCLUDE_CLINCLUDE
	INCLUDE_CLCOMPILE
	INCLUDE_CUSTOMBUILD
	INCLUDE_TEXT
	INCLUDE_RESOURCECOMPILE
	INCLUDE_IMAGE
	INCLUDE_CONTENT
	INCLUDE_ANTBUILDXML
	INCLUDE_ANDROIDMANIFEST
	INCLUDE_ANTPROJECTPROPERTIESFILE
	INCLUDE_PROJECTREFERENCE
	INCLUDE_NATVIS
	INCLUDE_MASM
)

var includeTypeTags = base.EnumTagTable[IncludeType]{
	{"None", INCLUDE_NONE},
	{"ClInclude", INCLUDE_CLINCLUDE},
	{"ClCompile", INCLUDE_CLCOMPILE},
	{"CustomBuild", INCLUDE_CUSTOMBUILD},
	{"Text", INCLUDE_TEXT},
	{"ResourceCompile", INCLUDE_RESOURCECOMPILE},
	{"Image", INCLUDE_IMAGE},
	{"Content", INCLUDE_CONTENT},
	{"AntBuildXml", INCLUDE_ANTBUILDXML},
	{"AndroidManifest", INCLUDE_ANDROIDMANIFEST},
	{"AntProjectPropertiesFile", INCLUDE_ANTPROJECTPROPERTIESFILE},
	{"ProjectReference", INCLUDE_PROJECTREFERENCE},
	{"Natvis", INCLUDE_NATVIS},
	{"MASM", INCLUDE_MASM},
}

var includeTypeByExtension = map[string]IncludeType{
	".c":      INCLUDE_CLCOMPILE,
	".cc":     INCLUDE_CLCOMPILE,
	".cpp":    INCLUDE_CLCOMPILE,
	".cxx":    INCLUDE_CLCOMPILE,
	".h":      INCLUDE_CLINCLUDE,
	".hh":     INCLUDE_CLINCLUDE,
	".hpp":    INCLUDE_CLINCLUDE,
	".hxx":    INCLUDE_CLINCLUDE,
	".inl":    INCLUDE_CLINCLUDE,
	".rc":     INCLUDE_RESOURCECOMPILE,
	".natvis": INCLUDE_NATVIS,
	".asm":    INCLUDE_MASM,
	".txt":    INCLUDE_TEXT,
	".md":     INCLUDE_TEXT,
	".ico":    INCLUDE_IMAGE,
	".png":    INCLUDE_IMAGE,
	".bmp":    INCLUDE_IMAGE,
}

// IncludeTypeFromExtension expects a lower-case extension with its leading dot.
func IncludeTypeFromExtension(ext string) IncludeType {
	if it, ok := includeTypeByExtension[ext]; ok {
		return it
	}
	return INCLUDE_NONE
}

func IncludeTypeFromTag(tag string) (IncludeType, bool) {
	return includeTypeTags.Parse(tag)
}

func (x IncludeType) String() string {
	return base.EnumString(x, includeTypeTags)
}
func (x *IncludeType) Set(in string) error {
	return base.ParseEnum(x, in, includeTypeTags)
}
func (x *IncludeType) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x IncludeType) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *IncludeType) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * Language
 ***************************************/

type Language byte

const (
	LANGUAGE_NONE Language = iota
	LANGUAGE_C
	LANGUAGE_CPP
	LANGUAGE_CSHARP
)

var languageTags = base.EnumTagTable[Language]{
	{"none", LANGUAGE_NONE},
	{"C", LANGUAGE_C},
	{"C++", LANGUAGE_CPP},
	{"C#", LANGUAGE_CSHARP},
}

func (x Language) Extension() string {
	switch x {
	case LANGUAGE_C, LANGUAGE_CPP:
		return ".vcxproj"
	case LANGUAGE_CSHARP:
		return ".csproj"
	default:
		return ""
	}
}
func (x Language) String() string {
	return base.EnumString(x, languageTags)
}
func (x *Language) Set(in string) error {
	return base.ParseEnum(x, in, languageTags)
}
func (x *Language) Serialize(ar base.Archive) {
	ar.Byte((*byte)(x))
}
func (x Language) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *Language) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}
