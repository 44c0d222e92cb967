package vstudio

import (
	"path"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
)

var LogVStudio = base.NewLogCategory("VStudio")

/***************************************
 * ConfigLabel
 ***************************************/

// ConfigLabel is a "Name|Platform" pair.
type ConfigLabel string

func MakeConfigLabel(configuration, platform string) ConfigLabel {
	return ConfigLabel(configuration + "|" + platform)
}

func (x ConfigLabel) Split() (configuration, platform string) {
	if i := strings.IndexByte(string(x), '|'); i >= 0 {
		return string(x[:i]), string(x[i+1:])
	}
	return string(x), ""
}
func (x ConfigLabel) Configuration() string {
	configuration, _ := x.Split()
	return configuration
}
func (x ConfigLabel) Platform() string {
	_, platform := x.Split()
	return platform
}
func (x ConfigLabel) String() string { return string(x) }

func serializeConfigLabels(ar base.Archive, labels *[]ConfigLabel) {
	base.SerializeMany(ar, func(it *ConfigLabel) {
		ar.String((*string)(it))
	}, labels)
}

/***************************************
 * Project host guids
 ***************************************/

var (
	HOSTGUID_FOLDER  = base.Guid{0x21, 0x50, 0xE3, 0x33, 0x8F, 0xDC, 0x42, 0xA3, 0x94, 0x74, 0x1A, 0x39, 0x56, 0xD4, 0x6D, 0xE8}
	HOSTGUID_CPP     = base.Guid{0x8B, 0xC9, 0xCE, 0xB8, 0x8B, 0x4A, 0x11, 0xD0, 0x8D, 0x11, 0x00, 0xA0, 0xC9, 0x1B, 0xC9, 0x42}
	HOSTGUID_CSHARP  = base.Guid{0xFA, 0xE0, 0x4E, 0xC0, 0x30, 0x1F, 0x11, 0xD3, 0xBF, 0x4B, 0x00, 0xC0, 0x4F, 0x79, 0xEF, 0xBC}
	HOSTGUID_PACKAGE = base.Guid{0x39, 0xE2, 0x62, 0x6F, 0x35, 0x45, 0x49, 0x60, 0xA6, 0xE8, 0x25, 0x8A, 0xD8, 0x47, 0x6C, 0xE5}
)

/***************************************
 * ProjectReference
 ***************************************/

type ProjectReference struct {
	Path string
	Guid base.Guid
}

func (x *ProjectReference) Serialize(ar base.Archive) {
	ar.String(&x.Path)
	ar.Serializable(&x.Guid)
}

/***************************************
 * FileEntry
 ***************************************/

type FileEntry struct {
	RelativePath string
	IncludeType  IncludeType
	Overrides    []*FileOverride
}

func NewFileEntry(relativePath string) *FileEntry {
	relativePath = strings.ReplaceAll(relativePath, "\\", "/")
	return &FileEntry{
		RelativePath: relativePath,
		IncludeType:  IncludeTypeFromExtension(strings.ToLower(path.Ext(relativePath))),
	}
}

// Override grows the override array up to index, filling with defaults.
func (x *FileEntry) Override(index int) *FileOverride {
	for len(x.Overrides) <= index {
		x.Overrides = append(x.Overrides, NewFileOverride())
	}
	return x.Overrides[index]
}

func (x *FileEntry) HasOverrides() bool { return len(x.Overrides) > 0 }

func (x *FileEntry) HasCustomBuildRule() bool {
	for _, it := range x.Overrides {
		if it.CustomBuildRule != nil {
			return true
		}
	}
	return false
}

func (x *FileEntry) Clone() *FileEntry {
	clone := &FileEntry{
		RelativePath: x.RelativePath,
		IncludeType:  x.IncludeType,
	}
	if x.Overrides != nil {
		clone.Overrides = make([]*FileOverride, len(x.Overrides))
		for i, it := range x.Overrides {
			clone.Overrides[i] = it.Clone()
		}
	}
	return clone
}

func (x *FileEntry) Serialize(ar base.Archive) {
	ar.String(&x.RelativePath)
	ar.Serializable(&x.IncludeType)
	base.SerializePointers[FileOverride](ar, &x.Overrides)
}

/***************************************
 * Project
 ***************************************/

type Project struct {
	Name string
	// extension-less when Language is set
	RelativePath string
	Language     Language
	// RootNamespace read from a project file, derived from Name when empty
	Namespace string

	Guid     base.Guid
	HostGuid base.Guid
	IsFolder bool

	Keyword                      Keyword
	VisualStudio                 VisualStudioVersion
	WindowsTargetPlatformVersion string

	ProjectConfigurations []ConfigLabel
	Configurations        []*ProjectConfiguration
	Files                 []*FileEntry

	// nil when the solution has no dependency section for this project
	Dependencies []base.Guid
	References   []ProjectReference

	// aligned with Solution.Configurations when present
	SlnConfigurations []ConfigLabel
	SlnBuildProject   []bool
	SlnDeployProject  []bool

	Parent   *Project
	Children []*Project
}

func NewProject(name string) *Project {
	return &Project{
		Name:     name,
		Language: LANGUAGE_CPP,
		Keyword:  KEYWORD_WIN32PROJ,
	}
}

func NewFolderProject(name string, guid base.Guid) *Project {
	return &Project{
		Name:         name,
		RelativePath: name,
		Guid:         guid,
		IsFolder:     true,
	}
}

func (x *Project) String() string { return x.Name }

func (x *Project) GetVisualStudio() VisualStudioVersion {
	return x.VisualStudio.Or(VS_LATEST)
}

func (x *Project) GetGuid() base.Guid {
	if x.Guid.Valid() {
		return x.Guid
	}
	return base.MakeGuid(x.Name)
}

func (x *Project) GetHostGuid() base.Guid {
	switch {
	case x.HostGuid.Valid():
		return x.HostGuid
	case x.IsFolder:
		return HOSTGUID_FOLDER
	case x.Keyword == KEYWORD_PACKAGE:
		return HOSTGUID_PACKAGE
	case x.Language == LANGUAGE_CSHARP:
		return HOSTGUID_CSHARP
	default:
		return HOSTGUID_CPP
	}
}

// GetRelativePath returns the path as written in a solution, with '\'.
func (x *Project) GetRelativePath() string {
	return strings.ReplaceAll(x.RelativePath+x.Language.Extension(), "/", "\\")
}

// IsGenerated is true for projects whose file is written by this tool.
func (x *Project) IsGenerated() bool {
	return !x.IsFolder && (x.Language == LANGUAGE_C || x.Language == LANGUAGE_CPP)
}

// RootNamespace is Namespace when set, else the project name up to its
// first '.'.
func (x *Project) RootNamespace() string {
	if len(x.Namespace) > 0 {
		return x.Namespace
	}
	if i := strings.IndexByte(x.Name, '.'); i >= 0 {
		return x.Name[:i]
	}
	return x.Name
}

func (x *Project) IndexOfConfiguration(label ConfigLabel) int {
	for i, it := range x.ProjectConfigurations {
		if it == label {
			return i
		}
	}
	return -1
}

func (x *Project) ConfigurationNames() (result []string) {
	for _, it := range x.ProjectConfigurations {
		result = base.AppendUniq(result, it.Configuration())
	}
	return
}
func (x *Project) Platforms() (result []string) {
	for _, it := range x.ProjectConfigurations {
		result = base.AppendUniq(result, it.Platform())
	}
	return
}

// Configuration grows the configuration array up to index, filling with defaults.
func (x *Project) Configuration(index int) *ProjectConfiguration {
	for len(x.Configurations) <= index {
		x.Configurations = append(x.Configurations, NewProjectConfiguration())
	}
	return x.Configurations[index]
}

// Normalize back-fills the arrays which grow lazily while building.
func (x *Project) Normalize() {
	if x.IsFolder {
		return
	}
	n := len(x.ProjectConfigurations)
	if n > 0 {
		x.Configuration(n - 1)
	}
	for _, file := range x.Files {
		if file.HasOverrides() && n > 0 {
			file.Override(n - 1)
		}
		if file.HasCustomBuildRule() {
			file.IncludeType = INCLUDE_CUSTOMBUILD
		}
	}
}

// FindFile matches relative paths case-insensitively, as Windows does.
func (x *Project) FindFile(relativePath string) (*FileEntry, int) {
	relativePath = strings.ReplaceAll(relativePath, "\\", "/")
	for i, it := range x.Files {
		if strings.EqualFold(it.RelativePath, relativePath) {
			return it, i
		}
	}
	return nil, -1
}

func (x *Project) AddChild(child *Project) {
	child.Parent = x
	x.Children = append(x.Children, child)
}

func (x *Project) RemoveChild(child *Project) {
	x.Children = base.RemoveUnless(func(it *Project) bool { return it != child }, x.Children...)
	if child.Parent == x {
		child.Parent = nil
	}
}

// Clone deep-copies the project and its children, Parent is left nil.
func (x *Project) Clone() *Project {
	clone := x.cloneNode()
	for _, it := range x.Children {
		clone.AddChild(it.Clone())
	}
	return clone
}

func (x *Project) cloneNode() *Project {
	clone := &Project{
		Name:                         x.Name,
		RelativePath:                 x.RelativePath,
		Language:                     x.Language,
		Namespace:                    x.Namespace,
		Guid:                         x.Guid,
		HostGuid:                     x.HostGuid,
		IsFolder:                     x.IsFolder,
		Keyword:                      x.Keyword,
		VisualStudio:                 x.VisualStudio,
		WindowsTargetPlatformVersion: x.WindowsTargetPlatformVersion,
		ProjectConfigurations:        base.CopySlice(x.ProjectConfigurations...),
		References:                   base.CopySlice(x.References...),
		SlnConfigurations:            base.CopySlice(x.SlnConfigurations...),
		SlnBuildProject:              base.CopySlice(x.SlnBuildProject...),
		SlnDeployProject:             base.CopySlice(x.SlnDeployProject...),
		Dependencies:                 base.CopySlice(x.Dependencies...),
	}
	clone.Configurations = make([]*ProjectConfiguration, len(x.Configurations))
	for i, it := range x.Configurations {
		clone.Configurations[i] = it.Clone()
	}
	clone.Files = make([]*FileEntry, len(x.Files))
	for i, it := range x.Files {
		clone.Files[i] = it.Clone()
	}
	return clone
}

// Serialize skips Parent and Children, the solution archives the tree itself.
func (x *Project) Serialize(ar base.Archive) {
	ar.String(&x.Name)
	ar.String(&x.RelativePath)
	ar.Serializable(&x.Language)
	ar.String(&x.Namespace)
	ar.Serializable(&x.Guid)
	ar.Serializable(&x.HostGuid)
	ar.Bool(&x.IsFolder)
	ar.Serializable(&x.Keyword)
	ar.Serializable(&x.VisualStudio)
	ar.String(&x.WindowsTargetPlatformVersion)
	serializeConfigLabels(ar, &x.ProjectConfigurations)
	base.SerializePointers[ProjectConfiguration](ar, &x.Configurations)
	base.SerializePointers[FileEntry](ar, &x.Files)
	base.SerializeOptionalSlice(ar, func(it *base.Guid) {
		ar.Serializable(it)
	}, &x.Dependencies)
	base.SerializeSlice(ar, &x.References)
	serializeConfigLabels(ar, &x.SlnConfigurations)
	base.SerializeMany(ar, ar.Bool, &x.SlnBuildProject)
	base.SerializeMany(ar, ar.Bool, &x.SlnDeployProject)
}

// AdoptProjectFile takes the content of a parsed project file, keeping the
// identity and the mappings read from the solution.
func (x *Project) AdoptProjectFile(loaded *Project) {
	if loaded.Guid.Valid() && loaded.Guid != x.GetGuid() {
		base.LogWarning(LogVStudio, "project %q: file guid %v differs from solution guid %v, keeping the latter", x.Name, loaded.Guid, x.GetGuid())
	}
	x.Keyword = loaded.Keyword
	x.VisualStudio = loaded.VisualStudio
	x.WindowsTargetPlatformVersion = loaded.WindowsTargetPlatformVersion
	x.ProjectConfigurations = loaded.ProjectConfigurations
	x.Configurations = loaded.Configurations
	x.Files = loaded.Files
	x.References = loaded.References
}
