package vstudio

import (
	"io"
	"sort"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
	internal_io "github.com/poppolopoppo/syncproj/internal/io"
)

const FILTERS_EXTENSION = ".filters"

func windowsDirname(file string) string {
	if i := strings.LastIndexByte(file, '\\'); i >= 0 {
		return file[:i]
	}
	return ""
}

// filterFolders returns every folder and parent folder of the project files,
// with the leading "..\" shared by all of them stripped.
func filterFolders(project *Project) (folders []string, skip int) {
	var dirs []string
	for _, file := range project.Files {
		if file.IncludeType == INCLUDE_PROJECTREFERENCE {
			continue
		}
		if dir := windowsDirname(strings.ReplaceAll(file.RelativePath, "/", "\\")); len(dir) > 0 {
			dirs = base.AppendUniq(dirs, dir)
		}
	}

	for len(dirs) > 0 {
		if _, escaping := base.IndexIf(func(dir string) bool {
			return !strings.HasPrefix(dir, `..\`)
		}, dirs...); escaping {
			break
		}
		for i, dir := range dirs {
			dirs[i] = dir[3:]
		}
		skip += 3
	}

	for _, dir := range dirs {
		var soFar string
		for _, part := range strings.Split(dir, "\\") {
			if len(part) == 0 {
				continue
			}
			if len(soFar) > 0 {
				soFar += "\\"
			}
			soFar += part
			folders = base.AppendUniq(folders, soFar)
		}
	}
	sort.Strings(folders)
	return
}

// WriteFilters renders the .vcxproj.filters file grouping the project files
// by folder in the IDE tree.
func WriteFilters(dst io.Writer, project *Project) error {
	xml := internal_io.NewXmlFile(dst)
	folders, skip := filterFolders(project)

	xml.Declaration()
	xml.Tag("Project", func() {
		if len(folders) > 0 {
			xml.Tag("ItemGroup", func() {
				for _, dir := range folders {
					xml.Tag("Filter", func() {
						xml.InnerStringAlways("UniqueIdentifier", base.MakeGuid("folder:"+dir).String())
					}, internal_io.XmlAttr{Name: "Include", Value: dir})
				}
			})
		}

		for _, includeType := range includeTypeTags.Values() {
			if includeType == INCLUDE_PROJECTREFERENCE {
				continue
			}
			var files []string
			for _, it := range project.Files {
				if it.effectiveIncludeType() == includeType {
					files = append(files, strings.ReplaceAll(it.RelativePath, "/", "\\"))
				}
			}
			if len(files) == 0 {
				continue
			}
			sort.Strings(files)

			xml.Tag("ItemGroup", func() {
				for _, file := range files {
					include := internal_io.XmlAttr{Name: "Include", Value: file}
					dir := windowsDirname(file)
					if len(dir) > skip {
						dir = dir[skip:]
					}
					if len(dir) == 0 {
						xml.Tag(includeType.String(), nil, include)
						continue
					}
					xml.Tag(includeType.String(), func() {
						xml.InnerStringAlways("Filter", dir)
					}, include)
				}
			})
		}
	},
		internal_io.XmlAttr{Name: "ToolsVersion", Value: "4.0"},
		internal_io.XmlAttr{Name: "xmlns", Value: MSBUILD_XMLNS})
	return xml.Err()
}
