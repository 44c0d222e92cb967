package builder

import (
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/vstudio"
)

/***************************************
 * Operations: the builder calls by name, with string arguments
 ***************************************/

type OperationFunc func(x *Context, args ...string) error

func unary(name string, call func(*Context, string) error) OperationFunc {
	return func(x *Context, args ...string) error {
		if len(args) != 1 {
			return configurationError(name, "expected 1 argument, got %d", len(args))
		}
		return call(x, args[0])
	}
}

// BUILDRULE_FIELDS is the order of the positional arguments of "buildrule".
var BUILDRULE_FIELDS = []string{"command", "message", "outputs", "inputs"}

func buildRuleOperation(x *Context, args ...string) error {
	if len(args) == 0 || len(args) > len(BUILDRULE_FIELDS) {
		return configurationError("buildrule", "expected 1 to %d arguments (%v), got %d", len(BUILDRULE_FIELDS), BUILDRULE_FIELDS, len(args))
	}
	fields := make([]string, len(BUILDRULE_FIELDS))
	copy(fields, args)
	return x.BuildRule(vstudio.CustomBuildRule{
		Command:          fields[0],
		Message:          fields[1],
		Outputs:          fields[2],
		AdditionalInputs: fields[3],
	})
}

func kindOperation(x *Context, args ...string) error {
	if len(args) < 1 || len(args) > 2 {
		return configurationError("kind", "expected kind and optional os, got %d arguments", len(args))
	}
	return x.Kind(args[0], args[1:]...)
}

// languageOperation resets the project to C++ without argument.
func languageOperation(x *Context, args ...string) error {
	switch len(args) {
	case 0:
		return x.Language(vstudio.LANGUAGE_CPP.String())
	case 1:
		return x.Language(args[0])
	default:
		return configurationError("language", "expected an optional language, got %d arguments", len(args))
	}
}

var operations = map[string]OperationFunc{
	"solution":        unary("solution", (*Context).Solution),
	"project":         unary("project", (*Context).Project),
	"externalproject": unary("externalproject", (*Context).ExternalProject),
	"platforms":       (*Context).Platforms,
	"configurations":  (*Context).Configurations,
	"filter":          (*Context).Filter,
	"configmap":       (*Context).ConfigMap,

	"group":      unary("group", (*Context).Group),
	"location":   unary("location", (*Context).Location),
	"uuid":       unary("uuid", (*Context).Uuid),
	"language":   languageOperation,
	"vsver":      unary("vsver", (*Context).VsVer),
	"dependson":  (*Context).DependsOn,
	"references": (*Context).References,

	"files":       (*Context).Files,
	"removefiles": (*Context).RemoveFiles,

	"defines":      (*Context).Defines,
	"includedirs":  (*Context).IncludeDirs,
	"optimize":     unary("optimize", (*Context).Optimize),
	"buildrule":    buildRuleOperation,
	"pchheader":    unary("pchheader", (*Context).PchHeader),
	"pchsource":    unary("pchsource", (*Context).PchSource),
	"buildoptions": (*Context).BuildOptions,

	"kind":                     kindOperation,
	"toolset":                  unary("toolset", (*Context).Toolset),
	"characterset":             unary("characterset", (*Context).CharacterSet),
	"symbols":                  unary("symbols", (*Context).Symbols),
	"libdirs":                  (*Context).LibDirs,
	"links":                    (*Context).Links,
	"targetdir":                unary("targetdir", (*Context).TargetDir),
	"objdir":                   unary("objdir", (*Context).ObjDir),
	"targetname":               unary("targetname", (*Context).TargetName),
	"targetextension":          unary("targetextension", (*Context).TargetExtension),
	"prebuildcommands":         (*Context).PreBuildCommands,
	"prelinkcommands":          (*Context).PreLinkCommands,
	"postbuildcommands":        (*Context).PostBuildCommands,
	"linkoptions":              (*Context).LinkOptions,
	"warnings":                 unary("warnings", (*Context).Warnings),
	"subsystem":                unary("subsystem", (*Context).SubSystem),
	"wholeprogramoptimization": unary("wholeprogramoptimization", (*Context).WholeProgramOptimization),
}

// Operations lists the name of every builder call, sorted.
func Operations() []string {
	return base.SortedKeys(operations)
}

func LookupOperation(name string) (OperationFunc, bool) {
	op, ok := operations[name]
	return op, ok
}

// Invoke calls a builder operation by name.
func (x *Context) Invoke(name string, args ...string) error {
	op, ok := operations[name]
	if !ok {
		return configurationError(name, "unknown builder operation")
	}
	base.LogDebug(LogBuilder, "%s(%q)", name, args)
	return op(x, args...)
}
