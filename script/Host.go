package script

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poppolopoppo/syncproj/builder"
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	lua "github.com/yuin/gopher-lua"
)

var LogScript = base.NewLogCategory("Script")

// Globals removed from the base library, scripts can only reach other files
// through include().
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

/***************************************
 * ScriptError
 ***************************************/

// ScriptError is a failure of a build script, Line is 0 when the position is
// already part of Err or unknown.
type ScriptError struct {
	Path string
	Line int
	Err  error
}

func (x *ScriptError) Error() string {
	if x.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", x.Path, x.Line, x.Err)
	}
	if msg := x.Err.Error(); strings.HasPrefix(msg, x.Path+":") {
		return msg // positioned by the interpreter
	}
	return fmt.Sprintf("%s: %v", x.Path, x.Err)
}
func (x *ScriptError) Unwrap() error { return x.Err }

/***************************************
 * Host
 ***************************************/

// Host runs Lua build scripts against a builder context. Every builder
// operation is a global function of the same name.
type Host struct {
	context *builder.Context
	state   *lua.LState
	// raised from Go, matched against the error returned by the interpreter
	pending *ScriptError
}

func NewHost(context *builder.Context) *Host {
	x := &Host{
		context: context,
		state:   lua.NewState(lua.Options{SkipOpenLibs: true}),
	}

	lua.OpenBase(x.state)
	lua.OpenTable(x.state)
	lua.OpenString(x.state)
	lua.OpenMath(x.state)
	for _, name := range removedGlobals {
		x.state.SetGlobal(name, lua.LNil)
	}

	for _, name := range builder.Operations() {
		x.state.SetGlobal(name, x.state.NewFunction(x.makeOperation(name)))
	}
	x.state.SetGlobal("include", x.state.NewFunction(x.include))
	x.state.SetGlobal("print", x.state.NewFunction(x.print))
	return x
}

func (x *Host) Close() {
	x.state.Close()
}

// RunFile runs a script, its file patterns and project paths are relative to
// the directory of the script.
func (x *Host) RunFile(src utils.Filename) error {
	return x.context.WithScriptDir(src.Dirname, func() error {
		base.LogVerbose(LogScript, "running %q", src)
		if err := x.state.DoFile(src.String()); err != nil {
			return x.scriptError(src.String(), err)
		}
		return nil
	})
}

// RunString runs code from memory, name is used in error positions.
func (x *Host) RunString(name, code string) error {
	fn, err := x.state.Load(strings.NewReader(code), name)
	if err != nil {
		return &ScriptError{Path: name, Err: err}
	}
	x.state.Push(fn)
	if err := x.state.PCall(0, lua.MultRet, nil); err != nil {
		return x.scriptError(name, err)
	}
	return nil
}

func (x *Host) scriptError(path string, err error) error {
	pending := x.pending
	x.pending = nil

	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		if pending != nil && apiErr.Object.String() == pending.Error() {
			return pending
		}
		return &ScriptError{Path: path, Err: errors.New(apiErr.Object.String())}
	}
	return &ScriptError{Path: path, Err: err}
}

// raise aborts the running script with err, located at the calling Lua line.
func (x *Host) raise(L *lua.LState, err error) {
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) || scriptErr.Line == 0 {
		scriptErr = &ScriptError{Err: err}
		if dbg, ok := L.GetStack(1); ok {
			if _, er := L.GetInfo("Sl", dbg, lua.LNil); er == nil {
				scriptErr.Path = dbg.Source
				scriptErr.Line = dbg.CurrentLine
			}
		}
	}
	x.pending = scriptErr
	L.Error(lua.LString(scriptErr.Error()), 0)
}

/***************************************
 * Globals
 ***************************************/

func (x *Host) makeOperation(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		args, err := x.arguments(L, name)
		if err == nil {
			err = x.context.Invoke(name, args...)
		}
		if err != nil {
			x.raise(L, err)
		}
		return 0
	}
}

func (x *Host) arguments(L *lua.LState, name string) ([]string, error) {
	if name == "buildrule" && L.GetTop() == 1 {
		if table, ok := L.Get(1).(*lua.LTable); ok && table.Len() == 0 {
			return namedArguments(table, builder.BUILDRULE_FIELDS...)
		}
	}
	var args []string
	for i := 1; i <= L.GetTop(); i++ {
		var err error
		if args, err = flattenValue(args, L.Get(i)); err != nil {
			return nil, fmt.Errorf("%s: argument #%d: %w", name, i, err)
		}
	}
	return args, nil
}

func (x *Host) include(L *lua.LState) int {
	path := L.CheckString(1)
	src := utils.MakeFilename(path)
	if !filepath.IsAbs(path) {
		src = x.context.ScriptDir().File(filepath.FromSlash(utils.ToSlashPath(path)))
	}
	if !src.Exists() {
		x.raise(L, &builder.FileError{Path: src.String(), Err: errors.New("included script not found")})
		return 0
	}
	if err := x.RunFile(src); err != nil {
		x.raise(L, err)
	}
	return 0
}

func (x *Host) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	base.LogInfo(LogScript, "%s", strings.Join(parts, "\t"))
	return 0
}
