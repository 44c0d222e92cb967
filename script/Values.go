package script

import (
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"
)

// flattenValue appends the strings of value to dst, sequences are expanded
// recursively and nil is skipped.
func flattenValue(dst []string, value lua.LValue) ([]string, error) {
	switch it := value.(type) {
	case lua.LString:
		return append(dst, string(it)), nil
	case lua.LNumber:
		return append(dst, it.String()), nil
	case lua.LBool:
		return append(dst, strconv.FormatBool(bool(it))), nil
	case *lua.LNilType:
		return dst, nil
	case *lua.LTable:
		var err error
		for i := 1; i <= it.Len(); i++ {
			if dst, err = flattenValue(dst, it.RawGetInt(i)); err != nil {
				return nil, err
			}
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("unsupported %s value", value.Type())
	}
}

// namedArguments converts a table of named fields into positional arguments,
// missing fields are left empty.
func namedArguments(table *lua.LTable, fields ...string) ([]string, error) {
	args := make([]string, len(fields))
	known := make(map[string]bool, len(fields))
	for i, name := range fields {
		known[name] = true
		switch value := table.RawGetString(name).(type) {
		case *lua.LNilType:
		case lua.LString:
			args[i] = string(value)
		default:
			return nil, fmt.Errorf("field %q: expected a string, got %s", name, value.Type())
		}
	}

	var err error
	table.ForEach(func(key, _ lua.LValue) {
		if name, ok := key.(lua.LString); !ok || !known[string(name)] {
			if err == nil {
				err = fmt.Errorf("unknown field %v, expected one of %v", key, fields)
			}
		}
	})
	return args, err
}
