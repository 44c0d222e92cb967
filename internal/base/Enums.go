package base

import (
	"strings"
)

/***************************************
 * Enum tag tables
 ***************************************/

// EnumTag binds a textual tag to an enum value. Tables are scanned in both
// directions: Parse finds the value of a tag, Tag finds the first tag of a
// value, so aliases must appear after the canonical spelling.
type EnumTag[E comparable] struct {
	Tag   string
	Value E
}

type EnumTagTable[E comparable] []EnumTag[E]

func (t EnumTagTable[E]) Parse(tag string) (value E, ok bool) {
	for _, it := range t {
		if it.Tag == tag {
			return it.Value, true
		}
	}
	for _, it := range t {
		if strings.EqualFold(it.Tag, tag) {
			return it.Value, true
		}
	}
	return
}

func (t EnumTagTable[E]) Tag(value E) (string, bool) {
	for _, it := range t {
		if it.Value == value {
			return it.Tag, true
		}
	}
	return "", false
}

func (t EnumTagTable[E]) Values() (result []E) {
	for _, it := range t {
		result = AppendUniq(result, it.Value)
	}
	return
}

func (t EnumTagTable[E]) Tags() (result []string) {
	result = make([]string, len(t))
	for i, it := range t {
		result[i] = it.Tag
	}
	return
}

// ParseEnum tries every table in order, builder aliases usually come first.
func ParseEnum[E comparable](dst *E, in string, tables ...EnumTagTable[E]) error {
	for _, table := range tables {
		if value, ok := table.Parse(in); ok {
			*dst = value
			return nil
		}
	}
	return MakeUnexpectedValueError(dst, in)
}

// EnumString returns the first tag of value, panics if the table is incomplete.
func EnumString[E comparable](value E, table EnumTagTable[E]) string {
	if tag, ok := table.Tag(value); ok {
		return tag
	}
	UnexpectedValuePanic(value, value)
	return ""
}
