package base

import (
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

/***************************************
 * Slices
 ***************************************/

func CopySlice[T any](in ...T) []T {
	if in == nil {
		return nil
	}
	result := make([]T, len(in))
	copy(result, in)
	return result
}

func IndexOf[T comparable](match T, values ...T) (int, bool) {
	for i, x := range values {
		if x == match {
			return i, true
		}
	}
	return -1, false
}

func IndexIf[T any](pred func(T) bool, values ...T) (int, bool) {
	for i, x := range values {
		if pred(x) {
			return i, true
		}
	}
	return -1, false
}

func Contains[T comparable](arr []T, values ...T) bool {
	for _, x := range values {
		if _, ok := IndexOf(x, arr...); !ok {
			return false
		}
	}
	return true
}

func AppendUniq[T comparable](src []T, elts ...T) (result []T) {
	result = src
	for _, x := range elts {
		if _, ok := IndexOf(x, result...); !ok {
			result = append(result, x)
		}
	}
	return result
}

func RemoveUnless[T any](pred func(T) bool, src ...T) (result []T) {
	result = src[:0]
	for _, it := range src {
		if pred(it) {
			result = append(result, it)
		}
	}
	return
}

func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

/***************************************
 * StringSet
 ***************************************/

// StringSet keeps insertion order, duplicates are dropped on Append.
type StringSet []string

func NewStringSet(x ...string) (result StringSet) {
	result.Append(x...)
	return
}

func (set StringSet) Len() int        { return len(set) }
func (set StringSet) At(i int) string { return set[i] }
func (set StringSet) Slice() []string { return set }
func (set StringSet) Join(sep string) string {
	return strings.Join(set, sep)
}
func (set StringSet) IndexOf(it string) (int, bool) {
	return IndexOf(it, set...)
}
func (set StringSet) Contains(it ...string) bool {
	return Contains(set, it...)
}
func (set *StringSet) Append(it ...string) *StringSet {
	for _, x := range it {
		if !set.Contains(x) {
			*set = append(*set, x)
		}
	}
	return set
}
func (set *StringSet) Remove(it ...string) *StringSet {
	*set = RemoveUnless(func(x string) bool {
		_, found := IndexOf(x, it...)
		return !found
	}, *set...)
	return set
}
func (set *StringSet) Clear() *StringSet {
	*set = (*set)[:0]
	return set
}
func (set StringSet) Clone() StringSet {
	return CopySlice(set...)
}
func (set *StringSet) Serialize(ar Archive) {
	SerializeMany(ar, ar.String, (*[]string)(set))
}
