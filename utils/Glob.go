package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
)

var LogGlob = base.NewLogCategory("Glob")

/***************************************
 * Glob
 ***************************************/

type GlobOptions struct {
	// answers existence checks for paths which are not on disk yet
	Known func(relative string) bool
	Cache *DirectoryCache
}

type GlobOptionFunc func(*GlobOptions)

func GlobOptionKnown(known func(string) bool) GlobOptionFunc {
	return func(o *GlobOptions) {
		o.Known = known
	}
}
func GlobOptionCache(cache *DirectoryCache) GlobOptionFunc {
	return func(o *GlobOptions) {
		o.Cache = cache
	}
}

func IsGlobPattern(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

type globSegment struct {
	Re        *regexp.Regexp
	Recursive bool
	Parent    bool
}

// MakeGlobSegmentRegexp translates one path segment: '**' recurses through
// sub-directories, '*' stays inside a directory, '?' is any character.
func MakeGlobSegmentRegexp(segment string, last bool) (*regexp.Regexp, bool) {
	expr := regexp.QuoteMeta(segment)
	recursive := strings.Contains(expr, `\*\*`)
	expr = strings.ReplaceAll(expr, `\*\*`, `.*`)
	expr = strings.ReplaceAll(expr, `\*`, `[^\/]*`)
	expr = strings.ReplaceAll(expr, `\?`, `.`)
	if last {
		expr += `$`
	}
	return regexp.MustCompile(`(?i)^` + expr), recursive
}

func parseGlob(pattern string) (result []globSegment) {
	parts := SplitPath(pattern)
	result = make([]globSegment, 0, len(parts))
	for i, it := range parts {
		if it == "." {
			continue
		}
		if it == ".." {
			result = append(result, globSegment{Parent: true})
			continue
		}
		re, recursive := MakeGlobSegmentRegexp(it, i+1 == len(parts))
		result = append(result, globSegment{Re: re, Recursive: recursive})
	}
	return
}

// Glob expands pattern relative to root, results are relative to root and
// use '/' separators. A pattern without wildcards is only an existence check.
func Glob(root Directory, pattern string, options ...GlobOptionFunc) ([]string, error) {
	opts := GlobOptions{}
	for _, it := range options {
		it(&opts)
	}
	if opts.Cache == nil {
		opts.Cache = NewDirectoryCache(DIRECTORYCACHE_DEFAULT_SIZE)
	}

	if !IsGlobPattern(pattern) {
		relative := CleanRelative(pattern)
		if root.File(relative).Exists() || (opts.Known != nil && opts.Known(relative)) {
			return []string{relative}, nil
		}
		return nil, nil
	}

	segments := parseGlob(pattern)
	if len(segments) == 0 {
		return nil, fmt.Errorf("glob: empty pattern %q", pattern)
	}

	candidates := []string{""}
	for i, segment := range segments {
		last := (i+1 == len(segments))

		if segment.Parent {
			for j := range candidates {
				candidates[j] = JoinRelative(candidates[j], "..")
			}
			if last {
				return nil, fmt.Errorf("glob: pattern %q does not name any file", pattern)
			}
			continue
		}

		var next []string
		for _, candidate := range candidates {
			err := walkGlobCandidate(opts.Cache, root, candidate, "", segment.Recursive, func(relative string, isDir bool) {
				if isDir == last {
					return // directories for inner segments, files for the last one
				}
				if segment.Re.MatchString(relative) {
					next = append(next, JoinRelative(candidate, relative))
				}
			})
			if err != nil {
				return nil, err
			}
		}

		base.LogDebug(LogGlob, "segment %d of %q matched %d entries", i, pattern, len(next))
		candidates = next
		if len(candidates) == 0 {
			break
		}
	}

	return candidates, nil
}

func walkGlobCandidate(cache *DirectoryCache, root Directory, candidate, prefix string, recursive bool, each func(string, bool)) error {
	dir := root.Folder(filepath.FromSlash(JoinRelative(candidate, prefix)))
	entries, err := cache.List(dir)
	if err != nil {
		if !dir.Exists() {
			return nil // a candidate reached through ".." can be missing
		}
		return err
	}
	for _, it := range entries {
		relative := JoinRelative(prefix, it.Name)
		each(relative, it.IsDir)
		if recursive && it.IsDir {
			if err := walkGlobCandidate(cache, root, candidate, relative, recursive, each); err != nil {
				return err
			}
		}
	}
	return nil
}
