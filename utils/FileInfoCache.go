package utils

import (
	"os"
	"sort"
	"time"

	"github.com/djherbis/times"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/poppolopoppo/syncproj/internal/base"
)

/***************************************
 * Directory listing cache
 ***************************************/

type DirEntry struct {
	Name  string
	IsDir bool
}

type directoryListing struct {
	ModTime time.Time
	Entries []DirEntry
}

// DirectoryCache memoizes directory listings, an entry is dropped when the
// modification time of the directory changes.
type DirectoryCache struct {
	cache *lru.Cache[string, directoryListing]

	hits, misses int
}

const DIRECTORYCACHE_DEFAULT_SIZE = 1024

func NewDirectoryCache(size int) *DirectoryCache {
	cache, err := lru.New[string, directoryListing](size)
	base.LogPanicIfFailed(LogUFS, err)
	return &DirectoryCache{cache: cache}
}

func GetModificationTime(stat os.FileInfo) time.Time {
	return times.Get(stat).ModTime()
}

func (x *DirectoryCache) Stats() (hits, misses int) {
	return x.hits, x.misses
}

func (x *DirectoryCache) Invalidate(dir Directory) {
	x.cache.Remove(dir.String())
}

// List returns the entries of dir sorted by name.
func (x *DirectoryCache) List(dir Directory) ([]DirEntry, error) {
	stat, err := os.Stat(dir.String())
	if err != nil {
		return nil, err
	}
	modTime := GetModificationTime(stat)

	if cached, ok := x.cache.Get(dir.String()); ok && cached.ModTime.Equal(modTime) {
		x.hits++
		return cached.Entries, nil
	}
	x.misses++

	osEntries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, err
	}

	entries := make([]DirEntry, len(osEntries))
	for i, it := range osEntries {
		entries[i] = DirEntry{Name: it.Name(), IsDir: it.IsDir()}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	base.LogDebug(LogUFS, "list directory %q (%d entries)", dir, len(entries))
	x.cache.Add(dir.String(), directoryListing{ModTime: modTime, Entries: entries})
	return entries, nil
}
