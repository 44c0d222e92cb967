package utils

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/poppolopoppo/syncproj/internal/base"
)

var LogUFS = base.NewLogCategory("UFS")

/***************************************
 * Path helpers
 ***************************************/

// ToSlashPath converts any separator to '/', which is the model convention.
func ToSlashPath(in string) string {
	return strings.ReplaceAll(in, "\\", "/")
}

// ToWindowsPath converts any separator to '\', as Visual Studio expects.
func ToWindowsPath(in string) string {
	return strings.ReplaceAll(in, "/", "\\")
}

// SplitPath splits on both separators and drops empty components.
func SplitPath(in string) []string {
	return strings.FieldsFunc(in, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

// JoinRelative joins without cleaning, so "a/.." stays as written.
func JoinRelative(dir, name string) string {
	switch {
	case len(dir) == 0:
		return name
	case len(name) == 0:
		return dir
	default:
		return dir + "/" + name
	}
}

// CleanRelative trims "./" prefixes and duplicate separators, but keeps "..".
func CleanRelative(in string) string {
	parts := SplitPath(in)
	result := parts[:0]
	for _, it := range parts {
		if it != "." {
			result = append(result, it)
		}
	}
	return strings.Join(result, "/")
}

func RelativePath(from Directory, to string) string {
	if rel, err := filepath.Rel(from.String(), to); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(to)
}

/***************************************
 * Directory
 ***************************************/

type Directory struct {
	Path string
}

func MakeDirectory(str string) Directory {
	if len(str) == 0 {
		return Directory{}
	}
	return Directory{Path: filepath.Clean(str)}
}
func (d Directory) Valid() bool { return len(d.Path) > 0 }
func (d Directory) Basename() string {
	return filepath.Base(d.Path)
}
func (d Directory) Parent() Directory {
	return Directory{Path: filepath.Dir(d.Path)}
}
func (d Directory) Folder(name ...string) Directory {
	return MakeDirectory(filepath.Join(append([]string{d.Path}, name...)...))
}
func (d Directory) File(name ...string) Filename {
	return MakeFilename(filepath.Join(append([]string{d.Path}, name...)...))
}
func (d Directory) Relative(to Directory) string {
	return RelativePath(to, d.Path)
}
func (d Directory) Exists() bool {
	info, err := os.Stat(d.Path)
	return err == nil && info.IsDir()
}
func (d Directory) String() string {
	return d.Path
}
func (d *Directory) Set(str string) error {
	if str != "" {
		abs, err := filepath.Abs(str)
		if err != nil {
			return err
		}
		*d = MakeDirectory(abs)
	} else {
		*d = Directory{}
	}
	return nil
}
func (d *Directory) Serialize(ar base.Archive) {
	ar.String(&d.Path)
}

/***************************************
 * Filename
 ***************************************/

type Filename struct {
	Dirname  Directory
	Basename string
}

func MakeFilename(str string) Filename {
	str = filepath.Clean(str)
	dirname, basename := filepath.Split(str)
	return Filename{
		Basename: basename,
		Dirname:  MakeDirectory(dirname),
	}
}

func (f Filename) Valid() bool { return len(f.Basename) > 0 }
func (f Filename) Ext() string {
	return path.Ext(f.Basename)
}
func (f Filename) TrimExt() string {
	return strings.TrimSuffix(f.Basename, f.Ext())
}
func (f Filename) ReplaceExt(ext string) Filename {
	return Filename{
		Basename: f.TrimExt() + ext,
		Dirname:  f.Dirname,
	}
}
func (f Filename) Relative(to Directory) string {
	return RelativePath(to, f.String())
}
func (f Filename) Exists() bool {
	info, err := os.Stat(f.String())
	return err == nil && !info.IsDir()
}
func (f Filename) String() string {
	if len(f.Dirname.Path) > 0 {
		return filepath.Join(f.Dirname.Path, f.Basename)
	}
	return f.Basename
}
func (f *Filename) Set(str string) error {
	if str != "" {
		abs, err := filepath.Abs(str)
		if err != nil {
			return err
		}
		*f = MakeFilename(abs)
	} else {
		*f = Filename{}
	}
	return nil
}
func (f *Filename) Serialize(ar base.Archive) {
	ar.Serializable(&f.Dirname)
	ar.String(&f.Basename)
}

/***************************************
 * UFS front-end
 ***************************************/

type UFSFrontEnd struct{}

var UFS UFSFrontEnd

func (ufs UFSFrontEnd) MkdirEx(dst Directory) error {
	if err := os.MkdirAll(dst.String(), 0o755); err != nil {
		base.LogWarning(LogUFS, "MkdirEx: caught %v while creating %v", err, dst)
		return err
	}
	return nil
}

func (ufs UFSFrontEnd) CreateBuffered(dst Filename, write func(io.Writer) error) error {
	if err := ufs.MkdirEx(dst.Dirname); err != nil {
		return err
	}
	f, err := os.Create(dst.String())
	if err != nil {
		return err
	}
	buffered := bufio.NewWriter(f)
	if err = write(buffered); err == nil {
		err = buffered.Flush()
	}
	if er := f.Close(); er != nil && err == nil {
		err = er
	}
	return err
}

func (ufs UFSFrontEnd) Open(src Filename, read func(io.Reader) error) error {
	f, err := os.Open(src.String())
	if err != nil {
		return err
	}
	defer f.Close()
	return read(bufio.NewReader(f))
}

func (ufs UFSFrontEnd) ReadAll(src Filename) ([]byte, error) {
	return os.ReadFile(src.String())
}

func (ufs UFSFrontEnd) GetWorkingDir() (Directory, error) {
	wd, err := os.Getwd()
	return MakeDirectory(wd), err
}
