package base

import "io"

/***************************************
 * ArchiveFile
 ***************************************/

type ArchiveFile struct {
	Magic   FourCC
	Version FourCC
	Kind    FourCC
}

var ArchiveFileMagic FourCC = MakeFourCC('A', 'R', 'B', 'F')
var ArchiveFileVersion FourCC = MakeFourCC('1', '0', '0', '0')

func NewArchiveFile(kind FourCC) ArchiveFile {
	return ArchiveFile{
		Magic:   ArchiveFileMagic,
		Version: ArchiveFileVersion,
		Kind:    kind,
	}
}
func (x *ArchiveFile) Serialize(ar Archive) {
	ar.Serializable(&x.Magic)
	ar.Serializable(&x.Version)
	ar.Serializable(&x.Kind)
}

// ArchiveFileRead validates the header before handing the archive to scope.
func ArchiveFileRead(reader io.Reader, kind FourCC, scope func(ar Archive)) (file ArchiveFile, err error) {
	err = ArchiveBinaryRead(reader, func(ar Archive) {
		ar.Serializable(&file)
		if ar.Error() != nil {
			return
		}
		if file.Magic != ArchiveFileMagic {
			ar.OnErrorf("archive: invalid file magic (%q != %q)", file.Magic, ArchiveFileMagic)
		} else if file.Version > ArchiveFileVersion {
			ar.OnErrorf("archive: newer file version (%q > %q)", file.Version, ArchiveFileVersion)
		} else if file.Kind != kind {
			ar.OnErrorf("archive: unexpected content (%q != %q)", file.Kind, kind)
		} else {
			scope(ar)
		}
	})
	return
}
func ArchiveFileWrite(writer io.Writer, kind FourCC, scope func(ar Archive)) (err error) {
	return ArchiveBinaryWrite(writer, func(ar Archive) {
		file := NewArchiveFile(kind)
		ar.Serializable(&file)
		if ar.Error() == nil {
			scope(ar)
		}
	})
}

/***************************************
 * CompressedArchiveFile
 ***************************************/

func CompressedArchiveFileRead(reader io.Reader, kind FourCC, scope func(ar Archive), compression ...CompressionOptionFunc) (file ArchiveFile, err error) {
	compressed := NewCompressedReader(reader, compression...)
	defer compressed.Close()
	return ArchiveFileRead(compressed, kind, scope)
}
func CompressedArchiveFileWrite(writer io.Writer, kind FourCC, scope func(ar Archive), compression ...CompressionOptionFunc) (err error) {
	compressed := NewCompressedWriter(writer, compression...)
	err = ArchiveFileWrite(compressed, kind, scope)
	if er := compressed.Close(); er != nil && err == nil {
		err = er
	}
	return
}
