package vstudio

import (
	"io"

	"github.com/poppolopoppo/syncproj/internal/base"
)

const SNAPSHOT_EXTENSION = ".snapshot"

var snapshotKind = base.MakeFourCC('S', 'L', 'N', '2')

// Snapshot is the archived solution model, with the fingerprint of the
// .sln text it was produced with.
type Snapshot struct {
	Source   base.Fingerprint
	Solution *Solution
}

func (x *Snapshot) Serialize(ar base.Archive) {
	ar.Serializable(&x.Source)
	if ar.Flags().IsLoading() {
		x.Solution = &Solution{}
	}
	ar.Serializable(x.Solution)
}

// SaveSnapshot writes the compression format in clear, followed by the
// compressed archive.
func SaveSnapshot(dst io.Writer, snapshot *Snapshot, format base.CompressionFormat) error {
	if _, err := dst.Write([]byte{byte(format)}); err != nil {
		return err
	}
	return base.CompressedArchiveFileWrite(dst, snapshotKind, func(ar base.Archive) {
		ar.Serializable(snapshot)
	}, base.CompressionOptionFormat(format))
}

func LoadSnapshot(src io.Reader) (*Snapshot, error) {
	var header [1]byte
	if _, err := io.ReadFull(src, header[:]); err != nil {
		return nil, err
	}
	format := base.CompressionFormat(header[0])
	if _, ok := base.IndexOf(format, base.CompressionFormats()...); !ok {
		return nil, base.MakeUnexpectedValueError(&format, header[0])
	}

	snapshot := &Snapshot{}
	if _, err := base.CompressedArchiveFileRead(src, snapshotKind, func(ar base.Archive) {
		ar.Serializable(snapshot)
	}, base.CompressionOptionFormat(format)); err != nil {
		return nil, err
	}
	return snapshot, nil
}
