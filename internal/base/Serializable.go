package base

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"
)

var LogSerialize = NewLogCategory("Serialize")

const (
	maxSerializedStringLen = 1 << 20
	maxSerializedSliceLen  = 1 << 20
)

/***************************************
 * Archive
 ***************************************/

type ArchiveFlag int32

const (
	AR_LOADING ArchiveFlag = iota
	AR_TOLERANT
)

type ArchiveFlags int32

func MakeArchiveFlags(flags ...ArchiveFlag) (result ArchiveFlags) {
	for _, it := range flags {
		result |= ArchiveFlags(1) << it
	}
	return
}
func (fl ArchiveFlags) Has(flag ArchiveFlag) bool {
	return (fl & (ArchiveFlags(1) << flag)) != 0
}
func (fl ArchiveFlags) IsLoading() bool {
	return fl.Has(AR_LOADING)
}
func (fl ArchiveFlags) IsTolerant() bool {
	return fl.Has(AR_TOLERANT)
}

const (
	BOOL_SIZE    int32 = 1
	BYTE_SIZE    int32 = 1
	INT32_SIZE   int32 = 4
	UINT32_SIZE  int32 = 4
	INT64_SIZE   int32 = 8
	UINT64_SIZE  int32 = 8
	FLOAT64_SIZE int32 = 8
)

type Archive interface {
	Error() error
	OnError(error)
	OnErrorf(string, ...any)

	Flags() ArchiveFlags

	Raw(value []byte)
	Byte(value *byte)
	Bool(value *bool)
	Int32(value *int32)
	Int64(value *int64)
	UInt32(value *uint32)
	UInt64(value *uint64)
	Float64(value *float64)
	String(value *string)
	Time(value *time.Time)
	Serializable(value Serializable)
}

type Serializable interface {
	Serialize(ar Archive)
}

/***************************************
 * Archive Container Helpers
 ***************************************/

func SerializeMany[T any](ar Archive, serialize func(*T), slice *[]T) {
	size := uint32(len(*slice))
	ar.UInt32(&size)
	if size > maxSerializedSliceLen {
		ar.OnErrorf("serializable: sanity check failed on slice length (%d > %d)", size, maxSerializedSliceLen)
		return
	}

	if ar.Flags().IsLoading() {
		if size > 0 {
			*slice = make([]T, size)
		} else {
			*slice = nil
		}
	}

	for i := range *slice {
		serialize(&(*slice)[i])
	}
}

func SerializeSlice[T any, S interface {
	*T
	Serializable
}](ar Archive, slice *[]T) {
	SerializeMany(ar, func(it *T) {
		ar.Serializable(S(it))
	}, slice)
}

// SerializePointers handles slices of pointers, allocating on load.
func SerializePointers[T any, S interface {
	*T
	Serializable
}](ar Archive, slice *[]S) {
	SerializeMany(ar, func(it *S) {
		if ar.Flags().IsLoading() {
			*it = S(new(T))
		}
		ar.Serializable(*it)
	}, slice)
}

// SerializeOptionalSlice keeps the distinction between a nil and an empty slice.
func SerializeOptionalSlice[T any](ar Archive, serialize func(*T), slice *[]T) {
	present := (*slice != nil)
	ar.Bool(&present)
	if !present {
		*slice = nil
		return
	}
	SerializeMany(ar, serialize, slice)
	if *slice == nil {
		*slice = []T{}
	}
}

/***************************************
 * Basic Archive
 ***************************************/

type basicArchive struct {
	scratch [16]byte
	flags   ArchiveFlags
	err     error
}

func newBasicArchive(flags ...ArchiveFlag) basicArchive {
	return basicArchive{flags: MakeArchiveFlags(flags...)}
}

func (x *basicArchive) Flags() ArchiveFlags { return x.flags }
func (x *basicArchive) Error() error        { return x.err }

func (x *basicArchive) OnError(err error) {
	if err == nil || x.err != nil {
		return
	}
	x.err = err
	if x.flags.IsTolerant() {
		LogError(LogSerialize, "%v", err)
	}
}
func (x *basicArchive) OnErrorf(msg string, args ...any) {
	x.OnError(fmt.Errorf(msg, args...))
}

/***************************************
 * ArchiveBinaryReader
 ***************************************/

type ArchiveBinaryReader struct {
	reader        io.Reader
	indexToString []string
	basicArchive
}

func ArchiveBinaryRead(reader io.Reader, scope func(ar Archive)) (err error) {
	return Recover(func() error {
		ar := NewArchiveBinaryReader(reader)
		scope(&ar)
		return ar.Error()
	})
}

func NewArchiveBinaryReader(reader io.Reader, flags ...ArchiveFlag) ArchiveBinaryReader {
	return ArchiveBinaryReader{
		reader:       reader,
		basicArchive: newBasicArchive(append(flags, AR_LOADING)...),
	}
}

func (ar *ArchiveBinaryReader) Raw(value []byte) {
	if ar.err != nil {
		return
	}
	if _, err := io.ReadFull(ar.reader, value); err != nil {
		ar.OnError(err)
	}
}
func (ar *ArchiveBinaryReader) Byte(value *byte) {
	raw := ar.scratch[:BYTE_SIZE]
	ar.Raw(raw)
	*value = raw[0]
}
func (ar *ArchiveBinaryReader) Bool(value *bool) {
	var b byte
	ar.Byte(&b)
	*value = (b != 0)
}
func (ar *ArchiveBinaryReader) Int32(value *int32) {
	raw := ar.scratch[:INT32_SIZE]
	ar.Raw(raw)
	*value = int32(binary.LittleEndian.Uint32(raw))
}
func (ar *ArchiveBinaryReader) Int64(value *int64) {
	raw := ar.scratch[:INT64_SIZE]
	ar.Raw(raw)
	*value = int64(binary.LittleEndian.Uint64(raw))
}
func (ar *ArchiveBinaryReader) UInt32(value *uint32) {
	raw := ar.scratch[:UINT32_SIZE]
	ar.Raw(raw)
	*value = binary.LittleEndian.Uint32(raw)
}
func (ar *ArchiveBinaryReader) UInt64(value *uint64) {
	raw := ar.scratch[:UINT64_SIZE]
	ar.Raw(raw)
	*value = binary.LittleEndian.Uint64(raw)
}
func (ar *ArchiveBinaryReader) Float64(value *float64) {
	raw := ar.scratch[:FLOAT64_SIZE]
	ar.Raw(raw)
	*value = math.Float64frombits(binary.LittleEndian.Uint64(raw))
}
func (ar *ArchiveBinaryReader) String(value *string) {
	var size int32
	ar.Int32(&size)
	if ar.err != nil {
		return
	}

	if size < 0 { // negative length: index of a string already read
		index := int(-size - 1)
		if index >= len(ar.indexToString) {
			ar.OnErrorf("serializable: invalid string index %d", index)
			return
		}
		*value = ar.indexToString[index]
		return
	}

	if size > maxSerializedStringLen {
		ar.OnErrorf("serializable: sanity check failed on string length (%d > %d)", size, maxSerializedStringLen)
		return
	}

	raw := make([]byte, size)
	ar.Raw(raw)
	*value = string(raw)

	ar.indexToString = append(ar.indexToString, *value)
}
func (ar *ArchiveBinaryReader) Time(value *time.Time) {
	var millis int64
	ar.Int64(&millis)
	*value = time.UnixMilli(millis)
}
func (ar *ArchiveBinaryReader) Serializable(value Serializable) {
	value.Serialize(ar)
}

/***************************************
 * ArchiveBinaryWriter
 ***************************************/

type ArchiveBinaryWriter struct {
	writer        io.Writer
	stringToIndex map[string]int32
	basicArchive
}

func ArchiveBinaryWrite(writer io.Writer, scope func(ar Archive)) (err error) {
	return Recover(func() error {
		ar := NewArchiveBinaryWriter(writer)
		scope(&ar)
		return ar.Error()
	})
}

func NewArchiveBinaryWriter(writer io.Writer, flags ...ArchiveFlag) ArchiveBinaryWriter {
	return ArchiveBinaryWriter{
		writer:        writer,
		stringToIndex: make(map[string]int32),
		basicArchive:  newBasicArchive(flags...),
	}
}

func (ar *ArchiveBinaryWriter) Raw(value []byte) {
	if ar.err != nil {
		return
	}
	if _, err := ar.writer.Write(value); err != nil {
		ar.OnError(err)
	}
}
func (ar *ArchiveBinaryWriter) Byte(value *byte) {
	raw := ar.scratch[:BYTE_SIZE]
	raw[0] = *value
	ar.Raw(raw)
}
func (ar *ArchiveBinaryWriter) Bool(value *bool) {
	raw := ar.scratch[:BOOL_SIZE]
	raw[0] = 0
	if *value {
		raw[0] = 0xFF
	}
	ar.Raw(raw)
}
func (ar *ArchiveBinaryWriter) Int32(value *int32) {
	raw := ar.scratch[:INT32_SIZE]
	binary.LittleEndian.PutUint32(raw, uint32(*value))
	ar.Raw(raw)
}
func (ar *ArchiveBinaryWriter) Int64(value *int64) {
	raw := ar.scratch[:INT64_SIZE]
	binary.LittleEndian.PutUint64(raw, uint64(*value))
	ar.Raw(raw)
}
func (ar *ArchiveBinaryWriter) UInt32(value *uint32) {
	raw := ar.scratch[:UINT32_SIZE]
	binary.LittleEndian.PutUint32(raw, *value)
	ar.Raw(raw)
}
func (ar *ArchiveBinaryWriter) UInt64(value *uint64) {
	raw := ar.scratch[:UINT64_SIZE]
	binary.LittleEndian.PutUint64(raw, *value)
	ar.Raw(raw)
}
func (ar *ArchiveBinaryWriter) Float64(value *float64) {
	raw := ar.scratch[:FLOAT64_SIZE]
	binary.LittleEndian.PutUint64(raw, math.Float64bits(*value))
	ar.Raw(raw)
}
func (ar *ArchiveBinaryWriter) String(value *string) {
	if index, alreadySerialized := ar.stringToIndex[*value]; alreadySerialized {
		ar.Int32(&index) // negative index instead of the string
		return
	}
	ar.stringToIndex[*value] = int32(-len(ar.stringToIndex) - 1)

	size := int32(len(*value))
	if size > maxSerializedStringLen {
		ar.OnErrorf("serializable: sanity check failed on string length (%d > %d)", size, maxSerializedStringLen)
		return
	}
	ar.Int32(&size)
	ar.Raw(UnsafeBytesFromString(*value))
}
func (ar *ArchiveBinaryWriter) Time(value *time.Time) {
	millis := value.UnixMilli()
	ar.Int64(&millis)
}
func (ar *ArchiveBinaryWriter) Serializable(value Serializable) {
	value.Serialize(ar)
}
