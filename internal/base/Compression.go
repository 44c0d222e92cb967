package base

import (
	"io"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

var LogCompression = NewLogCategory("Compression")

type CompressedReader interface {
	io.ReadCloser
}
type CompressedWriter interface {
	Flush() error
	io.WriteCloser
}

type CompressionOptions struct {
	Format CompressionFormat
	Level  CompressionLevel
}

type CompressionOptionFunc func(*CompressionOptions)

func CompressionOptionFormat(fmt CompressionFormat) CompressionOptionFunc {
	return func(co *CompressionOptions) {
		co.Format = fmt
	}
}
func CompressionOptionLevel(lvl CompressionLevel) CompressionOptionFunc {
	return func(co *CompressionOptions) {
		if lvl != COMPRESSION_LEVEL_INHERIT {
			co.Level = lvl
		}
	}
}

func NewCompressionOptions(options ...CompressionOptionFunc) (result CompressionOptions) {
	// lz4 at fast level costs almost nothing compared to raw io
	result.Format = COMPRESSION_FORMAT_LZ4
	result.Level = COMPRESSION_LEVEL_FAST

	for _, opt := range options {
		opt(&result)
	}
	return
}

func NewCompressedReader(reader io.Reader, options ...CompressionOptionFunc) CompressedReader {
	co := NewCompressionOptions(options...)
	switch co.Format {
	case COMPRESSION_FORMAT_LZ4:
		return nopCloseReader{lz4.NewReader(reader)}
	case COMPRESSION_FORMAT_ZSTD:
		return zstd.NewReader(reader)
	case COMPRESSION_FORMAT_S2:
		return nopCloseReader{s2.NewReader(reader)}
	default:
		UnexpectedValuePanic(co.Format, co.Format)
		return nil
	}
}

func NewCompressedWriter(writer io.Writer, options ...CompressionOptionFunc) CompressedWriter {
	co := NewCompressionOptions(options...)
	switch co.Format {
	case COMPRESSION_FORMAT_LZ4:
		return newLz4Writer(writer, co.Level)
	case COMPRESSION_FORMAT_ZSTD:
		return newZStdWriter(writer, co.Level)
	case COMPRESSION_FORMAT_S2:
		return newS2Writer(writer, co.Level)
	default:
		UnexpectedValuePanic(co.Format, co.Format)
		return nil
	}
}

type nopCloseReader struct {
	io.Reader
}

func (nopCloseReader) Close() error { return nil }

/***************************************
 * LZ4
 ***************************************/

func newLz4Writer(writer io.Writer, lvl CompressionLevel) CompressedWriter {
	result := lz4.NewWriter(writer)
	options := []lz4.Option{lz4.ConcurrencyOption(1), lz4.ChecksumOption(false)}
	switch lvl {
	case COMPRESSION_LEVEL_BALANCED:
		options = append(options, lz4.CompressionLevelOption(lz4.Level3))
	case COMPRESSION_LEVEL_BEST:
		options = append(options, lz4.CompressionLevelOption(lz4.Level7))
	default:
		options = append(options, lz4.CompressionLevelOption(lz4.Fast))
	}
	LogPanicIfFailed(LogCompression, result.Apply(options...))
	return result
}

/***************************************
 * ZSTD
 ***************************************/

func getZStdCompressionLevel(lvl CompressionLevel) int {
	switch lvl {
	case COMPRESSION_LEVEL_FAST:
		return zstd.BestSpeed
	case COMPRESSION_LEVEL_BEST:
		return zstd.BestCompression
	default:
		return zstd.DefaultCompression
	}
}

func newZStdWriter(writer io.Writer, lvl CompressionLevel) CompressedWriter {
	result := zstd.NewWriterLevel(writer, getZStdCompressionLevel(lvl))
	result.SetNbWorkers(1)
	return result
}

/***************************************
 * S2 (pure go, no cgo needed)
 ***************************************/

func newS2Writer(writer io.Writer, lvl CompressionLevel) CompressedWriter {
	options := []s2.WriterOption{s2.WriterConcurrency(1)}
	switch lvl {
	case COMPRESSION_LEVEL_BALANCED:
		options = append(options, s2.WriterBetterCompression())
	case COMPRESSION_LEVEL_BEST:
		options = append(options, s2.WriterBestCompression())
	}
	return s2.NewWriter(writer, options...)
}

/***************************************
 * CompressionFormat
 ***************************************/

type CompressionFormat byte

const (
	COMPRESSION_FORMAT_LZ4 CompressionFormat = iota
	COMPRESSION_FORMAT_ZSTD
	COMPRESSION_FORMAT_S2
)

var compressionFormatTags = EnumTagTable[CompressionFormat]{
	{"LZ4", COMPRESSION_FORMAT_LZ4},
	{"ZSTD", COMPRESSION_FORMAT_ZSTD},
	{"S2", COMPRESSION_FORMAT_S2},
}

func CompressionFormats() []CompressionFormat {
	return compressionFormatTags.Values()
}
func (x CompressionFormat) String() string {
	return EnumString(x, compressionFormatTags)
}
func (x *CompressionFormat) Set(in string) error {
	return ParseEnum(x, in, compressionFormatTags)
}
func (x *CompressionFormat) Serialize(ar Archive) {
	ar.Byte((*byte)(x))
}
func (x CompressionFormat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *CompressionFormat) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * CompressionLevel
 ***************************************/

type CompressionLevel byte

const (
	COMPRESSION_LEVEL_INHERIT CompressionLevel = iota
	COMPRESSION_LEVEL_FAST
	COMPRESSION_LEVEL_BALANCED
	COMPRESSION_LEVEL_BEST
)

var compressionLevelTags = EnumTagTable[CompressionLevel]{
	{"INHERIT", COMPRESSION_LEVEL_INHERIT},
	{"FAST", COMPRESSION_LEVEL_FAST},
	{"BALANCED", COMPRESSION_LEVEL_BALANCED},
	{"BEST", COMPRESSION_LEVEL_BEST},
}

func (x CompressionLevel) String() string {
	return EnumString(x, compressionLevelTags)
}
func (x *CompressionLevel) Set(in string) error {
	return ParseEnum(x, in, compressionLevelTags)
}
func (x CompressionLevel) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *CompressionLevel) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}
