package base

import (
	"bytes"
	"slices"
	"testing"
)

type testArchived struct {
	Name   string
	Alias  string
	Count  int32
	Flag   bool
	Tags   StringSet
	Guid   Guid
	Nested []string
}

func (x *testArchived) Serialize(ar Archive) {
	ar.String(&x.Name)
	ar.String(&x.Alias)
	ar.Int32(&x.Count)
	ar.Bool(&x.Flag)
	ar.Serializable(&x.Tags)
	ar.Serializable(&x.Guid)
	SerializeOptionalSlice(ar, ar.String, &x.Nested)
}

var testArchiveKind = MakeFourCC('T', 'E', 'S', 'T')

func TestCompressedArchiveFile(t *testing.T) {
	input := testArchived{
		Name:   "solution",
		Alias:  "solution", // interned on second occurrence
		Count:  42,
		Flag:   true,
		Tags:   NewStringSet("Debug|Win32", "Release|Win32"),
		Guid:   MakeGuid("plugins"),
		Nested: []string{},
	}

	for _, format := range CompressionFormats() {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := CompressedArchiveFileWrite(&buf, testArchiveKind, func(ar Archive) {
				ar.Serializable(&input)
			}, CompressionOptionFormat(format)); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			var output testArchived
			if _, err := CompressedArchiveFileRead(&buf, testArchiveKind, func(ar Archive) {
				ar.Serializable(&output)
			}, CompressionOptionFormat(format)); err != nil {
				t.Fatalf("read failed: %v", err)
			}

			if output.Name != input.Name || output.Alias != input.Alias || output.Count != input.Count ||
				output.Flag != input.Flag || output.Guid != input.Guid {
				t.Errorf("archive mismatch: %#v != %#v", output, input)
			}
			if !slices.Equal(output.Tags, input.Tags) {
				t.Errorf("archive tags mismatch: %v != %v", output.Tags, input.Tags)
			}
			if output.Nested == nil {
				t.Errorf("empty slice should not load as nil")
			}
		})
	}
}

func TestArchiveFileRejectsOtherKind(t *testing.T) {
	var buf bytes.Buffer
	if err := ArchiveFileWrite(&buf, testArchiveKind, func(ar Archive) {}); err != nil {
		t.Fatal(err)
	}
	if _, err := ArchiveFileRead(&buf, MakeFourCC('O', 'T', 'H', 'R'), func(ar Archive) {}); err == nil {
		t.Errorf("expected an error for a mismatching archive kind")
	}
}
