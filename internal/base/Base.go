package base

import (
	"fmt"
	"strings"
	"unsafe"
)

var LogBase = NewLogCategory("Base")

// Recover converts a panic raised inside scope into an error.
func Recover(scope func() error) (result error) {
	defer func() {
		if err := recover(); err != nil {
			var ok bool
			if result, ok = err.(error); !ok {
				result = fmt.Errorf("%v", err)
			}
		}
	}()
	result = scope()
	return
}

func Assert(pred func() bool) {
	if !pred() {
		panic(fmt.Errorf("failed assertion"))
	}
}
func AssertErr(pred func() error) {
	if err := pred(); err != nil {
		panic(err)
	}
}

/***************************************
 * Strings
 ***************************************/

func UnsafeBytesFromString(in string) []byte {
	return unsafe.Slice(unsafe.StringData(in), len(in))
}
func UnsafeStringFromBytes(raw []byte) string {
	return unsafe.String(unsafe.SliceData(raw), len(raw))
}

// NormalizeNewlines converts CRLF and lone CR to LF.
func NormalizeNewlines(in string) string {
	if strings.IndexByte(in, '\r') < 0 {
		return in
	}
	in = strings.ReplaceAll(in, "\r\n", "\n")
	return strings.ReplaceAll(in, "\r", "\n")
}

/***************************************
 * FourCC
 ***************************************/

type FourCC uint32

func MakeFourCC(a, b, c, d rune) FourCC {
	return FourCC(uint32(a) | (uint32(b) << 8) | (uint32(c) << 16) | (uint32(d) << 24))
}
func (x FourCC) Valid() bool {
	return x != 0
}
func (x FourCC) Bytes() [4]byte {
	return [4]byte{
		byte(x & 0xFF),
		byte((x >> 8) & 0xFF),
		byte((x >> 16) & 0xFF),
		byte((x >> 24) & 0xFF),
	}
}
func (x FourCC) String() string {
	raw := x.Bytes()
	return string(raw[:])
}
func (x *FourCC) Serialize(ar Archive) {
	ar.UInt32((*uint32)(x))
}
