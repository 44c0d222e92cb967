package base

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/minio/sha256-simd"
)

/***************************************
 * Fingerprint
 ***************************************/

type Fingerprint [sha256.Size]byte

func (x *Fingerprint) Serialize(ar Archive) {
	ar.Raw(x[:])
}
func (x Fingerprint) Slice() []byte {
	return x[:]
}
func (x Fingerprint) String() string {
	return hex.EncodeToString(x[:])
}
func (x Fingerprint) ShortString() string {
	return hex.EncodeToString(x[:8])
}
func (x Fingerprint) Valid() bool {
	return x != Fingerprint{}
}
func (x *Fingerprint) Set(str string) error {
	data, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	if len(data) != sha256.Size {
		return fmt.Errorf("fingerprint: unexpected string length '%s'", str)
	}
	copy(x[:], data)
	return nil
}
func (x Fingerprint) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *Fingerprint) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

func StringFingerprint(in string) Fingerprint {
	return sha256.Sum256([]byte(in))
}
func BytesFingerprint(in []byte) Fingerprint {
	return sha256.Sum256(in)
}

func ReaderFingerprint(rd io.Reader) (result Fingerprint, err error) {
	digester := sha256.New()
	if _, err = io.Copy(digester, rd); err == nil {
		copy(result[:], digester.Sum(nil))
	}
	return
}

// SerializeFingerprint hashes the archived form of value, used to detect
// model changes without comparing whole trees.
func SerializeFingerprint(value Serializable) (result Fingerprint, err error) {
	digester := sha256.New()
	err = ArchiveBinaryWrite(digester, func(ar Archive) {
		ar.Serializable(value)
	})
	if err == nil {
		copy(result[:], digester.Sum(nil))
	}
	return
}
