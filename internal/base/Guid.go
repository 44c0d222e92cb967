package base

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

/***************************************
 * Guid
 ***************************************/

type Guid [16]byte

// MakeGuid derives a stable identifier from a name: names up to 16 bytes are
// stored verbatim and zero padded, longer names use the head of their SHA-1.
func MakeGuid(name string) (result Guid) {
	raw := []byte(name)
	if len(raw) <= len(result) {
		copy(result[:], raw)
	} else {
		digest := sha1.Sum(raw)
		copy(result[:], digest[:len(result)])
	}
	return
}

func ParseGuid(in string) (result Guid, err error) {
	err = result.Set(in)
	return
}

func (x Guid) Valid() bool {
	return x != Guid{}
}

// String formats as {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}, bytes in order.
func (x Guid) String() string {
	return strings.ToUpper(fmt.Sprint("{",
		hex.EncodeToString(x[0:4]),
		"-",
		hex.EncodeToString(x[4:6]),
		"-",
		hex.EncodeToString(x[6:8]),
		"-",
		hex.EncodeToString(x[8:10]),
		"-",
		hex.EncodeToString(x[10:16]),
		"}"))
}

// Set accepts both braced and bare forms, in any case.
func (x *Guid) Set(in string) error {
	str := strings.TrimSpace(in)
	str = strings.TrimPrefix(str, "{")
	str = strings.TrimSuffix(str, "}")

	groups := strings.Split(str, "-")
	if len(groups) != 5 ||
		len(groups[0]) != 8 || len(groups[1]) != 4 || len(groups[2]) != 4 ||
		len(groups[3]) != 4 || len(groups[4]) != 12 {
		return fmt.Errorf("guid: invalid format %q", in)
	}

	raw, err := hex.DecodeString(strings.Join(groups, ""))
	if err != nil {
		return fmt.Errorf("guid: invalid format %q: %v", in, err)
	}

	copy(x[:], raw)
	return nil
}

func (x *Guid) Serialize(ar Archive) {
	ar.Raw(x[:])
}
func (x Guid) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *Guid) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}
