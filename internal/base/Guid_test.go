package base

import (
	"strings"
	"testing"
)

func TestMakeGuidShortNameIsLeftAligned(t *testing.T) {
	guid := MakeGuid("plugins")
	if s := guid.String(); s != "{706C7567-696E-7300-0000-000000000000}" {
		t.Errorf("invalid guid for %q: %v", "plugins", s)
	}
	for i, c := range []byte("plugins") {
		if guid[i] != c {
			t.Errorf("invalid guid byte %d: %x != %x", i, guid[i], c)
		}
	}
}

func TestMakeGuidIsDeterministic(t *testing.T) {
	for _, name := range []string{"", "a", "exactly16bytes!!", "a much longer project name/with/folders"} {
		if a, b := MakeGuid(name), MakeGuid(name); a != b {
			t.Errorf("guid of %q is not stable: %v != %v", name, a, b)
		}
	}
}

func TestMakeGuidShortNamesNeverCollide(t *testing.T) {
	seen := make(map[Guid]string)
	for _, name := range []string{"a", "b", "ab", "ba", "Debug", "Release", "tools", "tools/", "exactly16bytes!!"} {
		guid := MakeGuid(name)
		if other, ok := seen[guid]; ok {
			t.Errorf("guid collision between %q and %q", name, other)
		}
		seen[guid] = name
	}
}

func TestMakeGuidLongNameUsesDigest(t *testing.T) {
	name := "seventeen bytes!!"
	guid := MakeGuid(name)
	if strings.HasPrefix(guid.String(), "{73657665") {
		t.Errorf("long name should be hashed, got %v", guid)
	}
	if !guid.Valid() {
		t.Errorf("hashed guid should not be empty")
	}
}

func TestParseGuid(t *testing.T) {
	expected := MakeGuid("plugins")
	for _, in := range []string{
		"{706C7567-696E-7300-0000-000000000000}",
		"706c7567-696e-7300-0000-000000000000",
	} {
		guid, err := ParseGuid(in)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", in, err)
		}
		if guid != expected {
			t.Errorf("invalid parsed guid: %v != %v", guid, expected)
		}
	}
	for _, in := range []string{"", "{706C7567}", "706C7567-696E-7300-0000-00000000000Z"} {
		if _, err := ParseGuid(in); err == nil {
			t.Errorf("expected an error when parsing %q", in)
		}
	}
}
