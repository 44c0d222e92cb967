package base

import "testing"

type testFruit byte

const (
	FRUIT_APPLE testFruit = iota
	FRUIT_PEAR
)

var testFruitTags = EnumTagTable[testFruit]{
	{"Apple", FRUIT_APPLE},
	{"Pear", FRUIT_PEAR},
}
var testFruitAliases = EnumTagTable[testFruit]{
	{"Malus", FRUIT_APPLE},
}

func TestEnumTagTableBothWays(t *testing.T) {
	for _, it := range testFruitTags {
		value, ok := testFruitTags.Parse(it.Tag)
		if !ok || value != it.Value {
			t.Errorf("parse %q: %v, %v", it.Tag, value, ok)
		}
		tag, ok := testFruitTags.Tag(it.Value)
		if !ok || tag != it.Tag {
			t.Errorf("tag %v: %q, %v", it.Value, tag, ok)
		}
	}
}

func TestEnumTagTableIgnoresCaseAsFallback(t *testing.T) {
	if value, ok := testFruitTags.Parse("pear"); !ok || value != FRUIT_PEAR {
		t.Errorf("case insensitive parse failed: %v, %v", value, ok)
	}
}

func TestParseEnumWithAliases(t *testing.T) {
	var fruit testFruit = FRUIT_PEAR
	if err := ParseEnum(&fruit, "Malus", testFruitAliases, testFruitTags); err != nil || fruit != FRUIT_APPLE {
		t.Errorf("alias parse failed: %v, %v", fruit, err)
	}
	if err := ParseEnum(&fruit, "Banana", testFruitAliases, testFruitTags); err == nil {
		t.Errorf("expected an error for an unknown tag")
	}
}

func TestLogLevelSet(t *testing.T) {
	var level LogLevel
	if err := level.Set("verbose"); err != nil || level != LOG_VERBOSE {
		t.Errorf("invalid log level: %v, %v", level, err)
	}
	if level.String() != "Verbose" {
		t.Errorf("invalid log level string: %q", level.String())
	}
}
