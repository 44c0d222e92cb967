package vstudio

import "testing"

func TestEnumAliases(t *testing.T) {
	var kind ConfigurationType
	for alias, want := range map[string]ConfigurationType{
		"ConsoleApp":     CONFIGURATION_APPLICATION,
		"WindowedApp":    CONFIGURATION_APPLICATION,
		"SharedLib":      CONFIGURATION_DYNAMICLIBRARY,
		"StaticLib":      CONFIGURATION_STATICLIBRARY,
		"staticlibrary":  CONFIGURATION_STATICLIBRARY,
		"DynamicLibrary": CONFIGURATION_DYNAMICLIBRARY,
	} {
		if err := kind.Set(alias); err != nil {
			t.Errorf("%s: %v", alias, err)
		} else if kind != want {
			t.Errorf("%s: got %v, want %v", alias, kind, want)
		}
	}
	if err := kind.Set("Executable"); err == nil {
		t.Errorf("expected an error for an unknown kind")
	}
}

func TestEnumTagsRoundTrip(t *testing.T) {
	for _, it := range optimizationTags {
		var parsed Optimization
		if err := parsed.Set(it.Value.String()); err != nil || parsed != it.Value {
			t.Errorf("%v: got %v (%v)", it.Value, parsed, err)
		}
	}
	for _, it := range subSystemTags {
		var parsed SubSystem
		if err := parsed.Set(it.Tag); err != nil || parsed != it.Value {
			t.Errorf("%q: got %v (%v)", it.Tag, parsed, err)
		}
	}
}

func TestToggleDefaults(t *testing.T) {
	if !TOGGLE_UNSET.Get(true) || TOGGLE_UNSET.Get(false) {
		t.Errorf("an unset toggle should return its default")
	}
	if TOGGLE_FALSE.Get(true) || !TOGGLE_TRUE.Get(false) {
		t.Errorf("a set toggle should ignore its default")
	}
	var toggle Toggle
	if err := toggle.Set("on"); err != nil || toggle != TOGGLE_TRUE {
		t.Errorf("toggle alias: got %v (%v)", toggle, err)
	}
}

func TestLazyConfigurationDefaults(t *testing.T) {
	project := NewProject("p")
	project.VisualStudio = VS_2017
	config := NewProjectConfiguration()

	if got := config.GetPlatformToolset(project); got != "v141" {
		t.Errorf("toolset: got %q", got)
	}
	if !config.GetUseDebugLibraries("MyDebug|x64") || config.GetUseDebugLibraries("Release|x64") {
		t.Errorf("debug libraries should follow the configuration name")
	}
	if got := config.GetOptimization("Release|x64"); got != OPTIMIZATION_MAXSPEED {
		t.Errorf("release optimization: got %v", got)
	}
	if got := config.GetOptimization("Debug|x64"); got != OPTIMIZATION_DISABLED {
		t.Errorf("debug optimization: got %v", got)
	}
	if config.GetOutDir() != OUTDIR_DEFAULT {
		t.Errorf("out dir: got %q", config.GetOutDir())
	}
	if got := IncludeTypeFromExtension(".asm"); got != INCLUDE_MASM {
		t.Errorf("asm include type: got %v", got)
	}
}

func TestToolsVersionLookup(t *testing.T) {
	for toolsVersion, want := range map[string]VisualStudioVersion{
		"4.0":  VS_2010,
		"12.0": VS_2013,
		"17.0": VS_2022,
		"?":    VS_DEFAULT,
	} {
		if got := VisualStudioVersionFromToolsVersion(toolsVersion); got != want {
			t.Errorf("%s: got %v, want %v", toolsVersion, got, want)
		}
	}
}
