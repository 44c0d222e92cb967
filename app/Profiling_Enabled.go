//go:build syncproj_profiling

package app

import (
	"runtime"

	"github.com/pkg/profile"

	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
)

const PROFILING_ENABLED = true

func (x ProfilingMode) option() func(*profile.Profile) {
	switch x {
	case PROFILING_BLOCK:
		return profile.BlockProfile
	case PROFILING_CPU:
		return profile.CPUProfile
	case PROFILING_GOROUTINE:
		return profile.GoroutineProfile
	case PROFILING_MEMORY:
		return profile.MemProfile
	case PROFILING_MEMORYALLOC:
		return profile.MemProfileAllocs
	case PROFILING_MEMORYHEAP:
		return profile.MemProfileHeap
	case PROFILING_MUTEX:
		return profile.MutexProfile
	case PROFILING_THREADCREATION:
		return profile.ThreadcreationProfile
	case PROFILING_TRACE:
		return profile.TraceProfile
	default:
		base.UnexpectedValuePanic(x, x)
		return nil
	}
}

// StartProfiling writes the profile in output, call the returned function
// to stop and flush it.
func StartProfiling(mode ProfilingMode, output utils.Directory) func() {
	if mode == PROFILING_NONE {
		return func() {}
	}
	base.LogWarning(LogProfiling, "use %v profiling mode, output in %q", mode, output)
	if mode == PROFILING_CPU {
		runtime.SetCPUProfileRate(300) // default is 100
	}
	profiler := profile.Start(
		mode.option(),
		profile.ProfilePath(output.String()),
		profile.NoShutdownHook,
		profile.Quiet)
	return profiler.Stop
}
