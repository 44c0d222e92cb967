//go:build !syncproj_profiling

package app

import (
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
)

const PROFILING_ENABLED = false

func StartProfiling(mode ProfilingMode, _ utils.Directory) func() {
	if mode != PROFILING_NONE {
		base.LogWarning(LogProfiling, "%v profiling ignored, rebuild with -tags syncproj_profiling", mode)
	}
	return func() {}
}
