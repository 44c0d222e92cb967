package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/poppolopoppo/syncproj/app"
	"github.com/poppolopoppo/syncproj/internal/base"
	"github.com/poppolopoppo/syncproj/utils"
	"github.com/poppolopoppo/syncproj/vstudio"
)

var LogSyncProj = base.NewLogCategory("SyncProj")

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: syncproj [flags] <command> <file>\n\ncommands:\n")
	for _, it := range app.Commands() {
		fmt.Fprintf(out, "  %s\n", it.Usage())
	}
	fmt.Fprintf(out, "\nflags:\n")
	flag.PrintDefaults()
}

func main() {
	var (
		compression  base.CompressionFormat
		profiling    app.ProfilingMode
		visualStudio vstudio.VisualStudioVersion
	)
	configFile := flag.String("config", "", "yaml configuration file")
	cacheDir := flag.String("cache", "", "cache directory for snapshots and the process lock, \"\" keeps the configured one")
	keepTrying := flag.Bool("keep-trying", false, "save what was built even when the script failed")
	report := flag.String("report", "", "write a json report of every file touched")
	verbose := flag.Bool("v", false, "verbose output")
	quiet := flag.Bool("q", false, "only print warnings and errors")
	warningsAsErrors := flag.Bool("warnings-as-errors", false, "fail when a warning is logged")
	flag.Var(&compression, "compression", fmt.Sprintf("snapshot compression %v", base.CompressionFormats()))
	flag.Var(&visualStudio, "vs", "default Visual Studio version, 2010 to 2022")
	flag.Var(&profiling, "profile", fmt.Sprintf("profiling mode %v", app.ProfilingModes()))
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	var command app.Command
	if err := command.Set(flag.Arg(0)); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	workDir, err := utils.UFS.GetWorkingDir()
	base.LogPanicIfFailed(LogSyncProj, err)

	config, err := app.LoadConfig(workDir, *configFile)
	if err != nil {
		base.LogError(LogSyncProj, "%v", err)
		os.Exit(1)
	}

	// flags given explicitly win over the configuration
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cache":
			config.CacheDir = *cacheDir
		case "keep-trying":
			config.KeepTrying = *keepTrying
		case "report":
			config.Report = *report
		case "v":
			if *verbose {
				config.LogLevel = base.LOG_VERBOSE
			}
		case "q":
			if *quiet {
				config.LogLevel = base.LOG_WARNING
			}
		case "warnings-as-errors":
			config.WarningsAsErrors = *warningsAsErrors
		case "compression":
			config.Compression = compression
		case "vs":
			config.VisualStudio = visualStudio
		}
	})
	config.Apply()

	stopProfiling := app.StartProfiling(profiling, workDir)
	err = app.NewApp(config, workDir, os.Stdout).Run(command, flag.Args()[1:]...)
	stopProfiling()

	if err != nil {
		base.LogError(LogSyncProj, "%s failed: %v", strings.Join(flag.Args(), " "), err)
		os.Exit(1)
	}
	if base.HasLoggedErrors() {
		os.Exit(1)
	}
}
