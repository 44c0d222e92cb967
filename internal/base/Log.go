package base

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
)

/***************************************
 * Logger API
 ***************************************/

var LogGlobal = NewLogCategory("Global")

var gLogger Logger = NewLogger(os.Stderr)

func GetLogger() Logger { return gLogger }
func SetLogger(logger Logger) (previous Logger) {
	previous = gLogger
	gLogger = logger
	return
}

func LogDebug(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_DEBUG, msg, args...)
}
func LogVeryVerbose(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_VERYVERBOSE, msg, args...)
}
func LogVerbose(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_VERBOSE, msg, args...)
}
func LogInfo(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_INFO, msg, args...)
}
func LogClaim(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_CLAIM, msg, args...)
}

func LogWarning(category *LogCategory, msg string, args ...interface{}) {
	if !gLogWarningAsError {
		gLogger.Log(category, LOG_WARNING, msg, args...)
	} else {
		LogError(category, msg, args...)
	}
}
func LogWarningOnce(category *LogCategory, msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	if _, loaded := logWarningsSeenOnce.LoadOrStore(formattedMsg, true); !loaded {
		LogWarning(category, "%s", formattedMsg)
	}
}

var logWarningsSeenOnce sync.Map

func LogError(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_ERROR, msg, args...)
}

func LogPanic(category *LogCategory, msg string, args ...interface{}) {
	LogPanicErr(category, fmt.Errorf(msg, args...))
}
func LogPanicErr(category *LogCategory, err error) {
	LogError(category, "💀 panic: caught error %v", err)
	panic(err)
}
func LogPanicIfFailed(category *LogCategory, err error) {
	if err != nil {
		LogPanicErr(category, err)
	}
}

func IsLogLevelActive(level LogLevel) bool {
	return gLogger.IsVisible(level)
}

var gLogWarningAsError bool = false

// SetLogWarningAsError promotes every following warning to an error, callers
// can then check HasLoggedErrors() to fail the run.
func SetLogWarningAsError(enabled bool) {
	gLogWarningAsError = enabled
}

func SetLogVisibleLevel(level LogLevel) {
	gLogger.SetLevel(level)
}

/***************************************
 * Errors
 ***************************************/

func MakeError(msg string, args ...interface{}) error {
	return fmt.Errorf(msg, args...)
}

func MakeUnexpectedValueError(dst interface{}, any interface{}) error {
	return MakeError("unexpected <%T> value: %#v", dst, any)
}
func UnexpectedValuePanic(dst interface{}, any interface{}) {
	LogPanicErr(LogGlobal, MakeUnexpectedValueError(dst, any))
}

/***************************************
 * Log category
 ***************************************/

type LogCategory struct {
	Name  string
	Level LogLevel
	Hash  uint64
}

var gLogCategories = struct {
	sync.Mutex
	byName map[string]*LogCategory
}{byName: make(map[string]*LogCategory)}

func NewLogCategory(name string) *LogCategory {
	gLogCategories.Lock()
	defer gLogCategories.Unlock()

	if category, ok := gLogCategories.byName[name]; ok {
		return category
	}

	hasher := fnv.New64a()
	hasher.Write([]byte(name))

	category := &LogCategory{
		Name:  name,
		Level: LOG_ALL,
		Hash:  hasher.Sum64(),
	}
	gLogCategories.byName[name] = category
	return category
}

/***************************************
 * Log level
 ***************************************/

type LogLevel int32

const (
	LOG_ALL LogLevel = iota
	LOG_DEBUG
	LOG_TRACE
	LOG_VERYVERBOSE
	LOG_VERBOSE
	LOG_INFO
	LOG_CLAIM
	LOG_WARNING
	LOG_ERROR
	LOG_FATAL
)

var logLevelTags = EnumTagTable[LogLevel]{
	{"All", LOG_ALL},
	{"Debug", LOG_DEBUG},
	{"Trace", LOG_TRACE},
	{"VeryVerbose", LOG_VERYVERBOSE},
	{"Verbose", LOG_VERBOSE},
	{"Info", LOG_INFO},
	{"Claim", LOG_CLAIM},
	{"Warning", LOG_WARNING},
	{"Error", LOG_ERROR},
	{"Fatal", LOG_FATAL},
}

func (x LogLevel) IsVisible(level LogLevel) bool {
	return (int32(level) >= int32(x))
}
func (x LogLevel) Style(dst io.Writer) {
	switch x {
	case LOG_DEBUG:
		fmt.Fprint(dst, ANSI_FG0_MAGENTA, ANSI_ITALIC, ANSI_FAINT)
	case LOG_TRACE:
		fmt.Fprint(dst, ANSI_FG0_CYAN, ANSI_ITALIC, ANSI_FAINT)
	case LOG_VERYVERBOSE:
		fmt.Fprint(dst, ANSI_FG1_MAGENTA, ANSI_ITALIC)
	case LOG_VERBOSE:
		fmt.Fprint(dst, ANSI_FG0_BLUE)
	case LOG_INFO:
		fmt.Fprint(dst, ANSI_FG1_WHITE)
	case LOG_CLAIM:
		fmt.Fprint(dst, ANSI_FG1_GREEN, ANSI_BOLD)
	case LOG_WARNING:
		fmt.Fprint(dst, ANSI_FG0_YELLOW)
	case LOG_ERROR:
		fmt.Fprint(dst, ANSI_FG1_RED, ANSI_BOLD)
	case LOG_FATAL:
		fmt.Fprint(dst, ANSI_FG1_WHITE, ANSI_BG0_RED)
	}
}
func (x LogLevel) Header(dst io.Writer) {
	switch x {
	case LOG_DEBUG:
		fmt.Fprint(dst, "🐜 ")
	case LOG_TRACE:
		fmt.Fprint(dst, "👣 ")
	case LOG_VERYVERBOSE:
		fmt.Fprint(dst, "👥 ")
	case LOG_VERBOSE:
		fmt.Fprint(dst, "🗣️ ")
	case LOG_INFO:
		fmt.Fprint(dst, "🔹 ")
	case LOG_CLAIM:
		fmt.Fprint(dst, "❇️ ")
	case LOG_WARNING:
		fmt.Fprint(dst, "⚠️ ")
	case LOG_ERROR:
		fmt.Fprint(dst, "❌ ")
	case LOG_FATAL:
		fmt.Fprint(dst, "💀 ")
	}
}
func (x LogLevel) String() string {
	if tag, ok := logLevelTags.Tag(x); ok {
		return tag
	}
	return fmt.Sprintf("LogLevel(%d)", int32(x))
}
func (x *LogLevel) Set(in string) error {
	if value, ok := logLevelTags.Parse(in); ok {
		*x = value
		return nil
	}
	return MakeUnexpectedValueError(x, in)
}
func (x LogLevel) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *LogLevel) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * Ansi codes
 ***************************************/

type AnsiCode string

const (
	ANSI_RESET       AnsiCode = "\033[0m"
	ANSI_BOLD        AnsiCode = "\033[1m"
	ANSI_FAINT       AnsiCode = "\033[2m"
	ANSI_ITALIC      AnsiCode = "\033[3m"
	ANSI_FG0_RED     AnsiCode = "\033[31m"
	ANSI_FG0_YELLOW  AnsiCode = "\033[33m"
	ANSI_FG0_BLUE    AnsiCode = "\033[34m"
	ANSI_FG0_MAGENTA AnsiCode = "\033[35m"
	ANSI_FG0_CYAN    AnsiCode = "\033[36m"
	ANSI_FG1_RED     AnsiCode = "\033[31;1m"
	ANSI_FG1_GREEN   AnsiCode = "\033[32;1m"
	ANSI_FG1_MAGENTA AnsiCode = "\033[35;1m"
	ANSI_FG1_WHITE   AnsiCode = "\033[37;1m"
	ANSI_BG0_RED     AnsiCode = "\033[41m"
)

func (x AnsiCode) String() string { return string(x) }

/***************************************
 * Logger interface
 ***************************************/

type Logger interface {
	IsVisible(LogLevel) bool
	SetLevel(LogLevel) LogLevel
	SetShowCategory(bool)
	SetColors(bool)
	SetWriter(io.Writer)

	Log(category *LogCategory, level LogLevel, msg string, args ...interface{})

	// number of messages logged with LOG_ERROR or above
	NumErrors() int
}

func HasLoggedErrors() bool {
	return gLogger.NumErrors() > 0
}

/***************************************
 * Basic Logger
 ***************************************/

type basicLogger struct {
	barrier      sync.Mutex
	MinimumLevel LogLevel
	ShowCategory bool
	Colors       bool
	Writer       io.Writer
	numErrors    int
}

func NewLogger(dst io.Writer) Logger {
	return &basicLogger{
		MinimumLevel: LOG_INFO,
		ShowCategory: true,
		Colors:       isTerminal(dst),
		Writer:       dst,
	}
}

func isTerminal(dst io.Writer) bool {
	if f, ok := dst.(*os.File); ok {
		if info, err := f.Stat(); err == nil {
			return (info.Mode() & os.ModeCharDevice) != 0
		}
	}
	return false
}

func (x *basicLogger) IsVisible(level LogLevel) bool {
	return x.MinimumLevel.IsVisible(level)
}
func (x *basicLogger) SetLevel(level LogLevel) LogLevel {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	previous := x.MinimumLevel
	if level < LOG_FATAL {
		x.MinimumLevel = level
	} else {
		x.MinimumLevel = LOG_FATAL
	}
	return previous
}
func (x *basicLogger) SetShowCategory(enabled bool) {
	x.ShowCategory = enabled
}
func (x *basicLogger) SetColors(enabled bool) {
	x.Colors = enabled
}
func (x *basicLogger) SetWriter(dst io.Writer) {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	x.Writer = dst
}
func (x *basicLogger) NumErrors() int {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	return x.numErrors
}

func (x *basicLogger) Log(category *LogCategory, level LogLevel, msg string, args ...interface{}) {
	if !x.IsVisible(level) || !category.Level.IsVisible(level) {
		return
	}

	x.barrier.Lock()
	defer x.barrier.Unlock()

	if level >= LOG_ERROR {
		x.numErrors++
	}

	line := strings.Builder{}
	if x.Colors {
		level.Style(&line)
	}
	level.Header(&line)
	if x.ShowCategory {
		fmt.Fprintf(&line, "%-10s ", category.Name)
	}
	fmt.Fprintf(&line, msg, args...)
	if x.Colors {
		line.WriteString(ANSI_RESET.String())
	}
	line.WriteByte('\n')

	io.WriteString(x.Writer, line.String())
}
