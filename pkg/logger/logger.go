package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the API and the report command.
// Init(level) selects the threshold; Infow and friends append key=value fields.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

var (
	mu     sync.RWMutex
	logger *log.Logger = log.New(os.Stdout, "", 0)
	level  Level       = LevelInfo
	exit               = os.Exit
)

// ParseLevel maps a case-insensitive name to a Level; unknown names map to Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return LevelInfo
}

// Init sets the global log level. Call early during startup.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return "info"
}

func write(l Level, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	logger.Printf("%s [%s] %s", time.Now().UTC().Format(time.RFC3339), strings.ToUpper(l.String()), msg)
}

// fields renders key/value pairs sorted by key so output is stable.
func fields(kv []interface{}) string {
	if len(kv) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			pairs = append(pairs, key+"=<missing>")
			break
		}
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, kv[i+1]))
	}
	sort.Strings(pairs)
	return " " + strings.Join(pairs, " ")
}

func Debugf(format string, v ...interface{}) { write(LevelDebug, fmt.Sprintf(format, v...)) }
func Infof(format string, v ...interface{})  { write(LevelInfo, fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...interface{})  { write(LevelWarn, fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...interface{}) { write(LevelError, fmt.Sprintf(format, v...)) }

func Fatalf(format string, v ...interface{}) {
	mu.RLock()
	logger.Printf("%s [FATAL] %s", time.Now().UTC().Format(time.RFC3339), fmt.Sprintf(format, v...))
	mu.RUnlock()
	exit(1)
}

// Infow logs msg followed by key=value fields.
func Infow(msg string, kv ...interface{}) { write(LevelInfo, msg+fields(kv)) }
func Warnw(msg string, kv ...interface{}) { write(LevelWarn, msg+fields(kv)) }

func Info(v string) { write(LevelInfo, v) }
func Warn(v string) { write(LevelWarn, v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return level.String()
}
