package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Level is the severity of a log message
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelColors = map[Level]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
	FATAL: "\033[35m", // Magenta
}

var levelPrefixes = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO ",
	WARN:  "WARN ",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// ParseLevel maps a level name to a Level; unknown names map to INFO
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// String returns the level name
func (l Level) String() string {
	if prefix, ok := levelPrefixes[l]; ok {
		return strings.TrimSpace(prefix)
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Logger writes leveled, caller-annotated messages. It satisfies core.Logger,
// with Printf logging at INFO.
type Logger struct {
	level      Level
	logger     *log.Logger
	fileLogger *log.Logger // Uncolored copy of every line, set by NewMultiLogger
	file       *os.File
	useColors  bool
	exit       func(code int)
}

// NewLogger creates a logger on stdout. Colors are enabled only on a terminal.
func NewLogger(levelName string) *Logger {
	l := &Logger{
		level:  ParseLevel(levelName),
		logger: log.New(os.Stdout, "", 0),
		exit:   os.Exit,
	}
	if info, err := os.Stdout.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		l.useColors = true
	}
	return l
}

// NewWriterLogger creates an uncolored logger writing to w
func NewWriterLogger(levelName string, w io.Writer) *Logger {
	return &Logger{
		level:  ParseLevel(levelName),
		logger: log.New(w, "", 0),
		exit:   os.Exit,
	}
}

func openLogFile(filePath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// NewFileLogger creates a logger that appends to filePath
func NewFileLogger(levelName, filePath string) (*Logger, error) {
	file, err := openLogFile(filePath)
	if err != nil {
		return nil, err
	}
	l := NewWriterLogger(levelName, file)
	l.file = file
	return l, nil
}

// NewMultiLogger creates a logger that writes to both stdout and filePath.
// Colors, when enabled, only apply to the stdout copy.
func NewMultiLogger(levelName, filePath string) (*Logger, error) {
	file, err := openLogFile(filePath)
	if err != nil {
		return nil, err
	}
	l := NewLogger(levelName)
	l.fileLogger = log.New(file, "", 0)
	l.file = file
	return l, nil
}

// output writes msg at level. depth is the number of frames between the
// public method's caller and this function.
func (l *Logger) output(level Level, depth int, msg string) {
	if level < l.level {
		return
	}

	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		file = "unknown"
		line = 0
	}

	prefix := fmt.Sprintf("%s [%s] %s:%d:",
		time.Now().Format("2006/01/02 15:04:05"), levelPrefixes[level], filepath.Base(file), line)
	msg = strings.TrimRight(msg, "\n")

	if l.useColors {
		l.logger.Println(levelColors[level]+prefix+"\033[0m", msg)
	} else {
		l.logger.Println(prefix, msg)
	}
	if l.fileLogger != nil {
		l.fileLogger.Println(prefix, msg)
	}

	if level == FATAL {
		l.Close()
		l.exit(1)
	}
}

func (l *Logger) Debug(v ...interface{}) { l.output(DEBUG, 2, fmt.Sprint(v...)) }
func (l *Logger) Info(v ...interface{})  { l.output(INFO, 2, fmt.Sprint(v...)) }
func (l *Logger) Warn(v ...interface{})  { l.output(WARN, 2, fmt.Sprint(v...)) }
func (l *Logger) Error(v ...interface{}) { l.output(ERROR, 2, fmt.Sprint(v...)) }

// Fatal logs and exits the program
func (l *Logger) Fatal(v ...interface{}) { l.output(FATAL, 2, fmt.Sprint(v...)) }

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(DEBUG, 2, fmt.Sprintf(format, v...))
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.output(INFO, 2, fmt.Sprintf(format, v...))
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.output(WARN, 2, fmt.Sprintf(format, v...))
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.output(ERROR, 2, fmt.Sprintf(format, v...))
}

// Fatalf logs a formatted message and exits the program
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.output(FATAL, 2, fmt.Sprintf(format, v...))
}

// Printf logs at INFO. Messages starting with "Warning:" are raised to WARN.
func (l *Logger) Printf(format string, v ...interface{}) {
	level := INFO
	if strings.HasPrefix(format, "Warning:") {
		level = WARN
	}
	l.output(level, 2, fmt.Sprintf(format, v...))
}

// SetLevel changes the minimum level by name
func (l *Logger) SetLevel(levelName string) {
	l.level = ParseLevel(levelName)
}

// Level returns the minimum level that is written
func (l *Logger) Level() Level {
	return l.level
}

// SetOutput redirects the console output. A multi logger keeps writing its file.
func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

// EnableColors enables or disables ANSI colors on the console output
func (l *Logger) EnableColors(enable bool) {
	l.useColors = enable
}

// Close closes the log file, if any
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
		l.fileLogger = nil
	}
}
