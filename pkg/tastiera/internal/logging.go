package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFilename string
	logFile     *os.File

	writerOnce sync.Once
	logWriter  io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	logLevel   *slog.LevelVar

	internalOnce   sync.Once
	internalLogger *slog.Logger
	internalLevel  *slog.LevelVar
)

// SetLogFilename overrides the log file name. Must be called before the
// first logger access to take effect.
func SetLogFilename(filename string) {
	logFilename = filename
}

func logDestination() io.Writer {
	writerOnce.Do(func() {
		if err := os.MkdirAll("logs", 0755); err != nil {
			panic("failed to create logs directory: " + err.Error())
		}

		filename := logFilename
		if filename == "" {
			filename = "tastiera.log"
		}

		var err error
		logFile, err = os.OpenFile(filepath.Join("logs", filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			panic("failed to open log file: " + err.Error())
		}

		logWriter = io.MultiWriter(os.Stdout, logFile)
	})
	return logWriter
}

func newLogger(level *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewJSONHandler(logDestination(), &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	}))
}

// GetLogger returns the logger exposed to library consumers.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		logLevel = &slog.LevelVar{}
		logger = newLogger(logLevel)
	})
	return logger
}

// GetInternalLogger returns the logger used by the library itself.
func GetInternalLogger() *slog.Logger {
	internalOnce.Do(func() {
		internalLevel = &slog.LevelVar{}
		internalLogger = newLogger(internalLevel)
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	logLevel.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	GetInternalLogger()
	internalLevel.Set(level)
}

func SetRawLogLevel(rawLevel string) {
	var level slog.Level
	switch strings.ToLower(rawLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	SetLogLevel(level)
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
