package logger

import (
	"io"
	"log"
	"os"
)

// ProgressLogger logs the main steps of a layout run (parse, build, render).
var ProgressLogger = log.New(os.Stdout, "glyphflow.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal problem, like unknown
// paragraph options or fonts that could not be resolved.
var WarningLogger = log.New(os.Stderr, "glyphflow.warning: ", log.Lmsgprefix)

// Silence 把两个 logger 的输出重定向到 io.Discard，返回恢复函数（用于测试）。
func Silence() (restore func()) {
	progress, warning := ProgressLogger.Writer(), WarningLogger.Writer()
	ProgressLogger.SetOutput(io.Discard)
	WarningLogger.SetOutput(io.Discard)
	return func() {
		ProgressLogger.SetOutput(progress)
		WarningLogger.SetOutput(warning)
	}
}
