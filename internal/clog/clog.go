// Package clog is the compiler's leveled logger: a thin wrapper around a
// package-level *log.Logger using the same "LEVEL message" convention the
// reference server's raw log.Printf calls use throughout
// cmd/tqserver/main.go and server/{handlers,response,server}.go, plus a
// --quiet toggle that suppresses anything below warning level.
package clog

import (
	"io"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

// quiet, when true, suppresses Debugf and Infof entirely; Warnf and
// Errorf are never suppressed.
var quiet bool

// SetQuiet toggles --quiet mode: Debugf/Infof become no-ops while Warnf
// and Errorf keep writing, mirroring a CLI tool that wants failures
// visible even when run with reduced verbosity.
func SetQuiet(q bool) {
	quiet = q
}

// SetOutput redirects where every level writes, for tests and for the
// debug server to capture log output.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Debugf(format string, args ...any) {
	if quiet {
		return
	}
	logger.Printf("DEBUG "+format, args...)
}

func Infof(format string, args ...any) {
	if quiet {
		return
	}
	logger.Printf("INFO  "+format, args...)
}

func Warnf(format string, args ...any) {
	logger.Printf("WARN  "+format, args...)
}

func Errorf(format string, args ...any) {
	logger.Printf("ERROR "+format, args...)
}
