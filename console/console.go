// Package console prints user-facing status lines.
package console

import (
	"io"

	"github.com/pterm/pterm"
)

// Info prints an informational line
func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// Warning prints a warning line
func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// Error prints an error line
func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// Success prints a success line
func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// SetOutput redirects status lines to w
func SetOutput(w io.Writer) {
	pterm.SetDefaultOutput(w)
}

// Plain disables colours and prefix styling
func Plain() {
	pterm.DisableStyling()
}
