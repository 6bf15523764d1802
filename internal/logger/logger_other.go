//go:build !darwin && !linux && !windows
// +build !darwin,!linux,!windows

package logger

import (
	"os"

	"github.com/mattn/go-isatty"
)

func GetTerminalInfo(file *os.File) TerminalInfo {
	return TerminalInfo{IsTTY: isatty.IsTerminal(file.Fd())}
}
