//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// Console logs use ANSI colour; fall back to plain text when the console
// cannot interpret escape sequences.
func init() {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		h := windows.Handle(f.Fd())
		var mode uint32
		if err := windows.GetConsoleMode(h, &mode); err != nil {
			noColor = true
			return
		}
		if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 {
			if err := windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
				noColor = true
				return
			}
		}
	}
}
