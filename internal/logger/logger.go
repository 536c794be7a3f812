package logger

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI color codes. Disabled automatically when stdout is not a terminal.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
)

func colorize(color, s string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return color + s + reset
}

func tagged(color, symbol, tag, msg string) {
	fmt.Printf("%s %s %s\n", colorize(color, symbol), colorize(bold, "["+tag+"]"), msg)
}

// Info prints an informational message with a tag.
func Info(tag, msg string) {
	tagged(blue, "•", tag, msg)
}

// Success prints a success message with a tag.
func Success(tag, msg string) {
	tagged(green, "✓", tag, msg)
}

// Warn prints a warning message with a tag.
func Warn(tag, msg string) {
	tagged(yellow, "!", tag, msg)
}

// Error prints an error message with a tag.
func Error(tag, msg string) {
	tagged(red, "✗", tag, msg)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(colorize(cyan, `
   __  ___      ______   ___    __     __               _     __
  /  |/  / | /| / /  /  / _ |  / /____/ /  ___ __ _    (_)__ / /_
 / /|_/ /| |/ |/ // /  / __ | / / __/ _ \/ -_)  ' \   / (_-</ __/
/_/  /_/ |__/|__/___/ /_/ |_|/_/\__/_//_/\__/_/_/_/  /_/___/\__/
`))
	fmt.Printf("  %s %s\n\n", colorize(dim, "alchemy profit estimator · version"), colorize(bold, version))
}

// Section prints a section divider.
func Section(name string) {
	fmt.Printf("\n%s %s\n", colorize(cyan, "──"), colorize(bold, name))
}

// Stats prints a labelled value, aligned for scanning.
func Stats(label string, value interface{}) {
	fmt.Printf("  %-24s %v\n", colorize(dim, label), value)
}
