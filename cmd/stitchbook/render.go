package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const progressBarWidth = 20

// renderProgressBar draws percent as a fixed-width bar. Complete bars are
// green and started ones yellow when colour is enabled.
func renderProgressBar(percent int, colorize bool) string {
	percent = min(100, max(0, percent))
	filled := percent * progressBarWidth / 100
	bar := strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled)
	text := fmt.Sprintf("[%s] %3d%%", bar, percent)
	if !colorize || percent == 0 {
		return text
	}
	color := ansiYellow
	if percent == 100 {
		color = ansiGreen
	}
	return color + text + ansiReset
}

func renderHeading(title string, colorize bool) string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	if colorize {
		return ansiBlue + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
