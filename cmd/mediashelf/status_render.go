package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"mediashelf/internal/theme"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

// renderStatusLine formats one labelled status line. A nil palette disables
// colour.
func renderStatusLine(label string, kind statusKind, message string, palette *theme.Palette) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if palette != nil {
		if color := statusKindColor(kind, *palette); color != "" {
			return color + base + palette.Reset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind, p theme.Palette) string {
	switch kind {
	case statusOK:
		return p.OK
	case statusWarn:
		return p.Warn
	case statusError:
		return p.Error
	case statusInfo:
		return p.Info
	default:
		return ""
	}
}

func renderSectionHeader(title string, palette *theme.Palette) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if palette != nil {
		line = palette.Info + line + palette.Reset
		rule = palette.Info + rule + palette.Reset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
