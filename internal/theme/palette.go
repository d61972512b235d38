package theme

// Palette holds the ANSI sequences for status output.
type Palette struct {
	OK    string
	Warn  string
	Error string
	Info  string
	Reset string
}

const ansiReset = "\x1b[0m"

// Palette returns the colours for t. Dark terminals get the bright
// variants; light terminals get bold standard colours.
func (t Theme) Palette() Palette {
	switch t {
	case Dark:
		return Palette{OK: "\x1b[92m", Warn: "\x1b[93m", Error: "\x1b[91m", Info: "\x1b[94m", Reset: ansiReset}
	case Light:
		return Palette{OK: "\x1b[1;32m", Warn: "\x1b[1;33m", Error: "\x1b[1;31m", Info: "\x1b[1;34m", Reset: ansiReset}
	default:
		return Palette{OK: "\x1b[32m", Warn: "\x1b[33m", Error: "\x1b[31m", Info: "\x1b[34m", Reset: ansiReset}
	}
}
