package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"
)

var (
	escapeReplacers   = []*strings.Replacer{strings.NewReplacer(`\`, `\\`), strings.NewReplacer(`|`, `\|`)}
	unescapeReplacers = []*strings.Replacer{strings.NewReplacer(`\|`, `|`), strings.NewReplacer(`\\`, `\`)}
)

// Escape protects the reserved characters inside a field value. Backslashes
// are doubled before pipes are escaped so inserted backslashes are not
// escaped twice.
func Escape(value string) string {
	for _, r := range escapeReplacers {
		value = r.Replace(value)
	}
	return value
}

// Unescape reverses Escape: `\|` becomes `|`, then `\\` becomes `\`.
func Unescape(value string) string {
	for _, r := range unescapeReplacers {
		value = r.Replace(value)
	}
	return value
}

// SplitTokens splits a line on unescaped pipes in a single pass. Escape
// backslashes stay in the token so Unescape can decode the value later; each
// token is trimmed.
func SplitTokens(line string) []string {
	var (
		tokens  []string
		current strings.Builder
		escaped bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			current.WriteByte(c)
			escaped = false
		case c == '\\':
			current.WriteByte(c)
			escaped = true
		case c == '|':
			tokens = append(tokens, trimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, trimSpace(current.String()))
	}
	return tokens
}

// ParseLine decodes one catalog line. Tokens without `=` are dropped, later
// duplicates overwrite earlier ones, and unknown keys are kept in Extras.
func ParseLine(line string) Record {
	var rec Record
	for _, token := range SplitTokens(line) {
		key, raw, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		rec.Set(trimSpace(key), Unescape(raw))
	}
	return rec
}

// Parse decodes catalog text. Both LF and CRLF line endings are accepted;
// blank lines, `#` comments and records without a type are skipped.
func Parse(text string) []Record {
	var records []Record
	for _, raw := range strings.Split(text, "\n") {
		if rec, ok := parseTextLine(raw); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ParseReader decodes catalog text from r with the same rules as Parse. Lines
// of any length are accepted.
func ParseReader(r io.Reader) ([]Record, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var records []Record
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if rec, ok := parseTextLine(line); ok {
				records = append(records, rec)
			}
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}
}

func parseTextLine(raw string) (Record, bool) {
	line := trimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Record{}, false
	}
	rec := ParseLine(line)
	if rec.Type == "" {
		return Record{}, false
	}
	return rec, true
}

// FormatRecord encodes a record as one line: canonical fields in fixed order
// followed by extras sorted by key. Empty values are omitted.
func FormatRecord(rec Record) string {
	parts := make([]string, 0, len(canonicalKeys)+len(rec.Extras))
	for _, key := range canonicalKeys {
		if value := rec.Get(key); value != "" {
			parts = append(parts, key+"="+Escape(value))
		}
	}
	keys := make([]string, 0, len(rec.Extras))
	for key := range rec.Extras {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if value := rec.Extras[key]; value != "" {
			parts = append(parts, key+"="+Escape(value))
		}
	}
	return strings.Join(parts, "|")
}

// Format encodes records one per line joined by newlines.
func Format(records []Record) string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = FormatRecord(rec)
	}
	return strings.Join(lines, "\n")
}

// Write streams the formatted records to w.
func Write(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for i, rec := range records {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}
		}
		if _, err := bw.WriteString(FormatRecord(rec)); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// trimSpace strips the whitespace set of JavaScript's String.prototype.trim:
// Unicode White_Space except U+0085, plus the byte-order mark.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isTrimSpace)
}

func isTrimSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\ufeff'
}
