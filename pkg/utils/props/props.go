// Package props reads and edits Java-style .properties files while keeping
// every untouched line as it was.
package props

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// entry is one logical key/value pair spanning lines[first..last]
type entry struct {
	key        string
	first      int
	last       int
	valueStart int  // byte offset of the value within lines[first]
	bare       bool // key without separator or value
}

// Lookup returns the value of key in data. When the key occurs more than
// once the last occurrence wins.
func Lookup(data []byte, key string) (string, bool) {
	lines := splitLines(data)

	var (
		value string
		found bool
	)
	for _, e := range parse(lines) {
		if e.key != key {
			continue
		}
		value, found = e.value(lines), true
	}
	return value, found
}

// Set replaces the value of every occurrence of key in data, keeping the
// separator of the existing line. If key is absent, "key=value" is
// appended.
func Set(data []byte, key, value string) []byte {
	lines := splitLines(data)
	entries := parse(lines)

	out := make([]string, 0, len(lines)+1)
	next := 0
	found := false
	for _, e := range entries {
		if e.key != key {
			continue
		}
		found = true

		out = append(out, lines[next:e.first]...)

		head := lines[e.first]
		cr := ""
		if strings.HasSuffix(head, "\r") {
			cr = "\r"
		}
		prefix := strings.TrimSuffix(head, "\r")[:e.valueStart]
		if e.bare {
			prefix += "="
		}
		out = append(out, prefix+escapeValue(value)+cr)
		next = e.last + 1
	}
	out = append(out, lines[next:]...)

	if !found {
		text := string(data)
		nl := "\n"
		if strings.Contains(text, "\r\n") {
			nl = "\r\n"
		}
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += nl
		}
		return []byte(text + key + "=" + escapeValue(value) + nl)
	}

	return []byte(strings.Join(out, "\n"))
}

// ReadFile returns the value of key in the properties file at path
func ReadFile(path, key string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to read properties file",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO),
		)
	}

	value, ok := Lookup(data, key)
	return value, ok, nil
}

// SetFile rewrites key in the properties file at path in place
func SetFile(path, key, value string) error {
	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "failed to stat properties file",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO),
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read properties file",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO),
		)
	}

	if err := os.WriteFile(path, Set(data, key, value), info.Mode().Perm()); err != nil {
		return goerr.Wrap(err, "failed to write properties file",
			goerr.V("path", path),
			goerr.T(types.ErrTagIO),
		)
	}

	return nil
}

func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	return strings.Split(string(data), "\n")
}

func parse(lines []string) []entry {
	var entries []entry

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		key, valueStart, bare, ok := splitKey(line)
		if !ok {
			continue
		}

		e := entry{key: key, first: i, last: i, valueStart: valueStart, bare: bare}
		for e.last < len(lines)-1 && continues(strings.TrimSuffix(lines[e.last], "\r")) {
			e.last++
		}
		entries = append(entries, e)
		i = e.last
	}

	return entries
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

// splitKey returns the unescaped key of line and the offset where its value
// begins. bare is set when the line holds nothing but the key. Blank and
// comment lines return ok=false.
func splitKey(line string) (key string, valueStart int, bare bool, ok bool) {
	trimmed := strings.TrimLeft(line, " \t\f")
	if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
		return "", 0, false, false
	}
	offset := len(line) - len(trimmed)

	i := 0
	for escaped := false; i < len(trimmed); i++ {
		c := trimmed[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '=' || c == ':' || isBlank(c) {
			break
		}
	}
	key = unescape(trimmed[:i])
	bare = i == len(trimmed)

	j := i
	for j < len(trimmed) && isBlank(trimmed[j]) {
		j++
	}
	if j < len(trimmed) && (trimmed[j] == '=' || trimmed[j] == ':') {
		j++
	}
	for j < len(trimmed) && isBlank(trimmed[j]) {
		j++
	}

	return key, offset + j, bare, true
}

// continues reports whether line ends with an odd number of backslashes
func continues(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func (e entry) value(lines []string) string {
	var b strings.Builder
	for i := e.first; i <= e.last; i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		if i == e.first {
			line = line[e.valueStart:]
		} else {
			line = strings.TrimLeft(line, " \t\f")
		}
		if i < e.last {
			line = line[:len(line)-1]
		}
		b.WriteString(line)
	}
	return unescape(b.String())
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func escapeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	if s != "" && isBlank(s[0]) {
		s = `\` + s
	}
	return s
}
