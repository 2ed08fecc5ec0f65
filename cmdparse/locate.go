package cmdparse

import "strings"

// FindCommand returns the byte offset of command inside line.
//
// The search is literal. When it fails it is repeated once with the
// first character of command switched to the other ASCII case, so
// "Min2" and "min2" find each other. Only the line up to its first NUL
// is searched. An empty command is never found.
func FindCommand(line, command string) (int, bool) {
	if command == "" {
		return 0, false
	}
	if i := strings.IndexByte(line, 0); i >= 0 {
		line = line[:i]
	}

	if pos := strings.Index(line, command); pos >= 0 {
		return pos, true
	}

	alt := toggleFirst(command)
	if alt == command {
		return 0, false
	}
	if pos := strings.Index(line, alt); pos >= 0 {
		return pos, true
	}
	return 0, false
}

// toggleFirst switches the case of an ASCII letter in the first
// position and leaves everything else alone.
func toggleFirst(s string) string {
	c := s[0]
	switch {
	case c >= 'A' && c <= 'Z':
		c += 'a' - 'A'
	case c >= 'a' && c <= 'z':
		c -= 'a' - 'A'
	default:
		return s
	}
	return string(c) + s[1:]
}
