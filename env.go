// File: jitflags/env.go
package jitflags

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// fatalf terminates the process with a descriptive message. Swappable so the
// termination path can be exercised in tests.
var fatalf = log.Fatalf

// ParseFlagsFromEnv parses the contents of the named environment variable as
// a sequence of command-line-style arguments against the descriptor list.
// An unknown flag or a malformed value is a fatal configuration error: the
// process terminates with a message naming the offender rather than silently
// ignoring it.
func ParseFlagsFromEnv(envVar string, flags []Flag) {
	if err := parseFlagsFromEnv(envVar, flags); err != nil {
		fatalf("%s: %v", envVar, err)
	}
}

func parseFlagsFromEnv(envVar string, flags []Flag) error {
	raw, ok := os.LookupEnv(envVar)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	args, err := tokenize(raw)
	if err != nil {
		return err
	}
	return Parse(args, flags)
}

// tokenize splits the variable's content into arguments on unquoted
// whitespace. Single quotes preserve their contents verbatim; double quotes
// and bare backslashes support backslash escapes.
func tokenize(s string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inToken := false

	flush := func() {
		if inToken {
			args = append(args, cur.String())
			cur.Reset()
			inToken = false
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
			i++

		case c == '\'':
			inToken = true
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("unterminated single-quoted string")
			}
			cur.WriteString(s[i+1 : i+1+end])
			i += end + 2

		case c == '"':
			inToken = true
			i++
			closed := false
			for i < len(s) {
				if s[i] == '\\' && i+1 < len(s) {
					cur.WriteByte(s[i+1])
					i += 2
					continue
				}
				if s[i] == '"' {
					i++
					closed = true
					break
				}
				cur.WriteByte(s[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated double-quoted string")
			}

		case c == '\\' && i+1 < len(s):
			inToken = true
			cur.WriteByte(s[i+1])
			i += 2

		default:
			inToken = true
			cur.WriteByte(c)
			i++
		}
	}
	flush()

	return args, nil
}
