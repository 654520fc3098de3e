package dialect

import (
	"strconv"
	"strings"

	"github.com/0xalexb/bluecommit/config/tree"
)

const (
	commentPrefix = "#"
	sectionOpen   = "["
	sectionClose  = "]"
	byteOrderMark = "\ufeff"
)

// LineKind classifies a physical line of a configuration file.
type LineKind int

// Line kinds.
const (
	LineBlank LineKind = iota
	LineComment
	LineSection
	LinePair
	LineIgnored
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineSection:
		return "section"
	case LinePair:
		return "pair"
	case LineIgnored:
		return "ignored"
	default:
		return "linekind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Line is one lexed line.
type Line struct {
	// Number is the 1-based line number.
	Number int
	Kind   LineKind
	// Section is the section name for LineSection, and the active section for LinePair.
	Section string
	// Path holds the section-qualified key segments of a LinePair.
	Path []string
	// Value is the trimmed raw value of a LinePair.
	Value string
	// Reason explains why a LineIgnored line was skipped.
	Reason string
}

// Key returns the dotted, section-qualified key of a pair line.
func (l Line) Key() string {
	return tree.JoinPath(l.Path)
}

// Lex splits data into classified lines. It never fails; anything it cannot
// classify is returned as LineIgnored with a reason.
func Lex(data []byte) []Line {
	text := strings.TrimPrefix(string(data), byteOrderMark)
	if text == "" {
		return nil
	}

	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	section := ""

	for i, physical := range raw {
		line := lexLine(i+1, strings.TrimSpace(strings.TrimSuffix(physical, "\r")), section)
		if line.Kind == LineSection {
			section = line.Section
		}

		lines = append(lines, line)
	}

	return lines
}

func lexLine(number int, trimmed, section string) Line {
	line := Line{Number: number, Kind: LineIgnored}

	switch {
	case trimmed == "":
		line.Kind = LineBlank

		return line
	case strings.HasPrefix(trimmed, commentPrefix):
		line.Kind = LineComment

		return line
	case strings.HasPrefix(trimmed, sectionOpen) && strings.HasSuffix(trimmed, sectionClose):
		name := trimmed[1 : len(trimmed)-1]
		if strings.ContainsAny(name, sectionOpen+sectionClose) {
			line.Reason = "nested brackets in section header"

			return line
		}

		line.Kind = LineSection
		line.Section = strings.TrimSpace(name)

		return line
	}

	key, value, found := splitPair(trimmed)
	if !found {
		line.Reason = "not a section header or key=value pair"

		return line
	}

	key = strings.TrimSpace(key)
	if key == "" {
		line.Reason = "empty key"

		return line
	}

	qualified := key
	if section != "" {
		qualified = section + tree.PathSeparator + key
	}

	path := tree.SplitPath(qualified)
	for i, segment := range path {
		path[i] = strings.TrimSpace(segment)
		if path[i] == "" {
			line.Reason = "empty segment in key path " + strconv.Quote(qualified)

			return line
		}
	}

	line.Kind = LinePair
	line.Section = section
	line.Path = path
	line.Value = strings.TrimSpace(value)

	return line
}

// splitPair splits s at the first unescaped "=". An escaped "\=" before that
// point is unescaped into the key.
func splitPair(s string) (string, string, bool) {
	var key strings.Builder

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '=':
			key.WriteByte('=')
			i++
		case s[i] == '=':
			return key.String(), s[i+1:], true
		default:
			key.WriteByte(s[i])
		}
	}

	return "", "", false
}
