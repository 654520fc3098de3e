package dialect

import (
	"math"
	"strconv"
	"strings"

	"github.com/0xalexb/bluecommit/config/tree"
)

const listSeparator = ","

// Infer converts a trimmed raw value into a typed tree value. Rules apply in
// order: true/false in any case, finite numbers, comma separated lists, and
// finally strings with one layer of matching quotes removed.
//
// Quoting protects a literal from the boolean and number rules: "true" and
// '3' infer as the strings true and 3. It does not protect commas, so
// "a,b" is still split into a list.
func Infer(raw string) tree.Value {
	if strings.EqualFold(raw, "true") {
		return tree.Bool(true)
	}

	if strings.EqualFold(raw, "false") {
		return tree.Bool(false)
	}

	if num, ok := parseNumber(raw); ok {
		return tree.Number(num)
	}

	if strings.Contains(raw, listSeparator) {
		parts := strings.Split(raw, listSeparator)

		list := make(tree.List, 0, len(parts))
		for _, part := range parts {
			list = append(list, Infer(strings.TrimSpace(part)))
		}

		return list
	}

	return tree.String(unquote(raw))
}

func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}

	num, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}

	if math.IsNaN(num) || math.IsInf(num, 0) {
		return 0, false
	}

	return num, true
}

func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}

	first, last := raw[0], raw[len(raw)-1]
	if first == last && (first == '"' || first == '\'') {
		return raw[1 : len(raw)-1]
	}

	return raw
}
