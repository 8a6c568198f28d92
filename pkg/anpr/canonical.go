package anpr

import (
	"regexp"
	"strings"
)

var nonPlateRE = regexp.MustCompile(`[^A-Z0-9]+`)

// CanonicalizePlate uppercases the text and strips every character outside
// A-Z/0-9, e.g. " 22 BH-6517 A " -> "22BH6517A". Empty input yields the empty
// string; the function is total and idempotent.
func CanonicalizePlate(text string) string {
	return nonPlateRE.ReplaceAllString(strings.ToUpper(text), "")
}
