package localdump

import (
	"regexp"
	"strings"
)

var (
	illegalChars      = regexp.MustCompile(`[^\p{L}\p{N}_.\-]`)
	repeatUnderscores = regexp.MustCompile(`__+`)
	periodUnderscores = regexp.MustCompile(`\._+`)
)

// Sanitize turns an arbitrary label into something safe to use as a file or directory name.  Only
// letters, digits, underscores and periods survive; hyphens are dropped, runs of underscores are
// squashed and a period never has an underscore after it.
//
// Every output is its own sanitized form, but callers still sanitize raw labels exactly once.
func Sanitize(label string) string {
	s := illegalChars.ReplaceAllString(label, "_")
	s = strings.ReplaceAll(s, "-", "")
	s = repeatUnderscores.ReplaceAllString(s, "_")
	s = periodUnderscores.ReplaceAllString(s, ".")
	return s
}

// Label is the sanitized "<id>_<name>" used for per-entity directories and files.
func Label(id, name string) string {
	return Sanitize(id + "_" + name)
}
