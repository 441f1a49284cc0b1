package text

import "regexp"

// tags matches a single markup tag; "." never crosses a line break, so a
// dangling "<" on one line can't swallow text from the next.
var tags = regexp.MustCompile(`<.*?>`)

// StripTags removes every well-formed <...> span from s. Unpaired brackets
// are left untouched.
func StripTags(s string) string {
	if s == "" {
		return s
	}
	return tags.ReplaceAllString(s, "")
}
