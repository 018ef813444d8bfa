package parse

import (
	"regexp"
	"sort"
	"strings"
)

// Vocabulary recognizes heading lines and cleans their tags.
type Vocabulary struct {
	heading  *regexp.Regexp
	noise    *regexp.Regexp
	rewrites map[string]string
}

// NewVocabulary builds the heading matcher. marker is the outline character
// repeated at the start of a heading ("*" for org files). Every noise tag and
// every colon is removed from a heading's tag field; a cleaned tag equal to a
// rewrites key is replaced by its value.
func NewVocabulary(marker string, noise []string, rewrites map[string]string) *Vocabulary {
	heading := regexp.MustCompile(`^(?:` + regexp.QuoteMeta(marker) + `)+ ([^:]*) *:(.*):$`)

	// longest first so a tag that contains another one is removed whole
	tokens := append([]string(nil), noise...)
	sort.SliceStable(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })
	alts := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		alts = append(alts, regexp.QuoteMeta(t))
	}
	alts = append(alts, ":")

	rw := make(map[string]string, len(rewrites))
	for k, v := range rewrites {
		rw[k] = v
	}

	return &Vocabulary{
		heading:  heading,
		noise:    regexp.MustCompile(strings.Join(alts, "|")),
		rewrites: rw,
	}
}

// MatchHeading returns the activity named by line, or current when line is
// not a heading.
func (v *Vocabulary) MatchHeading(line string, current Activity) Activity {
	if a, ok := v.Heading(line); ok {
		return a
	}
	return current
}

// Heading parses line as a heading.
func (v *Vocabulary) Heading(line string) (Activity, bool) {
	m := v.heading.FindStringSubmatch(line)
	if m == nil {
		return Activity{}, false
	}
	return Activity{
		Name: strings.TrimSpace(m[1]),
		Type: v.CleanType(m[2]),
	}, true
}

// CleanType strips noise tokens from a raw tag field and applies rewrites.
func (v *Vocabulary) CleanType(raw string) string {
	t := raw
	// removal can splice a new token together ("FreiFreizeitzeit")
	for {
		next := v.noise.ReplaceAllString(t, "")
		if next == t {
			break
		}
		t = next
	}
	if r, ok := v.rewrites[t]; ok {
		return r
	}
	return t
}
