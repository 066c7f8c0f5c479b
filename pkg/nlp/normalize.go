package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#.]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText lower-cases s, turns separators into single spaces and trims.
// "+", "#" and "." survive so that c++, c# and node.js stay distinct.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.Trim(s, " .")
}

// NormalizeSkill normalizes a (possibly multi-word) skill for comparison.
func NormalizeSkill(skill string) string {
	return NormalizeText(skill)
}

// CleanSkills trims and collapses whitespace in skills and drops empty and
// duplicate entries (duplicates compared by NormalizeSkill). Order is kept.
func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		display := reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
		key := NormalizeSkill(display)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, display)
	}
	return out
}
