package nlp

import (
	"strings"
)

// aliases maps a normalized skill token or phrase to its equivalents.
var aliases = map[string][]string{
	"postgres":         {"postgresql"},
	"postgresql":       {"postgres"},
	"k8s":              {"kubernetes"},
	"kubernetes":       {"k8s"},
	"golang":           {"go"},
	"go":               {"golang"},
	"js":               {"javascript"},
	"javascript":       {"js"},
	"ts":               {"typescript"},
	"typescript":       {"ts"},
	"ml":               {"machine learning"},
	"machine learning": {"ml"},
	"react":            {"react.js", "reactjs"},
	"react.js":         {"react", "reactjs"},
	"reactjs":          {"react", "react.js"},
	"node":             {"node.js", "nodejs"},
	"node.js":          {"node", "nodejs"},
	"nodejs":           {"node", "node.js"},
	"rest":             {"rest api"},
	"rest api":         {"rest"},
	"ci cd":            {"cicd"},
	"cicd":             {"ci cd"},
}

// SkillVariants returns normalized variants for matching (synonyms/aliases).
// Used by posting search so that a "golang" filter also finds "Go" postings.
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = NormalizeSkill(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(base)
	for _, a := range aliases[base] {
		add(a)
	}

	// Token-level expansions (for multi-word skills)
	parts := strings.Split(base, " ")
	if len(parts) > 1 {
		var expanded []string
		for _, p := range parts {
			expanded = append(expanded, TokenVariants(p)...)
		}
		if len(expanded) > 0 {
			add(strings.Join(expanded, " "))
		}
	}

	return out
}

// TokenVariants returns normalized token variants.
func TokenVariants(token string) []string {
	t := NormalizeSkill(token)
	if t == "" {
		return []string{}
	}
	return append([]string{t}, aliases[t]...)
}
