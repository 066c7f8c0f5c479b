package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillKeepsLanguageMarks(t *testing.T) {
	assert.Equal(t, "c++", NormalizeSkill("  C++ "))
	assert.Equal(t, "node.js", NormalizeSkill("Node.js"))
	assert.Equal(t, "rest api", NormalizeSkill("REST / API"))
}

func TestCleanSkillsDeduplicates(t *testing.T) {
	got := CleanSkills([]string{"Go", " go ", "", "  Machine   Learning", "machine learning", "SQL"})
	assert.Equal(t, []string{"Go", "Machine Learning", "SQL"}, got)
}

func TestSkillVariantsAliases(t *testing.T) {
	assert.ElementsMatch(t, []string{"golang", "go"}, SkillVariants("Golang"))
	assert.Contains(t, SkillVariants("Postgres Admin"), "postgres admin")
	assert.Empty(t, SkillVariants("   "))
}
