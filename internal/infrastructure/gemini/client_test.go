package gemini

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions(t *testing.T) {
	const (
		bioA = "I build data platforms that scale."
		bioB = "Product engineer obsessed with onboarding."
		bioC = "Former CTO, now hunting for a sales partner."
		bioD = "Designer turned founder, shipping weekly."
	)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"json", `["` + bioA + `", "` + bioB + `"]`, []string{bioA, bioB}},
		{"fenced json capped at three", "```json\n[\"" + bioA + "\", \"" + bioB + "\", \"" + bioC + "\", \"" + bioD + "\"]\n```", []string{bioA, bioB, bioC}},
		{"plain lines", "- " + bioA + "\n\n- " + bioB + "\n", []string{bioA, bioB}},
		{"too short dropped", `["too short", "` + bioA + `"]`, []string{bioA}},
		{"too long dropped", `["` + strings.Repeat("x", 201) + `", "` + bioC + `"]`, []string{bioC}},
		{"runes not bytes", `["` + strings.Repeat("é", 200) + `"]`, []string{strings.Repeat("é", 200)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestions(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, bio := range got {
				n := utf8.RuneCountInString(bio)
				assert.True(t, n >= 20 && n <= 200, bio)
			}
		})
	}

	for _, in := range []string{"[]\n", "   ", `["short", "also short"]`} {
		_, err := parseSuggestions(in)
		assert.Error(t, err, in)
	}
}

func TestPrompts(t *testing.T) {
	a := Founder{Name: "Alice", Title: "AI tech lead", Tags: []string{"AI R&D", "AIGC"}}
	b := Founder{Name: "Bob", Title: "Growth lead", Vision: "Own go-to-market"}

	p := introPrompt(a, b)
	assert.Contains(t, p, "Alice, AI tech lead")
	assert.Contains(t, p, "Tags: AI R&D, AIGC")
	assert.Contains(t, p, "Vision: Own go-to-market")

	p = bioPrompt("Carol", "Designer", []string{"Design", "Product 0 to 1"})
	assert.Contains(t, p, "Abilities: Design, Product 0 to 1")
}
