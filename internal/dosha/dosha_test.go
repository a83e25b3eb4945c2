package dosha

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreNoKeywords(t *testing.T) {
	scores := Score("feeling perfectly fine today")
	assert.Equal(t, 0, scores[Vata])
	assert.Equal(t, 0, scores[Pitta])
	assert.Equal(t, 0, scores[Kapha])
}

func TestScoreEmptyText(t *testing.T) {
	scores := Score("")
	for _, d := range []Dosha{Vata, Pitta, Kapha} {
		assert.Equal(t, 0, scores[d], "expected zero score for %s", d)
	}
}

func TestScoreSingleKeyword(t *testing.T) {
	scores := Score("patient reports fever since yesterday")
	assert.Equal(t, 0, scores[Vata])
	assert.Equal(t, 1, scores[Pitta])
	assert.Equal(t, 0, scores[Kapha])

	primary, secondary, _ := Select(scores, None)
	assert.Equal(t, Pitta, primary)
	assert.Equal(t, None, secondary)
}

func TestScoreCaseInsensitive(t *testing.T) {
	assert.Equal(t, Score("FEVER and BURNING sensation"), Score("fever and burning sensation"))
}

func TestScoreKeywordCountsOnce(t *testing.T) {
	scores := Score("fever fever fever")
	assert.Equal(t, 1, scores[Pitta])
}

func TestScoreMatchesInsideWords(t *testing.T) {
	// Substring matching is intentional: "scalding" contains no keyword,
	// but "coldness" contains "cold" (a vata and kapha keyword).
	scores := Score("coldness in the hands")
	assert.Equal(t, 1, scores[Vata])
	assert.Equal(t, 1, scores[Kapha])
}

func TestScoreOrderIndependent(t *testing.T) {
	a := Score("dry skin, fever, cough")
	b := Score("cough, dry skin, fever")
	assert.Equal(t, a, b)
}

func TestSelectTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		scores Scores
		want   Dosha
	}{
		{"all zero resolves to Vata", Scores{Vata: 0, Pitta: 0, Kapha: 0}, Vata},
		{"vata pitta tie resolves to Vata", Scores{Vata: 2, Pitta: 2, Kapha: 0}, Vata},
		{"pitta kapha tie resolves to Pitta", Scores{Vata: 0, Pitta: 3, Kapha: 3}, Pitta},
		{"kapha wins outright", Scores{Vata: 1, Pitta: 0, Kapha: 4}, Kapha},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, _, _ := Select(tt.scores, None)
			assert.Equal(t, tt.want, primary)
		})
	}
}

func TestSelectSecondary(t *testing.T) {
	primary, secondary, _ := Select(Scores{Vata: 3, Pitta: 1, Kapha: 0}, None)
	assert.Equal(t, Vata, primary)
	assert.Equal(t, Pitta, secondary)

	_, secondary, _ = Select(Scores{Vata: 3, Pitta: 0, Kapha: 0}, None)
	assert.Equal(t, None, secondary)
}

func TestSelectVisualBonusPreservesLeader(t *testing.T) {
	primary, _, adjusted := Select(Scores{Vata: 4, Pitta: 1, Kapha: 0}, Vata)
	assert.Equal(t, Vata, primary)
	assert.Equal(t, 6, adjusted[Vata])
}

func TestSelectVisualBonusFlipsPrimary(t *testing.T) {
	primary, secondary, adjusted := Select(Scores{Vata: 2, Pitta: 1, Kapha: 1}, Kapha)
	assert.Equal(t, Kapha, primary)
	assert.Equal(t, Vata, secondary)
	assert.Equal(t, 3, adjusted[Kapha])
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	scores := Scores{Vata: 1, Pitta: 0, Kapha: 0}
	Select(scores, Vata)
	assert.Equal(t, 1, scores[Vata])
}

func TestSelectIgnoresUnknownVisualIndicator(t *testing.T) {
	primary, _, adjusted := Select(Scores{Vata: 1, Pitta: 0, Kapha: 0}, None)
	assert.Equal(t, Vata, primary)
	assert.Equal(t, 1, adjusted[Vata])
}

func TestVataEndToEndExample(t *testing.T) {
	scores := Score("dry skin, joint pain, constipation, insomnia")
	require.GreaterOrEqual(t, scores[Vata], 4)
	assert.Equal(t, 0, scores[Pitta])
	assert.Equal(t, 0, scores[Kapha])

	primary, _, _ := Select(scores, None)
	assert.Equal(t, Vata, primary)
}

func TestVisualIndicator(t *testing.T) {
	report := "White thick coating suggests Kapha. Kapha imbalance dominant; minor Pitta signs."
	indicator, counts := VisualIndicator(report)
	assert.Equal(t, Kapha, indicator)
	assert.Equal(t, 2, counts[Kapha])
	assert.Equal(t, 1, counts[Pitta])
	assert.Equal(t, 0, counts[Vata])
}

func TestVisualIndicatorNoMentions(t *testing.T) {
	indicator, _ := VisualIndicator("tongue appears normal")
	assert.Equal(t, None, indicator)
}

func TestTreatmentFor(t *testing.T) {
	assert.Equal(t, "Cooling, calming, anti-inflammatory therapies", TreatmentFor(Pitta).Principle)
	assert.True(t, strings.Contains(TreatmentFor(Kapha).Herbs, "Trikatu"))
}

func TestTreatmentForUnknownFallsBackToVata(t *testing.T) {
	assert.Equal(t, TreatmentFor(Vata), TreatmentFor(Dosha("Tridosha")))
}
