package dosha

import "strings"

// Dosha is one of the three Ayurvedic constitution labels.
type Dosha string

const (
	Vata  Dosha = "Vata"
	Pitta Dosha = "Pitta"
	Kapha Dosha = "Kapha"

	// None is the sentinel used when no secondary dosha has a nonzero score.
	None Dosha = "None"
)

// priority is the fixed selection order. Ties in score resolve to the
// earliest entry, so selection never depends on map iteration order.
var priority = []Dosha{Vata, Pitta, Kapha}

// VisualBonus is added once to the visually indicated dosha's score
// before primary/secondary re-selection.
const VisualBonus = 2

// Scores maps each constitution label to its keyword-match count.
type Scores map[Dosha]int

// keywords per dosha. Matching is substring-based, so a keyword may hit
// inside a larger word ("cold" matches "coldness"). Each keyword counts
// at most once no matter how often it occurs.
var keywords = map[Dosha][]string{
	Vata: {"dry", "cold", "anxiety", "pain", "constipation", "insomnia",
		"joint pain", "irregular", "fatigue", "thin"},
	Pitta: {"inflammation", "fever", "acidity", "anger", "rash", "burning",
		"infection", "hypertension", "ulcer", "hot"},
	Kapha: {"obesity", "mucus", "congestion", "lethargy", "swelling",
		"diabetes", "cough", "cold", "weight gain", "slow"},
}

// Score counts, per dosha, how many of its keywords occur in the text.
// The text is lowercased first; an empty text yields all-zero scores.
func Score(text string) Scores {
	lowered := strings.ToLower(text)
	scores := Scores{Vata: 0, Pitta: 0, Kapha: 0}
	for _, d := range priority {
		for _, kw := range keywords[d] {
			if strings.Contains(lowered, kw) {
				scores[d]++
			}
		}
	}
	return scores
}

// VisualIndicator scans a tongue examination report and returns the
// dosha mentioned most often, together with the per-dosha mention
// counts. Unlike Score, repeated mentions accumulate. When no dosha is
// mentioned at all, the indicator is None and no bonus applies.
func VisualIndicator(analysis string) (Dosha, Scores) {
	lowered := strings.ToLower(analysis)
	counts := Scores{}
	for _, d := range priority {
		counts[d] = strings.Count(lowered, strings.ToLower(string(d)))
	}
	indicator := None
	best := 0
	for _, d := range priority {
		if counts[d] > best {
			best = counts[d]
			indicator = d
		}
	}
	return indicator, counts
}

// Select picks the primary and secondary doshas from the given scores.
// If visual is a known dosha, its score receives VisualBonus before
// selection; the input map is not modified. Secondary is the
// next-highest dosha with a nonzero score, else None.
func Select(scores Scores, visual Dosha) (primary, secondary Dosha, adjusted Scores) {
	adjusted = Scores{}
	for d, s := range scores {
		adjusted[d] = s
	}
	if _, ok := adjusted[visual]; ok {
		adjusted[visual] += VisualBonus
	}

	primary = priority[0]
	for _, d := range priority[1:] {
		if adjusted[d] > adjusted[primary] {
			primary = d
		}
	}

	secondary = None
	best := 0
	for _, d := range priority {
		if d == primary {
			continue
		}
		if adjusted[d] > best {
			best = adjusted[d]
			secondary = d
		}
	}
	return primary, secondary, adjusted
}
