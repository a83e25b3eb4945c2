package dosha

// Treatment is the fixed advisory record associated with one dosha.
type Treatment struct {
	Principle string `json:"principle"`
	Avoid     string `json:"avoid"`
	Recommend string `json:"recommend"`
	Herbs     string `json:"herbs"`
	Yoga      string `json:"yoga"`
}

var treatments = map[Dosha]Treatment{
	Vata: {
		Principle: "Warm, oily, grounding therapies",
		Avoid:     "Cold, dry, raw foods; excessive travel",
		Recommend: "Warm sesame oil massage, warm foods, regular routine",
		Herbs:     "Ashwagandha, Shatavari, Triphala",
		Yoga:      "Gentle yoga, Pranayama, Yoga Nidra",
	},
	Pitta: {
		Principle: "Cooling, calming, anti-inflammatory therapies",
		Avoid:     "Spicy, oily, fermented foods; excessive heat",
		Recommend: "Coconut oil, cooling herbs, meditation",
		Herbs:     "Brahmi, Guduchi, Neem, Amalaki",
		Yoga:      "Cooling Pranayama, Moon salutation, Sitali breath",
	},
	Kapha: {
		Principle: "Light, warm, stimulating therapies",
		Avoid:     "Heavy, cold, sweet foods; daytime sleep",
		Recommend: "Dry brushing, vigorous exercise, light diet",
		Herbs:     "Trikatu, Guggul, Punarnava, Ginger",
		Yoga:      "Sun salutation, Kapalbhati, vigorous Vinyasa",
	},
}

// TreatmentFor returns the advisory record for the given dosha. Unknown
// labels fall back to the Vata record.
func TreatmentFor(d Dosha) Treatment {
	if t, ok := treatments[d]; ok {
		return t
	}
	return treatments[Vata]
}
