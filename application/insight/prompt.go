package insight

import (
	"fmt"
	"strings"

	"saju-backend/domain/saju"
)

// BuildPrompt constructs the fixed-template generation prompt for a
// day's pillar, with an optional personalization block. The numbered
// rules are the output contract; the provider must return a single
// JSON object with one field.
func BuildPrompt(localDate string, pillar saju.DayPillar, personalization string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a short daily reflection for %s.\n\n", localDate)
	fmt.Fprintf(&b, "Today's energy: the %s-%s day carries the quality of %s, a day of %s.\n",
		pillar.Stem(), pillar.Branch(), pillar.Element, pillar.Element.Theme())

	if personalization != "" {
		fmt.Fprintf(&b, "About the reader: %s\n", personalization)
	}

	b.WriteString(`
Rules:
1. Exactly two sentences, 20-35 words in total.
2. Calm, observational tone.
3. Never name elements, stems, branches, zodiac animals, or any Saju terminology. Never use the words "birth element", "day's element", "alignment", "resonance", "synergy", or "dynamic".
4. Use only hedged modal language: "may", "can", "tends to", "often".
5. No predictions and no imperative advice.
6. No fear or urgency framing.

Respond with a single JSON object of the form {"insightText": "..."} and nothing else.`)

	return b.String()
}
