// Package insight holds the application-side pieces of daily insight
// generation: the personalization context builder and the prompt
// template fed to the generation provider.
package insight

import (
	"fmt"
	"strings"
	"time"

	"saju-backend/domain/saju"
)

// maxFocusAreas bounds the personalization clause so an unbounded
// anchor list can never grow the prompt arbitrarily.
const maxFocusAreas = 10

// BuildPersonalizationContext combines a user's birth date with the
// day's element into a bounded prompt fragment. Returns "" when the
// birth date is unknown; generation then proceeds without
// personalization. The output is prompt content, never user-facing.
func BuildPersonalizationContext(birthDate *time.Time, focusAreas []string, dayElement saju.Element) string {
	if birthDate == nil {
		return ""
	}

	birthPillar := saju.ComputeDayPillar(*birthDate)
	zodiac := saju.ZodiacAnimal(birthDate.Year())
	relation := saju.Relationship(birthPillar.Element, dayElement)

	var b strings.Builder
	fmt.Fprintf(&b,
		"The reader's birth element is %s and their zodiac animal is the %s; today their birth element %s.",
		birthPillar.Element, zodiac, relation.Phrase(),
	)

	if len(focusAreas) > 0 {
		areas := focusAreas
		if len(areas) > maxFocusAreas {
			areas = areas[:maxFocusAreas]
		}
		fmt.Fprintf(&b, " They care most about: %s.", strings.Join(areas, ", "))
	}

	return b.String()
}
