package insight

import (
	"strings"
	"testing"
	"time"

	"saju-backend/domain/saju"

	"github.com/stretchr/testify/assert"
)

func birthDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBuildPersonalizationContextWithoutBirthDate(t *testing.T) {
	got := BuildPersonalizationContext(nil, []string{"career"}, saju.Fire)

	assert.Empty(t, got)
}

func TestBuildPersonalizationContextEmbedsBirthFacts(t *testing.T) {
	bd := birthDate(1990, time.June, 15)
	pillar := saju.ComputeDayPillar(*bd)

	got := BuildPersonalizationContext(bd, nil, saju.Water)

	assert.Contains(t, got, pillar.Element.String())
	assert.Contains(t, got, saju.ZodiacAnimal(1990))
	assert.Contains(t, got, saju.Relationship(pillar.Element, saju.Water).Phrase())
}

func TestBuildPersonalizationContextAppendsFocusAreas(t *testing.T) {
	bd := birthDate(1985, time.March, 3)

	got := BuildPersonalizationContext(bd, []string{"health", "relationships"}, saju.Earth)

	assert.Contains(t, got, "health, relationships")
}

func TestBuildPersonalizationContextCapsFocusAreas(t *testing.T) {
	bd := birthDate(1985, time.March, 3)
	areas := make([]string, 25)
	for i := range areas {
		areas[i] = "area"
	}

	got := BuildPersonalizationContext(bd, areas, saju.Earth)

	assert.Equal(t, maxFocusAreas, strings.Count(got, "area"))
}

func TestBuildPromptContainsDayFactsAndContract(t *testing.T) {
	pillar := saju.ComputeDayPillar(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

	got := BuildPrompt("2024-02-10", pillar, "")

	assert.Contains(t, got, "2024-02-10")
	assert.Contains(t, got, pillar.Stem())
	assert.Contains(t, got, pillar.Branch())
	assert.Contains(t, got, pillar.Element.Theme())
	assert.Contains(t, got, `{"insightText": "..."}`)
	assert.Contains(t, got, "Exactly two sentences")
	assert.NotContains(t, got, "About the reader")
}

func TestBuildPromptIncludesPersonalizationBlock(t *testing.T) {
	pillar := saju.ComputeDayPillar(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

	got := BuildPrompt("2024-02-10", pillar, "The reader's birth element is Fire.")

	assert.Contains(t, got, "About the reader: The reader's birth element is Fire.")
}
