package saju

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeDayPillarDeterministic(t *testing.T) {
	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	first := ComputeDayPillar(date)
	second := ComputeDayPillar(date)

	assert.Equal(t, first, second)
}

func TestComputeDayPillarEpochIsJiaZi(t *testing.T) {
	pillar := ComputeDayPillar(time.Date(1984, time.February, 2, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, pillar.StemIndex)
	assert.Equal(t, 0, pillar.BranchIndex)
	assert.Equal(t, Wood, pillar.Element)
	assert.Equal(t, "Jia", pillar.Stem())
	assert.Equal(t, "Zi", pillar.Branch())
}

func TestComputeDayPillarGoldenValue(t *testing.T) {
	// Pinned regression value for 2024-02-10: 14618 days after the
	// epoch, giving stem 8 (Ren, Water) and branch 2 (Yin).
	pillar := ComputeDayPillar(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 8, pillar.StemIndex)
	assert.Equal(t, 2, pillar.BranchIndex)
	assert.Equal(t, Water, pillar.Element)
	assert.Equal(t, "Ren", pillar.Stem())
	assert.Equal(t, "Yin", pillar.Branch())
}

func TestComputeDayPillarIndicesInRange(t *testing.T) {
	// Sweep a window straddling the epoch, including pre-epoch dates.
	start := time.Date(1983, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		pillar := ComputeDayPillar(start.AddDate(0, 0, i))

		assert.GreaterOrEqual(t, pillar.StemIndex, 0)
		assert.Less(t, pillar.StemIndex, 10)
		assert.GreaterOrEqual(t, pillar.BranchIndex, 0)
		assert.Less(t, pillar.BranchIndex, 12)
	}
}

func TestComputeDayPillarConsecutiveDaysAdvanceCycle(t *testing.T) {
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	next := ComputeDayPillar(day.AddDate(0, 0, 1))
	curr := ComputeDayPillar(day)

	assert.Equal(t, (curr.StemIndex+1)%10, next.StemIndex)
	assert.Equal(t, (curr.BranchIndex+1)%12, next.BranchIndex)
}

func TestComputeDayPillarIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.May, 5, 1, 30, 0, 0, time.UTC)
	evening := time.Date(2024, time.May, 5, 23, 59, 59, 0, time.UTC)

	assert.Equal(t, ComputeDayPillar(morning), ComputeDayPillar(evening))
}

func TestElementForStemPairs(t *testing.T) {
	expected := map[int]Element{
		0: Wood, 1: Wood,
		2: Fire, 3: Fire,
		4: Earth, 5: Earth,
		6: Metal, 7: Metal,
		8: Water, 9: Water,
	}

	for stem, want := range expected {
		assert.Equal(t, want, elementForStem(stem), "stem %d", stem)
	}
}
