package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLocalDateValid(t *testing.T) {
	got, ok := ParseLocalDate("2024-02-10")

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestParseLocalDateRejectsUnpadded(t *testing.T) {
	_, ok := ParseLocalDate("2024-2-10")
	assert.False(t, ok)
}

func TestParseLocalDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2024/02/10", "10-02-2024", "2024-13-01", "2024-02-30", "not-a-date"} {
		_, ok := ParseLocalDate(s)
		assert.False(t, ok, s)
	}
}

func TestDaysApart(t *testing.T) {
	now := time.Date(2024, time.February, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysApart(now, now))
	assert.Equal(t, 2, DaysApart(now, now.AddDate(0, 0, 2)))
	assert.Equal(t, 2, DaysApart(now.AddDate(0, 0, 2), now))
	// Late evening vs early next morning is still one calendar day apart
	assert.Equal(t, 1, DaysApart(
		time.Date(2024, time.February, 10, 23, 59, 0, 0, time.UTC),
		time.Date(2024, time.February, 11, 0, 1, 0, 0, time.UTC),
	))
}
