package saju

import "time"

// referenceEpoch is the zeroth day of the sexagenary cycle used by this
// service: 1984-02-02, a Jia-Zi day (stem 0, branch 0). All stem and
// branch indices are day offsets from this date, normalized by floor
// modulo so dates before the epoch are handled the same way.
var referenceEpoch = time.Date(1984, time.February, 2, 0, 0, 0, 0, time.UTC)

// stemNames are the ten heavenly stems in cycle order.
var stemNames = [10]string{
	"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui",
}

// branchNames are the twelve earthly branches in cycle order.
var branchNames = [12]string{
	"Zi", "Chou", "Yin", "Mao", "Chen", "Si",
	"Wu", "Wei", "Shen", "You", "Xu", "Hai",
}

// DayPillar identifies a calendar day's position in the sexagenary
// cycle. Computed fresh per date, never persisted directly.
type DayPillar struct {
	StemIndex   int
	BranchIndex int
	Element     Element
}

// Stem returns the heavenly stem name for the pillar.
func (p DayPillar) Stem() string {
	return stemNames[p.StemIndex]
}

// Branch returns the earthly branch name for the pillar.
func (p DayPillar) Branch() string {
	return branchNames[p.BranchIndex]
}

// ComputeDayPillar computes the day pillar for a calendar date. Only
// the year, month, and day of the argument are significant; the
// computation normalizes to UTC midnight. Defined for any date,
// including dates before the reference epoch.
func ComputeDayPillar(date time.Time) DayPillar {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	daysDiff := int(midnight.Sub(referenceEpoch).Hours() / 24)

	stem := ((daysDiff % 10) + 10) % 10
	branch := ((daysDiff % 12) + 12) % 12

	return DayPillar{
		StemIndex:   stem,
		BranchIndex: branch,
		Element:     elementForStem(stem),
	}
}

// elementForStem maps a stem index to its element; each element owns
// two consecutive stems.
func elementForStem(stem int) Element {
	return Element(stem / 2)
}
