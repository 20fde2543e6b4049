package saju

// zodiacEpochYear anchors the animal cycle: 1984 was a Rat year.
const zodiacEpochYear = 1984

// zodiacAnimals are the twelve animals in cycle order from the epoch year.
var zodiacAnimals = [12]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

// ZodiacAnimal returns the animal for a Gregorian birth year.
//
// This uses the calendar year only and ignores the lunar new year
// boundary, so people born in January or early February may be assigned
// the following year's animal. The approximation is a documented
// behavior of the service and is kept as-is.
func ZodiacAnimal(year int) string {
	idx := ((year-zodiacEpochYear)%12 + 12) % 12
	return zodiacAnimals[idx]
}
