package saju

// Element is one of the five elements of the Wu Xing cycle.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// String returns the English name of the element.
func (e Element) String() string {
	switch e {
	case Wood:
		return "Wood"
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Metal:
		return "Metal"
	case Water:
		return "Water"
	default:
		return "Unknown"
	}
}

// Theme returns the qualitative theme associated with the element,
// used as prompt content and echoed in API responses.
func (e Element) Theme() string {
	switch e {
	case Wood:
		return "growth and renewal"
	case Fire:
		return "expression and warmth"
	case Earth:
		return "stability and grounding"
	case Metal:
		return "clarity and structure"
	case Water:
		return "depth and adaptability"
	default:
		return "balance"
	}
}

// Generates returns the element produced by e in the generating cycle:
// Wood -> Fire -> Earth -> Metal -> Water -> Wood.
func (e Element) Generates() Element {
	return Element((int(e) + 1) % 5)
}

// Controls returns the element restrained by e in the controlling cycle:
// Wood -> Earth -> Water -> Fire -> Metal -> Wood.
func (e Element) Controls() Element {
	return Element((int(e) + 2) % 5)
}

// RelationshipKind classifies how a subject element relates to a
// reference element.
type RelationshipKind int

const (
	Resonates RelationshipKind = iota
	Feeds
	NourishedBy
	Tempers
	ChallengedBy
	Meets
)

// String returns the name of the relationship kind.
func (k RelationshipKind) String() string {
	switch k {
	case Resonates:
		return "Resonates"
	case Feeds:
		return "Feeds"
	case NourishedBy:
		return "NourishedBy"
	case Tempers:
		return "Tempers"
	case ChallengedBy:
		return "ChallengedBy"
	case Meets:
		return "Meets"
	default:
		return "Unknown"
	}
}

// Phrase returns a descriptive phrase for the relationship, phrased
// from the subject's point of view. Prompt content, not user-facing.
func (k RelationshipKind) Phrase() string {
	switch k {
	case Resonates:
		return "shares the same quality as the day's energy"
	case Feeds:
		return "naturally feeds the day's energy"
	case NourishedBy:
		return "is nourished by the day's energy"
	case Tempers:
		return "has a tempering influence on the day's energy"
	case ChallengedBy:
		return "is challenged by the day's energy"
	case Meets:
		return "meets the day's energy on neutral ground"
	default:
		return "meets the day's energy"
	}
}

// Relationship classifies the relation between a subject element and a
// reference element. Rules are evaluated in priority order; the
// generating and controlling cycles are disjoint, so at most one of
// rules 2-5 can match for any non-equal pair.
func Relationship(subject, reference Element) RelationshipKind {
	switch {
	case subject == reference:
		return Resonates
	case subject.Generates() == reference:
		return Feeds
	case reference.Generates() == subject:
		return NourishedBy
	case subject.Controls() == reference:
		return Tempers
	case reference.Controls() == subject:
		return ChallengedBy
	default:
		// Unreachable with five elements, kept as a defined fallback.
		return Meets
	}
}
