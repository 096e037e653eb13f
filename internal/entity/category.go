package entity

// Category is the kind of score feedback a marker shows.
type Category int

const (
	PositiveSmall  Category = iota // regular catch
	NegativeSmall                  // reserved, no outcome emits it
	PositiveLarge                  // bonus catch
	NegativeLargeA                 // regular drop
	NegativeLargeB                 // bonus drop
)

// Label returns the text shown for the category.
func (c Category) Label() string {
	switch c {
	case PositiveSmall:
		return "+10"
	case NegativeSmall:
		return "-10"
	case PositiveLarge:
		return "+20"
	case NegativeLargeA:
		return "-20"
	case NegativeLargeB:
		return "-40"
	default:
		return ""
	}
}

// ImageKey returns the sprite for small markers; large ones are text only.
func (c Category) ImageKey() string {
	switch c {
	case PositiveSmall:
		return "scorePlus"
	case NegativeSmall:
		return "scoreMinus"
	default:
		return ""
	}
}

// Positive reports whether the marker rewards the player.
func (c Category) Positive() bool {
	return c == PositiveSmall || c == PositiveLarge
}
