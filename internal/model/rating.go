package model

// Rating is one of five ordered relevance labels.
type Rating string

// Relevance ratings, most relevant first.
const (
	HighlyRelevant     Rating = "highly relevant"
	SomewhatRelevant   Rating = "somewhat relevant"
	NeutrallyRelevant  Rating = "neutrally relevant"
	SomewhatIrrelevant Rating = "somewhat irrelevant"
	HighlyIrrelevant   Rating = "highly irrelevant"
)

// Ratings lists every defined rating from most to least relevant.
var Ratings = []Rating{
	HighlyRelevant,
	SomewhatRelevant,
	NeutrallyRelevant,
	SomewhatIrrelevant,
	HighlyIrrelevant,
}

// Severity maps a rating to 5 (highly relevant) through 1 (highly irrelevant).
// Unknown or empty ratings map to 0.
func (r Rating) Severity() int {
	switch r {
	case HighlyRelevant:
		return 5
	case SomewhatRelevant:
		return 4
	case NeutrallyRelevant:
		return 3
	case SomewhatIrrelevant:
		return 2
	case HighlyIrrelevant:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is one of the defined ratings.
func (r Rating) Valid() bool {
	return r.Severity() > 0
}

func (r Rating) String() string {
	return string(r)
}
