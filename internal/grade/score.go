package grade

// Disagreement thresholds, inclusive upper bounds.
const (
	ExcellentThreshold  = 10
	AcceptableThreshold = 30
)

// Points is the score delta for one submission.
type Points int

const (
	Lost Points = -1
	Kept Points = 0
	Won  Points = 1
)

// Score maps a disagreement percentage to a point delta.
func Score(percentage int) Points {
	switch {
	case percentage <= ExcellentThreshold:
		return Won
	case percentage <= AcceptableThreshold:
		return Kept
	default:
		return Lost
	}
}

// Verb describes the delta the way feedback messages phrase it.
func (p Points) Verb() string {
	switch {
	case p > 0:
		return "gained"
	case p < 0:
		return "lost"
	default:
		return "neither gained nor lost"
	}
}
