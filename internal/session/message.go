package session

import (
	"fmt"

	"github.com/verte-zerg/tuiscan/internal/grade"
)

// Message renders the reader-facing feedback for a submission.
func Message(kind Kind, percentage int, points grade.Points) string {
	switch kind {
	case KindCorrection:
		return fmt.Sprintf("New stresses will be recorded, but this will take a moment; disagreements between you and previous scansion (%d%% of words) are marked in red, agreements in green.", percentage)
	case KindOwnPoem:
		return fmt.Sprintf("You disagreed with the best machine scansion at %d%% of words; look at the poem to see where scansions differ.", percentage)
	case KindScored:
		return fmt.Sprintf("You have %s a point! Look at the poem to see where your scansion differed (%d%% of words) from the most recent authoritative scansion.", points.Verb(), percentage)
	case KindUnchanged:
		return fmt.Sprintf("You just submitted this poem, so your score won't/wouldn't change, but look at the poem to see where your scansion differed (%d%% of words) from the most recent authoritative scansion.", percentage)
	default:
		return fmt.Sprintf("If you were logged in, you would have %s a point. Look at the poem to see where your scansion differed (%d%% of words) from the most recent authoritative scansion.", points.Verb(), percentage)
	}
}
