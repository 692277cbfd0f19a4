package parser

import (
	"math"
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
)

// statusScoreDivisor calibrates keyword scores into a 0-100 confidence: two
// medium-weight keyword hits reach ~100%. Tuned empirically, not learned.
const statusScoreDivisor = 15

// detectStatus runs a weighted keyword vote over the lowercased subject+body.
// The strictly highest-scoring category wins; a tie keeps the category that
// appears first in the library's status section. When nothing matches, the
// result is the baseline "Applied" with zero confidence: assume the
// application was at least submitted.
func detectStatus(text string, library *model.PatternLibrary, used *[]string) (string, int) {
	best := model.StatusApplied
	maxScore := 0

	for _, category := range library.Status.Rules() {
		score := 0
		for _, keyword := range category.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				score += category.Weight
			}
		}
		if score > maxScore {
			maxScore = score
			best = category.Name
		}
	}

	if maxScore > 0 {
		*used = append(*used, "status_keywords_"+best)
	}

	confidence := int(math.Round(math.Min(float64(maxScore)/statusScoreDivisor*100, 100)))
	return best, confidence
}
