package patternstore

import "github.com/jobtrail/jobtrail/internal/model"

// DefaultLibrary returns the seed rule set written by `jobtrail patterns
// seed`. Rule order is load-bearing: within each list the first matching
// rule wins, so more specific expressions come first. All regexes are
// compiled case-insensitively.
func DefaultLibrary() *model.PatternLibrary {
	return &model.PatternLibrary{
		Company: model.CompanyRules{
			Patterns: []model.ExtractionRule{
				{
					Regex:      `(?:greetings from|sincerely,|regards,|thank you,|team at|here at|joining)\s+([A-Z][a-zA-Z\s]+?)(?:\s+Talent|\s+Recruiting|!|\n|,|\s+we)`,
					Confidence: 75,
				},
				{
					Regex:      `(?:applying to|application to|application with|interest in)\s+([A-Z][A-Za-z0-9&\s]+?)(?:\.|,|!|\n|$)`,
					Confidence: 70,
				},
				{
					Regex:      `on behalf of\s+([A-Z][a-zA-Z\s]+?)(?:\.|,|\n|$)`,
					Confidence: 72,
				},
			},
			DomainToCompany: map[string]string{
				"google.com":    "Google",
				"amazon.com":    "Amazon",
				"microsoft.com": "Microsoft",
				"apple.com":     "Apple",
				"meta.com":      "Meta",
				"facebook.com":  "Meta",
				"netflix.com":   "Netflix",
				"ibm.com":       "IBM",
				"infosys.com":   "Infosys",
				"tcs.com":       "TCS",
			},
		},
		Role: model.RoleRules{
			Patterns: []model.ExtractionRule{
				{
					Regex:      `(?:for the|for our)\s+(.+?)\s+(?:position|role|opening)`,
					Confidence: 80,
				},
				{
					Regex:      `(?:position of|position:|role of|role:)\s+([A-Za-z][A-Za-z0-9+#/ ]+?)(?:\.|,|\n|$)`,
					Confidence: 78,
				},
				{
					Regex:      `application for\s+(?:the\s+)?([A-Z][A-Za-z0-9+#/ ]+?)(?:\s+position|\s+role|\.|,|\n|$)`,
					Confidence: 76,
				},
				{
					Regex:      `-\s*([A-Za-z][A-Za-z0-9+#/ ]+?)\s*$`,
					Confidence: 70,
				},
			},
		},
		Status: model.NewStatusSet(
			model.StatusRule{
				Name: model.StatusApplied,
				Keywords: []string{
					"thank you for applying",
					"application received",
					"we received your application",
					"application confirmation",
					"successfully submitted",
					"applying to",
				},
				Weight: 10,
			},
			model.StatusRule{
				Name: model.StatusAssessment,
				Keywords: []string{
					"assessment",
					"coding challenge",
					"online test",
					"hackerrank",
					"take-home",
				},
				Weight: 12,
			},
			model.StatusRule{
				Name: model.StatusInterview,
				Keywords: []string{
					"interview",
					"schedule a call",
					"availability",
					"meet the team",
				},
				Weight: 12,
			},
			model.StatusRule{
				Name: model.StatusOffer,
				Keywords: []string{
					"offer letter",
					"pleased to offer",
					"offer",
					"congratulations",
				},
				Weight: 15,
			},
			model.StatusRule{
				Name: model.StatusReject,
				Keywords: []string{
					"unfortunately",
					"not moving forward",
					"not be moving forward",
					"regret to inform",
					"other candidates",
				},
				Weight: 15,
			},
		),
	}
}
