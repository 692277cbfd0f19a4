package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/jobtrail/jobtrail/internal/model"
)

// jobIDPatterns match label-prefixed reference numbers. First match wins;
// job IDs are binary present/absent with no confidence scoring.
var jobIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Ref|Reference|Job ID|Position ID|Req):\s*(\d+)`),
	regexp.MustCompile(`(?i)(?:Ref|Reference)\s*[-:]\s*(\d+)`),
}

func extractJobID(subject, body string, used *[]string) string {
	text := subject + " " + body
	for _, re := range jobIDPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			*used = append(*used, "job_id_match")
			return m[1]
		}
	}
	return ""
}

// Date candidate scans. monthDatePattern is the day-first form ("12th Dec
// 2025"); monthFirstPattern covers the US ordering ("Dec 12th, 2025");
// numericDatePattern covers ISO and slash dates.
var (
	monthDatePattern   = regexp.MustCompile(`(?i)\d{1,2}(?:st|nd|rd|th)?[\s/\-.]+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\s/\-.,]*\d{2,4}`)
	monthFirstPattern  = regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?\b(?:,?\s*\d{2,4})?`)
	numericDatePattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	ordinalSuffix      = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)`)
)

// extractDates finds date mentions in the body. The primary pass normalizes
// regex candidates through dateparse into ISO form; if nothing normalizes,
// the raw month-name matches are returned as written. Dates are descriptive
// metadata only and are never validated against the email's receipt date.
func extractDates(body string) []string {
	var dates []string
	seen := make(map[string]bool)
	add := func(value string) {
		if !seen[value] {
			seen[value] = true
			dates = append(dates, value)
		}
	}

	var candidates []string
	candidates = append(candidates, monthDatePattern.FindAllString(body, -1)...)
	candidates = append(candidates, monthFirstPattern.FindAllString(body, -1)...)
	candidates = append(candidates, numericDatePattern.FindAllString(body, -1)...)

	for _, candidate := range candidates {
		cleaned := ordinalSuffix.ReplaceAllString(strings.Trim(candidate, " ,."), "$1")
		if t, err := dateparse.ParseAny(cleaned); err == nil {
			add(t.Format("2006-01-02"))
		}
	}

	if len(dates) == 0 {
		for _, candidate := range monthDatePattern.FindAllString(body, -1) {
			add(candidate)
		}
	}

	return dates
}

// cooldownPattern finds reapplication waiting periods, e.g. "cooling-off
// period of 6 months".
var cooldownPattern = regexp.MustCompile(`(?i)(?:cooling-off period|cooldown).*?(\d+)\s*(months?|days?)`)

func extractCooldown(body string) *model.Cooldown {
	m := cooldownPattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	duration, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &model.Cooldown{Duration: duration, Unit: strings.ToLower(m[2])}
}

// sourceChannels is checked in priority order; the first channel whose name
// appears in the sender or body wins.
var sourceChannels = []string{
	model.SourceLinkedIn,
	model.SourceIndeed,
	model.SourceNaukri,
	model.SourceReferral,
}

func detectSource(sender, body string) string {
	text := strings.ToLower(sender + " " + body)
	for _, channel := range sourceChannels {
		if strings.Contains(text, channel) {
			return channel
		}
	}
	return model.SourceDirect
}
