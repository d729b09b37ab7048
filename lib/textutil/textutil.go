package textutil

import (
	"regexp"
	"strings"
	"time"
)

var eventNumberRegex = regexp.MustCompile(`UFC (\d+):`)

// ExtractEventNumber returns the numbered card embedded in an event name,
// "UFC 205: Alvarez vs. McGregor" -> "205". Names without a number (fight
// nights, etc.) yield an empty string.
func ExtractEventNumber(name string) string {
	groups := eventNumberRegex.FindStringSubmatch(name)
	if len(groups) < 2 {
		return ""
	}
	return groups[1]
}

// SplitPair splits text once on sep. When sep is absent the whole text is
// returned as the left side and the right side is empty.
func SplitPair(text, sep string) (string, string) {
	left, right, found := strings.Cut(text, sep)
	if !found {
		return text, ""
	}
	return left, right
}

var labelRegex = regexp.MustCompile(`^(.+?): ?`)

// StripLabel removes a leading "Label:" and at most one space after it.
func StripLabel(text string) string {
	return labelRegex.ReplaceAllString(text, "")
}

// StripPercent turns "45%" into "45".
func StripPercent(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(text, "%"))
}

var countRegex = regexp.MustCompile(`^\d+$`)

// SplitAttempts splits a compound "X of Y" field into its landed and
// attempted counts. Anything that isn't two integers joined by " of " comes
// back as two blanks.
func SplitAttempts(text string) (string, string) {
	succeeded, attempted, found := strings.Cut(text, " of ")
	if !found {
		return "", ""
	}
	succeeded = strings.TrimSpace(succeeded)
	attempted = strings.TrimSpace(attempted)
	if !countRegex.MatchString(succeeded) || !countRegex.MatchString(attempted) {
		return "", ""
	}
	return succeeded, attempted
}

// CleanFragment drops newlines and runs of double spaces, which is how the
// site pads text between labels and values.
func CleanFragment(text string) string {
	text = strings.ReplaceAll(text, "\n", "")
	return strings.ReplaceAll(text, "  ", "")
}

const (
	listingDateLayout = "January 2, 2006"
	storedDateLayout  = "01-02-2006"
)

// ReformatDate converts a listing date ("March 11, 1994") into "03-11-1994".
func ReformatDate(text string) (string, error) {
	parsed, err := time.Parse(listingDateLayout, strings.TrimSpace(strings.Trim(text, `"`)))
	if err != nil {
		return "", err
	}
	return parsed.Format(storedDateLayout), nil
}

// SplitLocation picks the city and the country out of "city, region, country".
func SplitLocation(location string) (string, string) {
	parts := strings.Split(location, ", ")
	return parts[0], parts[len(parts)-1]
}

// JudgeScore is one judge's scorecard of a decision, Score as "29 - 28".
type JudgeScore struct {
	Judge string
	Score string
}

var judgeScoreRegex = regexp.MustCompile(`([a-zA-Z\s]+)\s(\d+\s-\s\d+)`)

// ExtractJudges finds every "Name 29 - 28" score in a decision's details.
func ExtractJudges(details string) []JudgeScore {
	var out []JudgeScore
	for _, match := range judgeScoreRegex.FindAllStringSubmatch(details, -1) {
		out = append(out, JudgeScore{
			Judge: strings.TrimSpace(match[1]),
			Score: match[2],
		})
	}
	return out
}
