package analytics

import (
	"regexp"
	"strconv"
)

// shortFormMaxSeconds is the cutoff for short-form classification.
const shortFormMaxSeconds = 60

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDurationSeconds converts an ISO 8601 duration token such as "PT1M30S"
// into total seconds. The second return value reports whether the token was
// recognizable; empty or malformed tokens return (0, false). Hours are parsed
// defensively even though observed videos stay sub-hour.
func ParseDurationSeconds(token string) (int, bool) {
	if token == "" {
		return 0, false
	}

	matches := durationPattern.FindStringSubmatch(token)
	if matches == nil {
		return 0, false
	}

	// A bare "PT" with no components carries no recognizable duration.
	if matches[1] == "" && matches[2] == "" && matches[3] == "" {
		return 0, false
	}

	var total int
	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			total += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			total += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			total += seconds
		}
	}

	return total, true
}

// IsShortForm reports whether a duration token describes short-form content
// (60 seconds or less). Unrecognizable tokens classify as long-form so that a
// missing duration never produces a false short-form classification.
func IsShortForm(token string) bool {
	seconds, ok := ParseDurationSeconds(token)
	if !ok {
		return false
	}
	return seconds <= shortFormMaxSeconds
}
