package analytics

// FallbackSuggestions is the deterministic rule table used when no advisory
// provider is available. Rule order is fixed; tests depend on it.
func FallbackSuggestions(algorithmScore int, avgGap float64) []string {
	var suggestions []string

	if algorithmScore < 50 {
		suggestions = append(suggestions, "Increase upload consistency to improve algorithm performance")
	}
	if avgGap > 7 {
		suggestions = append(suggestions, "Upload more frequently - aim for at least once per week")
	}
	if algorithmScore >= 70 {
		suggestions = append(suggestions, "Great consistency! Keep maintaining your upload schedule")
	}

	suggestions = append(suggestions,
		"Engage with comments to boost engagement metrics",
		"Optimize thumbnails and titles for better click-through rates",
	)

	return suggestions
}
