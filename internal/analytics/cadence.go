package analytics

import (
	"context"
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"insight-stack/internal/models"
)

// ErrAdvisoryUnavailable signals that the external advisory provider could not
// produce suggestions. Cadence analysis absorbs it by falling back to the
// deterministic rule set; it is never surfaced to callers.
var ErrAdvisoryUnavailable = errors.New("advisory provider unavailable")

// CadenceSummary is the compact channel snapshot handed to an advisory
// provider when asking for growth suggestions.
type CadenceSummary struct {
	TotalVideos      int     `json:"total_videos"`
	AvgGapDays       float64 `json:"avg_gap_days"`
	ConsistencyScore float64 `json:"consistency_score"`
	EngagementRate   float64 `json:"engagement_rate"`
	AlgorithmScore   int     `json:"algorithm_score"`
}

// SuggestionProvider generates free-text growth suggestions from a cadence
// summary. Implementations report unavailability with ErrAdvisoryUnavailable.
type SuggestionProvider interface {
	GrowthSuggestions(ctx context.Context, summary CadenceSummary) ([]string, error)
}

// Analyzer composes the analytical core. The advisor is optional; without one
// cadence reports always carry the rule-based fallback suggestions.
type Analyzer struct {
	advisor SuggestionProvider
}

func NewAnalyzer(advisor SuggestionProvider) *Analyzer {
	return &Analyzer{advisor: advisor}
}

// DetectOutliers runs IQR outlier detection over the batch.
func (a *Analyzer) DetectOutliers(channelID string, videos []*models.VideoRecord, now time.Time) *models.OutlierReport {
	return DetectOutliers(channelID, videos, now)
}

// Cadence sub-score weights: 40% consistency, 30% frequency, 30% engagement.
const (
	cadenceWeightConsistency = 0.4
	cadenceWeightFrequency   = 0.3
	cadenceWeightEngagement  = 0.3
)

// growthFactor is a fixed 10% linear heuristic for the next-video view
// prediction. A documented heuristic, not a forecast.
const growthFactor = 1.10

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// uploadGaps returns consecutive whole-day gaps between ascending-sorted
// publish timestamps.
func uploadGaps(videos []*models.VideoRecord) []float64 {
	dates := make([]time.Time, len(videos))
	for i, v := range videos {
		dates[i] = v.PublishedAt
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	gaps := make([]float64, 0, len(dates))
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, float64(int(dates[i].Sub(dates[i-1]).Hours()/24)))
	}
	return gaps
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdev is the sample standard deviation (n-1 denominator).
func sampleStdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// recommendUploadDays tallies publish weekdays and returns the two most
// frequent weekday names. Ties break on weekday index ascending, Monday first.
// An empty batch gets a fixed two-day default instead of an empty list.
func recommendUploadDays(videos []*models.VideoRecord) []string {
	if len(videos) == 0 {
		return []string{"Monday", "Thursday"}
	}

	var counts [7]int
	for _, v := range videos {
		// time.Weekday is Sunday-based; shift to Monday-based indexing.
		counts[(int(v.PublishedAt.Weekday())+6)%7]++
	}

	order := []int{0, 1, 2, 3, 4, 5, 6}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	return []string{weekdayNames[order[0]], weekdayNames[order[1]]}
}

// AnalyzeCadence produces the upload-cadence report for one channel batch.
// The reference time now is injected for deterministic tests; the only
// external call is the optional advisory provider, whose unavailability is
// absorbed by the rule-based fallback.
func (a *Analyzer) AnalyzeCadence(ctx context.Context, channelID string, videos []*models.VideoRecord, now time.Time) *models.CadenceReport {
	if len(videos) == 0 {
		return &models.CadenceReport{
			ChannelID:         channelID,
			Error:             "no videos found for channel",
			GrowthSuggestions: []string{},
		}
	}

	var shorts, regular int
	for _, v := range videos {
		if IsShortForm(v.Duration) {
			shorts++
		} else {
			regular++
		}
	}

	gaps := uploadGaps(videos)
	avgGap := mean(gaps)

	// Perfect consistency is vacuously true with fewer than two gaps.
	consistencyScore := 100 - math.Min(sampleStdev(gaps), 100)

	// Uploading roughly every 30 days scores 100; avgGap floors to 1 so a
	// same-day burst never divides by zero.
	frequencyScore := math.Min(100, (30/math.Max(avgGap, 1))*100)

	var totalViews, totalEngagement int64
	viewCounts := make([]float64, len(videos))
	for i, v := range videos {
		totalViews += v.Views
		totalEngagement += v.Likes + v.Comments
		viewCounts[i] = float64(v.Views)
	}
	avgViews := mean(viewCounts)

	var engagementRate float64
	if totalViews > 0 {
		engagementRate = float64(totalEngagement) / float64(totalViews) * 100
	}
	engagementScore := math.Min(100, engagementRate*10)

	// Truncation, not rounding: kept for parity with the prior system.
	algorithmScore := int(cadenceWeightConsistency*consistencyScore +
		cadenceWeightFrequency*frequencyScore +
		cadenceWeightEngagement*engagementScore)

	report := &models.CadenceReport{
		ChannelID:      channelID,
		AlgorithmScore: algorithmScore,
		TotalVideos:    len(videos),
		ShortsCount:    shorts,
		RegularCount:   regular,
		ConsistencyMetrics: models.ConsistencyMetrics{
			AvgGapDays:       round1(avgGap),
			ConsistencyScore: round1(consistencyScore),
			FrequencyScore:   round1(frequencyScore),
			EngagementScore:  round1(engagementScore),
		},
		Performance: models.Performance{
			AvgViews:       int64(avgViews),
			TotalViews:     totalViews,
			EngagementRate: round2(engagementRate),
		},
		UploadSchedule: models.UploadSchedule{
			RecommendedDays: recommendUploadDays(videos),
			CurrentAvgGap:   round1(avgGap),
		},
		ViewPredictions: models.ViewPredictions{
			NextVideo:  int64(avgViews * growthFactor),
			BasedOnAvg: int64(avgViews),
		},
	}

	report.GrowthSuggestions = a.growthSuggestions(ctx, CadenceSummary{
		TotalVideos:      len(videos),
		AvgGapDays:       round1(avgGap),
		ConsistencyScore: round1(consistencyScore),
		EngagementRate:   round2(engagementRate),
		AlgorithmScore:   algorithmScore,
	}, avgGap)

	return report
}

func (a *Analyzer) growthSuggestions(ctx context.Context, summary CadenceSummary, avgGap float64) []string {
	if a.advisor == nil {
		return FallbackSuggestions(summary.AlgorithmScore, avgGap)
	}

	suggestions, err := a.advisor.GrowthSuggestions(ctx, summary)
	if err != nil {
		if !errors.Is(err, ErrAdvisoryUnavailable) {
			log.Printf("Advisory provider failed, using fallback suggestions: %v", err)
		}
		return FallbackSuggestions(summary.AlgorithmScore, avgGap)
	}
	return suggestions
}
