package analytics

import (
	"math"
	"time"

	"insight-stack/internal/models"
)

// Smart-score weights. Views dominate, velocity is secondary, engagement is a
// tertiary signal. Fixed design constants, not tunable per call.
const (
	weightViews      = 0.5
	weightVelocity   = 0.3
	weightEngagement = 0.2
)

// smartScore normalizes the three raw signals against the batch maxima and
// blends them into a single [0,1] composite. A zero batch maximum contributes
// zero instead of dividing.
func smartScore(views, velocity, engagement, maxViews, maxVelocity, maxEngagement float64) float64 {
	var normViews, normVelocity, normEngagement float64
	if maxViews > 0 {
		normViews = views / maxViews
	}
	if maxVelocity > 0 {
		normVelocity = velocity / maxVelocity
	}
	if maxEngagement > 0 {
		normEngagement = engagement / maxEngagement
	}
	return weightViews*normViews + weightVelocity*normVelocity + weightEngagement*normEngagement
}

// ScoreBatch derives engagement snapshots for every record and assigns each a
// batch-normalized smart score. Scores are relative to this batch only and are
// not comparable across calls with different batches.
func ScoreBatch(videos []*models.VideoRecord, now time.Time) []models.ScoredVideo {
	scored := make([]models.ScoredVideo, 0, len(videos))

	var maxViews, maxVelocity, maxEngagement float64
	for _, video := range videos {
		snapshot := Snapshot(video, now)
		scored = append(scored, models.ScoredVideo{Video: video, Snapshot: snapshot})

		maxViews = math.Max(maxViews, float64(video.Views))
		maxVelocity = math.Max(maxVelocity, snapshot.ViewsPerDay)
		maxEngagement = math.Max(maxEngagement, snapshot.EngagementRatio)
	}

	for i := range scored {
		scored[i].SmartScore = smartScore(
			float64(scored[i].Video.Views),
			scored[i].Snapshot.ViewsPerDay,
			scored[i].Snapshot.EngagementRatio,
			maxViews, maxVelocity, maxEngagement,
		)
	}

	return scored
}

// round2 and friends are presentation-boundary helpers. Internal comparisons
// always use the raw values.
func round2(x float64) float64 { return math.Round(x*100) / 100 }

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }

func round1(x float64) float64 { return math.Round(x*10) / 10 }
