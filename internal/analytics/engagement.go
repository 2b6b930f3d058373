package analytics

import (
	"time"

	"insight-stack/internal/models"
)

// AgeInDays returns the whole days elapsed between publish time and now,
// floored to a minimum of 1 so same-day publishes never divide by zero.
func AgeInDays(publishedAt, now time.Time) int {
	days := int(now.Sub(publishedAt).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Snapshot derives per-video engagement metrics against an explicit reference
// time. Pure function: callers inject now for deterministic results.
func Snapshot(video *models.VideoRecord, now time.Time) models.EngagementSnapshot {
	age := AgeInDays(video.PublishedAt, now)

	var ratio float64
	if video.Views > 0 {
		ratio = float64(video.Likes+video.Comments) / float64(video.Views)
	}

	return models.EngagementSnapshot{
		ViewsPerDay:     float64(video.Views) / float64(age),
		EngagementRatio: ratio,
	}
}
