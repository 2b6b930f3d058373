package analytics

import (
	"time"

	"insight-stack/internal/models"
)

// SearchInsights enriches a search-result batch with per-video velocity,
// engagement-rate percent, and age. Results keep the order the source
// returned them in.
func SearchInsights(query string, videos []*models.VideoRecord, now time.Time) *models.SearchReport {
	results := make([]models.SearchResult, 0, len(videos))

	for _, v := range videos {
		snapshot := Snapshot(v, now)
		results = append(results, models.SearchResult{
			VideoID:        v.ID,
			Title:          v.Title,
			ThumbnailURL:   v.ThumbnailURL,
			ChannelTitle:   v.ChannelTitle,
			Views:          v.Views,
			Likes:          v.Likes,
			Comments:       v.Comments,
			PublishedAt:    v.PublishedAt,
			ViewsPerDay:    round2(snapshot.ViewsPerDay),
			EngagementRate: round2(snapshot.EngagementRatio * 100),
			DaysOld:        AgeInDays(v.PublishedAt, now),
		})
	}

	return &models.SearchReport{
		SearchType:   "text",
		Query:        query,
		TotalResults: len(results),
		Results:      results,
	}
}
