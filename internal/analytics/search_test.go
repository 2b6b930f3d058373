package analytics

import (
	"testing"
	"time"

	"insight-stack/internal/models"
)

func TestSearchInsights(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	videos := []*models.VideoRecord{
		{
			ID:           "first",
			Title:        "Go concurrency patterns",
			ChannelTitle: "gophers",
			Views:        1000,
			Likes:        25,
			Comments:     5,
			PublishedAt:  now.AddDate(0, 0, -3),
		},
		{
			ID:          "second",
			Views:       0,
			PublishedAt: now.AddDate(0, 0, -30),
		},
	}

	report := SearchInsights("go concurrency", videos, now)

	if report.SearchType != "text" || report.Query != "go concurrency" {
		t.Errorf("report header = %s/%s, want text/go concurrency", report.SearchType, report.Query)
	}
	if report.TotalResults != 2 || len(report.Results) != 2 {
		t.Fatalf("TotalResults = %d with %d results, want 2", report.TotalResults, len(report.Results))
	}

	first := report.Results[0]
	if first.VideoID != "first" {
		t.Errorf("results reordered: first = %s", first.VideoID)
	}
	if first.DaysOld != 3 {
		t.Errorf("DaysOld = %d, want 3", first.DaysOld)
	}
	if first.ViewsPerDay != 333.33 {
		t.Errorf("ViewsPerDay = %v, want 333.33", first.ViewsPerDay)
	}
	if first.EngagementRate != 3 {
		t.Errorf("EngagementRate = %v, want 3", first.EngagementRate)
	}

	second := report.Results[1]
	if second.ViewsPerDay != 0 || second.EngagementRate != 0 {
		t.Errorf("zero-view video enriched to %v vpd / %v rate, want zeros", second.ViewsPerDay, second.EngagementRate)
	}
	if second.DaysOld != 30 {
		t.Errorf("DaysOld = %d, want 30", second.DaysOld)
	}
}
