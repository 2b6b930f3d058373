package analytics

import (
	"math"
	"testing"
	"time"

	"insight-stack/internal/models"
)

func TestSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		video     *models.VideoRecord
		wantVPD   float64
		wantRatio float64
	}{
		{
			name: "Ten day old video",
			video: &models.VideoRecord{
				Views:       1000,
				Likes:       50,
				Comments:    10,
				PublishedAt: now.AddDate(0, 0, -10),
			},
			wantVPD:   100,
			wantRatio: 0.06,
		},
		{
			name: "Same-day publish floors age to one day",
			video: &models.VideoRecord{
				Views:       300,
				Likes:       30,
				PublishedAt: now.Add(-2 * time.Hour),
			},
			wantVPD:   300,
			wantRatio: 0.1,
		},
		{
			name: "Zero views yields zero ratio",
			video: &models.VideoRecord{
				Views:       0,
				Likes:       5,
				Comments:    5,
				PublishedAt: now.AddDate(0, 0, -5),
			},
			wantVPD:   0,
			wantRatio: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := Snapshot(tt.video, now)
			if math.Abs(snapshot.ViewsPerDay-tt.wantVPD) > 1e-9 {
				t.Errorf("ViewsPerDay = %v, want %v", snapshot.ViewsPerDay, tt.wantVPD)
			}
			if math.Abs(snapshot.EngagementRatio-tt.wantRatio) > 1e-9 {
				t.Errorf("EngagementRatio = %v, want %v", snapshot.EngagementRatio, tt.wantRatio)
			}
		})
	}
}

func TestAgeInDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		publishedAt time.Time
		want        int
	}{
		{"Published a week ago", now.AddDate(0, 0, -7), 7},
		{"Published today", now.Add(-3 * time.Hour), 1},
		{"Partial day truncates", now.Add(-36 * time.Hour), 1},
		{"Future timestamp floors to one", now.Add(24 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeInDays(tt.publishedAt, now); got != tt.want {
				t.Errorf("AgeInDays() = %d, want %d", got, tt.want)
			}
		})
	}
}
