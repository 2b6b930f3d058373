package analytics

import (
	"math"
	"testing"
	"time"

	"insight-stack/internal/models"
)

func TestScoreBatch(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tenDaysAgo := now.AddDate(0, 0, -10)

	videos := []*models.VideoRecord{
		{ID: "top", Views: 1000, Likes: 50, Comments: 10, PublishedAt: tenDaysAgo},
		{ID: "mid", Views: 500, Likes: 25, Comments: 5, PublishedAt: tenDaysAgo},
		{ID: "dead", Views: 0, Likes: 0, Comments: 0, PublishedAt: tenDaysAgo},
	}

	scored := ScoreBatch(videos, now)
	if len(scored) != 3 {
		t.Fatalf("ScoreBatch returned %d videos, want 3", len(scored))
	}

	for _, sv := range scored {
		if sv.SmartScore < 0 || sv.SmartScore > 1 {
			t.Errorf("video %s smart score %v outside [0,1]", sv.Video.ID, sv.SmartScore)
		}
	}

	// The video leading every signal scores exactly 1.
	if math.Abs(scored[0].SmartScore-1.0) > 1e-9 {
		t.Errorf("top video score = %v, want 1.0", scored[0].SmartScore)
	}
	// Half the views, half the velocity, identical engagement ratio.
	wantMid := 0.5*0.5 + 0.3*0.5 + 0.2*1.0
	if math.Abs(scored[1].SmartScore-wantMid) > 1e-9 {
		t.Errorf("mid video score = %v, want %v", scored[1].SmartScore, wantMid)
	}
	if scored[2].SmartScore != 0 {
		t.Errorf("dead video score = %v, want 0", scored[2].SmartScore)
	}
}

func TestScoreBatchAllZero(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	videos := []*models.VideoRecord{
		{ID: "a", PublishedAt: now.AddDate(0, 0, -3)},
		{ID: "b", PublishedAt: now.AddDate(0, 0, -6)},
	}

	// Zero batch maxima must contribute zero instead of dividing.
	for _, sv := range ScoreBatch(videos, now) {
		if sv.SmartScore != 0 {
			t.Errorf("video %s score = %v, want 0 for all-zero batch", sv.Video.ID, sv.SmartScore)
		}
	}
}
