package analytics

import (
	"math"
	"testing"
	"time"

	"insight-stack/internal/models"
)

// batchVideo builds a record whose likes track views at a fixed tenth, keeping
// engagement ratios identical across a batch.
func batchVideo(id string, views int64, publishedAt time.Time) *models.VideoRecord {
	return &models.VideoRecord{
		ID:          id,
		Title:       "video " + id,
		Views:       views,
		Likes:       views / 10,
		PublishedAt: publishedAt,
	}
}

func TestQuartileReferenceBatches(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		wantQ1 float64
		wantQ3 float64
	}{
		{"Four elements", []float64{1, 2, 3, 4}, 1.75, 3.25},
		{"Five elements", []float64{1, 2, 3, 4, 5}, 2, 4},
		{"Six elements", []float64{1, 2, 3, 4, 5, 6}, 2.25, 4.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if q1 := quartile(tt.data, 1); math.Abs(q1-tt.wantQ1) > 1e-9 {
				t.Errorf("q1 = %v, want %v", q1, tt.wantQ1)
			}
			if q3 := quartile(tt.data, 3); math.Abs(q3-tt.wantQ3) > 1e-9 {
				t.Errorf("q3 = %v, want %v", q3, tt.wantQ3)
			}
		})
	}
}

func TestDetectOutliersInsufficientData(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	videos := []*models.VideoRecord{
		batchVideo("a", 100, now.AddDate(0, 0, -10)),
		batchVideo("b", 200, now.AddDate(0, 0, -10)),
		batchVideo("c", 300, now.AddDate(0, 0, -10)),
	}

	report := DetectOutliers("UC123", videos, now)
	if report.Error == "" {
		t.Error("expected explanatory error for batch smaller than 4")
	}
	if len(report.HighOutliers) != 0 || len(report.LowOutliers) != 0 {
		t.Errorf("expected empty outlier lists, got %d high / %d low", len(report.HighOutliers), len(report.LowOutliers))
	}
	if report.Statistics != nil {
		t.Error("expected no statistics for insufficient data")
	}
}

func TestDetectOutliersIdenticalBatch(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	var videos []*models.VideoRecord
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		videos = append(videos, batchVideo(id, 1000, now.AddDate(0, 0, -10)))
	}

	// Identical scores mean zero IQR; strict fence comparisons must fire for
	// nothing.
	report := DetectOutliers("UC123", videos, now)
	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if len(report.HighOutliers) != 0 || len(report.LowOutliers) != 0 {
		t.Errorf("identical batch produced %d high / %d low outliers, want none", len(report.HighOutliers), len(report.LowOutliers))
	}
	if report.Statistics.IQR != 0 {
		t.Errorf("IQR = %v, want 0", report.Statistics.IQR)
	}
}

func TestDetectOutliersExtremeVideo(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tenDaysAgo := now.AddDate(0, 0, -10)

	videos := []*models.VideoRecord{
		batchVideo("v100", 100, tenDaysAgo),
		batchVideo("v200", 200, tenDaysAgo),
		batchVideo("v150", 150, tenDaysAgo),
		batchVideo("v180", 180, tenDaysAgo),
		batchVideo("viral", 9000, tenDaysAgo),
	}

	report := DetectOutliers("UC123", videos, now)
	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}
	if report.TotalVideos != 5 {
		t.Errorf("TotalVideos = %d, want 5", report.TotalVideos)
	}

	if len(report.HighOutliers) != 1 {
		t.Fatalf("got %d high outliers, want exactly 1", len(report.HighOutliers))
	}
	viral := report.HighOutliers[0]
	if viral.VideoID != "viral" {
		t.Errorf("high outlier = %s, want viral", viral.VideoID)
	}
	if report.Statistics.UpperBound >= viral.SmartScore {
		t.Errorf("upper bound %v should be below the outlier score %v", report.Statistics.UpperBound, viral.SmartScore)
	}
	if len(report.LowOutliers) != 0 {
		t.Errorf("got %d low outliers, want none", len(report.LowOutliers))
	}

	// Leading every signal, the viral video scores exactly 1 (rounded to 4
	// decimals in the report entry).
	if viral.SmartScore != 1 {
		t.Errorf("viral smart score = %v, want 1", viral.SmartScore)
	}
}

func TestDetectOutliersHighSortedDescending(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tenDaysAgo := now.AddDate(0, 0, -10)

	videos := []*models.VideoRecord{
		batchVideo("a", 1000, tenDaysAgo),
		batchVideo("b", 1010, tenDaysAgo),
		batchVideo("c", 1020, tenDaysAgo),
		batchVideo("d", 1030, tenDaysAgo),
		batchVideo("e", 1040, tenDaysAgo),
		batchVideo("f", 1050, tenDaysAgo),
		batchVideo("big", 8000, tenDaysAgo),
		batchVideo("bigger", 9000, tenDaysAgo),
	}

	report := DetectOutliers("UC123", videos, now)
	if len(report.HighOutliers) != 2 {
		t.Fatalf("got %d high outliers, want 2", len(report.HighOutliers))
	}
	if report.HighOutliers[0].VideoID != "bigger" || report.HighOutliers[1].VideoID != "big" {
		t.Errorf("high outliers ordered %s, %s; want bigger, big",
			report.HighOutliers[0].VideoID, report.HighOutliers[1].VideoID)
	}
	if report.HighOutliers[0].SmartScore <= report.HighOutliers[1].SmartScore {
		t.Error("high outliers not sorted by descending smart score")
	}
}

func TestDetectOutliersLowSortedAscending(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tenDaysAgo := now.AddDate(0, 0, -10)

	videos := []*models.VideoRecord{
		batchVideo("tiny", 10, tenDaysAgo),
		batchVideo("small", 50, tenDaysAgo),
		batchVideo("a", 5000, tenDaysAgo),
		batchVideo("b", 5010, tenDaysAgo),
		batchVideo("c", 5020, tenDaysAgo),
		batchVideo("d", 5030, tenDaysAgo),
		batchVideo("e", 5040, tenDaysAgo),
		batchVideo("f", 5050, tenDaysAgo),
	}

	report := DetectOutliers("UC123", videos, now)
	if len(report.LowOutliers) != 2 {
		t.Fatalf("got %d low outliers, want 2", len(report.LowOutliers))
	}
	if report.LowOutliers[0].VideoID != "tiny" || report.LowOutliers[1].VideoID != "small" {
		t.Errorf("low outliers ordered %s, %s; want tiny, small",
			report.LowOutliers[0].VideoID, report.LowOutliers[1].VideoID)
	}
	if len(report.HighOutliers) != 0 {
		t.Errorf("got %d high outliers, want none", len(report.HighOutliers))
	}
}
