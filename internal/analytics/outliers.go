package analytics

import (
	"sort"
	"time"

	"insight-stack/internal/models"
)

// minOutlierBatch is the statistical minimum for quartile computation.
const minOutlierBatch = 4

const iqrMultiplier = 1.5

// quartile computes the i-th quartile (i is 1 or 3) of ascending-sorted data
// using the inclusive four-group convention (linear interpolation between
// closest ranks, treating min and max as the 0th and 100th percentiles):
// position j and remainder delta come from i*(len-1) divided by 4, and the
// value interpolates between sorted[j] and sorted[j+1] weighted by delta.
// Pinned to this convention so a single extreme value cannot drag the far
// quartile to itself on small batches; locked by a reference-batch test.
func quartile(sorted []float64, i int) float64 {
	m := i * (len(sorted) - 1)
	j, delta := m/4, m%4
	if delta == 0 {
		return sorted[j]
	}
	return (sorted[j]*float64(4-delta) + sorted[j+1]*float64(delta)) / 4
}

// batchStatistics computes the quartile fences over a batch's smart scores.
func batchStatistics(scores []float64) models.BatchStatistics {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	q1 := quartile(sorted, 1)
	q3 := quartile(sorted, 3)
	iqr := q3 - q1

	return models.BatchStatistics{
		Q1:         q1,
		Q3:         q3,
		IQR:        iqr,
		LowerBound: q1 - iqrMultiplier*iqr,
		UpperBound: q3 + iqrMultiplier*iqr,
	}
}

func outlierEntry(sv models.ScoredVideo) models.OutlierEntry {
	v := sv.Video
	return models.OutlierEntry{
		VideoID:        v.ID,
		Title:          v.Title,
		ThumbnailURL:   v.ThumbnailURL,
		Views:          v.Views,
		Likes:          v.Likes,
		Comments:       v.Comments,
		PublishedAt:    v.PublishedAt,
		ViewsPerDay:    round2(sv.Snapshot.ViewsPerDay),
		EngagementRate: round2(sv.Snapshot.EngagementRatio * 100),
		SmartScore:     round4(sv.SmartScore),
	}
}

// DetectOutliers scores the batch and classifies videos whose smart score
// falls outside the 1.5*IQR fences. Batches smaller than four videos return
// an explicit insufficient-data report with empty lists rather than an error.
// Comparisons against the fences are strict, so a zero-IQR batch of identical
// scores produces no outliers.
func DetectOutliers(channelID string, videos []*models.VideoRecord, now time.Time) *models.OutlierReport {
	if len(videos) < minOutlierBatch {
		return &models.OutlierReport{
			ChannelID:    channelID,
			Error:        "not enough videos for outlier detection (minimum 4 required)",
			HighOutliers: []models.OutlierEntry{},
			LowOutliers:  []models.OutlierEntry{},
		}
	}

	scored := ScoreBatch(videos, now)

	scores := make([]float64, len(scored))
	for i, sv := range scored {
		scores[i] = sv.SmartScore
	}
	stats := batchStatistics(scores)

	high := []models.OutlierEntry{}
	low := []models.OutlierEntry{}
	for _, sv := range scored {
		switch {
		case sv.SmartScore > stats.UpperBound:
			high = append(high, outlierEntry(sv))
		case sv.SmartScore < stats.LowerBound:
			low = append(low, outlierEntry(sv))
		}
	}

	// Most extreme first in both lists.
	sort.Slice(high, func(i, j int) bool { return high[i].SmartScore > high[j].SmartScore })
	sort.Slice(low, func(i, j int) bool { return low[i].SmartScore < low[j].SmartScore })

	return &models.OutlierReport{
		ChannelID:    channelID,
		TotalVideos:  len(videos),
		HighOutliers: high,
		LowOutliers:  low,
		Statistics: &models.BatchStatistics{
			Q1:         round4(stats.Q1),
			Q3:         round4(stats.Q3),
			IQR:        round4(stats.IQR),
			LowerBound: round4(stats.LowerBound),
			UpperBound: round4(stats.UpperBound),
		},
	}
}
