package models

import "time"

// OutlierEntry is one anomalous video in an outlier report. Derived metrics
// are rounded for presentation; classification happened on the raw values.
type OutlierEntry struct {
	VideoID        string    `json:"video_id"`
	Title          string    `json:"title"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	Views          int64     `json:"views"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	PublishedAt    time.Time `json:"published_at"`
	ViewsPerDay    float64   `json:"views_per_day"`
	EngagementRate float64   `json:"engagement_rate"` // percent
	SmartScore     float64   `json:"smart_score"`
}

// BatchStatistics describes the smart-score distribution of a single batch.
type BatchStatistics struct {
	Q1         float64 `json:"q1"`
	Q3         float64 `json:"q3"`
	IQR        float64 `json:"iqr"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// OutlierReport is the result of IQR outlier detection over one channel batch.
// When the batch is too small for quartile math, Error is set and both outlier
// lists are empty.
type OutlierReport struct {
	ChannelID    string           `json:"channel_id"`
	TotalVideos  int              `json:"total_videos,omitempty"`
	Error        string           `json:"error,omitempty"`
	HighOutliers []OutlierEntry   `json:"high_outliers"`
	LowOutliers  []OutlierEntry   `json:"low_outliers"`
	Statistics   *BatchStatistics `json:"statistics,omitempty"`
}

// ConsistencyMetrics are the cadence sub-scores, rounded for presentation.
type ConsistencyMetrics struct {
	AvgGapDays       float64 `json:"avg_gap_days"`
	ConsistencyScore float64 `json:"consistency_score"`
	FrequencyScore   float64 `json:"frequency_score"`
	EngagementScore  float64 `json:"engagement_score"`
}

// Performance summarizes raw view performance across the batch.
type Performance struct {
	AvgViews       int64   `json:"avg_views"`
	TotalViews     int64   `json:"total_views"`
	EngagementRate float64 `json:"engagement_rate"` // percent
}

// UploadSchedule carries the upload-day recommendation.
type UploadSchedule struct {
	RecommendedDays []string `json:"recommended_days"`
	CurrentAvgGap   float64  `json:"current_avg_gap"`
}

// ViewPredictions is a fixed 10% linear growth heuristic, not a forecast.
type ViewPredictions struct {
	NextVideo  int64 `json:"next_video"`
	BasedOnAvg int64 `json:"based_on_avg"`
}

// CadenceReport is the result of upload-cadence analysis for one channel.
type CadenceReport struct {
	ChannelID          string             `json:"channel_id"`
	AlgorithmScore     int                `json:"algorithm_score"`
	TotalVideos        int                `json:"total_videos,omitempty"`
	ShortsCount        int                `json:"shorts_count"`
	RegularCount       int                `json:"regular_count"`
	Error              string             `json:"error,omitempty"`
	ConsistencyMetrics ConsistencyMetrics `json:"consistency_metrics"`
	Performance        Performance        `json:"performance"`
	UploadSchedule     UploadSchedule     `json:"upload_schedule"`
	ViewPredictions    ViewPredictions    `json:"view_predictions"`
	GrowthSuggestions  []string           `json:"growth_suggestions"`
}

// SearchResult is one search hit enriched with derived metrics.
type SearchResult struct {
	VideoID        string    `json:"video_id"`
	Title          string    `json:"title"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	ChannelTitle   string    `json:"channel_title"`
	Views          int64     `json:"views"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	PublishedAt    time.Time `json:"published_at"`
	ViewsPerDay    float64   `json:"views_per_day"`
	EngagementRate float64   `json:"engagement_rate"` // percent
	DaysOld        int       `json:"days_old"`
}

// SearchReport is an enriched search-result batch.
type SearchReport struct {
	SearchType   string         `json:"search_type"`
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	Results      []SearchResult `json:"results"`
}

// ChannelReport bundles both analyses for one channel, for email delivery.
type ChannelReport struct {
	Date         time.Time      `json:"date"`
	ChannelID    string         `json:"channel_id"`
	ChannelTitle string         `json:"channel_title"`
	Outliers     *OutlierReport `json:"outliers"`
	Cadence      *CadenceReport `json:"cadence"`
}
