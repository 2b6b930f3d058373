package models

import "time"

// VideoRecord is one observed video as returned by the video source.
// Records are immutable once fetched; the analytics core never mutates them.
type VideoRecord struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ChannelTitle string    `json:"channel_title"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Comments     int64     `json:"comments"`
	PublishedAt  time.Time `json:"published_at"`
	Duration     string    `json:"duration"` // ISO 8601 token, e.g. "PT1M30S"; may be empty
}

// EngagementSnapshot holds per-video derived metrics, computed fresh on every
// analysis call against an explicit reference time.
type EngagementSnapshot struct {
	ViewsPerDay     float64 `json:"views_per_day"`
	EngagementRatio float64 `json:"engagement_ratio"`
}

// ScoredVideo is a record plus its derived metrics and its batch-normalized
// smart score. SmartScore stays unrounded; rounding happens in report entries.
type ScoredVideo struct {
	Video      *VideoRecord
	Snapshot   EngagementSnapshot
	SmartScore float64
}
