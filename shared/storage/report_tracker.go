package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ReportTracker remembers when each channel was last analyzed so scheduled
// runs skip channels with a still-fresh report. The analytics core itself
// stays stateless; this is caller-side bookkeeping persisted as a JSON file.
type ReportTracker struct {
	filePath   string
	analyzedAt map[string]time.Time
	mu         sync.RWMutex
	maxAge     time.Duration
}

// TrackedChannel is one persisted tracker entry.
type TrackedChannel struct {
	ChannelID  string    `json:"channel_id"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// NewReportTracker creates a tracker backed by dataDir/analyzed_channels.json.
func NewReportTracker(dataDir string, maxAge time.Duration) (*ReportTracker, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	tracker := &ReportTracker{
		filePath:   filepath.Join(dataDir, "analyzed_channels.json"),
		analyzedAt: make(map[string]time.Time),
		maxAge:     maxAge,
	}

	if err := tracker.load(); err != nil {
		return nil, fmt.Errorf("failed to load report tracker data: %w", err)
	}

	tracker.cleanup()

	return tracker, nil
}

// IsFresh reports whether the channel was analyzed within the tracker TTL.
func (rt *ReportTracker) IsFresh(channelID string) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	analyzedAt, exists := rt.analyzedAt[channelID]
	if !exists {
		return false
	}

	return time.Since(analyzedAt) < rt.maxAge
}

// MarkAnalyzed records a completed analysis for the channel.
func (rt *ReportTracker) MarkAnalyzed(channelID string) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.analyzedAt[channelID] = time.Now()
	return rt.save()
}

// GetTrackedCount returns the number of tracked channels.
func (rt *ReportTracker) GetTrackedCount() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.analyzedAt)
}

// cleanup removes entries older than maxAge.
func (rt *ReportTracker) cleanup() {
	cutoff := time.Now().Add(-rt.maxAge)

	for channelID, analyzedAt := range rt.analyzedAt {
		if analyzedAt.Before(cutoff) {
			delete(rt.analyzedAt, channelID)
		}
	}
}

func (rt *ReportTracker) load() error {
	file, err := os.Open(rt.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// First run, start empty.
			return nil
		}
		return fmt.Errorf("failed to open tracker file: %w", err)
	}
	defer file.Close()

	var tracked []TrackedChannel
	if err := json.NewDecoder(file).Decode(&tracked); err != nil {
		return fmt.Errorf("failed to decode tracker data: %w", err)
	}

	for _, entry := range tracked {
		rt.analyzedAt[entry.ChannelID] = entry.AnalyzedAt
	}

	return nil
}

func (rt *ReportTracker) save() error {
	tracked := make([]TrackedChannel, 0, len(rt.analyzedAt))
	for channelID, analyzedAt := range rt.analyzedAt {
		tracked = append(tracked, TrackedChannel{
			ChannelID:  channelID,
			AnalyzedAt: analyzedAt,
		})
	}

	file, err := os.OpenFile(rt.filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open tracker file for writing: %w", err)
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(tracked); err != nil {
		return fmt.Errorf("failed to encode tracker data: %w", err)
	}

	return nil
}
