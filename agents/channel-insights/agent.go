package channelinsights

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"insight-stack/agents/channel-insights/youtube"
	"insight-stack/internal/analytics"
	"insight-stack/internal/models"
	"insight-stack/shared/ai"
	"insight-stack/shared/config"
	"insight-stack/shared/email"
	"insight-stack/shared/scheduler"
	"insight-stack/shared/storage"
)

// VideoSource supplies already-fetched video batches. The analytics core
// never talks to the network itself; this interface is the seam.
type VideoSource interface {
	ChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]*models.VideoRecord, error)
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]*models.VideoRecord, error)
	MyChannelID(ctx context.Context) (string, error)
}

// InsightsMetrics captures what one run did.
type InsightsMetrics struct {
	ChannelsAnalyzed int
	ChannelsSkipped  int
	VideosFetched    int
	HighOutliers     int
	LowOutliers      int
	FetchErrors      int
}

// GetSummary implements scheduler.Metrics.
func (m InsightsMetrics) GetSummary() string {
	return fmt.Sprintf("analyzed %d channels (%d videos), found %d high / %d low outliers",
		m.ChannelsAnalyzed, m.VideosFetched, m.HighOutliers, m.LowOutliers)
}

// InsightsAgent implements the scheduler.Agent interface. Per run it fetches
// each configured channel's recent uploads, produces the outlier and cadence
// reports, and emails the combined result when email is configured.
type InsightsAgent struct {
	config      *config.Config
	source      VideoSource
	analyzer    *analytics.Analyzer
	emailSender *email.Sender
	tracker     *storage.ReportTracker
}

func NewInsightsAgent(cfg *config.Config) *InsightsAgent {
	return &InsightsAgent{
		config: cfg,
	}
}

func (a *InsightsAgent) Name() string {
	return "Channel Insights"
}

func (a *InsightsAgent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.source == nil {
		client, err := youtube.NewClient(context.Background(), &a.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		a.source = client
		log.Println("YouTube client initialized")
	}

	if a.analyzer == nil {
		var advisor analytics.SuggestionProvider
		if a.config.AI.GeminiAPIKey != "" {
			adv, err := ai.NewAdvisor(a.config)
			if err != nil {
				return fmt.Errorf("failed to create growth advisor: %w", err)
			}
			advisor = adv
			log.Println("Growth advisor initialized")
		} else {
			log.Println("No Gemini API key configured, using rule-based suggestions only")
		}
		a.analyzer = analytics.NewAnalyzer(advisor)
	}

	if a.emailSender == nil && a.config.Email.Username != "" {
		a.emailSender = email.NewSender(&a.config.Email)
		log.Println("Email sender initialized")
	}

	if a.tracker == nil {
		ttl := time.Duration(a.config.Insights.TrackerTTLHours) * time.Hour
		tracker, err := storage.NewReportTracker(a.config.Insights.DataDir, ttl)
		if err != nil {
			return fmt.Errorf("failed to create report tracker: %w", err)
		}
		a.tracker = tracker
		log.Printf("Report tracker initialized (%d channels tracked)", tracker.GetTrackedCount())
	}

	return nil
}

// resolveChannels expands the configured channel list, adding the
// authenticated user's own channel when insights.mine is set.
func (a *InsightsAgent) resolveChannels(ctx context.Context) ([]string, error) {
	channels := append([]string{}, a.config.Insights.Channels...)

	if a.config.Insights.Mine {
		own, err := a.source.MyChannelID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve own channel: %w", err)
		}
		channels = append(channels, own)
	}

	return channels, nil
}

func (a *InsightsAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	metrics := InsightsMetrics{}

	channels, err := a.resolveChannels(ctx)
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		return fmt.Errorf("no channels to analyze")
	}

	var reports []*models.ChannelReport

	for _, channelID := range channels {
		if a.tracker.IsFresh(channelID) {
			log.Printf("Skipping channel %s, report still fresh", channelID)
			metrics.ChannelsSkipped++
			continue
		}

		log.Printf("Fetching recent uploads for channel %s...", channelID)
		videos, err := a.source.ChannelVideos(ctx, channelID, a.config.Insights.MaxVideos)
		if err != nil {
			metrics.FetchErrors++
			log.Printf("Warning: Failed to fetch videos for channel %s: %v", channelID, err)
			if events != nil && events.OnPartialFailure != nil {
				events.OnPartialFailure(fmt.Errorf("channel %s fetch failed: %w", channelID, err), time.Since(startTime))
			}
			if errors.Is(err, youtube.ErrQuotaExceeded) {
				// No point hammering the remaining channels this run.
				break
			}
			continue
		}

		report := a.analyzeChannel(ctx, channelID, videos)
		reports = append(reports, report)

		metrics.ChannelsAnalyzed++
		metrics.VideosFetched += len(videos)
		metrics.HighOutliers += len(report.Outliers.HighOutliers)
		metrics.LowOutliers += len(report.Outliers.LowOutliers)

		if err := a.tracker.MarkAnalyzed(channelID); err != nil {
			log.Printf("Warning: Failed to mark channel %s as analyzed: %v", channelID, err)
		}

		log.Printf("Channel %s: algorithm score %d, %d high / %d low outliers across %d videos",
			channelID, report.Cadence.AlgorithmScore,
			len(report.Outliers.HighOutliers), len(report.Outliers.LowOutliers), len(videos))
	}

	if metrics.ChannelsAnalyzed == 0 && metrics.FetchErrors > 0 {
		return fmt.Errorf("all %d channel fetches failed", metrics.FetchErrors)
	}

	if a.emailSender != nil && len(reports) > 0 {
		log.Printf("Sending insights report for %d channels", len(reports))
		if err := a.emailSender.SendInsightsReport(reports); err != nil {
			return fmt.Errorf("failed to send insights report: %w", err)
		}
		log.Println("Insights report sent successfully")
	}

	duration := time.Since(startTime)
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	log.Printf("Run complete: %s (%d skipped, %d fetch errors)", metrics.GetSummary(), metrics.ChannelsSkipped, metrics.FetchErrors)

	return nil
}

// analyzeChannel runs both analyses over one already-fetched batch with a
// single reference time.
func (a *InsightsAgent) analyzeChannel(ctx context.Context, channelID string, videos []*models.VideoRecord) *models.ChannelReport {
	now := time.Now().UTC()

	report := &models.ChannelReport{
		Date:      now,
		ChannelID: channelID,
		Outliers:  a.analyzer.DetectOutliers(channelID, videos, now),
		Cadence:   a.analyzer.AnalyzeCadence(ctx, channelID, videos, now),
	}
	if len(videos) > 0 {
		report.ChannelTitle = videos[0].ChannelTitle
	}
	return report
}

// SearchInsights fetches a search-result batch and enriches it with derived
// metrics. Used by the one-shot CLI mode.
func (a *InsightsAgent) SearchInsights(ctx context.Context, query string, maxResults int64) (*models.SearchReport, error) {
	videos, err := a.source.SearchVideos(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("search %q failed: %w", query, err)
	}
	return analytics.SearchInsights(query, videos, time.Now().UTC()), nil
}
