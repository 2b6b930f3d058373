package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"insight-stack/internal/models"
	"insight-stack/shared/config"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Typed upstream failures. Quota rotation stays with the caller; the client
// only classifies.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrQuotaExceeded   = errors.New("YouTube API quota exceeded")
)

const detailsBatchSize = 50

// Client fetches video batches from the YouTube Data API. Public channels and
// search work with an API key; resolving the authenticated user's own channel
// needs OAuth credentials.
type Client struct {
	service *youtube.Service
	usesKey bool
}

// NewClient builds a client from the configured credentials, preferring the
// API key and falling back to the OAuth device flow.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	if cfg.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service: %w", err)
		}
		return &Client{service: service, usesKey: true}, nil
	}

	oauthConfig := oauthConfigFor(cfg)
	token, err := getToken(oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, &tokenSaver{
		config:    oauthConfig,
		token:     token,
		tokenFile: cfg.TokenFile,
	})

	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// MyChannelID resolves the authenticated user's channel ID. Only available in
// OAuth mode.
func (c *Client) MyChannelID(ctx context.Context) (string, error) {
	if c.usesKey {
		return "", fmt.Errorf("resolving your own channel requires OAuth credentials, not an API key")
	}

	response, err := c.service.Channels.List([]string{"id"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return "", classifyAPIError("failed to resolve own channel", err)
	}
	if len(response.Items) == 0 {
		return "", fmt.Errorf("resolve own channel: %w", ErrChannelNotFound)
	}

	return response.Items[0].Id, nil
}

// ChannelVideos returns up to maxResults recent uploads for a channel,
// resolved through its uploads playlist.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]*models.VideoRecord, error) {
	channelsResponse, err := c.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyAPIError(fmt.Sprintf("failed to look up channel %s", channelID), err)
	}
	if len(channelsResponse.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrChannelNotFound)
	}

	details := channelsResponse.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		log.Printf("Channel %s has no uploads playlist", channelID)
		return []*models.VideoRecord{}, nil
	}

	playlistResponse, err := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(details.RelatedPlaylists.Uploads).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyAPIError(fmt.Sprintf("failed to list uploads for channel %s", channelID), err)
	}

	var videoIDs []string
	for _, item := range playlistResponse.Items {
		videoIDs = append(videoIDs, item.Snippet.ResourceId.VideoId)
	}

	return c.videoDetails(ctx, videoIDs)
}

// SearchVideos returns up to maxResults videos matching a text query, with
// full statistics.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int64) ([]*models.VideoRecord, error) {
	searchResponse, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyAPIError(fmt.Sprintf("failed to search videos for %q", query), err)
	}

	var videoIDs []string
	for _, item := range searchResponse.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}

	return c.videoDetails(ctx, videoIDs)
}

// videoDetails fetches snippet, duration, and statistics for the given IDs in
// API-sized batches, preserving input order within each batch.
func (c *Client) videoDetails(ctx context.Context, videoIDs []string) ([]*models.VideoRecord, error) {
	records := []*models.VideoRecord{}

	for i := 0; i < len(videoIDs); i += detailsBatchSize {
		end := i + detailsBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		response, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(strings.Join(videoIDs[i:end], ",")).
			Context(ctx).
			Do()
		if err != nil {
			return nil, classifyAPIError("failed to get video details", err)
		}

		for _, item := range response.Items {
			record, err := recordFromVideo(item)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}

	return records, nil
}

// recordFromVideo converts an API video item into a VideoRecord. An
// unparseable publish timestamp is an upstream contract breach and fails the
// whole batch rather than degrading.
func recordFromVideo(item *youtube.Video) (*models.VideoRecord, error) {
	record := &models.VideoRecord{
		ID: item.Id,
	}

	if item.Snippet != nil {
		record.Title = item.Snippet.Title
		record.ChannelTitle = item.Snippet.ChannelTitle

		if thumbs := item.Snippet.Thumbnails; thumbs != nil && thumbs.High != nil {
			record.ThumbnailURL = thumbs.High.Url
		}

		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid publish timestamp %q for video %s: %w", item.Snippet.PublishedAt, item.Id, err)
		}
		record.PublishedAt = publishedAt
	}

	if item.ContentDetails != nil {
		record.Duration = item.ContentDetails.Duration
	}

	if item.Statistics != nil {
		record.Views = int64(item.Statistics.ViewCount)
		record.Likes = int64(item.Statistics.LikeCount)
		record.Comments = int64(item.Statistics.CommentCount)
	}

	return record, nil
}

// classifyAPIError maps quota exhaustion onto ErrQuotaExceeded and wraps
// everything else with context.
func classifyAPIError(msg string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 403 {
		for _, e := range apiErr.Errors {
			if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" {
				return fmt.Errorf("%s: %w", msg, ErrQuotaExceeded)
			}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
