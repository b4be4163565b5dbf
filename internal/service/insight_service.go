package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	"github.com/Nisarga403/Family-FinanceFlow/internal/ai"
	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/Nisarga403/Family-FinanceFlow/internal/repository/storage"
	"github.com/Nisarga403/Family-FinanceFlow/internal/store"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	// minRecentExpenses is how many recent expenses a tip needs to be useful
	minRecentExpenses = 3
	// tipWindow is the lookback for the spending summary
	tipWindow = 30 * 24 * time.Hour
	// thumbnailWidth is the width of the stored dream image thumbnail
	thumbnailWidth = 320
	// jpegQuality for encoded thumbnails
	jpegQuality = 85
	// presignExpiry is how long generated media URLs stay valid
	presignExpiry = 24 * time.Hour
)

// noTipMessage is returned without a model call when there is too little data
// to say anything useful.
const noTipMessage = "Log a few more expenses first. Once you have at least three recent expenses I can spot a savings opportunity for you."

// DreamPlanResult is a generated plan plus URLs for its stored visualization.
type DreamPlanResult struct {
	Plan         ai.DreamPlan `json:"plan"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
}

// VideoStoryResult carries the playable location of a generated video.
type VideoStoryResult struct {
	VideoURL string `json:"videoUrl"`
}

// InsightService orchestrates the AI proxy: it assembles read-only context
// from a user's state manager, calls the generator and stores any produced
// media. It never mutates domain state.
type InsightService struct {
	generator ai.Generator
	media     storage.MediaRepository
}

// NewInsightService creates a new InsightService. media may be nil when no
// object storage is configured; generated images and videos are then returned
// by reference only.
func NewInsightService(generator ai.Generator, media storage.MediaRepository) *InsightService {
	return &InsightService{
		generator: generator,
		media:     media,
	}
}

// FinancialTip builds a 30-day spending summary and asks for one tip. With
// fewer than three recent expenses it answers locally, without a model call.
func (s *InsightService) FinancialTip(ctx context.Context, st *store.Store, now time.Time) (string, error) {
	snap := st.Snapshot()
	cutoff := now.Add(-tipWindow)

	recent := make([]domain.Transaction, 0, len(snap.Transactions))
	total := decimal.Zero
	for _, t := range snap.Transactions {
		if t.Type != domain.TransactionTypeExpense || t.Date.Before(cutoff) {
			continue
		}
		recent = append(recent, t)
		total = total.Add(t.Amount)
	}

	if len(recent) < minRecentExpenses {
		return noTipMessage, nil
	}

	summary := ai.SpendingSummary{
		TotalExpenses: total,
		Breakdown:     domain.ExpenseBreakdown(recent),
		RecentCount:   len(recent),
	}
	return s.generator.FinancialTip(ctx, summary)
}

// DreamPlan generates a structured plan for a free-text dream plus an
// illustrative image. Image generation and storage are best effort: a plan
// without a picture is still a plan.
func (s *InsightService) DreamPlan(ctx context.Context, userID int32, dream string) (*DreamPlanResult, error) {
	plan, err := s.generator.DreamPlan(ctx, dream)
	if err != nil {
		return nil, err
	}
	result := &DreamPlanResult{Plan: *plan}

	imgBytes, err := s.generator.DreamImage(ctx, dream)
	if err != nil {
		log.Warn().Err(err).Int32("user_id", userID).Msg("Dream image generation failed")
		return result, nil
	}

	if s.media == nil {
		return result, nil
	}

	imageURL, thumbURL, err := s.storeDreamImage(ctx, userID, imgBytes)
	if err != nil {
		log.Warn().Err(err).Int32("user_id", userID).Msg("Failed to store dream image")
		return result, nil
	}
	result.ImageURL = imageURL
	result.ThumbnailURL = thumbURL
	return result, nil
}

// storeDreamImage uploads the full image and a downscaled thumbnail, then
// presigns both.
func (s *InsightService) storeDreamImage(ctx context.Context, userID int32, data []byte) (string, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode generated image: %w", err)
	}

	fullPath := storage.GenerateObjectPath(userID, "dreams", "full", ".png")
	if _, err := s.media.Upload(ctx, fullPath, bytes.NewReader(data), "image/png", int64(len(data))); err != nil {
		return "", "", err
	}

	thumb := img
	if img.Bounds().Dx() > thumbnailWidth {
		thumb = imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbPath := storage.GenerateObjectPath(userID, "dreams", "thumb", ".jpg")
	if _, err := s.media.Upload(ctx, thumbPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
		return "", "", err
	}

	imageURL, err := s.media.GeneratePresignedURL(ctx, fullPath, presignExpiry)
	if err != nil {
		return "", "", err
	}
	thumbURL, err := s.media.GeneratePresignedURL(ctx, thumbPath, presignExpiry)
	if err != nil {
		return "", "", err
	}
	return imageURL, thumbURL, nil
}

// Chat answers one conversational turn against the user's current snapshot.
func (s *InsightService) Chat(ctx context.Context, st *store.Store, history []ai.ChatMessage) (string, error) {
	return s.generator.Chat(ctx, history, st.Snapshot())
}

// VideoStory generates a short video. When the model returns raw bytes they
// are stored and presigned; otherwise the provider URI is passed through.
func (s *InsightService) VideoStory(ctx context.Context, userID int32, prompt string) (*VideoStoryResult, error) {
	video, err := s.generator.VideoStory(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if len(video.Data) > 0 && s.media != nil {
		contentType := video.MIMEType
		if contentType == "" {
			contentType = "video/mp4"
		}
		path := storage.GenerateObjectPath(userID, "videos", "story", ".mp4")
		if _, err := s.media.Upload(ctx, path, bytes.NewReader(video.Data), contentType, int64(len(video.Data))); err != nil {
			log.Warn().Err(err).Int32("user_id", userID).Msg("Failed to store video, returning provider URI")
		} else {
			url, err := s.media.GeneratePresignedURL(ctx, path, presignExpiry)
			if err == nil {
				return &VideoStoryResult{VideoURL: url}, nil
			}
			log.Warn().Err(err).Int32("user_id", userID).Msg("Failed to presign video")
		}
	}

	if video.URI == "" {
		return nil, fmt.Errorf("video generation produced no output")
	}
	return &VideoStoryResult{VideoURL: video.URI}, nil
}
