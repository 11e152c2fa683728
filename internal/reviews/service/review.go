package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/reviews/repository"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/reviews/validator"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/config"
	apperrors "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/errors"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/model"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/sanitizer"
)

// ReviewService manages the flat review log. Entries are independent of
// rooms; the log is read newest-first.
type ReviewService interface {
	Create(ctx context.Context, review *model.Review) (*mongo.InsertOneResult, error)
	List(ctx context.Context) ([]*model.Review, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	validator *validator.ReviewValidator
	cfg       *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	reviewValidator *validator.ReviewValidator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		validator: reviewValidator,
		cfg:       cfg,
	}
}

func (s *reviewService) Create(ctx context.Context, review *model.Review) (*mongo.InsertOneResult, error) {
	s.applyDefaults(review)
	s.sanitize(review)

	if err := s.validator.Validate(review); err != nil {
		s.cfg.Log.Warn("Review validation failed", "error", err)
		return nil, apperrors.Validation("Review validation failed", map[string]any{"error": err.Error()})
	}

	result, err := s.repo.Insert(ctx, review)
	if err != nil {
		s.cfg.Log.Error("Failed to insert review", "error", err)
		return nil, apperrors.Internal("Failed to insert review", err)
	}

	s.cfg.Log.Info("Review created", "review_id", review.ReviewID)
	return result, nil
}

func (s *reviewService) List(ctx context.Context) ([]*model.Review, error) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "error", err)
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	return reviews, nil
}

func (s *reviewService) applyDefaults(review *model.Review) {
	if review.ReviewID == "" {
		review.ReviewID = uuid.NewString()
	}
	if review.TimeStamp.IsZero() {
		review.TimeStamp = time.Now().UTC().Truncate(time.Millisecond)
	}
}

func (s *reviewService) sanitize(review *model.Review) {
	review.Content = sanitizer.Text(review.Content)
	review.Author = sanitizer.Label(review.Author, 120)
}
