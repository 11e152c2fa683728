package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/reviews/validator"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/config"
	apperrors "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/errors"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/logger"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/model"
)

type mockReviewRepository struct {
	insertFunc  func(ctx context.Context, review *model.Review) (*mongo.InsertOneResult, error)
	findAllFunc func(ctx context.Context) ([]*model.Review, error)
}

func (m *mockReviewRepository) Insert(ctx context.Context, review *model.Review) (*mongo.InsertOneResult, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, review)
	}
	return &mongo.InsertOneResult{InsertedID: "generated"}, nil
}

func (m *mockReviewRepository) FindAll(ctx context.Context) ([]*model.Review, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Review{}, nil
}

func newTestService(repo *mockReviewRepository) ReviewService {
	log := logger.New(logger.Config{Level: "error", Output: io.Discard})
	cfg := &config.Config{Log: log}
	return NewReviewService(repo, validator.NewReviewValidator(log), cfg)
}

func TestCreate_AppliesDefaults(t *testing.T) {
	var stored *model.Review
	repo := &mockReviewRepository{
		insertFunc: func(_ context.Context, review *model.Review) (*mongo.InsertOneResult, error) {
			stored = review
			return &mongo.InsertOneResult{InsertedID: review.ReviewID}, nil
		},
	}

	svc := newTestService(repo)
	before := time.Now().UTC()
	_, err := svc.Create(context.Background(), &model.Review{
		Content: "Spotless room, great host",
		Author:  "Guest",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if stored.ReviewID == "" {
		t.Error("ReviewID default was not applied")
	}
	if stored.TimeStamp.Before(before.Truncate(time.Millisecond)) {
		t.Errorf("TimeStamp default was not applied: %v", stored.TimeStamp)
	}
}

func TestCreate_PreservesCallerFields(t *testing.T) {
	var stored *model.Review
	repo := &mockReviewRepository{
		insertFunc: func(_ context.Context, review *model.Review) (*mongo.InsertOneResult, error) {
			stored = review
			return &mongo.InsertOneResult{InsertedID: review.ReviewID}, nil
		},
	}

	stamp := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(repo)
	_, err := svc.Create(context.Background(), &model.Review{
		ReviewID:  "caller-supplied",
		Content:   "Good value",
		TimeStamp: stamp,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if stored.ReviewID != "caller-supplied" {
		t.Errorf("ReviewID = %q, want caller-supplied", stored.ReviewID)
	}
	if !stored.TimeStamp.Equal(stamp) {
		t.Errorf("TimeStamp = %v, want %v", stored.TimeStamp, stamp)
	}
}

func TestCreate_SanitizesTextFields(t *testing.T) {
	var stored *model.Review
	repo := &mockReviewRepository{
		insertFunc: func(_ context.Context, review *model.Review) (*mongo.InsertOneResult, error) {
			stored = review
			return &mongo.InsertOneResult{InsertedID: review.ReviewID}, nil
		},
	}

	svc := newTestService(repo)
	_, err := svc.Create(context.Background(), &model.Review{
		Content: "  spacious \t and   quiet  ",
		Author:  "  A. Guest  ",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if stored.Content != "spacious and quiet" {
		t.Errorf("Content = %q", stored.Content)
	}
	if stored.Author != "A. Guest" {
		t.Errorf("Author = %q", stored.Author)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	rating := 9
	tests := []struct {
		name   string
		review *model.Review
	}{
		{"empty content", &model.Review{Author: "Guest"}},
		{"whitespace-only content", &model.Review{Content: "   \t  "}},
		{"oversized content", &model.Review{Content: strings.Repeat("a", 2001)}},
		{"bad email", &model.Review{Content: "fine", Email: "not-an-email"}},
		{"rating out of range", &model.Review{Content: "fine", Rating: &rating}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := false
			repo := &mockReviewRepository{
				insertFunc: func(context.Context, *model.Review) (*mongo.InsertOneResult, error) {
					inserted = true
					return nil, nil
				},
			}

			svc := newTestService(repo)
			_, err := svc.Create(context.Background(), tt.review)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
				t.Errorf("code = %q, want %q", apperrors.AsAppError(err).Code, apperrors.CodeValidation)
			}
			if inserted {
				t.Error("invalid review must not reach the store")
			}
		})
	}
}

func TestList(t *testing.T) {
	repo := &mockReviewRepository{
		findAllFunc: func(context.Context) ([]*model.Review, error) {
			return []*model.Review{
				{ReviewID: "newer", Content: "a"},
				{ReviewID: "older", Content: "b"},
			}, nil
		},
	}

	svc := newTestService(repo)
	reviews, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(reviews) != 2 || reviews[0].ReviewID != "newer" {
		t.Errorf("unexpected reviews: %+v", reviews)
	}
}
