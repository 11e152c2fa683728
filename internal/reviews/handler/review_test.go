package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"

	apperrors "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/errors"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/logger"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/model"
)

type mockReviewService struct {
	createFunc func(ctx context.Context, review *model.Review) (*mongo.InsertOneResult, error)
	listFunc   func(ctx context.Context) ([]*model.Review, error)
}

func (m *mockReviewService) Create(ctx context.Context, review *model.Review) (*mongo.InsertOneResult, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, review)
	}
	return &mongo.InsertOneResult{InsertedID: "generated"}, nil
}

func (m *mockReviewService) List(ctx context.Context) ([]*model.Review, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.Review{}, nil
}

func newTestRouter(svc *mockReviewService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Output: io.Discard})
	h := NewReviewHandler(svc, log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestCreateReview(t *testing.T) {
	var got *model.Review
	svc := &mockReviewService{
		createFunc: func(_ context.Context, review *model.Review) (*mongo.InsertOneResult, error) {
			got = review
			return &mongo.InsertOneResult{InsertedID: "abc"}, nil
		},
	}

	router := newTestRouter(svc)
	body := strings.NewReader(`{"content":"great stay","author":"Guest","email":"guest@example.com"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/allReview", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if got.Content != "great stay" || got.Email != "guest@example.com" {
		t.Errorf("review not forwarded: %+v", got)
	}

	var result mongo.InsertOneResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("response is not an insert result: %v", err)
	}
	if result.InsertedID != "abc" {
		t.Errorf("InsertedID = %v, want abc", result.InsertedID)
	}
}

func TestCreateReview_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockReviewService{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/allReview", strings.NewReader("{broken")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReview_ValidationError(t *testing.T) {
	svc := &mockReviewService{
		createFunc: func(context.Context, *model.Review) (*mongo.InsertOneResult, error) {
			return nil, apperrors.Validation("Review validation failed", nil)
		},
	}

	router := newTestRouter(svc)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/allReview", strings.NewReader(`{}`)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestListReviews(t *testing.T) {
	svc := &mockReviewService{
		listFunc: func(context.Context) ([]*model.Review, error) {
			return []*model.Review{
				{ReviewID: "r1", Content: "newest"},
				{ReviewID: "r2", Content: "older"},
			}, nil
		},
	}

	router := newTestRouter(svc)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/allReview", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Data []*model.Review `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Data) != 2 || body.Data[0].ReviewID != "r1" {
		t.Errorf("unexpected data: %+v", body.Data)
	}
}
