package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	roomserrors "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/errors"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/repository"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/validator"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/config"
	apperrors "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/errors"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/events"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/model"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/sanitizer"
)

const labelMaxLen = 120

// RoomService drives the room lifecycle: Available -> Booked -> Reviewed or
// back to Available via cancellation. Each transition is a single store
// write; Book deliberately carries no availability precondition, so
// concurrent bookings resolve as last-write-wins.
type RoomService interface {
	List(ctx context.Context, minPrice, maxPrice string) ([]*model.Room, error)
	Get(ctx context.Context, id string) (*model.Room, error)
	Featured(ctx context.Context) ([]*model.Room, error)
	BookingsByUser(ctx context.Context, email string) ([]*model.Room, error)
	Book(ctx context.Context, id string, patch map[string]any) (*mongo.UpdateResult, error)
	AddReview(ctx context.Context, id string, review map[string]any) (*mongo.UpdateResult, error)
	UpdateBookedDate(ctx context.Context, id string, date any) (*mongo.UpdateResult, error)
	CancelBooking(ctx context.Context, id string) (*mongo.UpdateResult, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *roomService) List(ctx context.Context, minPrice, maxPrice string) ([]*model.Room, error) {
	rooms, err := s.repo.FindAll(ctx, parsePriceBound(minPrice), parsePriceBound(maxPrice))
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	return rooms, nil
}

// parsePriceBound treats a missing or non-numeric bound as absent rather
// than as an error; the catalog is then returned unfiltered.
func parsePriceBound(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (s *roomService) Get(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id, "retrieve room")
	}
	return room, nil
}

func (s *roomService) Featured(ctx context.Context) ([]*model.Room, error) {
	rooms, err := s.repo.FindFeatured(ctx, s.cfg.FeaturedLimit)
	if err != nil {
		s.cfg.Log.Error("Failed to rank featured rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve featured rooms", err)
	}
	return rooms, nil
}

func (s *roomService) BookingsByUser(ctx context.Context, email string) ([]*model.Room, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email cannot be empty")
	}

	rooms, err := s.repo.FindByBookedUser(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for user", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return rooms, nil
}

func (s *roomService) Book(ctx context.Context, id string, patch map[string]any) (*mongo.UpdateResult, error) {
	// The document id and review history are never writable through the
	// booking merge.
	delete(patch, "_id")
	delete(patch, "reviews")

	if err := s.validator.ValidatePatch(patch); err != nil {
		s.cfg.Log.Warn("Booking payload validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid booking payload", map[string]any{"error": err.Error()})
	}
	s.sanitizeLabels(patch)

	result, err := s.repo.Merge(ctx, id, patch, true)
	if err != nil {
		return nil, s.translateLookupError(err, id, "book room")
	}

	bookedUser, _ := patch["bookedUser"].(string)
	if bookedUser != "" {
		s.publish(ctx, events.Event{
			Type:       events.TypeRoomBooked,
			RoomID:     id,
			BookedUser: bookedUser,
		})
	}

	s.cfg.Log.Info("Room booking merged",
		"id", id,
		"booked_user", bookedUser,
		"matched", result.MatchedCount,
		"upserted", result.UpsertedCount,
	)
	return result, nil
}

func (s *roomService) AddReview(ctx context.Context, id string, review map[string]any) (*mongo.UpdateResult, error) {
	if len(review) == 0 {
		return nil, apperrors.InvalidInput("review payload cannot be empty")
	}

	result, err := s.repo.AppendReview(ctx, id, review)
	if err != nil {
		return nil, s.translateLookupError(err, id, "append review")
	}

	// ModifiedCount 0 with a match means the identical review was already
	// present; that is the set-like contract, not an error.
	s.cfg.Log.Info("Room review appended",
		"id", id,
		"modified", result.ModifiedCount,
	)
	return result, nil
}

func (s *roomService) UpdateBookedDate(ctx context.Context, id string, date any) (*mongo.UpdateResult, error) {
	if date == nil {
		return nil, apperrors.InvalidInput("bookedDate is required")
	}

	result, err := s.repo.SetBookedDate(ctx, id, date)
	if err != nil {
		return nil, s.translateLookupError(err, id, "update booked date")
	}

	s.cfg.Log.Info("Room booked date updated", "id", id)
	return result, nil
}

func (s *roomService) CancelBooking(ctx context.Context, id string) (*mongo.UpdateResult, error) {
	result, err := s.repo.ClearBooking(ctx, id)
	if err != nil {
		return nil, s.translateLookupError(err, id, "cancel booking")
	}

	s.publish(ctx, events.Event{
		Type:   events.TypeRoomCancelled,
		RoomID: id,
	})

	s.cfg.Log.Info("Room booking cancelled", "id", id)
	return result, nil
}

// --- Helpers ---

func (s *roomService) translateLookupError(err error, id, operation string) error {
	switch {
	case errors.Is(err, roomserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Room", id)
	case errors.Is(err, roomserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid room ID format")
	default:
		s.cfg.Log.Error("Failed to "+operation, "id", id, "error", err)
		return apperrors.Internal("Failed to "+operation, err)
	}
}

func (s *roomService) sanitizeLabels(patch map[string]any) {
	for _, field := range []string{"name", "location"} {
		if raw, ok := patch[field].(string); ok {
			patch[field] = sanitizer.Label(raw, labelMaxLen)
		}
	}
}

func (s *roomService) publish(ctx context.Context, event events.Event) {
	event.OccurredAt = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish lifecycle event",
			"type", event.Type,
			"room_id", event.RoomID,
			"error", err,
		)
	}
}
