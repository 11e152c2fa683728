package main

import (
	roomshandler "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/handler"
	roomsrepo "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/repository"
	roomsservice "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/service"
	roomsvalidator "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/validator"
	reviewshandler "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/reviews/handler"
	reviewsrepo "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/reviews/repository"
	reviewsservice "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/reviews/service"
	reviewsvalidator "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/reviews/validator"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/app"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/auth"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/config"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/events"
)

const ServiceName = "rooms"

func main() {
	cfg := config.Load(ServiceName)

	cfg.SetMongo()
	defer cfg.Client.Disconnect(cfg.Log, cfg.ShutdownTimeout)

	publisher, closePublisher := initEvents(cfg)
	defer closePublisher()

	roomService, reviewService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		roomshandler.NewRoomHandler(roomService, auth.NewTokenVerifier(cfg.JWTAccessSecret), cfg.Log),
		reviewshandler.NewReviewHandler(reviewService, cfg.Log),
	)
	serverApp.Run()
}

func initEvents(cfg *config.Config) (events.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured; lifecycle events disabled")
		return events.Nop(), func() {}
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}

	cfg.Log.Info("Lifecycle event producer initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaTopic,
	)

	return producer, func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close event producer", "error", err)
		}
	}
}

func initServices(cfg *config.Config, publisher events.Publisher) (roomsservice.RoomService, reviewsservice.ReviewService) {
	roomService := roomsservice.NewRoomService(
		roomsrepo.NewMongoRoomRepository(cfg),
		roomsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	reviewService := reviewsservice.NewReviewService(
		reviewsrepo.NewMongoReviewRepository(cfg),
		reviewsvalidator.NewReviewValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return roomService, reviewService
}
