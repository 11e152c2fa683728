package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/internal/rooms/service"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/auth"
	httputil "github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/http"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/logger"
	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/middleware"
)

type RoomHandler struct {
	service  service.RoomService
	verifier *auth.TokenVerifier
	log      *logger.Logger
}

func NewRoomHandler(service service.RoomService, verifier *auth.TokenVerifier, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service:  service,
		verifier: verifier,
		log:      log,
	}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	rooms, err := h.service.List(r.Context(), query.Get("minPrice"), query.Get("maxPrice"))
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *RoomHandler) Featured(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := h.service.Featured(r.Context())
	if err != nil {
		h.writeError(w, "Featured", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "Featured", "error", err)
	}
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *RoomHandler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// the access-control chain already matched this email to the token
	email := r.URL.Query().Get("email")

	rooms, err := h.service.BookingsByUser(r.Context(), email)
	if err != nil {
		h.writeError(w, "MyBookings", err)
		return
	}

	if err := httputil.WriteSuccess(w, rooms); err != nil {
		h.log.Error("failed to write success response", "handler", "MyBookings", "error", err)
	}
}

func (h *RoomHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeBadBody(w, "Book")
		return
	}

	result, err := h.service.Book(r.Context(), ps.ByName("roomId"), patch)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	// mutation responses mirror the driver's result shape
	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write update result", "handler", "Book", "error", err)
	}
}

func (h *RoomHandler) AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var review map[string]any
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		h.writeBadBody(w, "AddReview")
		return
	}

	result, err := h.service.AddReview(r.Context(), ps.ByName("id"), review)
	if err != nil {
		h.writeError(w, "AddReview", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write update result", "handler", "AddReview", "error", err)
	}
}

func (h *RoomHandler) UpdateDate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeBadBody(w, "UpdateDate")
		return
	}

	result, err := h.service.UpdateBookedDate(r.Context(), ps.ByName("id"), body["bookedDate"])
	if err != nil {
		h.writeError(w, "UpdateDate", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write update result", "handler", "UpdateDate", "error", err)
	}
}

func (h *RoomHandler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.CancelBooking(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "CancelBooking", err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, result); err != nil {
		h.log.Error("failed to write update result", "handler", "CancelBooking", "error", err)
	}
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *RoomHandler) writeBadBody(w http.ResponseWriter, handlerName string) {
	if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
		Error: "Invalid request body",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	authenticate := middleware.Authenticate(h.verifier, h.log)
	requireOwner := middleware.RequireBookingOwner(h.log)

	router.GET("/rooms", h.List)
	router.GET("/rooms/:id", h.Get)
	router.GET("/featured", h.Featured)
	router.GET("/myBookings", authenticate(requireOwner(h.MyBookings)))
	router.PATCH("/bookedRooms/:roomId", h.Book)
	router.PATCH("/review/:id", h.AddReview)
	router.PATCH("/updateDate/:id", h.UpdateDate)
	router.PATCH("/cancelBooking/:id", h.CancelBooking)
}
