package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"hotel-service/config"
	"hotel-service/domain"
	"hotel-service/services"
	"hotel-service/utils"
)

const dateLayout = "2006-01-02"

type ReservationHandler struct {
	reservationService services.ReservationService
	logger             *logrus.Logger
	Tracer             trace.Tracer
	config             *config.Config
}

func NewReservationHandler(reservationService services.ReservationService, logger *logrus.Logger, tr trace.Tracer, cfg *config.Config) ReservationHandler {
	return ReservationHandler{reservationService, logger, tr, cfg}
}

type CreateReservationRequest struct {
	RoomNumber   int    `json:"room_number" binding:"required"`
	GuestName    string `json:"guest_name" binding:"required"`
	GuestEmail   string `json:"guest_email" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
}

type ReservationResponse struct {
	ReservationId string  `json:"reservation_id"`
	RoomNumber    int     `json:"room_number"`
	GuestName     string  `json:"guest_name"`
	GuestEmail    string  `json:"guest_email"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
}

func toReservationResponse(reservation *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationId: reservation.ReservationId,
		RoomNumber:    reservation.RoomNumber,
		GuestName:     reservation.GuestName,
		GuestEmail:    reservation.GuestEmail,
		CheckInDate:   reservation.CheckInDate.Format(dateLayout),
		CheckOutDate:  reservation.CheckOutDate.Format(dateLayout),
		TotalPrice:    reservation.TotalPrice,
		Status:        string(reservation.Status()),
	}
}

func (s *ReservationHandler) GetRooms(c *gin.Context) {
	_, span := s.Tracer.Start(c.Request.Context(), "ReservationHandler.GetRooms")
	defer span.End()

	rooms := s.reservationService.ListRooms(c.Request.Context())
	c.JSON(http.StatusOK, rooms)
}

func (s *ReservationHandler) GetAvailableRooms(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReservationHandler.GetAvailableRooms")
	defer span.End()

	roomType := domain.RoomType(c.Query("type"))
	if roomType != "" && !domain.IsValidRoomType(roomType) {
		span.SetStatus(codes.Error, "Invalid room type")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room type. Expected Standard, Deluxe or Suite."})
		return
	}

	checkIn, checkOut, err := parseDateRange(c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rooms, err := s.reservationService.FindAvailableRooms(roomType, checkIn, checkOut, spanCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *ReservationHandler) CreateReservation(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReservationHandler.CreateReservation")
	defer span.End()

	var request CreateReservationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		span.SetStatus(codes.Error, "Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := utils.ValidateGuestInput(request.GuestName, request.GuestEmail); err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkIn, checkOut, err := parseDateRange(request.CheckInDate, request.CheckOutDate)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := s.reservationService.MakeReservation(request.RoomNumber, request.GuestName, request.GuestEmail, checkIn, checkOut, spanCtx)
	if err != nil && !errors.Is(err, domain.ErrPersistenceFailure()) {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	s.sendConfirmation(reservation)

	response := gin.H{"reservation": toReservationResponse(reservation)}
	if err != nil {
		// The booking stands, only durability is at risk.
		response["warning"] = "Reservation was created but could not be persisted"
	}
	c.JSON(http.StatusCreated, response)
}

func (s *ReservationHandler) GetReservation(c *gin.Context) {
	_, span := s.Tracer.Start(c.Request.Context(), "ReservationHandler.GetReservation")
	defer span.End()

	reservation, found := s.reservationService.FindReservation(c.Param("id"), c.Request.Context())
	if !found {
		span.SetStatus(codes.Error, domain.ErrReservationNotFound().Error())
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrReservationNotFound().Error()})
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

func (s *ReservationHandler) CancelReservation(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReservationHandler.CancelReservation")
	defer span.End()

	err := s.reservationService.CancelReservation(c.Param("id"), spanCtx)
	if err != nil && !errors.Is(err, domain.ErrPersistenceFailure()) {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"message": "Reservation cancelled successfully"}
	if err != nil {
		response["warning"] = "Cancellation was applied but could not be persisted"
	}
	c.JSON(http.StatusOK, response)
}

func (s *ReservationHandler) ProcessPayment(c *gin.Context) {
	spanCtx, span := s.Tracer.Start(c.Request.Context(), "ReservationHandler.ProcessPayment")
	defer span.End()

	err := s.reservationService.ProcessPayment(c.Param("id"), spanCtx)
	if err != nil && !errors.Is(err, domain.ErrPersistenceFailure()) {
		span.SetStatus(codes.Error, err.Error())
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"message": "Payment processed successfully"}
	if err != nil {
		response["warning"] = "Payment was recorded but could not be persisted"
	}
	c.JSON(http.StatusOK, response)
}

func (s *ReservationHandler) sendConfirmation(reservation *domain.Reservation) {
	if s.config == nil || s.config.SMTPHost == "" {
		s.logger.WithFields(logrus.Fields{"path": "handlers/reservation"}).Debug("SMTP not configured, skipping confirmation email")
		return
	}
	room, found := s.reservationService.FindRoom(reservation.RoomNumber)
	if !found {
		return
	}
	if err := utils.SendReservationConfirmation(reservation, room, s.config); err != nil {
		s.logger.WithFields(logrus.Fields{"path": "handlers/reservation"}).Error("Error sending confirmation email: ", err)
	}
}

func parseDateRange(checkInStr string, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(dateLayout, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ReservationError{Message: "Invalid check-in date. Expected format YYYY-MM-DD."}
	}
	checkOut, err := time.Parse(dateLayout, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ReservationError{Message: "Invalid check-out date. Expected format YYYY-MM-DD."}
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange()
	}
	return checkIn, checkOut, nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrReservationNotFound()), errors.Is(err, domain.ErrRoomNotFound()):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRoomUnavailable()),
		errors.Is(err, domain.ErrAlreadyCancelled()),
		errors.Is(err, domain.ErrAlreadyPaid()),
		errors.Is(err, domain.ErrReservationCancelled()):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDateRange()):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func ExtractTraceInfoMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
