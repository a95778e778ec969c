package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/exchange_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reservationHandler serves the calculator and reservation lifecycle.
type reservationHandler struct {
	reservationService portssvc.ReservationSvcFacade
}

func newReservationHandler(rs portssvc.ReservationSvcFacade) *reservationHandler {
	return &reservationHandler{reservationService: rs}
}

// registerPublicReservationRoutes registers the calculator and customer
// reservation routes. createLimit guards reservation creation.
func registerPublicReservationRoutes(rg *gin.RouterGroup, rs portssvc.ReservationSvcFacade, createLimit gin.HandlerFunc) {
	h := newReservationHandler(rs)

	rg.GET("/calculate", h.calculate)
	reservations := rg.Group("/reservations")
	{
		if createLimit != nil {
			reservations.POST("", createLimit, h.createReservation)
		} else {
			reservations.POST("", h.createReservation)
		}
		reservations.GET("/:id", h.getReservation)
	}
}

func registerAdminReservationRoutes(rg *gin.RouterGroup, rs portssvc.ReservationSvcFacade) {
	h := newReservationHandler(rs)

	reservations := rg.Group("/reservations")
	{
		reservations.GET("", h.listReservations)
		reservations.POST("/:id/confirm", h.transition(domain.ReservationConfirmed))
		reservations.POST("/:id/complete", h.transition(domain.ReservationCompleted))
		reservations.POST("/:id/cancel", h.transition(domain.ReservationCancelled))
	}
}

// calculate godoc
// @Summary Quote an exchange
// @Description Prices an exchange at the branch's effective rate without reserving it
// @Tags reservations
// @Produce  json
// @Param   amount query string true "Amount the customer gives"
// @Param   from query string true "Currency the customer gives"
// @Param   to query string true "Currency the customer gets"
// @Param   branch_id query int false "Branch ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rate not available"
// @Failure 500 {object} map[string]string "Failed to calculate"
// @Router /calculate [get]
func (h *reservationHandler) calculate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.QuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for Calculate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(params.Amount))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a number"})
		return
	}

	q, err := h.reservationService.Quote(c.Request.Context(), domain.QuoteRequest{
		GiveAmount:   amount,
		GiveCurrency: params.From,
		GetCurrency:  params.To,
		BranchID:     params.BranchID,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to calculate")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuoteResponse(q))
}

// createReservation godoc
// @Summary Reserve an exchange
// @Description Locks the rate and amounts for a customer until the reservation expires
// @Tags reservations
// @Accept  json
// @Produce  json
// @Param   reservation body dto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rate not available"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to create reservation"
// @Router /reservations [post]
func (h *reservationHandler) createReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReservation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	r, err := h.reservationService.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create reservation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReservationResponse(r))
}

// getReservation godoc
// @Summary Get a reservation
// @Description Returns a reservation with its effective status
// @Tags reservations
// @Produce  json
// @Param   id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve reservation"
// @Router /reservations/{id} [get]
func (h *reservationHandler) getReservation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}

	r, err := h.reservationService.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve reservation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReservationResponse(r))
}

// listReservations godoc
// @Summary List reservations
// @Description Pages through reservations newest first
// @Tags admin
// @Produce  json
// @Param   status query string false "Stored status filter"
// @Param   limit query int false "Page size" default(20)
// @Param   next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListReservationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list reservations"
// @Security BearerAuth
// @Router /admin/reservations [get]
func (h *reservationHandler) listReservations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListReservationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListReservations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.reservationService.ListReservations(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// transition godoc
// @Summary Change a reservation's status
// @Description Confirms, completes or cancels a reservation. The locked rate never changes.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path string true "Reservation ID"
// @Param   note body dto.TransitionReservationRequest false "Operator note"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reservation not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to update reservation"
// @Security BearerAuth
// @Router /admin/reservations/{id}/confirm [post]
// @Router /admin/reservations/{id}/complete [post]
// @Router /admin/reservations/{id}/cancel [post]
func (h *reservationHandler) transition(status domain.ReservationStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		id, ok := reservationIDParam(c)
		if !ok {
			return
		}

		var req dto.TransitionReservationRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				logger.Warn("Failed to bind JSON for reservation transition", slog.String("error", err.Error()))
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
				return
			}
		}

		r, err := h.reservationService.TransitionReservation(c.Request.Context(), id, status, req.Note)
		if err != nil {
			respondError(c, logger, err, "Failed to update reservation")
			return
		}
		logger.Info("Reservation transitioned", slog.String("reservation_id", id), slog.String("status", string(status)))
		c.JSON(http.StatusOK, dto.ToReservationResponse(r))
	}
}

func reservationIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation ID must be a UUID"})
		return "", false
	}
	return id, true
}
