package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/delivery/http/middleware"
	"bsdoc-server/internal/usecase"
	"bsdoc-server/pkg/response"
	"bsdoc-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// Create handles adding a weekly availability window
// @Summary Create availability
// @Description Add a weekly availability window for the authenticated doctor
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAvailabilityRequest true "Availability Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/availability [post]
func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.CreateAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeFormat, usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrAvailabilityExists:
			response.Error(w, http.StatusConflict, "Availability already exists for this day", nil)
		default:
			response.InternalServerError(w, "Failed to create availability")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Availability created successfully", availability)
}

// List handles listing the authenticated doctor's availability
// @Summary List my availability
// @Description List the authenticated doctor's weekly availability windows
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /doctor/availability [get]
func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	availability, err := h.availabilityUsecase.GetMyAvailability(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// Update handles changing an availability window
// @Summary Update availability
// @Description Change the time window of one of the doctor's availability rows
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Availability ID"
// @Param request body dto.UpdateAvailabilityRequest true "Availability Update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/availability/{id} [put]
func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	availability, err := h.availabilityUsecase.UpdateAvailability(r.Context(), doctorID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAvailabilityNotFound:
			response.NotFound(w, "Availability not found")
		case usecase.ErrAvailabilityNotOwned:
			response.Forbidden(w, "You do not own this availability")
		case usecase.ErrInvalidTimeFormat, usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}

// Delete handles removing an availability window
// @Summary Delete availability
// @Description Remove one of the doctor's availability rows
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path int true "Availability ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/availability/{id} [delete]
func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteAvailability(r.Context(), doctorID, id); err != nil {
		switch err {
		case usecase.ErrAvailabilityNotFound:
			response.NotFound(w, "Availability not found")
		case usecase.ErrAvailabilityNotOwned:
			response.Forbidden(w, "You do not own this availability")
		default:
			response.InternalServerError(w, "Failed to delete availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability deleted successfully", nil)
}

// GetSlots handles computing bookable slots for a doctor on a date
// @Summary Get available slots
// @Description Compute the bookable 30-minute slots for a doctor on a date
// @Tags Availability
// @Produce json
// @Param doctorId path string true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /availability/{doctorId} [get]
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	slots, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to compute available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
