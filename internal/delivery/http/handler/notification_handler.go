package handler

import (
	"encoding/json"
	"net/http"

	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/delivery/http/middleware"
	"bsdoc-server/internal/usecase"
	"bsdoc-server/pkg/response"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
	}
}

// List handles listing the authenticated user's notifications
// @Summary List my notifications
// @Description List notifications newest first with an unread count
// @Tags Notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	notifications, err := h.notificationUsecase.GetMyNotifications(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// MarkRead handles marking notifications read
// @Summary Mark notifications read
// @Description Mark the listed notifications, or all of them, as read
// @Tags Notifications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkReadRequest true "Mark Read Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /notifications/read [patch]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.notificationUsecase.MarkRead(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrNothingToMark:
			response.Error(w, http.StatusBadRequest, "Either ids or all must be provided", nil)
		default:
			response.InternalServerError(w, "Failed to mark notifications read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notifications marked read", result)
}
