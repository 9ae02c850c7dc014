package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"bsdoc-server/internal/delivery/dto"
	"bsdoc-server/internal/delivery/http/middleware"
	"bsdoc-server/internal/usecase"
	"bsdoc-server/pkg/response"
	"bsdoc-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxProofSize caps the multipart proof upload at 10 MB.
const maxProofSize = 10 << 20

var allowedProofExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type VerificationHandler struct {
	verificationUsecase usecase.VerificationUsecase
	validator           *validator.CustomValidator
}

func NewVerificationHandler(verificationUsecase usecase.VerificationUsecase, validator *validator.CustomValidator) *VerificationHandler {
	return &VerificationHandler{
		verificationUsecase: verificationUsecase,
		validator:           validator,
	}
}

// Submit handles doctor registration with a proof-of-profession document
// @Summary Submit doctor registration
// @Description Register a doctor account with a PRC ID document, pending admin review
// @Tags Verification
// @Accept multipart/form-data
// @Produce json
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param prc_id formData file true "Proof of profession document"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors/registration [post]
func (h *VerificationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	req := dto.SubmitVerificationRequest{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, header, err := r.FormFile("prc_id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Proof of profession file is required", nil)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedProofExtensions[ext] {
		response.Error(w, http.StatusBadRequest, "Proof file must be a PDF or image", nil)
		return
	}

	proof := &usecase.ProofFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}

	verification, err := h.verificationUsecase.Submit(r.Context(), &req, proof)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrProofFileRequired:
			response.Error(w, http.StatusBadRequest, "Proof of profession file is required", nil)
		default:
			response.InternalServerError(w, "Failed to submit registration")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Registration submitted, pending verification", verification)
}

// ListPending handles listing verifications awaiting review
// @Summary List pending verifications
// @Description List doctor registrations awaiting an admin decision
// @Tags Verification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/doctor-verifications [get]
func (h *VerificationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	verifications, err := h.verificationUsecase.ListPending(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list verifications")
		return
	}

	response.Success(w, http.StatusOK, "Pending verifications retrieved successfully", verifications)
}

// Approve handles approving a doctor verification
// @Summary Approve a verification
// @Description Approve a pending doctor registration, granting the doctor role
// @Tags Verification
// @Security BearerAuth
// @Produce json
// @Param id path string true "Verification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctor-verifications/{id}/approve [post]
func (h *VerificationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	verificationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verification ID", nil)
		return
	}

	verifierID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.verificationUsecase.Approve(r.Context(), verificationID, verifierID); err != nil {
		switch err {
		case usecase.ErrVerificationNotFound:
			response.NotFound(w, "Verification not found")
		case usecase.ErrVerificationDecided:
			response.Error(w, http.StatusConflict, "Verification has already been decided", nil)
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to approve verification")
		}
		return
	}

	response.Success(w, http.StatusOK, "Verification approved successfully", nil)
}

// Reject handles rejecting a doctor verification
// @Summary Reject a verification
// @Description Reject a pending doctor registration and remove the account
// @Tags Verification
// @Security BearerAuth
// @Produce json
// @Param id path string true "Verification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctor-verifications/{id}/reject [post]
func (h *VerificationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	verificationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verification ID", nil)
		return
	}

	verifierID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.verificationUsecase.Reject(r.Context(), verificationID, verifierID); err != nil {
		switch err {
		case usecase.ErrVerificationNotFound:
			response.NotFound(w, "Verification not found")
		case usecase.ErrVerificationDecided:
			response.Error(w, http.StatusConflict, "Verification has already been decided", nil)
		default:
			response.InternalServerError(w, "Failed to reject verification")
		}
		return
	}

	response.Success(w, http.StatusOK, "Verification rejected successfully", nil)
}
