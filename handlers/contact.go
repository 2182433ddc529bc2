package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/services"
)

// ContactHandler, iletişim formu endpoint'lerini yöneten struct.
// Submit public'tir; listeleme/yönetim admin middleware'i arkasındadır.
type ContactHandler struct {
	contactService services.ContactService
}

// NewContactHandler, constructor.
func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit godoc
// POST /api/contact
// Body: { "name": "...", "email": "...", "subject": "...", "message": "..." }
// Public endpoint — global rate limiter spam'i sınırlar.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.contactService.Submit(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, msg)
}

// List godoc
// GET /api/admin/messages
// Admin only.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if messages == nil {
		messages = []models.ContactMessage{}
	}

	pkg.JSON(w, http.StatusOK, messages)
}

// Get godoc
// GET /api/admin/messages/{id}
// Admin only.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	msg, err := h.contactService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, msg)
}

// MarkRead godoc
// PUT /api/admin/messages/{id}/read
// Admin only.
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.contactService.MarkRead(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}

// Delete godoc
// DELETE /api/admin/messages/{id}
// Admin only.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
