package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, dto CreateUserDTO) (*User, error)
	Update(ctx context.Context, id string, dto UpdateUserDTO) (*User, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// List handles GET /api/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	users, err := h.Service.List(r.Context(), ListFilter{
		Role:  q.Get("role"),
		Email: q.Get("email"),
	})
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, users)
	return nil
}

// Get handles GET /api/users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	u, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, u)
	return nil
}

// Create handles POST /api/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var dto CreateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	u, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusCreated, u)
	return nil
}

// Update handles PUT /api/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	var dto UpdateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	u, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, u)
	return nil
}

// Delete handles DELETE /api/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, transport.Success())
	return nil
}
