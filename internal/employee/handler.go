package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
	Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	employees, err := h.Service.List(r.Context(), ListFilter{
		Department: q.Get("department"),
		Status:     q.Get("status"),
	})
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, employees)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	e, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, e)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var dto CreateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusCreated, e)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	var dto UpdateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	e, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, e)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, transport.Success())
	return nil
}
