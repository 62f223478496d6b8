package timelog

import (
	"context"
	"net/http"

	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*TimeLog, error)
	Get(ctx context.Context, id string) (*TimeLog, error)
	Create(ctx context.Context, dto CreateTimeLogDTO) (*TimeLog, error)
	Update(ctx context.Context, id string, dto UpdateTimeLogDTO) (*TimeLog, error)
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
	logs, err := h.Service.List(r.Context(), ListFilter{
		UserID: q.Get("userId"),
		Date:   q.Get("date"),
	})
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, logs)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	t, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, t)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var dto CreateTimeLogDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	t, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusCreated, t)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	var dto UpdateTimeLogDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	t, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, t)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, transport.Success())
	return nil
}
