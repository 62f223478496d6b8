package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/workforce-portal/internal/transport"
	"github.com/go-chi/chi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Attendance, error)
	Get(ctx context.Context, id string) (*Attendance, error)
	Create(ctx context.Context, dto CreateAttendanceDTO) (*Attendance, error)
	Update(ctx context.Context, id string, dto UpdateAttendanceDTO) (*Attendance, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, filter ListFilter, w io.Writer) (int, error)
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

func filterFromRequest(r *http.Request) ListFilter {
	q := r.URL.Query()
	return ListFilter{
		UserID: q.Get("userId"),
		Date:   q.Get("date"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	records, err := h.Service.List(r.Context(), filterFromRequest(r))
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, records)
	return nil
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	a, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, a)
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var dto CreateAttendanceDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	a, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusCreated, a)
	return nil
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	var dto UpdateAttendanceDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		return err
	}

	a, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, a)
	return nil
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	h.WriteJSON(w, http.StatusOK, transport.Success())
	return nil
}

// Export handles GET /api/attendance/export. The workbook is built in memory
// so a failure can still be answered with a JSON error.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if _, err := h.Service.Export(r.Context(), filterFromRequest(r), &buf); err != nil {
		return err
	}

	name := fmt.Sprintf("attendance-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Warn("export write interrupted", "error", err)
	}
	return nil
}
