package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/workforce-portal/internal"
	"github.com/frahmantamala/workforce-portal/internal/store"
	"github.com/frahmantamala/workforce-portal/internal/transport"
)

// StoreStatus is the part of the store the health endpoint reports on.
type StoreStatus interface {
	Stats() store.Stats
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	OK              bool       `json:"ok"`
	Time            time.Time  `json:"time"`
	Ready           bool       `json:"ready"`
	PersistCount    int64      `json:"persistCount"`
	LastPersistedAt *time.Time `json:"lastPersistedAt"`
}

type HealthHandler struct {
	*transport.BaseHandler
	store StoreStatus
}

func NewHealthHandler(baseHandler *transport.BaseHandler, s StoreStatus) *HealthHandler {
	return &HealthHandler{BaseHandler: baseHandler, store: s}
}

// healthCheckHandler always answers 200 while the process is up; ready
// tells callers whether the database is usable.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		OK:   true,
		Time: time.Now().UTC(),
	}

	if h.store != nil {
		stats := h.store.Stats()
		resp.PersistCount = stats.PersistCount
		if !stats.LastPersistedAt.IsZero() {
			at := stats.LastPersistedAt
			resp.LastPersistedAt = &at
		}

		ctx, cancel := internal.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		resp.Ready = stats.Ready && h.store.Ping(ctx) == nil
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
