package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vista-ads/internal/core/port"
)

// handleClick redirects a clicked ad to its campaign URL, resolved
// through the correlation token minted at selection time. Expired or
// unknown tokens produce HTTP 404; the 30-second window is the
// contract, so a late click is simply gone.
func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}
	campaignURL, err := h.svc.ClickThrough(r.Context(), token)
	if errors.Is(err, port.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("click error", slog.Any("error", err))
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, campaignURL, http.StatusFound)
}
