package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"vista-ads/internal/core/port"
)

// handleAdvertisement selects at most one campaign for the requesting
// property. Query parameters: property_id (required), keywords
// (comma-separated, optional), ip (optional override for proxied
// setups; defaults to the connection's remote address). A no-fill
// returns HTTP 204, never an error status.
func (h *Handler) handleAdvertisement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	propertyID, err := strconv.ParseInt(q.Get("property_id"), 10, 64)
	if err != nil || propertyID <= 0 {
		http.Error(w, "invalid property_id", http.StatusBadRequest)
		return
	}

	req := port.AdRequest{
		PropertyID: propertyID,
		Keywords:   splitKeywords(q.Get("keywords")),
		IPAddress:  clientAddress(r, q.Get("ip")),
	}
	resp, err := h.svc.SelectAdvertisement(r.Context(), req)
	if err != nil {
		h.logger.Error("select advertisement error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

func clientAddress(r *http.Request, override string) string {
	if override != "" {
		return override
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
