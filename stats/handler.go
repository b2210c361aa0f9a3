// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package stats

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler serves the statistics sources over HTTP.
type Handler struct {
	collector *Collector
}

// NewHandler creates a Handler.
func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

// Register mounts the statistics endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stats", h.HandleSources)
	r.Get("/stats/{source}", h.HandleReport)
}

// HandleSources handles GET /stats requests.
func (h *Handler) HandleSources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sources": h.collector.Sources()})
}

// HandleReport handles GET /stats/{source} requests.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "source")
	report, ok, err := h.collector.Report(r.Context(), source)
	switch {
	case err != nil:
		h.collector.logger.Errorf("failed to compute stats source=(%s): %v", source, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute statistics"})
	case !ok:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown statistics source"})
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
