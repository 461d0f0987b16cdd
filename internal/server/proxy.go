package server

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/jobdesk/internal/api"
)

// maxProxyBody caps a forwarded ATS request. CV and job description text
// together stay far below this.
const maxProxyBody = 2 << 20

// handleATSAnalyze forwards the request body and bearer token to the
// backend's analyze endpoint on the long-timeout client and relays the
// backend's status and body unchanged.
func (s *Server) handleATSAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxProxyBody+1))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(body) > maxProxyBody {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, s.apiURL+api.ATSAnalyzePath, bytes.NewReader(body))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "could not build backend request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, r.Header.Get(requestIDHeader))
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := s.proxyClient.Do(req)
	if err != nil {
		log.Printf("[ats-proxy] backend unreachable: %v", err)
		s.errorResponse(w, http.StatusBadGateway, api.MsgNetwork)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("[ats-proxy] relaying response: %v", err)
	}
}
