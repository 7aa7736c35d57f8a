package server

import (
	"net/http"
	"net/url"
	"strings"
)

// routeResearch dispatches /api/research/{company}[/signal|/analysis].
func (s *Server) routeResearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/research/")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		WriteError(w, http.StatusBadRequest, "Company name is required")
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	company, err := url.PathUnescape(parts[0])
	if err != nil || strings.TrimSpace(company) == "" {
		WriteError(w, http.StatusBadRequest, "Invalid company name")
		return
	}

	if len(parts) == 1 {
		s.handleResearchProfile(w, r, company)
		return
	}

	switch parts[1] {
	case "signal":
		s.handleResearchSignal(w, r, company)
	case "analysis":
		s.handleResearchAnalysis(w, r, company)
	default:
		WriteError(w, http.StatusNotFound, "Unknown research resource")
	}
}

// handleResearchProfile handles GET /api/research/{company}.
func (s *Server) handleResearchProfile(w http.ResponseWriter, r *http.Request, company string) {
	profile, err := s.app.ResearchService.Collect(r.Context(), company)
	if err != nil {
		s.logger.Error().Err(err).Str("company", company).Msg("Research collection failed")
		WriteError(w, http.StatusBadGateway, "Research failed: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// handleResearchSignal handles GET /api/research/{company}/signal.
func (s *Server) handleResearchSignal(w http.ResponseWriter, r *http.Request, company string) {
	signal := s.app.ResearchService.ResolveStockSignal(r.Context(), company)
	WriteJSON(w, http.StatusOK, signal)
}

// handleResearchAnalysis handles GET /api/research/{company}/analysis.
func (s *Server) handleResearchAnalysis(w http.ResponseWriter, r *http.Request, company string) {
	profile, analysis, err := s.app.RunResearch(r.Context(), company)
	if err != nil {
		s.logger.Error().Err(err).Str("company", company).Msg("Analysis failed")
		WriteError(w, http.StatusBadGateway, "Analysis failed: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"profile":  profile,
		"analysis": analysis,
	})
}
