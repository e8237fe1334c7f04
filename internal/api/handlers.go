package api

import (
	"errors"
	"net/http"

	"github.com/essayflow/essayflow/internal/analyze"
	"github.com/essayflow/essayflow/internal/highlight"
	"github.com/essayflow/essayflow/internal/model"
	"github.com/essayflow/essayflow/internal/report"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Highlight ---

// highlightRequest anchors already-obtained feedback in an essay without
// touching the model. The pure core, exposed.
type highlightRequest struct {
	Essay    string               `json:"essay"`
	Feedback []model.FeedbackItem `json:"feedback"`
}

type highlightResponse struct {
	Ranges   []highlight.Range   `json:"ranges"`
	Segments []highlight.Segment `json:"segments"`
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Essay == "" {
		writeError(w, http.StatusBadRequest, "essay is required")
		return
	}

	ranges := highlight.BuildRanges(req.Essay, req.Feedback)
	writeJSON(w, http.StatusOK, highlightResponse{
		Ranges:   ranges,
		Segments: highlight.Split(req.Essay, ranges),
	})
}

// --- Analyze ---

type analyzeRequest struct {
	Essay     string   `json:"essay"`
	SchoolIDs []string `json:"school_ids,omitempty"`
	APIKey    string   `json:"api_key,omitempty"`
}

type analyzeResponse struct {
	Result   *model.AnalysisResult `json:"result"`
	Ranges   []highlight.Range     `json:"ranges"`
	Segments []highlight.Segment   `json:"segments"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Essay == "" {
		writeError(w, http.StatusBadRequest, "essay is required")
		return
	}

	client, err := s.cache.Get(s.credential(req.APIKey))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "no API credential available; supply api_key or configure one")
		return
	}

	result, err := client.Analyze(r.Context(), req.Essay, model.SchoolsByIDs(req.SchoolIDs))
	if err != nil {
		writeError(w, analyzeStatus(err), err.Error())
		return
	}

	ranges := highlight.BuildRanges(req.Essay, result.Feedback)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Result:   result,
		Ranges:   ranges,
		Segments: highlight.Split(req.Essay, ranges),
	})
}

// analyzeStatus maps the analysis error taxonomy onto HTTP status codes.
func analyzeStatus(err error) int {
	switch {
	case errors.Is(err, analyze.ErrEssayTooShort):
		return http.StatusBadRequest
	case errors.Is(err, analyze.ErrMissingCredential):
		return http.StatusUnauthorized
	case errors.Is(err, analyze.ErrMalformedResponse),
		errors.Is(err, analyze.ErrUnsupportedModel):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// --- Report ---

type reportRequest struct {
	Result *model.AnalysisResult `json:"result"`
	To     string                `json:"to,omitempty"`
}

type reportResponse struct {
	Text   string `json:"text"`
	Mailto string `json:"mailto"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Result == nil {
		writeError(w, http.StatusBadRequest, "result is required")
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Text:   report.RenderText(req.Result),
		Mailto: report.MailtoURL(req.To, req.Result),
	})
}
