package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/essayflow/essayflow/internal/analyze"
	"github.com/essayflow/essayflow/internal/model"
)

const testEssay = "I walked into the lab. It was loud. " +
	"The noise rearranged everything I believed about careful, quiet science."

func testResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		OverallScore: 80,
		Summary:      "Strong opening, soft ending.",
		Feedback: []model.FeedbackItem{
			{ID: 1, Category: "Hook Quality", Score: 92, Title: "Good hook", Quote: "walked into the lab", Action: "Keep it."},
			{ID: 2, Category: "Narrative Arc", Score: 70, Title: "Soft ending", Quote: "nonexistent phrase", Action: "Sharpen the close."},
		},
	}
}

func newTestServer() *Server {
	return New(":0", Config{})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestHighlightEndpoint(t *testing.T) {
	srv := newTestServer()

	body, _ := json.Marshal(highlightRequest{Essay: testEssay, Feedback: testResult().Feedback})
	req := httptest.NewRequest(http.MethodPost, "/api/highlight", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp highlightResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}

	// Item 2's quote is unlocatable and must be dropped from highlighting.
	if len(resp.Ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(resp.Ranges))
	}
	if resp.Ranges[0].FeedbackID != 1 {
		t.Errorf("expected range for item 1, got %d", resp.Ranges[0].FeedbackID)
	}

	var joined strings.Builder
	for _, s := range resp.Segments {
		joined.WriteString(s.Text)
	}
	if joined.String() != testEssay {
		t.Error("segments do not reassemble the essay")
	}
}

func TestHighlightRequiresEssay(t *testing.T) {
	srv := newTestServer()

	body, _ := json.Marshal(highlightRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/highlight", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHighlightInvalidJSON(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/highlight", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAnalyzeWithoutCredential(t *testing.T) {
	srv := newTestServer() // no default credential

	body, _ := json.Marshal(analyzeRequest{Essay: testEssay})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	modelJSON, _ := json.Marshal(map[string]any{
		"wordCount": 20, "overallScore": 85, "aiProbability": 5,
		"readabilityGrade": "A", "sentiment": "High", "uniquenessScore": "9/10",
		"summary": "Good essay.",
		"feedback": []map[string]any{
			{"id": 1, "category": "Hook Quality", "score": 90, "title": "Hook",
				"summary": "s", "details": "d", "quote": "walked into the lab", "action": "a"},
		},
	})

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": string(modelJSON)}},
			},
		})
	}))
	defer upstream.Close()

	srv := New(":0", Config{
		DefaultCredential: "server-key",
		Analyze:           analyze.Options{BaseURL: upstream.URL + "/v1"},
	})

	body, _ := json.Marshal(analyzeRequest{Essay: testEssay, SchoolIDs: []string{"jhu"}})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp analyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp.Result == nil || resp.Result.OverallScore != 85 {
		t.Errorf("unexpected result: %+v", resp.Result)
	}
	if len(resp.Ranges) != 1 {
		t.Errorf("expected 1 range, got %d", len(resp.Ranges))
	}
	if len(resp.Segments) == 0 {
		t.Error("expected segments")
	}
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	defer upstream.Close()

	srv := New(":0", Config{
		DefaultCredential: "server-key",
		Analyze:           analyze.Options{BaseURL: upstream.URL + "/v1"},
	})

	body, _ := json.Marshal(analyzeRequest{Essay: testEssay})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReportEndpoint(t *testing.T) {
	srv := newTestServer()

	body, _ := json.Marshal(reportRequest{Result: testResult(), To: "me@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp reportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if !strings.Contains(resp.Text, "ESSAY LAB REPORT") {
		t.Error("expected text report")
	}
	if !strings.HasPrefix(resp.Mailto, "mailto:me@example.com?") {
		t.Errorf("unexpected mailto: %.40s", resp.Mailto)
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	return conn
}

func wsLoadSession(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	loadData, _ := json.Marshal(wsLoad{Essay: testEssay, Result: testResult()})
	if err := conn.WriteJSON(wsMessage{Type: wsMsgLoad, Data: loadData}); err != nil {
		t.Fatalf("ws write load: %v", err)
	}

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ws read loaded: %v", err)
	}
	if msg.Type != wsMsgLoaded {
		t.Fatalf("expected 'loaded', got %q", msg.Type)
	}

	var loaded wsLoadedResponse
	if err := json.Unmarshal(msg.Data, &loaded); err != nil {
		t.Fatalf("unmarshal loaded: %v", err)
	}
	if loaded.Items != 2 {
		t.Errorf("expected 2 items, got %d", loaded.Items)
	}
	if len(loaded.Ranges) != 1 {
		t.Errorf("expected 1 range, got %d", len(loaded.Ranges))
	}
}

func TestWebSocketSelectionSession(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	wsLoadSession(t, conn)

	// Toggle card 1: activates and asks for a highlight scroll.
	idData, _ := json.Marshal(wsIDMsg{ID: 1})
	conn.WriteJSON(wsMessage{Type: wsMsgToggleCard, Data: idData})

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ws read selection: %v", err)
	}
	var sel wsSelectionResponse
	json.Unmarshal(msg.Data, &sel)
	if sel.ActiveID == nil || *sel.ActiveID != 1 {
		t.Errorf("expected active 1, got %v", sel.ActiveID)
	}
	if sel.ScrollTarget != "highlight" || sel.ScrollID != 1 {
		t.Errorf("expected highlight scroll to 1, got %+v", sel)
	}

	// Toggle card 1 again: inactive, no scroll.
	conn.WriteJSON(wsMessage{Type: wsMsgToggleCard, Data: idData})
	conn.ReadJSON(&msg)
	json.Unmarshal(msg.Data, &sel)
	if sel.ActiveID != nil {
		t.Errorf("expected inactive, got %v", *sel.ActiveID)
	}
	if sel.ScrollTarget != "none" {
		t.Errorf("deactivation must not scroll, got %q", sel.ScrollTarget)
	}

	// Activate from the highlight side: scrolls to the card.
	conn.WriteJSON(wsMessage{Type: wsMsgActivateHighlight, Data: idData})
	conn.ReadJSON(&msg)
	json.Unmarshal(msg.Data, &sel)
	if sel.ActiveID == nil || *sel.ActiveID != 1 {
		t.Errorf("expected active 1, got %v", sel.ActiveID)
	}
	if sel.ScrollTarget != "card" {
		t.Errorf("expected card scroll, got %q", sel.ScrollTarget)
	}
}

func TestWebSocketFilterResetsHiddenSelection(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	wsLoadSession(t, conn)

	// Activate item 1 (score 92).
	idData, _ := json.Marshal(wsIDMsg{ID: 1})
	conn.WriteJSON(wsMessage{Type: wsMsgToggleCard, Data: idData})
	conn.ReadJSON(&wsMessage{})

	// Critical filter hides item 1 (score >= 75); selection must reset.
	fData, _ := json.Marshal(wsFilterMsg{Filter: "critical"})
	conn.WriteJSON(wsMessage{Type: wsMsgFilter, Data: fData})

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ws read filtered: %v", err)
	}
	if msg.Type != wsMsgFiltered {
		t.Fatalf("expected 'filtered', got %q", msg.Type)
	}

	var filtered wsFilteredResponse
	json.Unmarshal(msg.Data, &filtered)
	if filtered.ActiveID != nil {
		t.Errorf("expected selection reset, got active %v", *filtered.ActiveID)
	}
	if len(filtered.VisibleIDs) != 1 || filtered.VisibleIDs[0] != 2 {
		t.Errorf("expected only item 2 visible, got %v", filtered.VisibleIDs)
	}

	// Finish reports the session state.
	conn.WriteJSON(wsMessage{Type: wsMsgFinish})
	conn.ReadJSON(&msg)
	if msg.Type != wsMsgSummary {
		t.Fatalf("expected 'summary', got %q", msg.Type)
	}
	var summary wsSummaryResponse
	json.Unmarshal(msg.Data, &summary)
	if summary.Items != 2 || summary.Anchored != 1 {
		t.Errorf("expected 2 items / 1 anchored, got %d/%d", summary.Items, summary.Anchored)
	}
	if summary.Filter != "critical" {
		t.Errorf("expected critical filter, got %q", summary.Filter)
	}
}

func TestWebSocketRequiresLoad(t *testing.T) {
	ts := httptest.NewServer(newTestServer().Handler())
	defer ts.Close()

	conn := dialWS(t, ts)
	defer conn.Close()

	idData, _ := json.Marshal(wsIDMsg{ID: 1})
	conn.WriteJSON(wsMessage{Type: wsMsgToggleCard, Data: idData})

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ws read: %v", err)
	}
	if msg.Type != wsMsgError {
		t.Errorf("expected error before load, got %q", msg.Type)
	}
}
