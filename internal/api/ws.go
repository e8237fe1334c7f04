package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/essayflow/essayflow/internal/highlight"
	"github.com/essayflow/essayflow/internal/model"
	"github.com/essayflow/essayflow/internal/selection"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // local single-user server
	},
}

// WebSocket message types from client.
const (
	wsMsgLoad              = "load"
	wsMsgActivateHighlight = "activate_highlight"
	wsMsgToggleCard        = "toggle_card"
	wsMsgFilter            = "filter"
	wsMsgReset             = "reset"
	wsMsgFinish            = "finish"
)

// WebSocket message types to client.
const (
	wsMsgLoaded    = "loaded"
	wsMsgSelection = "selection"
	wsMsgFiltered  = "filtered"
	wsMsgSummary   = "summary"
	wsMsgError     = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsLoad loads an essay plus an analysis result into the session.
type wsLoad struct {
	Essay  string                `json:"essay"`
	Result *model.AnalysisResult `json:"result"`
}

type wsIDMsg struct {
	ID int `json:"id"`
}

type wsFilterMsg struct {
	Filter string `json:"filter"` // all | critical | high-impact
}

type wsLoadedResponse struct {
	Ranges   []highlight.Range   `json:"ranges"`
	Segments []highlight.Segment `json:"segments"`
	Items    int                 `json:"items"`
}

// wsSelectionResponse reports the state machine after a transition, plus
// the scroll request the UI should honor (target "none" when entering
// Inactive).
type wsSelectionResponse struct {
	ActiveID     *int   `json:"active_id"`
	ScrollTarget string `json:"scroll_target"`
	ScrollID     int    `json:"scroll_id,omitempty"`
}

type wsFilteredResponse struct {
	Filter     string `json:"filter"`
	VisibleIDs []int  `json:"visible_ids"`
	ActiveID   *int   `json:"active_id"`
}

type wsSummaryResponse struct {
	Items    int    `json:"items"`
	Anchored int    `json:"anchored"`
	Filter   string `json:"filter"`
	ActiveID *int   `json:"active_id"`
}

// reviewSession holds server-side state for one WebSocket review: exactly
// the per-session state the TUI keeps, driven by the same controller.
type reviewSession struct {
	essay    string
	result   *model.AnalysisResult
	ranges   []highlight.Range
	segments []highlight.Segment
	filter   model.Filter
	sel      selection.Controller
}

func (ses *reviewSession) loaded() bool { return ses.result != nil }

func (ses *reviewSession) activePtr() *int {
	if id, ok := ses.sel.Active(); ok {
		return &id
	}
	return nil
}

func (ses *reviewSession) visibleIDs() []int {
	ids := []int{}
	for _, f := range ses.filter.Apply(ses.result.Feedback) {
		ids = append(ids, f.ID)
	}
	return ids
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := &reviewSession{}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendWSError(conn, "invalid message format")
			continue
		}

		switch msg.Type {
		case wsMsgLoad:
			handleWSLoad(conn, session, msg.Data)
		case wsMsgActivateHighlight:
			handleWSActivate(conn, session, msg.Data)
		case wsMsgToggleCard:
			handleWSToggle(conn, session, msg.Data)
		case wsMsgFilter:
			handleWSFilter(conn, session, msg.Data)
		case wsMsgReset:
			handleWSReset(conn, session)
		case wsMsgFinish:
			handleWSFinish(conn, session)
		default:
			sendWSError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func handleWSLoad(conn *websocket.Conn, session *reviewSession, data json.RawMessage) {
	var req wsLoad
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid load data")
		return
	}
	if req.Essay == "" || req.Result == nil {
		sendWSError(conn, "essay and result are required")
		return
	}

	session.essay = req.Essay
	session.result = req.Result
	session.ranges = highlight.BuildRanges(req.Essay, req.Result.Feedback)
	session.segments = highlight.Split(req.Essay, session.ranges)
	session.filter = model.FilterAll
	session.sel.Reset()

	sendWSMessage(conn, wsMsgLoaded, wsLoadedResponse{
		Ranges:   session.ranges,
		Segments: session.segments,
		Items:    len(req.Result.Feedback),
	})
}

func handleWSActivate(conn *websocket.Conn, session *reviewSession, data json.RawMessage) {
	if !session.loaded() {
		sendWSError(conn, "no session loaded")
		return
	}
	var req wsIDMsg
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid activate_highlight data")
		return
	}

	scroll := session.sel.ActivateFromHighlight(req.ID)
	sendSelection(conn, session, scroll)
}

func handleWSToggle(conn *websocket.Conn, session *reviewSession, data json.RawMessage) {
	if !session.loaded() {
		sendWSError(conn, "no session loaded")
		return
	}
	var req wsIDMsg
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid toggle_card data")
		return
	}

	scroll := session.sel.ToggleFromCard(req.ID)
	sendSelection(conn, session, scroll)
}

func handleWSFilter(conn *websocket.Conn, session *reviewSession, data json.RawMessage) {
	if !session.loaded() {
		sendWSError(conn, "no session loaded")
		return
	}
	var req wsFilterMsg
	if err := json.Unmarshal(data, &req); err != nil {
		sendWSError(conn, "invalid filter data")
		return
	}

	var f model.Filter
	switch req.Filter {
	case "all":
		f = model.FilterAll
	case "critical":
		f = model.FilterCritical
	case "high-impact":
		f = model.FilterHighImpact
	default:
		sendWSError(conn, "unknown filter: "+req.Filter)
		return
	}

	session.filter = f
	visible := session.visibleIDs()
	session.sel.ReconcileFilter(func(id int) bool {
		for _, v := range visible {
			if v == id {
				return true
			}
		}
		return false
	})

	sendWSMessage(conn, wsMsgFiltered, wsFilteredResponse{
		Filter:     f.String(),
		VisibleIDs: visible,
		ActiveID:   session.activePtr(),
	})
}

func handleWSReset(conn *websocket.Conn, session *reviewSession) {
	// Reset clears the result; the draft stays loaded on the client side.
	session.result = nil
	session.ranges = nil
	session.segments = nil
	session.filter = model.FilterAll
	session.sel.Reset()

	sendWSMessage(conn, wsMsgSelection, wsSelectionResponse{
		ActiveID:     nil,
		ScrollTarget: selection.ScrollNone.String(),
	})
}

func handleWSFinish(conn *websocket.Conn, session *reviewSession) {
	if !session.loaded() {
		sendWSError(conn, "no session loaded")
		return
	}

	sendWSMessage(conn, wsMsgSummary, wsSummaryResponse{
		Items:    len(session.result.Feedback),
		Anchored: len(session.ranges),
		Filter:   session.filter.String(),
		ActiveID: session.activePtr(),
	})
}

func sendSelection(conn *websocket.Conn, session *reviewSession, scroll selection.ScrollRequest) {
	resp := wsSelectionResponse{
		ActiveID:     session.activePtr(),
		ScrollTarget: scroll.Target.String(),
	}
	if scroll.Target != selection.ScrollNone {
		resp.ScrollID = scroll.ID
	}
	sendWSMessage(conn, wsMsgSelection, resp)
}

func sendWSMessage(conn *websocket.Conn, msgType string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("ws marshal failed", "error", err)
		return
	}
	msg := wsMessage{Type: msgType, Data: raw}
	if err := conn.WriteJSON(msg); err != nil {
		slog.Warn("ws write failed", "error", err)
	}
}

func sendWSError(conn *websocket.Conn, errMsg string) {
	sendWSMessage(conn, wsMsgError, map[string]string{"message": errMsg})
}
