// Package selection tracks which feedback item is active and which panel
// should scroll to show it. The state machine is deliberately independent
// of any rendering surface: the TUI and the WebSocket session drive the
// same controller.
package selection

// ScrollTarget names the panel a scroll request is aimed at.
type ScrollTarget int

const (
	ScrollNone ScrollTarget = iota
	ScrollToCard
	ScrollToHighlight
)

func (t ScrollTarget) String() string {
	switch t {
	case ScrollToCard:
		return "card"
	case ScrollToHighlight:
		return "highlight"
	default:
		return "none"
	}
}

// ScrollRequest asks the UI to bring a feedback item's card or highlight
// into view. Fire-and-forget: the UI may satisfy it late or not at all.
type ScrollRequest struct {
	Target ScrollTarget
	ID     int
}

// Controller is the selection state machine. Zero value is Inactive.
// States: Inactive, Active(id). Not safe for concurrent use; each session
// owns exactly one controller on a single goroutine.
type Controller struct {
	activeID int
	active   bool
}

// Active returns the active feedback id, if any.
func (c *Controller) Active() (int, bool) {
	return c.activeID, c.active
}

// IsActive reports whether the given id is the active one.
func (c *Controller) IsActive(id int) bool {
	return c.active && c.activeID == id
}

// ActivateFromHighlight selects id unconditionally: clicking a highlighted
// span always selects it, even if something else was active. The returned
// request scrolls the card panel to the matching card.
func (c *Controller) ActivateFromHighlight(id int) ScrollRequest {
	c.activeID = id
	c.active = true
	return ScrollRequest{Target: ScrollToCard, ID: id}
}

// ToggleFromCard toggles id from the card panel. Selecting the already
// active card deactivates it with no scroll; selecting any other card
// activates it and scrolls the text panel to its highlight. Activating an
// id with no visible highlight is legal; the scroll request simply finds
// nothing to show.
func (c *Controller) ToggleFromCard(id int) ScrollRequest {
	if c.IsActive(id) {
		c.active = false
		return ScrollRequest{}
	}
	c.activeID = id
	c.active = true
	return ScrollRequest{Target: ScrollToHighlight, ID: id}
}

// Reset forces Inactive. Called on new analysis and on session reset.
func (c *Controller) Reset() {
	c.active = false
	c.activeID = 0
}

// ReconcileFilter deactivates the selection when the active item is no
// longer in the visible set. A card that vanished from view should not
// stay invisibly expanded.
func (c *Controller) ReconcileFilter(visible func(id int) bool) {
	if c.active && !visible(c.activeID) {
		c.Reset()
	}
}
