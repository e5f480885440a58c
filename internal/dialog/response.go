package dialog

import "poezdka/internal/models"

// Hint tells the transport layer which reply keyboard fits the response.
// It replaces substring sniffing on rendered prose.
type Hint string

const (
	UIMain      Hint = "main"
	UICart      Hint = "cart"
	UIConfirm   Hint = "confirm"
	UIScenarios Hint = "scenarios"
	UIPromos    Hint = "promos"
	UITicket    Hint = "ticket"
	UIHelp      Hint = "help"
)

// Response is the envelope every handler returns. Order is set only on
// the reply that committed an order, so the transport can notify
// managers without inspecting the prose.
type Response struct {
	Text  string
	UI    Hint
	Order *models.Order
}

func reply(text string, ui Hint) Response {
	return Response{Text: text, UI: ui}
}
