package domain

import (
	"encoding/json"
	"time"
)

// Intent is one of the eight labels the classifier may assign to a message.
type Intent string

const (
	IntentDeals    Intent = "DEALS"
	IntentOrders   Intent = "ORDERS"
	IntentPayment  Intent = "PAYMENT"
	IntentSupport  Intent = "SUPPORT"
	IntentThanks   Intent = "THANKS"
	IntentGreeting Intent = "GREETING"
	IntentOthers   Intent = "OTHERS"
	IntentUnknown  Intent = "UNKNOWN"
)

// AllIntents lists the vocabulary in classifier priority order.
var AllIntents = []Intent{
	IntentDeals,
	IntentOrders,
	IntentPayment,
	IntentSupport,
	IntentThanks,
	IntentGreeting,
	IntentOthers,
	IntentUnknown,
}

type (
	// ChatData is the structured half of a chat reply. Only the field matching
	// the dispatched intent is populated.
	ChatData struct {
		Intent       Intent          `json:"intent"`
		SessionID    string          `json:"session_id"`
		Deals        json.RawMessage `json:"deals,omitempty"`
		PriceRange   json.RawMessage `json:"price_range,omitempty"`
		Orders       json.RawMessage `json:"orders,omitempty"`
		OrderFilters json.RawMessage `json:"order_filters,omitempty"`
		Payments     json.RawMessage `json:"payments,omitempty"`
	}

	ChatResult struct {
		Message string
		Data    ChatData
	}

	// ChatTurn is one exchange stored in the session log.
	ChatTurn struct {
		Message   string    `json:"message"`
		Intent    Intent    `json:"intent"`
		Reply     string    `json:"reply"`
		CreatedAt time.Time `json:"created_at"`
	}
)
