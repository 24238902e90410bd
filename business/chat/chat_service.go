package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopmate/domain"
	"shopmate/internal/repository/actions"
	"shopmate/pkg/logger"
	"shopmate/pkg/metrics"
)

type IntentClassifier interface {
	DetectIntent(ctx context.Context, message string) domain.Intent
}

// ActionsClient is the orchestrator's view of its own action endpoints.
type ActionsClient interface {
	GetDeals(ctx context.Context, authorization, message string) (*actions.ActionResult, error)
	GetOrders(ctx context.Context, authorization, message string) (*actions.ActionResult, error)
	GetPayments(ctx context.Context, authorization string) (*actions.ActionResult, error)
}

type SessionRepository interface {
	AppendTurn(ctx context.Context, sessionID string, turn domain.ChatTurn) error
	GetTurns(ctx context.Context, sessionID string) ([]domain.ChatTurn, error)
}

type ChatService struct {
	classifier IntentClassifier
	actions    ActionsClient
	sessions   SessionRepository
}

func NewChatService(classifier IntentClassifier, actionsClient ActionsClient, sessions SessionRepository) *ChatService {
	return &ChatService{
		classifier: classifier,
		actions:    actionsClient,
		sessions:   sessions,
	}
}

// intentResponses are the canned replies for non-action intents.
var intentResponses = map[domain.Intent]string{
	domain.IntentSupport:  "I'm here to help! What can I assist you with? You can ask about deals, orders, payments, or any other questions you have.",
	domain.IntentThanks:   "You're welcome! I'm happy to help. Is there anything else you'd like to know?",
	domain.IntentGreeting: "Hello! How can I help you today?",
	domain.IntentOthers:   "I understand. How can I assist you today? You can ask about deals, orders, payments, or anything else you need help with.",
	domain.IntentUnknown:  "I'm not sure I understand. Can you please clarify? You can ask about deals, orders, payments, or ask for help.",
}

// NewSessionID mints an opaque conversation identifier.
func NewSessionID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), random[:9])
}

// Chat classifies the message, dispatches to the matching action endpoint and
// assembles the combined text+data reply. Action failures degrade to an
// apologetic message; they never fail the chat itself.
func (s *ChatService) Chat(ctx context.Context, authorization, sessionID, message string) domain.ChatResult {
	metrics.ChatRequests.Inc()

	intent := s.classifier.DetectIntent(ctx, message)
	metrics.ChatIntents.WithLabelValues(string(intent)).Inc()

	if sessionID == "" {
		sessionID = NewSessionID()
	}

	result := domain.ChatResult{
		Data: domain.ChatData{
			Intent:    intent,
			SessionID: sessionID,
		},
	}

	switch intent {
	case domain.IntentDeals:
		dealsResult, err := s.actions.GetDeals(ctx, authorization, message)
		if err != nil {
			logger.Error("Deals action failed", err)
			result.Message = "Sorry, I couldn't fetch the deals right now. Please try again later."
			break
		}
		result.Message = dealsResult.Message
		result.Data.Deals = dealsResult.Field("deals")
		result.Data.PriceRange = dealsResult.Field("price_range")

	case domain.IntentOrders:
		ordersResult, err := s.actions.GetOrders(ctx, authorization, message)
		if err != nil {
			logger.Error("Orders action failed", err)
			result.Message = "Sorry, I couldn't fetch your orders. Please try again later."
			break
		}
		result.Message = ordersResult.Message
		result.Data.Orders = ordersResult.Field("orders")
		result.Data.OrderFilters = ordersResult.Field("order_filters")

	case domain.IntentPayment:
		paymentsResult, err := s.actions.GetPayments(ctx, authorization)
		if err != nil {
			logger.Error("Payments action failed", err)
			result.Message = "Sorry, I couldn't fetch your payment status. Please try again later."
			break
		}
		result.Message = renderPaymentsMessage(paymentsResult.Data)
		result.Data.Payments = paymentsResult.Data

	default:
		result.Message = intentResponses[intent]
		if result.Message == "" {
			result.Message = intentResponses[domain.IntentUnknown]
		}
	}

	// Best effort: losing the session log must never lose the reply.
	turn := domain.ChatTurn{
		Message:   message,
		Intent:    intent,
		Reply:     result.Message,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.AppendTurn(ctx, sessionID, turn); err != nil {
		logger.Warn("Failed to store chat turn", err)
	}

	return result
}

// History returns the stored conversation for a session id.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatTurn, error) {
	return s.sessions.GetTurns(ctx, sessionID)
}

func renderPaymentsMessage(data json.RawMessage) string {
	var payments []domain.PaymentWithOrder
	if err := json.Unmarshal(data, &payments); err != nil || len(payments) == 0 {
		return "You don't have any payment records yet."
	}

	lines := make([]string, 0, len(payments))
	for i, payment := range payments {
		lines = append(lines, fmt.Sprintf("%d. Amount Paid: $%v\n  Pending Amount: $%v\n  Status: %s",
			i+1, payment.AmountPaid, payment.PendingAmount, payment.Status))
	}

	return "Here are all your payment statuses:\n\n" + strings.Join(lines, "\n\n")
}
