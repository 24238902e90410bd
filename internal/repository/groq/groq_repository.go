package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopmate/domain"
	"shopmate/pkg/logger"
	"shopmate/pkg/metrics"
)

type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// GroqRepository talks to the Groq chat-completions API. Every method fails
// soft: a missing key, transport error or unparseable reply degrades to the
// neutral result (UNKNOWN intent, nil extraction) instead of an error.
type GroqRepository struct {
	cfg        GroqConfig
	httpClient *http.Client
}

func NewGroqRepository(cfg GroqConfig) *GroqRepository {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.1-8b-instant"
	}

	return &GroqRepository{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages    []chatMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (r *GroqRepository) chatCompletion(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	payload := completionRequest{
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Model:       r.cfg.Model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	url := strings.TrimRight(r.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)

	started := time.Now()
	res, err := r.httpClient.Do(req)
	metrics.NLPRequestLatency.Observe(time.Since(started).Seconds())
	if err != nil {
		return "", fmt.Errorf("groq request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read groq response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode groq response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("groq error: %s", parsed.Error.Message)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq status %d", res.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// extractJSON recovers a JSON object from a completion that may wrap it in
// prose or markdown code fences: fences are stripped, then the first balanced
// {...} substring wins.
func extractJSON(s string) string {
	cleaned := strings.ReplaceAll(s, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	if start < 0 {
		return strings.TrimSpace(cleaned)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return cleaned[start : i+1]
				}
			}
		}
	}

	return strings.TrimSpace(cleaned[start:])
}

const intentSystemPrompt = "You are an intent detection system. When a message contains both a greeting and an action request, ALWAYS prioritize the action intent (DEALS, ORDERS, PAYMENT, SUPPORT) over GREETING. Only return GREETING if the message is purely a greeting with no action. Return THANKS for expressions of gratitude. Return OTHERS for general messages. Always respond with only one word: DEALS, ORDERS, PAYMENT, SUPPORT, THANKS, GREETING, OTHERS, or UNKNOWN."

const intentPromptTemplate = `Analyze the user's message and determine their PRIMARY intent. If the message contains both a greeting AND an action request, prioritize the ACTION intent.

Available intents (in priority order):
1. DEALS: User wants to see deals, discounts, offers, promotions, or sales
2. ORDERS: User wants to check their orders, order history, order status, or track orders
3. PAYMENT: User wants to check payment status, payment history, bills, or invoices
4. SUPPORT: User needs help, support, assistance, has questions, problems, issues, or wants to contact support (keywords: help, support, assistance, problem, issue, question, contact, customer service)
5. THANKS: User is expressing gratitude, appreciation, or saying thank you (keywords: thanks, thank you, appreciate, grateful, etc.)
6. GREETING: User is ONLY greeting with no action request (hello, hi, hey, good morning, etc.)
7. OTHERS: User's message doesn't fit into any specific category but is a general message or statement
8. UNKNOWN: If the message doesn't clearly match any of the above intents

CRITICAL RULES:
- If message contains action words (deals, orders, payment, help, support) even with a greeting, return the ACTION intent
- Examples: "hello, show me deals" -> DEALS, "hi, I need help" -> SUPPORT, "hey, check my orders" -> ORDERS
- Only return GREETING if the message is purely a greeting with no action request
- Return THANKS for expressions of gratitude (thanks, thank you, appreciate, etc.)
- Return OTHERS for general messages that don't fit other categories

User message: %q

Respond with ONLY the intent name (one word: DEALS, ORDERS, PAYMENT, SUPPORT, THANKS, GREETING, OTHERS, or UNKNOWN).`

// DetectIntent classifies a chat message into one of the eight labels.
// UNKNOWN is the hard fallback for any failure, since there is no local
// classifier to fall back on.
func (r *GroqRepository) DetectIntent(ctx context.Context, message string) domain.Intent {
	if r.cfg.APIKey == "" {
		logger.Warn("GROQ_API_KEY not configured, falling back to UNKNOWN intent")
		return domain.IntentUnknown
	}

	reply, err := r.chatCompletion(ctx, intentSystemPrompt, fmt.Sprintf(intentPromptTemplate, message), 0.3, 10)
	if err != nil {
		logger.Error("Failed to detect intent", err)
		return domain.IntentUnknown
	}

	label := strings.ToUpper(strings.TrimSpace(reply))

	for _, intent := range domain.AllIntents {
		if label == string(intent) {
			return intent
		}
	}

	// Model sometimes pads the label with prose: take the first known label
	// in priority order.
	for _, intent := range domain.AllIntents {
		if strings.Contains(label, string(intent)) {
			return intent
		}
	}

	logger.Warn("Groq returned unexpected intent", "reply", label)
	return domain.IntentUnknown
}

const priceSystemPrompt = `You are a JSON-only response system. Extract price range information from user messages. CRITICAL RULES: 'below', 'under', 'less than', 'up to' indicate MAXIMUM price (set maxPrice, minPrice=null). 'above', 'over', 'more than', 'at least' indicate MINIMUM price (set minPrice, maxPrice=null). Return ONLY valid JSON in the format {"minPrice": number or null, "maxPrice": number or null}. Never write code or explanations, only JSON.`

const pricePromptTemplate = `Extract price range information from the following message. The user may mention:
- A minimum price (e.g., "above 1000", "more than 500", "at least 2000", "over 1500", "greater than 800")
- A maximum price (e.g., "below 5000", "less than 3000", "under 1000", "up to 2000", "maximum 4000")
- A price range (e.g., "between 1000 and 5000", "from 500 to 2000", "1000-5000")

User message: %q

CRITICAL: Return ONLY a valid JSON object. Do NOT write code, functions, or explanations. Return ONLY this format:
{"minPrice": number or null, "maxPrice": number or null}

IMPORTANT PRICE EXTRACTION RULES (READ CAREFULLY):
- MAXIMUM PRICE (user wants deals BELOW/UNDER a price):
  "below X", "under X", "less than X", "up to X", "maximum X" -> set maxPrice to X, minPrice to null
- MINIMUM PRICE (user wants deals ABOVE/OVER a price):
  "above X", "more than X", "at least X", "over X", "greater than X" -> set minPrice to X, maxPrice to null
- PRICE RANGE (user wants deals BETWEEN two prices):
  "between X and Y", "from X to Y", "X-Y" -> set minPrice to the smaller value, maxPrice to the larger value
- If no price information is found, return: {"minPrice": null, "maxPrice": null}

CRITICAL: Do NOT confuse "below/under" with "above/over". "Below" means maximum price (price <= X), "Above" means minimum price (price >= X).

Extract numeric values only, ignore currency symbols.`

type priceRangePayload struct {
	MinPrice *float64 `json:"minPrice"`
	MaxPrice *float64 `json:"maxPrice"`
}

// ExtractPriceRange pulls an inclusive price window out of free text. Nil
// means no usable range was extracted, never an error.
func (r *GroqRepository) ExtractPriceRange(ctx context.Context, message string) *domain.PriceRange {
	if r.cfg.APIKey == "" {
		return nil
	}

	reply, err := r.chatCompletion(ctx, priceSystemPrompt, fmt.Sprintf(pricePromptTemplate, message), 0.1, 100)
	if err != nil {
		logger.Error("Failed to extract price range", err)
		return nil
	}

	var payload priceRangePayload
	if err := json.Unmarshal([]byte(extractJSON(reply)), &payload); err != nil {
		logger.Error("Failed to parse price range response", "reply", reply)
		return nil
	}

	rangeOut := &domain.PriceRange{}
	if payload.MinPrice != nil && *payload.MinPrice >= 0 {
		v := *payload.MinPrice
		rangeOut.MinPrice = &v
	}
	if payload.MaxPrice != nil && *payload.MaxPrice >= 0 {
		v := *payload.MaxPrice
		rangeOut.MaxPrice = &v
	}

	if rangeOut.MinPrice == nil && rangeOut.MaxPrice == nil {
		return nil
	}

	// The prompt asks the model to order a "between X and Y" pair, but the
	// invariant holds locally too.
	if rangeOut.MinPrice != nil && rangeOut.MaxPrice != nil && *rangeOut.MinPrice > *rangeOut.MaxPrice {
		rangeOut.MinPrice, rangeOut.MaxPrice = rangeOut.MaxPrice, rangeOut.MinPrice
	}

	return rangeOut
}

const orderFilterSystemPrompt = `You are a JSON-only response system. Extract order filtering from user messages including status, this-month flag, and recent flag. Return ONLY valid JSON in the format {"status": "pending"|"confirmed"|"shipped"|"delivered"|"cancelled" or null, "thisMonthOnly": true or null, "recentOnly": true or null}. Never write code or explanations, only JSON.`

const orderFilterPromptTemplate = `Extract order filtering information from the following message. The user may ask for:
- "order" or "my orders" or "orders" -> return all null (no filters)
- "my past orders" or "past orders" -> return all null (no filters, get all orders)
- "my recent order" or "recent order" -> return {"recentOnly": true} (get only the most recent order)
- "my this month orders" or "this month orders" or "orders this month" -> return {"thisMonthOnly": true}
- Order status filters: "pending orders", "confirmed orders", "shipped orders", "delivered orders", "cancelled orders" -> return {"status": "pending"|"confirmed"|"shipped"|"delivered"|"cancelled"}
- COMBINATIONS: "pending orders this month", "this month pending orders", "shipped orders this month" -> return BOTH status AND thisMonthOnly

User message: %q

CRITICAL: Return ONLY a valid JSON object. Do NOT write code, functions, or explanations. Return ONLY this format:
{
  "status": "pending" | "confirmed" | "shipped" | "delivered" | "cancelled" | null,
  "thisMonthOnly": true | null,
  "recentOnly": true | null
}

If the message doesn't match any of these patterns, return all null.`

type orderFiltersPayload struct {
	Status        *string `json:"status"`
	ThisMonthOnly *bool   `json:"thisMonthOnly"`
	RecentOnly    *bool   `json:"recentOnly"`
}

// ExtractOrderFilters pulls status/this-month/recent slots out of free text.
// Nil means nothing was extracted, never an error.
func (r *GroqRepository) ExtractOrderFilters(ctx context.Context, message string) *domain.OrderFilters {
	if r.cfg.APIKey == "" {
		return nil
	}

	reply, err := r.chatCompletion(ctx, orderFilterSystemPrompt, fmt.Sprintf(orderFilterPromptTemplate, message), 0.1, 100)
	if err != nil {
		logger.Error("Failed to extract order filters", err)
		return nil
	}

	var payload orderFiltersPayload
	if err := json.Unmarshal([]byte(extractJSON(reply)), &payload); err != nil {
		logger.Error("Failed to parse order filters response", "reply", reply)
		return nil
	}

	return &domain.OrderFilters{
		Status:        payload.Status,
		ThisMonthOnly: payload.ThisMonthOnly,
		RecentOnly:    payload.RecentOnly,
	}
}
