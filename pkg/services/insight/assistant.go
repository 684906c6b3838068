package insight

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/biz-tools/biz-atlas/pkg/models/domain"
	"github.com/biz-tools/biz-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

const DefaultContextTTL = 5 * time.Minute

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type InvoiceStore interface {
	Find(ctx context.Context, userID string, rng *store.DateRange, filter store.InvoiceFilter) ([]store.Invoice, error)
}

type CustomerStore interface {
	Find(ctx context.Context, userID string, rng *store.DateRange) ([]store.Customer, error)
}

// BusinessContext is the all-time snapshot fed into assistant prompts. The
// figures are advisory, not transactional; serving a slightly stale copy is
// acceptable.
type BusinessContext struct {
	TotalCustomers  int
	TotalInvoices   int
	TotalRevenue    float64
	PendingPayments float64
	OverdueAmount   float64
	TopCustomers    []domain.CustomerValue
}

type cacheEntry struct {
	context   BusinessContext
	fetchedAt time.Time
}

// Assistant answers free-form business questions by pairing the user's
// cached business context with an opaque prompt-to-text model call.
type Assistant struct {
	chat      ChatClient
	invoices  InvoiceStore
	customers CustomerStore
	ttl       time.Duration
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewAssistant(chat ChatClient, invoices InvoiceStore, customers CustomerStore, ttl time.Duration) *Assistant {
	if ttl <= 0 {
		ttl = DefaultContextTTL
	}
	return &Assistant{
		chat:      chat,
		invoices:  invoices,
		customers: customers,
		ttl:       ttl,
		now:       time.Now,
		cache:     make(map[string]cacheEntry),
	}
}

// BusinessContext returns the user's context, recomputing it at most once
// per TTL. The cache is keyed by user id.
func (a *Assistant) BusinessContext(ctx context.Context, userID string) (BusinessContext, error) {
	a.mu.Lock()
	entry, ok := a.cache[userID]
	a.mu.Unlock()
	if ok && a.now().Sub(entry.fetchedAt) < a.ttl {
		return entry.context, nil
	}

	customers, err := a.customers.Find(ctx, userID, nil)
	if err != nil {
		return BusinessContext{}, fmt.Errorf("business context: %w", err)
	}
	invoices, err := a.invoices.Find(ctx, userID, nil, store.InvoiceFilter{})
	if err != nil {
		return BusinessContext{}, fmt.Errorf("business context: %w", err)
	}

	bc := buildContext(customers, invoices)

	a.mu.Lock()
	a.cache[userID] = cacheEntry{context: bc, fetchedAt: a.now()}
	a.mu.Unlock()

	return bc, nil
}

// Ask answers a question about the user's business. The model is treated as
// an opaque function from prompt to text.
func (a *Assistant) Ask(ctx context.Context, userID, question string) (string, error) {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(question) == "" {
		return "", domain.NewValidationError("question", "question must not be empty")
	}

	bc, err := a.BusinessContext(ctx, userID)
	if err != nil {
		return "", err
	}

	resp, err := a.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a business advisor for a small business owner. " +
					"Answer concisely using the business snapshot provided.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(bc, question),
			},
		},
		Temperature: 0.2,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("assistant query: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("assistant query: empty completion")
	}

	logger.Info().Str("user_id", userID).Msg("assistant query answered")
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildContext(customers []store.Customer, invoices []store.Invoice) BusinessContext {
	bc := BusinessContext{
		TotalCustomers: len(customers),
		TotalInvoices:  len(invoices),
	}

	values := make(map[string]float64)
	var order []string
	for _, inv := range invoices {
		switch inv.PaymentStatus {
		case store.PaymentPaid:
			bc.TotalRevenue += inv.TotalAmount
			if inv.CustomerID != "" {
				if _, seen := values[inv.CustomerID]; !seen {
					order = append(order, inv.CustomerID)
				}
				values[inv.CustomerID] += inv.TotalAmount
			}
		case store.PaymentPending:
			bc.PendingPayments += inv.TotalAmount
		}
		if inv.Status == store.InvoiceOverdue {
			bc.OverdueAmount += inv.TotalAmount
		}
	}

	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}
	ranked := make([]domain.CustomerValue, 0, len(order))
	for _, id := range order {
		if name, ok := names[id]; ok {
			ranked = append(ranked, domain.CustomerValue{ID: id, Name: name, Value: values[id]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	bc.TopCustomers = ranked

	return bc
}

func buildPrompt(bc BusinessContext, question string) string {
	var b strings.Builder
	b.WriteString("Business snapshot:\n")
	fmt.Fprintf(&b, "- Customers: %d\n", bc.TotalCustomers)
	fmt.Fprintf(&b, "- Invoices: %d\n", bc.TotalInvoices)
	fmt.Fprintf(&b, "- Revenue collected: %.2f\n", bc.TotalRevenue)
	fmt.Fprintf(&b, "- Pending payments: %.2f\n", bc.PendingPayments)
	fmt.Fprintf(&b, "- Overdue amount: %.2f\n", bc.OverdueAmount)
	if len(bc.TopCustomers) > 0 {
		b.WriteString("- Top customers:\n")
		for _, c := range bc.TopCustomers {
			fmt.Fprintf(&b, "  - %s: %.2f\n", c.Name, c.Value)
		}
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
