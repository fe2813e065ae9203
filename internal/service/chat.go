package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
)

const (
	WelcomeMessage = "Hi there! 👋 I'm your personal travel assistant. Tell me about your dream trip - your budget, destination preferences, or travel dates - and I'll help you find the perfect package!"
	ApologyMessage = "I'm sorry, I'm having trouble connecting right now. Please try again in a moment!"
)

type Suggester interface {
	Suggest(ctx context.Context, body api.SuggestRequest) (*api.SuggestResponse, error)
}

// ChatReply is what the assistant answers to one user message.
type ChatReply struct {
	Text      string
	Offers    []domain.TravelPackage
	FollowUp  string
	Extracted map[string]any
}

type conversation struct {
	sessionID      string
	conversationID string
	busy           bool
}

// ChatService runs the assistant send flow. Each chat has at most one
// suggestion request in flight.
type ChatService struct {
	suggester Suggester
	packages  datasource.PackageSource
	log       datasource.ChatSource

	mu            sync.Mutex
	conversations map[int64]*conversation
}

// NewChatService takes a nil suggester when the backend is disabled; matching
// packages are then picked from the local listing.
func NewChatService(suggester Suggester, packages datasource.PackageSource, log datasource.ChatSource) *ChatService {
	return &ChatService{
		suggester:     suggester,
		packages:      packages,
		log:           log,
		conversations: make(map[int64]*conversation),
	}
}

func (s *ChatService) acquire(chatID int64) (*conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[chatID]
	if !ok {
		c = &conversation{sessionID: "session_" + uuid.NewString()}
		s.conversations[chatID] = c
	}
	if c.busy {
		return nil, domain.ErrChatBusy
	}
	c.busy = true
	return c, nil
}

func (s *ChatService) release(c *conversation, conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.busy = false
	if conversationID != "" {
		c.conversationID = conversationID
	}
}

// Reset forgets the conversation of chatID.
func (s *ChatService) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.conversations[chatID]; ok && !c.busy {
		delete(s.conversations, chatID)
	}
}

// Send asks for suggestions for message. Backend failures produce the apology
// reply rather than an error; only ErrChatBusy and empty input are errors.
func (s *ChatService) Send(ctx context.Context, chatID int64, message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalid("Please type a message.")
	}
	c, err := s.acquire(chatID)
	if err != nil {
		return nil, err
	}

	var res *api.SuggestResponse
	if s.suggester != nil {
		res, err = s.suggester.Suggest(ctx, api.SuggestRequest{
			Prompt:         message,
			Limit:          config.SuggestLimit,
			Sort:           config.SuggestSort,
			Strict:         false,
			ConversationID: c.conversationID,
		})
	} else {
		res, err = s.localSuggest(ctx, message)
	}
	if err != nil {
		s.release(c, "")
		slog.Error("chat suggest", "error", err, "chat_id", chatID)
		return &ChatReply{Text: ApologyMessage}, nil
	}
	s.release(c, res.ConversationID)

	offers := api.MapOffersList(map[string]any{"items": res.Offers})
	summary := SummarizeExtracted(res.Extracted)
	reply := &ChatReply{Offers: offers, Extracted: res.Extracted}
	if n := len(offers); n > 0 {
		plural := ""
		if n > 1 {
			plural = "s"
		}
		reply.Text = fmt.Sprintf("%s I found %d matching offer%s.", summary, n, plural)
	} else {
		reply.Text = summary + " I couldn't find matching offers right now. Try adjusting budget or dates."
	}
	s.record(ctx, domain.ChatMessage{
		Message:       message,
		Response:      reply.Text,
		Intent:        domain.IntentSearch,
		ExtractedData: preferencesOf(res.Extracted),
		SessionID:     c.sessionID,
	})

	if q := strings.TrimSpace(res.NextQuestion); q != "" {
		reply.FollowUp = res.NextQuestion
	} else {
		reply.FollowUp = PickNextQuestion(res.Extracted, res.NextQuestions)
	}
	if reply.FollowUp != "" {
		s.record(ctx, domain.ChatMessage{
			Response:  reply.FollowUp,
			Intent:    domain.IntentClarifyingQuestion,
			SessionID: c.sessionID,
		})
	}
	return reply, nil
}

// History returns the logged exchanges of chatID's current conversation.
func (s *ChatService) History(ctx context.Context, chatID int64) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	c, ok := s.conversations[chatID]
	s.mu.Unlock()
	if !ok {
		return []domain.ChatMessage{}, nil
	}
	return s.log.List(ctx, c.sessionID)
}

func (s *ChatService) record(ctx context.Context, m domain.ChatMessage) {
	if _, err := s.log.Create(ctx, m); err != nil {
		slog.Warn("persist chat message", "error", err, "session_id", m.SessionID)
	}
}

// localSuggest matches prompt words against the package listing.
func (s *ChatService) localSuggest(ctx context.Context, prompt string) (*api.SuggestResponse, error) {
	all, err := s.packages.List(ctx, domain.PackageQuery{Sort: "price"})
	if err != nil {
		return nil, err
	}
	var words []string
	for _, w := range strings.Fields(strings.ToLower(prompt)) {
		w = strings.Trim(w, ".,!?;:'\"")
		if len([]rune(w)) >= 3 {
			words = append(words, w)
		}
	}
	res := &api.SuggestResponse{Offers: []any{}, Extracted: map[string]any{}}
	for _, p := range all {
		if !p.IsActive || len(res.Offers) >= config.SuggestLimit {
			continue
		}
		for _, w := range words {
			if containsFold(w, p.Destination, p.Title, p.Country, p.Continent) {
				res.Offers = append(res.Offers, packageOffer(p))
				if res.Extracted["destination"] == nil {
					res.Extracted["destination"] = p.Destination
				}
				break
			}
		}
	}
	return res, nil
}

// packageOffer renders p in the backend offer shape, as decoded JSON.
func packageOffer(p domain.TravelPackage) any {
	offer := api.OfferFromPackage(&p)
	offer["id"] = p.ID
	offer["starRating"] = p.StarRating
	if p.OriginalPrice != nil {
		offer["original_price"] = *p.OriginalPrice
	}
	offer["providerName"] = p.ProviderName
	offer["imageUrl"] = p.ImageURL
	raw, err := json.Marshal(offer)
	if err != nil {
		return nil
	}
	var out any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil
	}
	return out
}

// SummarizeExtracted describes the valid extracted fields in one sentence.
// Placeholders such as "string" and non-positive numbers are ignored.
func SummarizeExtracted(x map[string]any) string {
	var parts []string
	if v, ok := validString(x["destination"]); ok {
		parts = append(parts, "Destination: "+v)
	}
	bmin, hasMin := validNumber(x["budgetMin"])
	bmax, hasMax := validNumber(x["budgetMax"])
	switch {
	case hasMin && hasMax:
		parts = append(parts, fmt.Sprintf("Budget: %s-%s", bmin, bmax))
	case hasMin:
		parts = append(parts, "Budget: "+bmin)
	case hasMax:
		parts = append(parts, "Budget up to: "+bmax)
	}
	month, hasMonth := validNumber(x["month"])
	year, hasYear := validNumber(x["year"])
	if hasMonth && hasYear {
		parts = append(parts, fmt.Sprintf("When: %s/%s", month, year))
	}
	if v, ok := validNumber(x["durationDays"]); ok {
		parts = append(parts, fmt.Sprintf("Duration: %s days", v))
	}
	if v, ok := validNumber(x["peopleCount"]); ok {
		parts = append(parts, "Travelers: "+v)
	}
	if len(parts) == 0 {
		return "Here are some options based on your request."
	}
	return "I parsed your request. " + strings.Join(parts, " · ") + "."
}

var followUpTopics = []struct {
	missing  func(x map[string]any) bool
	keywords []string
}{
	{func(x map[string]any) bool { return x["budgetMin"] == nil && x["budgetMax"] == nil }, []string{"budget", "$", "price"}},
	{func(x map[string]any) bool { return x["month"] == nil || x["year"] == nil }, []string{"when", "month", "year", "date"}},
	{func(x map[string]any) bool { return x["durationDays"] == nil }, []string{"days", "duration"}},
	{func(x map[string]any) bool { return x["peopleCount"] == nil }, []string{"people", "traveler", "person", "guests"}},
	{func(x map[string]any) bool { return x["transportType"] == nil }, []string{"transport", "flight", "train", "bus"}},
	{func(x map[string]any) bool { return x["accommodationLevel"] == nil }, []string{"accommodation", "hotel", "luxury", "standard", "premium"}},
}

// PickNextQuestion chooses the follow-up for the first missing field in
// priority order. Only the first missing field is considered; when no
// question mentions it there is no follow-up.
func PickNextQuestion(extracted map[string]any, questions []string) string {
	if len(questions) == 0 {
		return ""
	}
	for _, topic := range followUpTopics {
		if !topic.missing(extracted) {
			continue
		}
		for _, q := range questions {
			lower := strings.ToLower(q)
			for _, k := range topic.keywords {
				if strings.Contains(lower, k) {
					return q
				}
			}
		}
		return ""
	}
	return questions[0]
}

func validString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" || strings.EqualFold(s, "string") {
		return "", false
	}
	return s, true
}

// validNumber formats positive JSON numbers the way they were sent.
func validNumber(v any) (string, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return "", false
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return "", false
	}
	if f <= 0 {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// preferencesOf keeps the typed view of extracted fields for the chat log.
func preferencesOf(x map[string]any) *domain.TravelPreferences {
	if len(x) == 0 {
		return nil
	}
	raw, err := json.Marshal(x)
	if err != nil {
		return nil
	}
	var p domain.TravelPreferences
	if err := json.Unmarshal(raw, &p); err != nil {
		// Placeholders of the wrong type; keep only the destination.
		p = domain.TravelPreferences{}
		if v, ok := validString(x["destination"]); ok {
			p.Destination = v
		}
	}
	return &p
}
