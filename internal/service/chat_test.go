package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/set-night/travelhub/internal/api"
	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSuggester struct {
	mu       sync.Mutex
	requests []api.SuggestRequest
	res      *api.SuggestResponse
	err      error
	block    chan struct{}
}

func (f *fakeSuggester) Suggest(_ context.Context, body api.SuggestRequest) (*api.SuggestResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, body)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.res, f.err
}

func newChat(s Suggester) (*ChatService, *datasource.LocalChat) {
	st := store.NewMemoryStore()
	log := datasource.NewLocalChat(st)
	return NewChatService(s, datasource.NewLocalPackages(st), log), log
}

func TestSummarizeExtracted(t *testing.T) {
	tests := []struct {
		name string
		x    map[string]any
		want string
	}{
		{"empty", nil, "Here are some options based on your request."},
		{"placeholders", map[string]any{"destination": "string", "budgetMin": json.Number("0"), "peopleCount": "2"},
			"Here are some options based on your request."},
		{"full", map[string]any{
			"destination": "Rome", "budgetMin": json.Number("500"), "budgetMax": json.Number("1500.5"),
			"month": json.Number("6"), "year": json.Number("2025"), "durationDays": json.Number("5"), "peopleCount": json.Number("2"),
		}, "I parsed your request. Destination: Rome · Budget: 500-1500.5 · When: 6/2025 · Duration: 5 days · Travelers: 2."},
		{"max only", map[string]any{"budgetMax": 800.0}, "I parsed your request. Budget up to: 800."},
		{"min only, month without year", map[string]any{"budgetMin": json.Number("300"), "month": json.Number("4")},
			"I parsed your request. Budget: 300."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SummarizeExtracted(tt.x))
		})
	}
}

func TestPickNextQuestion(t *testing.T) {
	questions := []string{"Who is coming? How many people?", "What's your budget?", "Which month works?"}

	assert.Equal(t, "What's your budget?", PickNextQuestion(map[string]any{}, questions))
	assert.Equal(t, "Which month works?", PickNextQuestion(map[string]any{"budgetMax": 1.0}, questions))
	assert.Empty(t, PickNextQuestion(map[string]any{"budgetMax": 1.0, "month": 1.0, "year": 2025.0}, questions),
		"duration missing and no question mentions it")

	complete := map[string]any{
		"budgetMin": 1.0, "month": 1.0, "year": 1.0, "durationDays": 1.0,
		"peopleCount": 1.0, "transportType": "bus", "accommodationLevel": "budget",
	}
	assert.Equal(t, questions[0], PickNextQuestion(complete, questions))
	assert.Empty(t, PickNextQuestion(complete, nil))
}

func TestChatService_SendSuggestsAndLogs(t *testing.T) {
	sug := &fakeSuggester{res: &api.SuggestResponse{
		ConversationID: "conv-1",
		Offers: []any{
			map[string]any{"id": json.Number("1"), "title": "Rome", "price": json.Number("450")},
			map[string]any{"id": json.Number("2"), "title": "Milan", "price": json.Number("350")},
		},
		Extracted:     map[string]any{"destination": "Italy"},
		NextQuestions: []string{"What's your budget?"},
	}}
	svc, log := newChat(sug)
	ctx := context.Background()

	reply, err := svc.Send(ctx, 7, "  italy in june ")
	require.NoError(t, err)
	assert.Equal(t, "I parsed your request. Destination: Italy. I found 2 matching offers.", reply.Text)
	assert.Len(t, reply.Offers, 2)
	assert.Equal(t, "What's your budget?", reply.FollowUp)

	_, err = svc.Send(ctx, 7, "cheaper please")
	require.NoError(t, err)

	require.Len(t, sug.requests, 2)
	assert.Equal(t, api.SuggestRequest{Prompt: "italy in june", Limit: 10, Sort: "price:asc"}, sug.requests[0])
	assert.Equal(t, "conv-1", sug.requests[1].ConversationID)

	history, err := svc.History(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, domain.IntentSearch, history[0].Intent)
	assert.Equal(t, "Italy", history[0].ExtractedData.Destination)
	assert.Equal(t, domain.IntentClarifyingQuestion, history[1].Intent)
	assert.Empty(t, history[1].Message)

	all, err := log.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestChatService_ExplicitNextQuestionWins(t *testing.T) {
	sug := &fakeSuggester{res: &api.SuggestResponse{
		NextQuestion:  "How many days?",
		NextQuestions: []string{"What's your budget?"},
	}}
	svc, _ := newChat(sug)

	reply, err := svc.Send(context.Background(), 1, "anywhere")
	require.NoError(t, err)
	assert.Equal(t, "Here are some options based on your request. I couldn't find matching offers right now. Try adjusting budget or dates.", reply.Text)
	assert.Equal(t, "How many days?", reply.FollowUp)
}

func TestChatService_FailureApologizes(t *testing.T) {
	svc, log := newChat(&fakeSuggester{err: errors.New("dial tcp: connection refused")})

	reply, err := svc.Send(context.Background(), 1, "hello")
	require.NoError(t, err)
	assert.Equal(t, ApologyMessage, reply.Text)

	all, err := log.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestChatService_OneRequestInFlight(t *testing.T) {
	sug := &fakeSuggester{res: &api.SuggestResponse{}, block: make(chan struct{})}
	svc, _ := newChat(sug)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Send(context.Background(), 1, "first")
		done <- err
	}()
	require.Eventually(t, func() bool {
		sug.mu.Lock()
		defer sug.mu.Unlock()
		return len(sug.requests) == 1
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Send(context.Background(), 1, "second")
	assert.ErrorIs(t, err, domain.ErrChatBusy)

	close(sug.block)
	require.NoError(t, <-done)
}

func TestChatService_LocalSuggestions(t *testing.T) {
	svc, _ := newChat(nil)

	reply, err := svc.Send(context.Background(), 1, "Something in Europe please")
	require.NoError(t, err)
	require.Len(t, reply.Offers, 3)
	assert.Equal(t, "Andalusia Road Trip", reply.Offers[0].Title)
	assert.Equal(t, "I parsed your request. Destination: Seville. I found 3 matching offers.", reply.Text)
}
