package api

import (
	"context"
	"net/http"

	"github.com/set-night/travelhub/internal/config"
)

type SuggestRequest struct {
	Prompt         string `json:"prompt"`
	Limit          int    `json:"limit"`
	Sort           string `json:"sort"`
	Strict         bool   `json:"strict"`
	ConversationID string `json:"conversationId,omitempty"`
}

// SuggestResponse keeps offers and extracted fields loosely typed; the
// backend is known to echo schema placeholders such as "string" into them.
type SuggestResponse struct {
	ConversationID string         `json:"conversationId"`
	Offers         []any          `json:"offers"`
	Extracted      map[string]any `json:"extracted"`
	NextQuestion   string         `json:"nextQuestion"`
	NextQuestions  []string       `json:"nextQuestions"`
}

type ChatAPI struct {
	c     *Client
	paths config.Paths
}

func NewChatAPI(c *Client, paths config.Paths) *ChatAPI {
	return &ChatAPI{c: c, paths: paths}
}

func (a *ChatAPI) Suggest(ctx context.Context, body SuggestRequest) (*SuggestResponse, error) {
	var res SuggestResponse
	if err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.ChatSuggest, Body: body}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
