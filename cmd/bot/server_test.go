package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookPath(t *testing.T) {
	assert.Equal(t, "/tg/hook", webhookPath("https://bot.example.com/tg/hook"))
	assert.Equal(t, "/webhook", webhookPath("https://bot.example.com"))
	assert.Equal(t, "/webhook", webhookPath("https://bot.example.com/"))
}

func TestWebhookSecret(t *testing.T) {
	a := webhookSecret("123:abc")
	assert.Len(t, a, 32)
	assert.Equal(t, a, webhookSecret("123:abc"))
	assert.NotEqual(t, a, webhookSecret("123:abd"))
}

func TestRouter(t *testing.T) {
	var hits int
	router := newRouter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}), "/tg/hook")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tg/hook", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tg/hook", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
