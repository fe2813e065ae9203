package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
}

type fakeBackend struct {
	mu    sync.Mutex
	calls []recorded
	body  string
}

func (f *fakeBackend) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, recorded{Method: r.Method, Path: r.URL.EscapedPath(), Query: r.URL.RawQuery})
	body := f.body
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if body == "" {
		body = `{}`
	}
	w.Write([]byte(body))
}

func (f *fakeBackend) last() recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func setup(t *testing.T) (*fakeBackend, *Client) {
	t.Helper()
	fb := &fakeBackend{}
	srv := httptest.NewServer(http.HandlerFunc(fb.handler))
	t.Cleanup(srv.Close)
	return fb, NewClient(srv.URL, 5*time.Second, false)
}

func TestPackagesAPI_Paths(t *testing.T) {
	fb, c := setup(t)
	a := NewPackagesAPI(c, config.DefaultPaths())
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"list", func() error { _, err := a.List(ctx, nil); return err }, http.MethodGet, "/offers"},
		{"get escapes id", func() error { _, err := a.Get(ctx, "a/b"); return err }, http.MethodGet, "/offers/a%2Fb"},
		{"create", func() error { _, err := a.Create(ctx, map[string]any{}); return err }, http.MethodPost, "/offers"},
		{"update", func() error { _, err := a.Update(ctx, "5", map[string]any{}); return err }, http.MethodPatch, "/offers/5"},
		{"delete", func() error { return a.Delete(ctx, "5") }, http.MethodDelete, "/offers/5"},
		{"search", func() error { _, err := a.Search(ctx, map[string]any{}); return err }, http.MethodPost, "/search_offers"},
		{"company create", func() error { _, err := a.CompanyCreate(ctx, map[string]any{}); return err }, http.MethodPost, "/company/offers"},
		{"company update", func() error { _, err := a.CompanyUpdate(ctx, "9", map[string]any{}); return err }, http.MethodPut, "/company/offers/9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			got := fb.last()
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
		})
	}
}

func TestPackagesAPI_PathOverrides(t *testing.T) {
	fb, c := setup(t)
	paths := config.DefaultPaths()
	paths.Packages = "/v2/packages"
	a := NewPackagesAPI(c, paths)

	_, err := a.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "/v2/packages/1", fb.last().Path)
}

func TestBookingsAPI_ListUnwrapsItems(t *testing.T) {
	fb, c := setup(t)
	fb.body = `{"items":[{"id":"1","package_id":"3","number_of_travelers":2,"total_amount":1000,"status":"confirmed"}]}`
	a := NewBookingsAPI(c, config.DefaultPaths())

	bookings, err := a.List(context.Background(), Params{"sort": "-created_date"})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.FlexID("3"), bookings[0].PackageID)
	assert.Equal(t, domain.BookingConfirmed, bookings[0].Status)
	assert.Equal(t, "1000", bookings[0].TotalAmount.String())
	assert.Equal(t, "sort=-created_date", fb.last().Query)

	_, err = a.Update(context.Background(), "1", map[string]any{"status": "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, fb.last().Method)
	assert.Equal(t, "/bookings/1", fb.last().Path)
}

func TestAuthAPI_MeWrappedAndBare(t *testing.T) {
	fb, c := setup(t)
	a := NewAuthAPI(c, config.DefaultPaths())

	fb.body = `{"user":{"id":12,"email":"a@b.co","role":"COMPANY","companyId":4}}`
	u, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FlexID("12"), u.ID)
	assert.Equal(t, domain.RoleCompany, u.Role)
	assert.Equal(t, domain.FlexID("4"), u.CompanyID)
	assert.Equal(t, "/users/me", fb.last().Path)

	fb.body = `{"id":"u-1","name":"Jane"}`
	u, err = a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
}

func TestAuthAPI_BearerToken(t *testing.T) {
	assert.Equal(t, "a", (&AuthResponse{Token: "a", AccessToken: "b"}).BearerToken())
	assert.Equal(t, "b", (&AuthResponse{AccessToken: "b"}).BearerToken())
}

func TestAnalyticsAPI_Params(t *testing.T) {
	fb, c := setup(t)
	a := NewAnalyticsAPI(c, config.DefaultPaths())
	ctx := context.Background()
	f := domain.AnalyticsFilters{From: "2025-01-01", To: "2025-01-31", Destination: "Rome"}

	_, err := a.Summary(ctx, "7", f)
	require.NoError(t, err)
	assert.Equal(t, "/company/analytics/summary", fb.last().Path)
	assert.Equal(t, "companyId=7&destination=Rome&from=2025-01-01&to=2025-01-31", fb.last().Query)

	_, err = a.TopPackages(ctx, "7", f, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "/company/analytics/top-packages", fb.last().Path)
	assert.Equal(t, "companyId=7&from=2025-01-01&limit=20&sort=revenue&to=2025-01-31", fb.last().Query)

	_, err = a.RecentBookings(ctx, "7", f, 5)
	require.NoError(t, err)
	assert.Equal(t, "companyId=7&from=2025-01-01&limit=5&to=2025-01-31", fb.last().Query)

	fb.body = `{"items":[{"id":1,"title":"Rome Escape"}]}`
	opts, err := a.Packages(ctx, "7", "")
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "Rome Escape", opts[0].Title)
	assert.Equal(t, "companyId=7&query=", fb.last().Query)

	fb.body = `{"items":[{"value":"rome","label":"Rome"}]}`
	dests, err := a.Destinations(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, []domain.DestinationOption{{Value: "rome", Label: "Rome"}}, dests)
}

func TestChatAPI_Suggest(t *testing.T) {
	fb, c := setup(t)
	fb.body = `{"conversationId":"c1","offers":[{"id":1}],"extracted":{"destination":"Rome","budgetMax":900},"nextQuestions":["When?"]}`
	a := NewChatAPI(c, config.DefaultPaths())

	res, err := a.Suggest(context.Background(), SuggestRequest{Prompt: "rome under 900", Limit: 10, Sort: "price:asc"})
	require.NoError(t, err)
	assert.Equal(t, "c1", res.ConversationID)
	assert.Len(t, res.Offers, 1)
	assert.Equal(t, "Rome", res.Extracted["destination"])
	assert.Equal(t, []string{"When?"}, res.NextQuestions)
	assert.Equal(t, "/chat/suggest", fb.last().Path)
}
