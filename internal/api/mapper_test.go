package api

import (
	"encoding/json"
	"testing"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAny(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, decodeJSON([]byte(s), &v))
	return v
}

func TestMapOffer_MissingOptionalFields(t *testing.T) {
	tests := []struct {
		name  string
		offer string
	}{
		{"empty object", `{}`},
		{"only title", `{"title":"Paris"}`},
		{"null fields", `{"id":null,"price":null,"company":null,"images":null,"available_dates":null}`},
		{"wrong types", `{"id":{"x":1},"price":"abc","includes":"wifi","company":"acme","images":[null],"star_rating":"high"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pkg *domain.TravelPackage
			assert.NotPanics(t, func() {
				pkg = MapOffer(decodeAny(t, tt.offer))
			})
			require.NotNil(t, pkg)
			assert.NotNil(t, pkg.AvailableDates)
			assert.True(t, pkg.Price.IsZero())
			assert.Equal(t, config.PlaceholderImageURL, pkg.ImageURL)
			assert.Equal(t, config.DefaultStarRating, pkg.StarRating)
			assert.Nil(t, pkg.DurationDays)
			assert.Nil(t, pkg.MaxTravelers)
		})
	}
}

func TestMapOffer_NonObject(t *testing.T) {
	assert.Nil(t, MapOffer(nil))
	assert.Nil(t, MapOffer("offer"))
	assert.Nil(t, MapOffer([]any{}))
}

func TestMapOffer_CamelCaseAndNestedCompany(t *testing.T) {
	pkg := MapOffer(decodeAny(t, `{
		"offerId": 42,
		"title": "Alps",
		"price": "1299.50",
		"imageUrl": "https://img/alps.jpg",
		"startDate": "2025-01-10",
		"endDate": "2025-01-17",
		"durationDays": 7,
		"starRating": 9,
		"transportType": "train",
		"accommodationLevel": "luxury",
		"seats": 12,
		"company": {"id": 7, "name": "Peak Tours"},
		"isActive": false
	}`))
	require.NotNil(t, pkg)

	assert.Equal(t, "42", pkg.ID)
	assert.Equal(t, "1299.5", pkg.Price.String())
	assert.Equal(t, "https://img/alps.jpg", pkg.ImageURL)
	assert.Equal(t, []string{"2025-01-10", "2025-01-17"}, pkg.AvailableDates)
	assert.Equal(t, 7, *pkg.DurationDays)
	assert.Equal(t, 5.0, pkg.StarRating)
	assert.Equal(t, domain.TransportTrain, pkg.TransportType)
	assert.Equal(t, domain.AccommodationLuxury, pkg.AccommodationLevel)
	assert.Equal(t, 12, *pkg.MaxTravelers)
	assert.Equal(t, "7", pkg.ProviderID)
	assert.Equal(t, "Peak Tours", pkg.ProviderName)
	assert.False(t, pkg.IsActive)
}

func TestMapOffer_SnakeCaseAndProviderPrecedence(t *testing.T) {
	pkg := MapOffer(decodeAny(t, `{
		"id": "abc",
		"price": -5,
		"original_price": 800,
		"available_dates": ["2025-03-01", "2025-04-01", "2025-05-01"],
		"galleryImages": ["https://img/g1.jpg"],
		"providerId": 99,
		"companyId": 1,
		"provider_name": "Fallback Name",
		"includes": ["flights", "hotel"]
	}`))
	require.NotNil(t, pkg)

	assert.Equal(t, "abc", pkg.ID)
	assert.True(t, pkg.Price.IsZero())
	require.NotNil(t, pkg.OriginalPrice)
	assert.Equal(t, "800", pkg.OriginalPrice.String())
	assert.Len(t, pkg.AvailableDates, 3)
	assert.Equal(t, "https://img/g1.jpg", pkg.ImageURL)
	assert.Equal(t, "99", pkg.ProviderID)
	assert.Equal(t, "Fallback Name", pkg.ProviderName)
	assert.Equal(t, []string{"flights", "hotel"}, pkg.Includes)
}

func TestMapOffersList_Wrappers(t *testing.T) {
	for _, body := range []string{
		`[{"id":1},{"id":2},"junk"]`,
		`{"items":[{"id":1},{"id":2}]}`,
		`{"results":[{"id":1},{"id":2}]}`,
		`{"data":[{"id":1},{"id":2}]}`,
	} {
		pkgs := MapOffersList(decodeAny(t, body))
		require.Len(t, pkgs, 2, body)
		assert.Equal(t, "1", pkgs[0].ID)
		assert.Equal(t, "2", pkgs[1].ID)
	}

	assert.Empty(t, MapOffersList(decodeAny(t, `{"total":0}`)))
	assert.Empty(t, MapOffersList(nil))
}

func TestOfferFromPackage_RoundTripsThroughMapper(t *testing.T) {
	days, seats := 5, 10
	src := &domain.TravelPackage{
		Title:          "Lisbon",
		Destination:    "Lisbon",
		AvailableDates: []string{"2025-06-01", "2025-06-15"},
		DurationDays:   &days,
		MaxTravelers:   &seats,
		TransportType:  domain.TransportFlight,
		ProviderID:     "3",
		IsActive:       true,
	}
	raw, err := json.Marshal(OfferFromPackage(src))
	require.NoError(t, err)

	got := MapOffer(decodeAny(t, string(raw)))
	require.NotNil(t, got)
	assert.Equal(t, src.Title, got.Title)
	assert.Equal(t, src.AvailableDates, got.AvailableDates)
	assert.Equal(t, days, *got.DurationDays)
	assert.Equal(t, seats, *got.MaxTravelers)
	assert.Equal(t, "3", got.ProviderID)
}
