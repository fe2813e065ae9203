package api

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/shopspring/decimal"
)

// MapOffer normalizes a backend offer into a TravelPackage. It tolerates
// snake_case and camelCase variants and a nested company object, and returns
// nil when offer is not a JSON object. It never panics on missing fields.
func MapOffer(offer any) *domain.TravelPackage {
	o, ok := offer.(map[string]any)
	if !ok {
		return nil
	}

	pkg := &domain.TravelPackage{
		ID:          idString(first(o, "id", "offerId")),
		Title:       str(o["title"]),
		Destination: str(o["destination"]),
		Description: str(o["description"]),
		ImageURL:    imageOf(o),
		Country:     str(o["country"]),
		Continent:   str(o["continent"]),
		IsActive:    true,
	}

	if price, ok := number(first(o, "price", "originalPrice")); ok && price > 0 {
		pkg.Price = decimal.NewFromFloat(price)
	}
	if orig, ok := number(o["original_price"]); ok && orig >= 0 {
		d := decimal.NewFromFloat(orig)
		pkg.OriginalPrice = &d
	}

	pkg.AvailableDates = datesOf(o)
	pkg.DurationDays = intPtr(first(o, "duration_days", "durationDays"))
	pkg.MaxTravelers = intPtr(first(o, "seats", "max_travelers", "maxTravelers"))

	pkg.StarRating = config.DefaultStarRating
	if r, ok := number(first(o, "star_rating", "starRating")); ok {
		pkg.StarRating = math.Min(config.MaxStarRating, math.Max(config.MinStarRating, r))
	}

	pkg.TransportType = domain.TransportType(str(first(o, "transport_type", "transportType")))
	pkg.AccommodationLevel = domain.AccommodationLevel(str(first(o, "accommodation_level", "accommodationLevel")))
	pkg.Includes = stringList(o["includes"])

	company, _ := o["company"].(map[string]any)
	switch {
	case truthy(o["providerId"]):
		pkg.ProviderID = idString(o["providerId"])
	case company != nil && company["id"] != nil:
		pkg.ProviderID = idString(company["id"])
	case o["companyId"] != nil:
		pkg.ProviderID = idString(o["companyId"])
	default:
		pkg.ProviderID = idString(o["provider_id"])
	}

	pkg.ProviderName = str(o["providerName"])
	if pkg.ProviderName == "" && company != nil {
		pkg.ProviderName = str(company["name"])
	}
	if pkg.ProviderName == "" {
		pkg.ProviderName = str(first(o, "companyName", "provider_name"))
	}

	if active, ok := first(o, "is_active", "isActive").(bool); ok {
		pkg.IsActive = active
	}
	if created := str(first(o, "created_date", "createdAt")); created != "" {
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			pkg.CreatedDate = t
		}
	}

	return pkg
}

// MapOffersList maps a list response (bare array or wrapped in items,
// results or data). Entries that are not objects are dropped.
func MapOffersList(data any) []domain.TravelPackage {
	items := unwrapList(data)
	out := make([]domain.TravelPackage, 0, len(items))
	for _, item := range items {
		if pkg := MapOffer(item); pkg != nil {
			out = append(out, *pkg)
		}
	}
	return out
}

// OfferFromPackage builds the create/update payload the backend expects.
func OfferFromPackage(p *domain.TravelPackage) map[string]any {
	body := map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"destination": p.Destination,
		"isActive":    p.IsActive,
	}
	if p.MaxTravelers != nil {
		body["seats"] = *p.MaxTravelers
	}
	if n := len(p.AvailableDates); n > 0 {
		body["startDate"] = p.AvailableDates[0]
		body["endDate"] = p.AvailableDates[n-1]
		body["availableDates"] = p.AvailableDates
	}
	if p.TransportType != "" {
		body["kind"] = string(p.TransportType)
		body["transportType"] = string(p.TransportType)
	}
	if p.AccommodationLevel != "" {
		body["accommodationLevel"] = string(p.AccommodationLevel)
	}
	if p.DurationDays != nil {
		body["durationDays"] = *p.DurationDays
	}
	if p.OriginalPrice != nil {
		body["originalPrice"] = *p.OriginalPrice
	}
	if p.ProviderID != "" {
		body["companyId"] = p.ProviderID
	}
	if p.ImageURL != "" && p.ImageURL != config.PlaceholderImageURL {
		body["imageUrl"] = p.ImageURL
	}
	if len(p.Includes) > 0 {
		body["includes"] = p.Includes
	}
	if p.Country != "" {
		body["country"] = p.Country
	}
	if p.Continent != "" {
		body["continent"] = p.Continent
	}
	return body
}

func imageOf(o map[string]any) string {
	for _, key := range []string{"image_url", "imageUrl", "image"} {
		if s := str(o[key]); s != "" {
			return s
		}
	}
	for _, key := range []string{"galleryImages", "images"} {
		if list, ok := o[key].([]any); ok && len(list) > 0 {
			if s := str(list[0]); s != "" {
				return s
			}
		}
	}
	return config.PlaceholderImageURL
}

func datesOf(o map[string]any) []string {
	if list, ok := o["available_dates"].([]any); ok {
		return stringsOrEmpty(list)
	}
	start, end := str(o["startDate"]), str(o["endDate"])
	if start != "" && end != "" {
		return []string{start, end}
	}
	if list, ok := o["availableDates"].([]any); ok {
		return stringsOrEmpty(list)
	}
	return []string{}
}

// first returns the first non-nil value among keys.
func first(o map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := o[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func idString(v any) string {
	return str(v)
}

func number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func intPtr(v any) *int {
	f, ok := number(v)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	}
	return true
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	return stringsOrEmpty(list)
}

func stringsOrEmpty(list []any) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := str(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
