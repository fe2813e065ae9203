package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Backend and mock store both expect plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

type TransportType string

const (
	TransportFlight TransportType = "flight"
	TransportBus    TransportType = "bus"
	TransportTrain  TransportType = "train"
	TransportCar    TransportType = "car"
)

func (t TransportType) Valid() bool {
	switch t {
	case TransportFlight, TransportBus, TransportTrain, TransportCar:
		return true
	}
	return false
}

type AccommodationLevel string

const (
	AccommodationBudget   AccommodationLevel = "budget"
	AccommodationStandard AccommodationLevel = "standard"
	AccommodationLuxury   AccommodationLevel = "luxury"
	AccommodationPremium  AccommodationLevel = "premium"
)

func (a AccommodationLevel) Valid() bool {
	switch a {
	case AccommodationBudget, AccommodationStandard, AccommodationLuxury, AccommodationPremium:
		return true
	}
	return false
}

// TravelPackage is the front-end shape of a backend offer.
type TravelPackage struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	Destination        string             `json:"destination"`
	Description        string             `json:"description"`
	Price              decimal.Decimal    `json:"price"`
	OriginalPrice      *decimal.Decimal   `json:"original_price,omitempty"`
	ImageURL           string             `json:"image_url"`
	AvailableDates     []string           `json:"available_dates"`
	DurationDays       *int               `json:"duration_days,omitempty"`
	StarRating         float64            `json:"star_rating"`
	TransportType      TransportType      `json:"transport_type,omitempty"`
	AccommodationLevel AccommodationLevel `json:"accommodation_level,omitempty"`
	MaxTravelers       *int               `json:"max_travelers,omitempty"`
	Includes           []string           `json:"includes,omitempty"`
	ProviderID         string             `json:"provider_id,omitempty"`
	ProviderName       string             `json:"provider_name,omitempty"`
	IsActive           bool               `json:"is_active"`
	Country            string             `json:"country,omitempty"`
	Continent          string             `json:"continent,omitempty"`
	CreatedDate        time.Time          `json:"created_date,omitzero"`
}

func (p *TravelPackage) Duration() int {
	if p.DurationDays == nil {
		return 0
	}
	return *p.DurationDays
}

// HasDiscount reports whether an original price above the current price is known.
func (p *TravelPackage) HasDiscount() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// PackageQuery narrows a package listing. Zero values mean "no constraint".
type PackageQuery struct {
	ProviderID string
	Query      string
	Sort       string
	Limit      int
}
