package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CompanyType string

const (
	CompanyTravelAgency CompanyType = "travel_agency"
	CompanyHotel        CompanyType = "hotel"
	CompanyTransport    CompanyType = "transport"
	CompanyTourOperator CompanyType = "tour_operator"
)

func (t CompanyType) Valid() bool {
	switch t {
	case CompanyTravelAgency, CompanyHotel, CompanyTransport, CompanyTourOperator:
		return true
	}
	return false
}

// Company counters are informational and never authoritative.
type Company struct {
	ID            string          `json:"id"`
	CompanyName   string          `json:"company_name"`
	CompanyType   CompanyType     `json:"company_type"`
	ContactEmail  string          `json:"contact_email"`
	ContactPhone  string          `json:"contact_phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	Website       string          `json:"website,omitempty"`
	Description   string          `json:"description,omitempty"`
	LogoURL       string          `json:"logo_url,omitempty"`
	IsVerified    bool            `json:"is_verified"`
	IsActive      bool            `json:"is_active"`
	Rating        *float64        `json:"rating,omitempty"`
	TotalBookings int             `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	CreatedDate   time.Time       `json:"created_date,omitzero"`
}
