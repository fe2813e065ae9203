package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentMethod string

const (
	PaymentVisa        PaymentMethod = "visa"
	PaymentMastercard  PaymentMethod = "mastercard"
	PaymentPayPal      PaymentMethod = "paypal"
	PaymentLocalWallet PaymentMethod = "local_wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentVisa, PaymentMastercard, PaymentPayPal, PaymentLocalWallet:
		return true
	}
	return false
}

// Booking status transitions are owned by the backend; the client only records them.
type Booking struct {
	ID                FlexID          `json:"id"`
	PackageID         FlexID          `json:"package_id"`
	PackageTitle      string          `json:"package_title,omitempty"`
	TravelerName      string          `json:"traveler_name"`
	TravelerEmail     string          `json:"traveler_email"`
	TravelerPhone     string          `json:"traveler_phone,omitempty"`
	NumberOfTravelers int             `json:"number_of_travelers"`
	TravelDate        string          `json:"travel_date,omitempty"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            BookingStatus   `json:"status"`
	PaymentMethod     PaymentMethod   `json:"payment_method,omitempty"`
	SpecialRequests   string          `json:"special_requests,omitempty"`
	ProviderID        FlexID          `json:"provider_id,omitempty"`
	ProviderName      string          `json:"provider_name,omitempty"`
	CreatedDate       time.Time       `json:"created_date,omitzero"`
}

type BookingQuery struct {
	PackageID string
	Sort      string
}
