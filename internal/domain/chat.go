package domain

import "time"

type Intent string

const (
	IntentSearch             Intent = "search"
	IntentBudgetInquiry      Intent = "budget_inquiry"
	IntentDestinationRequest Intent = "destination_request"
	IntentBookingHelp        Intent = "booking_help"
	IntentGeneral            Intent = "general"
	IntentClarifyingQuestion Intent = "clarifying_question"
)

// TravelPreferences are the structured fields the suggestion backend extracts from a prompt.
type TravelPreferences struct {
	Destination        string   `json:"destination,omitempty"`
	BudgetMin          *float64 `json:"budgetMin,omitempty"`
	BudgetMax          *float64 `json:"budgetMax,omitempty"`
	Month              *int     `json:"month,omitempty"`
	Year               *int     `json:"year,omitempty"`
	DurationDays       *int     `json:"durationDays,omitempty"`
	PeopleCount        *int     `json:"peopleCount,omitempty"`
	TransportType      string   `json:"transportType,omitempty"`
	AccommodationLevel string   `json:"accommodationLevel,omitempty"`
}

// ChatMessage is a conversation log entry; nothing depends on it beyond display.
type ChatMessage struct {
	ID            string             `json:"id"`
	Message       string             `json:"message"`
	Response      string             `json:"response"`
	Intent        Intent             `json:"intent,omitempty"`
	ExtractedData *TravelPreferences `json:"extracted_data,omitempty"`
	SessionID     string             `json:"session_id,omitempty"`
	CreatedDate   time.Time          `json:"created_date,omitzero"`
}
