package telegram

import (
	"strings"
	"testing"

	"github.com/set-night/travelhub/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Sunny beaches  ", "Sunny beaches"},
		{"paragraphs", "<p>Day one</p><p>Day two</p>", "Day one\nDay two"},
		{"line break", "Old town<br>walking tour", "Old town\nwalking tour"},
		{"list", "<ul><li>Hotel</li><li>Guide</li></ul>", "• Hotel\n• Guide"},
		{"entities", "Fish &amp; chips", "Fish & chips"},
		{"script dropped", "<p>Hi</p><script>alert(1)</script>", "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `snake\_case \*bold\* \[link\]`, EscapeMarkdown("snake_case *bold* [link]"))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitMessage("short", 10))

	text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
	parts := SplitMessage(text, 10)
	assert.Equal(t, []string{strings.Repeat("a", 8) + "\n", strings.Repeat("b", 8)}, parts)

	parts = SplitMessage(strings.Repeat("я", 25), 10)
	assert.Len(t, parts, 3)
	assert.Equal(t, strings.Repeat("я", 25), strings.Join(parts, ""))
}

func TestFixMarkdown(t *testing.T) {
	assert.Equal(t, "```go\nx\n```", FixMarkdown("```go\nx"))
	assert.Equal(t, "open `code`", FixMarkdown("open `code"))
	assert.Equal(t, "done", FixMarkdown("done"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
}

func TestPackageDetails(t *testing.T) {
	days, max := 7, 4
	orig := decimal.NewFromInt(1599)
	p := &domain.TravelPackage{
		ID:            "1",
		Title:         "Bali_Escape",
		Destination:   "Ubud",
		Country:       "Indonesia",
		Price:         decimal.NewFromInt(1299),
		OriginalPrice: &orig,
		StarRating:    4.8,
		DurationDays:  &days,
		MaxTravelers:  &max,
		Description:   "<p>Rice terraces</p>",
		Includes:      []string{"Flights"},
		IsActive:      true,
	}
	out := PackageDetails(p)
	assert.Contains(t, out, `*Bali\_Escape*`)
	assert.Contains(t, out, "$1299.00 (was $1599.00)")
	assert.Contains(t, out, "🗓 7 days")
	assert.Contains(t, out, "Rice terraces")
	assert.Contains(t, out, "• Flights")
	assert.NotContains(t, out, "unavailable")

	assert.Equal(t, `*Bali\_Escape* · Ubud · $1299 · 7d · ⭐ 4.8`, PackageLine(p))
}

func TestBookingLine(t *testing.T) {
	b := &domain.Booking{ID: "3", PackageID: "9", NumberOfTravelers: 2, TotalAmount: decimal.NewFromInt(1000), Status: domain.BookingConfirmed}
	assert.Equal(t, "✅ `#3` Package 9 · 2 × · $1000.00", BookingLine(b))
}
