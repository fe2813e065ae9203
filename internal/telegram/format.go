package telegram

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// PlainText renders an HTML fragment as plain text. Block elements and <br>
// become line breaks; input that is not HTML comes back trimmed.
func PlainText(html string) string {
	if !strings.ContainsAny(html, "<&") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		sel.PrependHtml("• ")
	})
	doc.Find("p, div, li, h1, h2, h3, h4, tr").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text := strings.Join(lines, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n"))
}

func stars(rating float64) string {
	return fmt.Sprintf("⭐ %.1f", rating)
}

// PackageLine is the one-line summary used in result lists.
func PackageLine(p *domain.TravelPackage) string {
	line := fmt.Sprintf("*%s* · %s · $%s", EscapeMarkdown(p.Title), EscapeMarkdown(p.Destination), p.Price.StringFixed(0))
	if d := p.Duration(); d > 0 {
		line += fmt.Sprintf(" · %dd", d)
	}
	return line + " · " + stars(p.StarRating)
}

// PackageDetails renders the full package card.
func PackageDetails(p *domain.TravelPackage) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🌍 *%s*\n📍 %s", EscapeMarkdown(p.Title), EscapeMarkdown(p.Destination))
	if p.Country != "" {
		fmt.Fprintf(&sb, ", %s", EscapeMarkdown(p.Country))
	}
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "💵 $%s", p.Price.StringFixed(2))
	if p.HasDiscount() {
		fmt.Fprintf(&sb, " (was $%s)", p.OriginalPrice.StringFixed(2))
	}
	fmt.Fprintf(&sb, "\n%s\n", stars(p.StarRating))
	if d := p.Duration(); d > 0 {
		fmt.Fprintf(&sb, "🗓 %d days\n", d)
	}
	if p.TransportType != "" {
		fmt.Fprintf(&sb, "🚌 %s\n", p.TransportType)
	}
	if p.AccommodationLevel != "" {
		fmt.Fprintf(&sb, "🏨 %s\n", p.AccommodationLevel)
	}
	if p.MaxTravelers != nil {
		fmt.Fprintf(&sb, "👥 up to %d travelers\n", *p.MaxTravelers)
	}
	if len(p.AvailableDates) > 0 {
		fmt.Fprintf(&sb, "📅 %s\n", strings.Join(p.AvailableDates, ", "))
	}
	if p.ProviderName != "" {
		fmt.Fprintf(&sb, "🏢 %s\n", EscapeMarkdown(p.ProviderName))
	}
	if desc := PlainText(p.Description); desc != "" {
		fmt.Fprintf(&sb, "\n%s\n", EscapeMarkdown(Truncate(desc, config.DescriptionPreviewLen)))
	}
	if len(p.Includes) > 0 {
		sb.WriteString("\n*Includes:*\n")
		for _, item := range p.Includes {
			fmt.Fprintf(&sb, "• %s\n", EscapeMarkdown(item))
		}
	}
	if !p.IsActive {
		sb.WriteString("\n_Currently unavailable_\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

var statusIcons = map[domain.BookingStatus]string{
	domain.BookingPending:   "⏳",
	domain.BookingConfirmed: "✅",
	domain.BookingCancelled: "❌",
	domain.BookingCompleted: "🏁",
}

// BookingLine is the one-line summary of a booking.
func BookingLine(b *domain.Booking) string {
	title := b.PackageTitle
	if title == "" {
		title = "Package " + string(b.PackageID)
	}
	line := fmt.Sprintf("%s `#%s` %s · %d × · $%s", statusIcons[b.Status], b.ID, EscapeMarkdown(title), b.NumberOfTravelers, b.TotalAmount.StringFixed(2))
	if b.TravelDate != "" {
		line += " · " + b.TravelDate
	}
	return line
}

// BookingConfirmation renders the confirmation shown after checkout.
func BookingConfirmation(b *domain.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 *Booking %s*\n\n", b.Status)
	fmt.Fprintf(&sb, "*Reference:* `%s`\n", b.ID)
	if b.PackageTitle != "" {
		fmt.Fprintf(&sb, "*Package:* %s\n", EscapeMarkdown(b.PackageTitle))
	}
	fmt.Fprintf(&sb, "*Traveler:* %s (%s)\n", EscapeMarkdown(b.TravelerName), EscapeMarkdown(b.TravelerEmail))
	fmt.Fprintf(&sb, "*Travelers:* %d\n", b.NumberOfTravelers)
	if b.TravelDate != "" {
		fmt.Fprintf(&sb, "*Date:* %s\n", b.TravelDate)
	}
	if b.PaymentMethod != "" {
		fmt.Fprintf(&sb, "*Payment:* %s\n", b.PaymentMethod)
	}
	fmt.Fprintf(&sb, "*Total:* $%s", b.TotalAmount.StringFixed(2))
	return sb.String()
}
