package handler

import (
	"fmt"
	"strings"

	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/service"
	"github.com/set-night/travelhub/internal/session"
	tg "github.com/set-night/travelhub/internal/telegram"
)

// helpText is sent without parse mode.
const helpText = "📋 Commands:\n" +
	"/search [query] [budget=500-1500] [transport=flight] [stay=luxury] [rating=4] [sort=price_low]\n" +
	"/package <id>: Package details\n" +
	"/book <id> <travelers> <name>; <email>[; phone[; requests]]\n" +
	"/bookings: Your bookings\n" +
	"/booking <reference>: Booking confirmation\n" +
	"/login <email|mobile> <password> [nr]\n" +
	"/signup <email|mobile> <password> [role] [nr]\n" +
	"/logout: Sign out\n" +
	"/me: Current account\n" +
	"/history: This conversation with the assistant\n" +
	"/newchat: Restart the travel assistant\n\n" +
	"Companies: /dashboard, /profile, /addpackage, /analytics [7|30|90]\n" +
	"Admins: /admin, /setstatus <booking> <status>\n\n" +
	"Or just tell me about your dream trip!"

// routeHint names the command that opens a landing route.
func routeHint(route string) string {
	switch route {
	case session.RouteAdminPanel:
		return "Open the admin panel with /admin."
	case session.RouteCompanyDashboard:
		return "Open your dashboard with /dashboard."
	}
	return "Browse packages with /search or just tell me where you'd like to go."
}

func resultsText(results []domain.TravelPackage, page int) string {
	if len(results) == 0 {
		return "😕 No packages match your search. Try a wider budget or fewer filters."
	}
	start, end := pageBounds(len(results), page)
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔎 *%d packages found*\n\n", len(results))
	for i := start; i < end; i++ {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, tg.PackageLine(&results[i]))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func pageCount(n, perPage int) int {
	if n == 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

func chatReplyText(r *service.ChatReply) string {
	var sb strings.Builder
	sb.WriteString(tg.EscapeMarkdown(r.Text))
	if len(r.Offers) > 0 {
		sb.WriteString("\n")
		for i := range r.Offers {
			fmt.Fprintf(&sb, "\n• %s", tg.PackageLine(&r.Offers[i]))
		}
	}
	if r.FollowUp != "" {
		fmt.Fprintf(&sb, "\n\n💬 %s", tg.EscapeMarkdown(r.FollowUp))
	}
	return sb.String()
}

func bookingPrompt(pkg *domain.TravelPackage, f service.BookingForm) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧳 *Book %s*\n\n", tg.EscapeMarkdown(pkg.Title))
	fmt.Fprintf(&sb, "Price per traveler: $%s\n", pkg.Price.StringFixed(2))
	if len(pkg.AvailableDates) > 0 {
		fmt.Fprintf(&sb, "Dates: %s\n", strings.Join(pkg.AvailableDates, ", "))
	}
	name, email := f.FullName, f.Email
	if name == "" {
		name = "Your Name"
	}
	if email == "" {
		email = "you@example.com"
	}
	fmt.Fprintf(&sb, "\nSend:\n`/book %s %d %s; %s`", pkg.ID, f.Travelers, name, email)
	fmt.Fprintf(&sb, "\nOptional segments: `; date=%s; pay=paypal`", f.TravelDate)
	return sb.String()
}

func bookingsText(list []domain.Booking) string {
	if len(list) == 0 {
		return "You have no bookings yet. Find a trip with /search."
	}
	var sb strings.Builder
	sb.WriteString("🧾 *Your bookings*\n\n")
	for i := range list {
		sb.WriteString(tg.BookingLine(&list[i]) + "\n")
	}
	sb.WriteString("\nSend /booking <reference> to see a confirmation again.")
	return sb.String()
}

func accountText(u *domain.AuthUser, state session.State) string {
	if u == nil {
		return fmt.Sprintf("👤 Not signed in (%s). Use /login or /signup.", state)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 *%s*\n", tg.EscapeMarkdown(u.DisplayName()))
	if u.Email != "" {
		fmt.Fprintf(&sb, "Email: %s\n", tg.EscapeMarkdown(u.Email))
	}
	if u.Mobile != "" {
		fmt.Fprintf(&sb, "Mobile: %s\n", u.Mobile)
	}
	if u.Role != "" {
		fmt.Fprintf(&sb, "Role: %s\n", u.Role)
	}
	if u.CompanyID != "" {
		fmt.Fprintf(&sb, "Company: `%s`\n", u.CompanyID)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func dashboardText(d *service.CompanyDashboard) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏢 *%s*", tg.EscapeMarkdown(d.Company.CompanyName))
	if d.Company.IsVerified {
		sb.WriteString(" ✔️")
	}
	s := d.Stats
	fmt.Fprintf(&sb, "\n\n📦 Packages: %d\n🧾 Bookings: %d\n💰 Revenue: $%s\n⭐ Avg rating: %.1f\n👀 Search appearances: %d\n",
		s.TotalPackages, s.TotalBookings, s.TotalRevenue.StringFixed(2), s.AverageRating, s.SearchAppearances)

	if len(d.Packages) == 0 {
		sb.WriteString("\nNo packages yet. Publish one with /addpackage.")
		return sb.String()
	}
	sb.WriteString("\n*Your packages*\n")
	for i := range d.Packages {
		p := &d.Packages[i]
		state := "🟢"
		if !p.IsActive {
			state = "⚪️"
		}
		fmt.Fprintf(&sb, "%s `%s` %s\n", state, p.ID, tg.PackageLine(p))
	}
	if len(d.Bookings) > 0 {
		sb.WriteString("\n*Recent bookings*\n")
		for i := range d.Bookings[:min(len(d.Bookings), 10)] {
			sb.WriteString(tg.BookingLine(&d.Bookings[i]) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

const addPackageUsage = "Usage:\n`/addpackage title=Porto Food Tour; destination=Porto; price=300; days=3; " +
	"dates=2025-06-01,2025-07-01; transport=flight; stay=standard; max=10; includes=Hotel,Guide; " +
	"country=Portugal; continent=Europe; description=...`"

func analyticsText(v service.AnalyticsView) string {
	var sb strings.Builder
	f := v.Filters
	fmt.Fprintf(&sb, "📊 *Analytics* %s → %s", orAll(f.From), orAll(f.To))
	if f.PackageID != "" {
		fmt.Fprintf(&sb, " · package `%s`", f.PackageID)
	}
	if f.Destination != "" {
		fmt.Fprintf(&sb, " · %s", tg.EscapeMarkdown(f.Destination))
	}
	sb.WriteString("\n\n")

	switch {
	case v.SummaryErr != nil:
		sb.WriteString("Summary unavailable.\n")
	case v.Summary != nil:
		s := v.Summary
		fmt.Fprintf(&sb, "💰 Revenue: $%s\n🧾 Bookings: %d\n👥 Travelers: %d\n🛒 Avg order: $%s\n📈 Conversion: %.1f%%\n",
			s.Revenue.StringFixed(2), s.Bookings, s.Travelers, s.AvgOrderValue.StringFixed(2), s.ConversionRate)
		fn := s.Funnel
		fmt.Fprintf(&sb, "Funnel: %d → %d → %d → %d\n", fn.Impressions, fn.Clicks, fn.BookingStarts, fn.Bookings)
		for _, sc := range s.StatusBreakdown {
			fmt.Fprintf(&sb, "  %s: %d\n", sc.Status, sc.Count)
		}
	}

	sb.WriteString("\n*Top packages*\n")
	switch {
	case v.TopPackagesErr != nil:
		sb.WriteString("Unavailable.\n")
	case len(v.TopPackages) == 0:
		sb.WriteString("No data.\n")
	default:
		for i, p := range v.TopPackages {
			fmt.Fprintf(&sb, "%d. %s · $%s · %d bookings\n", i+1, tg.EscapeMarkdown(p.Title), p.Revenue.StringFixed(2), p.Bookings)
		}
	}

	sb.WriteString("\n*Recent bookings*\n")
	switch {
	case v.RecentBookingsErr != nil:
		sb.WriteString("Unavailable.")
	case len(v.RecentBookings) == 0:
		sb.WriteString("No data.")
	default:
		for _, b := range v.RecentBookings {
			fmt.Fprintf(&sb, "`#%s` %s · %s · %s · $%s\n", b.ID, tg.EscapeMarkdown(b.PackageTitle), tg.EscapeMarkdown(b.TravelerName), b.Status, b.TotalAmount.StringFixed(2))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func orAll(s string) string {
	if s == "" {
		return "…"
	}
	return s
}

func adminText(o *service.AdminOverview) string {
	s := o.Stats
	var sb strings.Builder
	sb.WriteString("🛡 *Admin panel*\n\n")
	fmt.Fprintf(&sb, "👥 Users: %d\n🏢 Companies: %d (%d verified)\n📦 Packages: %d (%d active)\n🧾 Bookings: %d\n💰 Revenue: $%s\n📈 Monthly growth: %+.1f%%\n",
		s.TotalUsers, s.TotalCompanies, s.VerifiedCompanies, s.TotalPackages, s.ActivePackages,
		s.TotalBookings, s.TotalRevenue.StringFixed(2), s.MonthlyGrowth)
	if len(o.Companies) > 0 {
		sb.WriteString("\n*Companies*\n")
		for _, c := range o.Companies {
			flags := ""
			if c.IsVerified {
				flags += " ✔️"
			}
			if !c.IsActive {
				flags += " ⛔"
			}
			fmt.Fprintf(&sb, "`%s` %s · %s%s\n", c.ID, tg.EscapeMarkdown(c.CompanyName), tg.EscapeMarkdown(c.ContactEmail), flags)
		}
	}
	if len(o.Bookings) > 0 {
		sb.WriteString("\n*Latest bookings*\n")
		for i := range o.Bookings[:min(len(o.Bookings), 10)] {
			sb.WriteString(tg.BookingLine(&o.Bookings[i]) + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

const profileUsage = "Usage:\n`/profile name=Acme Travel; type=tour_operator; phone=+351 21 000 0000; " +
	"address=...; website=https://...; logo=https://...; description=...`\n" +
	"Types: travel\\_agency, hotel, transport, tour\\_operator"

func profileText(c *domain.Company) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏢 *%s*", tg.EscapeMarkdown(c.CompanyName))
	if c.IsVerified {
		sb.WriteString(" ✔️")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Type: %s\n", tg.EscapeMarkdown(string(c.CompanyType)))
	fmt.Fprintf(&sb, "Email: %s\n", tg.EscapeMarkdown(c.ContactEmail))
	for _, f := range []struct{ label, value string }{
		{"Phone", c.ContactPhone},
		{"Address", c.Address},
		{"Website", c.Website},
		{"Logo", c.LogoURL},
	} {
		if f.value != "" {
			fmt.Fprintf(&sb, "%s: %s\n", f.label, tg.EscapeMarkdown(f.value))
		}
	}
	if !c.IsActive {
		sb.WriteString("⛔ Suspended by the platform\n")
	}
	if c.Description != "" {
		sb.WriteString("\n" + tg.EscapeMarkdown(c.Description) + "\n")
	}
	sb.WriteString("\nEdit with /profile key=value; ...")
	return sb.String()
}

// historyText lists the logged exchanges of the current conversation.
func historyText(log []domain.ChatMessage) string {
	if len(log) == 0 {
		return "No messages in this conversation yet. Just tell me about your dream trip!"
	}
	var sb strings.Builder
	sb.WriteString("🗂 *This conversation*\n")
	for _, m := range log {
		if m.Message != "" {
			fmt.Fprintf(&sb, "\n🧑 %s", tg.EscapeMarkdown(m.Message))
		}
		if m.Response != "" {
			fmt.Fprintf(&sb, "\n🤖 %s", tg.EscapeMarkdown(m.Response))
		}
	}
	return sb.String()
}
