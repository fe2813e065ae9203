package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/session"
	tg "github.com/set-night/travelhub/internal/telegram"
)

// Register registers all command and callback handlers with the bot.
func (h *Handler) Register() {
	signedIn := h.guard(session.RouteHome)
	companyOnly := h.guard(session.RouteCompanyDashboard, domain.RoleCompany, domain.RoleAdmin)
	adminOnly := h.guard(session.RouteAdminPanel, domain.RoleAdmin)

	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/search", bot.MatchTypePrefix, h.handleSearch)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/package", bot.MatchTypePrefix, h.handlePackage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/bookings", bot.MatchTypePrefix, signedIn(h.handleBookings))
	// Matched as whole commands so they do not shadow /bookings.
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "book", bot.MatchTypeCommandStartOnly, h.handleBook)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "booking", bot.MatchTypeCommandStartOnly, signedIn(h.handleBookingDetails))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypePrefix, h.handleLogin)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signup", bot.MatchTypePrefix, h.handleSignup)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypePrefix, h.handleLogout)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/me", bot.MatchTypePrefix, h.handleMe)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newchat", bot.MatchTypePrefix, h.handleNewChat)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.handleHistory)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dashboard", bot.MatchTypePrefix, companyOnly(h.handleDashboard))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypePrefix, companyOnly(h.handleProfile))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addpackage", bot.MatchTypePrefix, companyOnly(h.handleAddPackage))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/analytics", bot.MatchTypePrefix, companyOnly(h.handleAnalytics))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypePrefix, adminOnly(h.handleAdmin))
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/setstatus", bot.MatchTypePrefix, adminOnly(h.handleSetStatus))

	// Browsing callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackPackage, bot.MatchTypePrefix, h.handlePackageCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackBook, bot.MatchTypePrefix, h.handleBookCallback)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackSearchPage, bot.MatchTypePrefix, h.handleSearchPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackNoop, bot.MatchTypeExact, h.handleNoop)

	// Company callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackToggleActive, bot.MatchTypePrefix, companyOnly(h.handleToggleActive))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackDeletePkg, bot.MatchTypePrefix, companyOnly(h.handleDeletePackage))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackPreset, bot.MatchTypePrefix, companyOnly(h.handlePresetCallback))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackPackageScope, bot.MatchTypePrefix, companyOnly(h.handlePackageScope))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackDestination, bot.MatchTypePrefix, companyOnly(h.handleDestinationScope))

	// Admin callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackVerify, bot.MatchTypePrefix, adminOnly(h.handleToggleVerified))
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, tg.CallbackCompanyState, bot.MatchTypePrefix, adminOnly(h.handleToggleCompanyActive))
}
