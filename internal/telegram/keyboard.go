package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/travelhub/internal/domain"
)

// Callback data prefixes shared by keyboards and the handlers that answer them.
const (
	CallbackPackage      = "pkg_"
	CallbackBook         = "book_"
	CallbackSearchPage   = "sp_"
	CallbackToggleActive = "ptoggle_"
	CallbackDeletePkg    = "pdel_"
	CallbackVerify       = "cverify_"
	CallbackCompanyState = "cactive_"
	CallbackPreset       = "apreset_"
	CallbackPackageScope = "apkg_"
	CallbackDestination  = "adest_"
	CallbackNoop         = "cur"
)

func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// PaginationRow creates a pagination row with prev/next buttons.
func PaginationRow(currentPage, totalPages int, callbackPrefix string) []models.InlineKeyboardButton {
	var row []models.InlineKeyboardButton

	if currentPage > 0 {
		row = append(row, InlineButton("⬅️", fmt.Sprintf("%s%d", callbackPrefix, currentPage-1)))
	}

	row = append(row, InlineButton(
		fmt.Sprintf("%d/%d", currentPage+1, totalPages),
		CallbackNoop,
	))

	if currentPage < totalPages-1 {
		row = append(row, InlineButton("➡️", fmt.Sprintf("%s%d", callbackPrefix, currentPage+1)))
	}

	return row
}

// ResultsKeyboard lists one details button per package plus a pagination row.
func ResultsKeyboard(page []domain.TravelPackage, currentPage, totalPages int) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(page)+1)
	for _, p := range page {
		rows = append(rows, ButtonRow(InlineButton(
			fmt.Sprintf("%s · $%s", p.Title, p.Price.StringFixed(0)),
			CallbackPackage+p.ID,
		)))
	}
	if totalPages > 1 {
		rows = append(rows, PaginationRow(currentPage, totalPages, CallbackSearchPage))
	}
	return InlineKeyboard(rows...)
}

func PackageKeyboard(p *domain.TravelPackage) *models.InlineKeyboardMarkup {
	return InlineKeyboard(ButtonRow(InlineButton("🧳 Book now", CallbackBook+p.ID)))
}

// OwnerKeyboard carries the management actions of a company's own package.
func OwnerKeyboard(p *domain.TravelPackage) []models.InlineKeyboardButton {
	toggle := "⏸ Deactivate"
	if !p.IsActive {
		toggle = "▶️ Activate"
	}
	return ButtonRow(
		InlineButton(toggle, CallbackToggleActive+p.ID),
		InlineButton("🗑 Delete", CallbackDeletePkg+p.ID),
	)
}

func PresetKeyboard(presets []int) *models.InlineKeyboardMarkup {
	row := make([]models.InlineKeyboardButton, 0, len(presets))
	for _, days := range presets {
		row = append(row, InlineButton(fmt.Sprintf("%dd", days), fmt.Sprintf("%s%d", CallbackPreset, days)))
	}
	return InlineKeyboard(row)
}
