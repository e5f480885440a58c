package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"poezdka/internal/dialog"
)

var (
	mainKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📍 Москва"),
			tgbotapi.NewKeyboardButton("📍 Санкт-Петербург"),
			tgbotapi.NewKeyboardButton("📍 Сочи"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📅 Завтра"),
			tgbotapi.NewKeyboardButton("📅 На выходные"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🎯 Сценарии"),
			tgbotapi.NewKeyboardButton("🎉 Акции"),
			tgbotapi.NewKeyboardButton("🛒 Корзина"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📚 Мои заказы"),
			tgbotapi.NewKeyboardButton("ℹ️ Помощь"),
		),
	)

	cartKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📋 Оформить заказ"),
			tgbotapi.NewKeyboardButton("🗑 Очистить корзину"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🎫 Мой билет"),
			tgbotapi.NewKeyboardButton("🎉 Акции"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("▶️ Продолжить"),
			tgbotapi.NewKeyboardButton("🔄 Сброс"),
		),
	)

	confirmKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("✅ Да, подтверждаю"),
			tgbotapi.NewKeyboardButton("❌ Нет, отменить"),
		),
	)

	scenariosKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("1"),
			tgbotapi.NewKeyboardButton("2"),
			tgbotapi.NewKeyboardButton("3"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("4"),
			tgbotapi.NewKeyboardButton("5"),
			tgbotapi.NewKeyboardButton("🔄 Сброс"),
		),
	)

	promosKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("1"),
			tgbotapi.NewKeyboardButton("2"),
			tgbotapi.NewKeyboardButton("3"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("4"),
			tgbotapi.NewKeyboardButton("5"),
			tgbotapi.NewKeyboardButton("6"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🛒 Корзина"),
		),
	)

	ticketKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🛒 Корзина"),
			tgbotapi.NewKeyboardButton("📋 Оформить заказ"),
		),
	)

	helpKeyboard = tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🎯 Сценарии"),
			tgbotapi.NewKeyboardButton("🎉 Акции"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🛒 Корзина"),
			tgbotapi.NewKeyboardButton("🔄 Сброс"),
		),
	)
)

// keyboardFor picks the reply keyboard matching the controller's hint.
func keyboardFor(ui dialog.Hint) tgbotapi.ReplyKeyboardMarkup {
	switch ui {
	case dialog.UICart:
		return cartKeyboard
	case dialog.UIConfirm:
		return confirmKeyboard
	case dialog.UIScenarios:
		return scenariosKeyboard
	case dialog.UIPromos:
		return promosKeyboard
	case dialog.UITicket:
		return ticketKeyboard
	case dialog.UIHelp:
		return helpKeyboard
	}
	return mainKeyboard
}
