package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackHit         = "hit"
	CallbackStand       = "stand"
	CallbackSplit       = "split"
	CallbackPlayAgain   = "play_again"
	CallbackBalance     = "balance"
	CallbackHigher      = "hilo_higher"
	CallbackLower       = "hilo_lower"
	CallbackHint        = "hilo_hint"
	CallbackHiLoRestart = "hilo_restart"
)

type GameKeyboardOptions struct {
	CanSplit bool
}

func GameKeyboard(opts GameKeyboardOptions) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("👊 Hit", CallbackHit),
		tgbotapi.NewInlineKeyboardButtonData("✋ Stand", CallbackStand),
	}

	if opts.CanSplit {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✂️ Split", CallbackSplit))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func EndGameKeyboard(lastBet int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🔄 Ещё (%d)", lastBet),
				CallbackPlayAgain,
			),
			tgbotapi.NewInlineKeyboardButtonData("💵 Баланс", CallbackBalance),
		),
	)
}

func HiLoKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬆️ Выше", CallbackHigher),
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Ниже", CallbackLower),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💡 Подсказка", CallbackHint),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Заново", CallbackHiLoRestart),
		),
	)
}

func HiLoEndKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Заново", CallbackHiLoRestart),
		),
	)
}
