package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cardtable/internal/config"
	"cardtable/internal/console"
	"cardtable/internal/count"
	"cardtable/internal/game"
	"cardtable/internal/hilo"
	"cardtable/internal/player"
	"cardtable/internal/session"
	"cardtable/internal/shoe"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender is the part of *tgbotapi.BotAPI the handlers talk to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot      Sender
	cfg      *config.Config
	players  player.Repository
	rounds   *session.Manager[*game.Round]
	hilos    *session.Manager[*hilo.Game]
	counters *session.Manager[*count.Counter]
	log      logrus.FieldLogger
}

func NewHandler(bot Sender, cfg *config.Config, repo player.Repository, log logrus.FieldLogger) *Handler {
	return &Handler{
		bot:      bot,
		cfg:      cfg,
		players:  repo,
		rounds:   session.NewManager[*game.Round](),
		hilos:    session.NewManager[*hilo.Game](),
		counters: session.NewManager[*count.Counter](),
		log:      log,
	}
}

// ============== ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.WithField("chat_id", chatID).WithError(err).Error("failed to send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.log.WithField("chat_id", chatID).WithError(err).Error("failed to send message")
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.WithError(err).Warn("failed to answer callback")
	}
}

func (h *Handler) getPlayer(chatID int64) (*player.Player, error) {
	return h.players.GetOrCreate(chatID, h.cfg.StartBalance, h.cfg.DefaultBet)
}

func (h *Handler) savePlayer(p *player.Player) {
	if err := h.players.Save(p); err != nil {
		h.log.WithField("chat_id", p.ChatID).WithError(err).Error("failed to save player")
	}
}

func (h *Handler) chatLog(chatID int64) logrus.FieldLogger {
	return h.log.WithField("chat_id", chatID)
}

// ============== ФОРМАТИРОВАНИЕ ==============

func formatRound(r *game.Round, showDealerHand bool) string {
	var sb strings.Builder

	if showDealerHand {
		sb.WriteString(fmt.Sprintf("🃏 Дилер: %v (%d)\n", r.Dealer, r.Dealer.Value()))
	} else {
		sb.WriteString(fmt.Sprintf("🃏 Дилер: [?, %s]\n", r.DealerUpcard()))
	}

	for i, hand := range r.Hands {
		marker := ""
		if r.HasMultipleHands() && i == r.Active && r.IsActive() {
			marker = " ◀️"
		}
		label := "🎴 Вы"
		if r.HasMultipleHands() {
			label = fmt.Sprintf("🎴 Рука %d", i+1)
		}
		sb.WriteString(fmt.Sprintf("%s: %v (%d)%s\n", label, hand, hand.Value(), marker))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatSettlement(r *game.Round, s *game.Settlement, p *player.Player) string {
	var sb strings.Builder
	sb.WriteString(formatRound(r, true))
	sb.WriteString("\n\n")

	for i, res := range s.Outcomes {
		prefix := ""
		if len(s.Outcomes) > 1 {
			prefix = fmt.Sprintf("Рука %d: ", i+1)
		}

		switch res {
		case game.ResultPlayerWin:
			if r.Dealer.IsBust() {
				sb.WriteString(prefix + "🎉 Дилер перебрал! Вы выиграли!\n")
			} else {
				sb.WriteString(prefix + "🎉 Вы выиграли!\n")
			}
		case game.ResultDealerWin:
			if r.Hands[i].IsBust() {
				sb.WriteString(prefix + "💥 Перебор!\n")
			} else {
				sb.WriteString(prefix + "😔 Дилер выиграл!\n")
			}
		default:
			sb.WriteString(prefix + "🤝 Ничья!\n")
		}
	}

	if net := s.Net(); net > 0 {
		sb.WriteString(fmt.Sprintf("\n💰 Выигрыш: +%d", net))
	} else if net < 0 {
		sb.WriteString(fmt.Sprintf("\n💸 Проигрыш: %d", net))
	}
	sb.WriteString(fmt.Sprintf("\n💵 Баланс: %d", p.Balance))

	return sb.String()
}

// ============== ОБРАБОТЧИКИ КОМАНД ==============

func (h *Handler) HandleStart(chatID int64) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to load player")
		h.send(chatID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"🎰 Добро пожаловать за стол!\n\n"+
			"💵 Баланс: %d\n\n"+
			"/play <ставка> — Blackjack\n"+
			"/hilo — выше или ниже\n"+
			"/count <карта|status|reset> — счёт Hi-Lo\n"+
			"/balance — статистика\n"+
			"/top — топ игроков\n"+
			"/help — правила",
		p.Balance))
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID,
		"📖 Правила Blackjack:\n\n"+
			"🎯 Цель: набрать 21 очко или больше дилера, не перебрав\n\n"+
			"📊 Очки:\n"+
			"• 2-10 — номинал\n"+
			"• J, Q, K — 10\n"+
			"• A — 11 или 1\n\n"+
			"🎮 Действия:\n"+
			"• Hit — взять карту\n"+
			"• Stand — остановиться\n"+
			"• Split — разделить пару (один раз за раздачу)\n\n"+
			"🃏 Дилер добирает до 17.\n\n"+
			"🔢 Hi-Lo: 2-6 = +1, 7-9 = 0, 10-A = -1.\n"+
			"Истинный счёт = текущий счёт / оставшиеся колоды.")
}

func (h *Handler) HandleBalance(chatID int64) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to load player")
		h.send(chatID, "❌ Ошибка")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"💰 Баланс: %d\n\n"+
			"📊 Статистика:\n"+
			"🎮 Игр: %d\n"+
			"✅ Побед: %d (%.1f%%)\n"+
			"❌ Поражений: %d\n"+
			"🤝 Ничьих: %d\n"+
			"🏅 Рекорд «выше-ниже»: %d",
		p.Balance, p.Games, p.Wins, p.WinRate(), p.Losses, p.Ties, p.HighScore))
}

func (h *Handler) HandleTop(chatID int64) {
	stats, err := h.players.GetTopByBalance(10)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to load top players")
		h.send(chatID, "❌ Ошибка")
		return
	}

	if len(stats) == 0 {
		h.send(chatID, "🏆 Пока никто не играл!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Топ игроков:\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range stats {
		medal := fmt.Sprintf("%d.", i+1)
		if i < 3 {
			medal = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %d 💰 | %d игр (%.0f%%)\n",
			medal, s.Balance, s.Games, s.WinRate))
	}

	h.send(chatID, sb.String())
}

func (h *Handler) HandlePlay(chatID int64, args []string) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to load player")
		h.send(chatID, "❌ Ошибка")
		return
	}

	if r, ok := h.rounds.Get(chatID); ok && r.IsActive() {
		h.sendWithKeyboard(chatID, "⏳ Сначала закончите текущую раздачу\n\n"+formatRound(r, false),
			GameKeyboard(GameKeyboardOptions{CanSplit: h.canSplit(r, p)}))
		return
	}

	bet := h.cfg.DefaultBet
	if len(args) > 0 {
		b, err := strconv.Atoi(args[0])
		if err != nil {
			h.send(chatID, fmt.Sprintf("❌ Неверная ставка. Пример: /play %d", h.cfg.DefaultBet))
			return
		}
		bet = b
	}

	if err := p.PlaceBet(bet); err != nil {
		h.chatLog(chatID).WithError(err).Debug("bet rejected")
		if bet > p.Balance {
			h.send(chatID, fmt.Sprintf("❌ Недостаточно средств! Баланс: %d", p.Balance))
		} else {
			h.send(chatID, fmt.Sprintf("❌ Неверная ставка. Пример: /play %d", h.cfg.DefaultBet))
		}
		return
	}

	s, err := shoe.New(h.cfg.TableDecks, nil)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to build shoe")
		h.send(chatID, "❌ Ошибка")
		return
	}

	r, err := game.NewRound(bet, s, h.chatLog(chatID))
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to deal round")
		h.send(chatID, "❌ Ошибка")
		return
	}
	h.rounds.Set(chatID, r)
	h.savePlayer(p)

	h.sendWithKeyboard(chatID,
		fmt.Sprintf("💰 Ставка: %d | Баланс: %d\n\n%s", bet, p.Balance, formatRound(r, false)),
		GameKeyboard(GameKeyboardOptions{CanSplit: h.canSplit(r, p)}))
}

func (h *Handler) HandleHiLo(chatID int64) {
	s, err := shoe.New(h.cfg.HiLoDecks, nil)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to build shoe")
		h.send(chatID, "❌ Ошибка")
		return
	}

	p, err := h.getPlayer(chatID)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to load player")
		h.send(chatID, "❌ Ошибка")
		return
	}

	g, ok := h.hilos.Get(chatID)
	if ok {
		err = g.Restart(s)
	} else {
		g, err = hilo.New(s, h.chatLog(chatID))
	}
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to start hilo")
		h.send(chatID, "❌ Ошибка")
		return
	}
	if p.HighScore > g.HighScore {
		g.HighScore = p.HighScore
	}
	h.hilos.Set(chatID, g)

	h.sendWithKeyboard(chatID,
		fmt.Sprintf("🔼🔽 Выше или ниже?\n\n🃏 Карта: %s\n⭐ Счёт: 0 | 🏅 Рекорд: %d",
			g.Current, g.HighScore),
		HiLoKeyboard())
}

func (h *Handler) HandleCount(chatID int64, args []string) {
	c, ok := h.counters.Get(chatID)
	if !ok {
		var err error
		c, err = count.New(h.cfg.CounterDecks)
		if err != nil {
			h.chatLog(chatID).WithError(err).Error("failed to create counter")
			h.send(chatID, "❌ Ошибка")
			return
		}
		h.counters.Set(chatID, c)
	}

	line := "STATUS"
	if len(args) > 0 {
		line = args[0]
	}

	cmd, err := count.ParseCommand(line)
	if err != nil {
		h.send(chatID, "❌ Неизвестная карта или команда. Пример: /count 10, /count status")
		return
	}

	if cmd.Kind == count.CommandExit {
		h.counters.Delete(chatID)
		h.send(chatID, "👋 Счётчик закрыт.")
		return
	}

	if err := c.Apply(cmd); err != nil {
		if errors.Is(err, count.ErrDepletedRank) {
			h.send(chatID, "❌ Все карты этого достоинства уже вышли.")
			return
		}
		h.chatLog(chatID).WithError(err).Error("failed to apply count command")
		h.send(chatID, "❌ Ошибка")
		return
	}

	switch cmd.Kind {
	case count.CommandCard:
		h.send(chatID, fmt.Sprintf("✔️ Учтена %s\nТекущий счёт: %d, истинный счёт: %.2f",
			cmd.Rank, c.RunningCount(), c.TrueCount()))
	case count.CommandReset:
		h.send(chatID, "🔄 Счёт и история сброшены.")
	case count.CommandStatus:
		var sb strings.Builder
		console.WriteStatus(&sb, c.Status())
		h.send(chatID, strings.TrimSpace(sb.String()))
	}
}

// ============== ОБРАБОТЧИКИ CALLBACK ==============

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		h.answerCallback(callback.ID, "")
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	unlock := h.rounds.Lock(chatID)
	defer unlock()

	p, err := h.getPlayer(chatID)
	if err != nil {
		h.chatLog(chatID).WithError(err).Error("failed to load player")
		h.answerCallback(callback.ID, "Ошибка")
		return
	}

	switch data {
	case CallbackPlayAgain:
		h.answerCallback(callback.ID, "")
		h.HandlePlay(chatID, []string{strconv.Itoa(p.LastBet)})
		return

	case CallbackBalance:
		h.answerCallback(callback.ID, fmt.Sprintf("💵 %d", p.Balance))
		return

	case CallbackHigher, CallbackLower, CallbackHint, CallbackHiLoRestart:
		h.handleHiLoCallback(callback, p)
		return
	}

	r, ok := h.rounds.Get(chatID)
	if !ok || !r.IsActive() {
		h.answerCallback(callback.ID, "Игра не активна")
		return
	}

	switch data {
	case CallbackHit:
		h.handleHit(chatID, r, p)
	case CallbackStand:
		h.handleStand(chatID, r, p)
	case CallbackSplit:
		h.handleSplit(chatID, r, p)
	}

	h.answerCallback(callback.ID, "")
}

func (h *Handler) canSplit(r *game.Round, p *player.Player) bool {
	// each split hand carries its own bet
	return r.CanSplit() && p.CanAfford(r.Bet*(len(r.Hands)+1))
}

func (h *Handler) handleHit(chatID int64, r *game.Round, p *player.Player) {
	active := r.Active
	if _, err := r.Hit(); err != nil {
		h.handleRoundError(chatID, r, err)
		return
	}

	if res := r.Result(); res != nil {
		h.finishRound(chatID, r, res, p)
		return
	}

	text := formatRound(r, false)
	if r.Hands[active].IsBust() {
		text = fmt.Sprintf("💥 Рука %d: перебор!\n\n%s", active+1, text)
	}
	h.sendWithKeyboard(chatID, text, GameKeyboard(GameKeyboardOptions{CanSplit: h.canSplit(r, p)}))
}

func (h *Handler) handleStand(chatID int64, r *game.Round, p *player.Player) {
	if err := r.Stand(); err != nil {
		h.handleRoundError(chatID, r, err)
		return
	}

	if res := r.Result(); res != nil {
		h.finishRound(chatID, r, res, p)
		return
	}

	h.sendWithKeyboard(chatID, formatRound(r, false),
		GameKeyboard(GameKeyboardOptions{CanSplit: h.canSplit(r, p)}))
}

func (h *Handler) handleSplit(chatID int64, r *game.Round, p *player.Player) {
	if !p.CanAfford(r.Bet * (len(r.Hands) + 1)) {
		h.send(chatID, "❌ Недостаточно средств для сплита")
		return
	}

	if err := r.Split(); err != nil {
		if errors.Is(err, game.ErrCannotSplit) {
			h.send(chatID, "❌ Эту руку нельзя разделить")
			return
		}
		h.handleRoundError(chatID, r, err)
		return
	}

	h.sendWithKeyboard(chatID, fmt.Sprintf("✂️ Сплит!\n\n%s", formatRound(r, false)),
		GameKeyboard(GameKeyboardOptions{CanSplit: h.canSplit(r, p)}))
}

func (h *Handler) finishRound(chatID int64, r *game.Round, res *game.Settlement, p *player.Player) {
	p.ApplySettlement(*res)
	h.savePlayer(p)
	h.rounds.Delete(chatID)

	h.chatLog(chatID).WithFields(logrus.Fields{
		"round_id": r.ID.String(),
		"net":      res.Net(),
		"balance":  p.Balance,
	}).Info("round settled")

	h.sendWithKeyboard(chatID, formatSettlement(r, res, p), EndGameKeyboard(p.LastBet))
}

func (h *Handler) handleRoundError(chatID int64, r *game.Round, err error) {
	switch {
	case errors.Is(err, shoe.ErrEmptyDeck):
		h.rounds.Delete(chatID)
		h.chatLog(chatID).WithField("round_id", r.ID.String()).WithError(err).Warn("round aborted")
		h.send(chatID, "🃏 Колода закончилась. Раздача отменена, ставка возвращена.")
	case errors.Is(err, game.ErrRoundOver):
		h.send(chatID, "Игра не активна")
	default:
		h.chatLog(chatID).WithError(err).Error("round action failed")
		h.send(chatID, "❌ Ошибка")
	}
}

func (h *Handler) handleHiLoCallback(callback *tgbotapi.CallbackQuery, p *player.Player) {
	chatID := callback.Message.Chat.ID

	if callback.Data == CallbackHiLoRestart {
		h.answerCallback(callback.ID, "")
		h.HandleHiLo(chatID)
		return
	}

	g, ok := h.hilos.Get(chatID)
	if !ok || g.Over {
		h.answerCallback(callback.ID, "Игра не активна")
		return
	}

	if callback.Data == CallbackHint {
		hint, err := g.Hint()
		switch {
		case errors.Is(err, shoe.ErrEmptyDeck):
			h.answerCallback(callback.ID, "В колоде не осталось карт.")
		case hint.AllEqual:
			h.answerCallback(callback.ID, "Все оставшиеся карты равны текущей!")
		default:
			h.answerCallback(callback.ID, fmt.Sprintf("Выше: %.1f%% | Ниже: %.1f%%", hint.Higher, hint.Lower))
		}
		return
	}

	guess := hilo.Higher
	if callback.Data == CallbackLower {
		guess = hilo.Lower
	}

	turn, err := g.Guess(guess)
	h.answerCallback(callback.ID, "")

	if err != nil {
		if errors.Is(err, shoe.ErrEmptyDeck) {
			h.endHiLo(chatID, g, p, "🃏 Колода пуста!")
			return
		}
		h.chatLog(chatID).WithError(err).Error("hilo guess failed")
		h.send(chatID, "❌ Ошибка")
		return
	}

	switch turn.Outcome {
	case hilo.OutcomeTie:
		h.sendWithKeyboard(chatID,
			fmt.Sprintf("🤝 %s — та же карта, продолжаем.\n\n🃏 Карта: %s\n⭐ Счёт: %d",
				turn.Next, g.Current, g.Score),
			HiLoKeyboard())
	case hilo.OutcomeCorrect:
		h.sendWithKeyboard(chatID,
			fmt.Sprintf("✅ Угадали! %s → %s\n\n🃏 Карта: %s\n⭐ Счёт: %d | 🏅 Рекорд: %d",
				turn.Previous, turn.Next, g.Current, g.Score, g.HighScore),
			HiLoKeyboard())
	default:
		h.endHiLo(chatID, g, p, fmt.Sprintf("❌ Не угадали! %s → %s", turn.Previous, turn.Next))
	}
}

func (h *Handler) endHiLo(chatID int64, g *hilo.Game, p *player.Player, reason string) {
	text := fmt.Sprintf("%s\n\n🏁 Итоговый счёт: %d", reason, g.Score)
	if p.RecordHighScore(g.Score) {
		h.savePlayer(p)
		text += "\n🏅 Новый рекорд!"
	}
	text += fmt.Sprintf("\n🏅 Рекорд: %d", p.HighScore)

	h.sendWithKeyboard(chatID, text, HiLoEndKeyboard())
}

// ============== ОБРАБОТЧИК СООБЩЕНИЙ ==============

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	unlock := h.rounds.Lock(chatID)
	defer unlock()

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/play":
		h.HandlePlay(chatID, args)
	case "/hilo":
		h.HandleHiLo(chatID)
	case "/count":
		h.HandleCount(chatID, args)
	case "/balance":
		h.HandleBalance(chatID)
	case "/top":
		h.HandleTop(chatID)
	}
}
