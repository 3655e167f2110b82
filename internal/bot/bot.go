package bot

import (
	"context"
	"errors"

	"cardtable/internal/config"
	"cardtable/internal/player"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	log     logrus.FieldLogger
}

func New(cfg *config.Config, repo player.Repository, log logrus.FieldLogger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		handler: NewHandler(api, cfg, repo, log),
		log:     log,
	}, nil
}

// Run polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.log.WithField("username", b.api.Self.UserName).Info("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			if update.CallbackQuery != nil {
				go b.handler.HandleCallback(update.CallbackQuery)
				continue
			}

			if update.Message != nil {
				go b.handler.HandleMessage(update.Message)
			}
		}
	}
}
