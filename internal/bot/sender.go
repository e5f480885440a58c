package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// sender throttles outgoing Telegram calls below the Bot API's global
// message rate.
type sender struct {
	tg      telegramClient
	limiter *rate.Limiter
}

func newSender(tg telegramClient, perSecond float64) *sender {
	if perSecond <= 0 {
		perSecond = 25
	}
	return &sender{
		tg:      tg,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (s *sender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := s.limiter.Wait(context.Background()); err != nil {
		return tgbotapi.Message{}, err
	}
	return s.tg.Send(c)
}
