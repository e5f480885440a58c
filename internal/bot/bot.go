// Package bot is the Telegram transport: it polls updates, maps button
// labels to dialog phrases, forwards text to the conversation controller
// and renders replies with the keyboard the controller hints at.
package bot

import (
	"context"
	"fmt"
	"io"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"poezdka/internal/audit"
	"poezdka/internal/dialog"
	"poezdka/internal/models"
)

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// Bot wires the Telegram update loop to the conversation controller.
type Bot struct {
	tg       telegramClient
	sender   *sender
	dialog   *dialog.Controller
	store    dialog.Store
	audit    *audit.Service
	managers map[int64]struct{}
	logger   *zerolog.Logger
}

func New(
	token string,
	debug bool,
	sendRate float64,
	controller *dialog.Controller,
	store dialog.Store,
	exporter audit.TableExporter,
	managers []int64,
	logger *zerolog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug
	return newBot(&realTelegramClient{api: api}, sendRate, controller, store, exporter, managers, logger)
}

// NewWithTelegramClient allows injecting a mocked Telegram client for tests.
func NewWithTelegramClient(
	tg telegramClient,
	sendRate float64,
	controller *dialog.Controller,
	store dialog.Store,
	exporter audit.TableExporter,
	managers []int64,
	logger *zerolog.Logger,
) (*Bot, error) {
	return newBot(tg, sendRate, controller, store, exporter, managers, logger)
}

func newBot(
	tg telegramClient,
	sendRate float64,
	controller *dialog.Controller,
	store dialog.Store,
	exporter audit.TableExporter,
	managers []int64,
	logger *zerolog.Logger,
) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	mgrs := make(map[int64]struct{})
	for _, id := range managers {
		mgrs[id] = struct{}{}
	}
	b := &Bot{
		tg:       tg,
		sender:   newSender(tg, sendRate),
		dialog:   controller,
		store:    store,
		managers: mgrs,
		logger:   logger,
	}
	b.audit = audit.NewService(exporter, audit.NewExcelizeWriter, b, logger)
	return b, nil
}

func (b *Bot) isManager(userID int64) bool {
	_, ok := b.managers[userID]
	return ok
}

// Start begins polling updates. Returns when ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.logger.Info().Str("username", b.tg.SelfUser().UserName).Msg("bot authorized")

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			updateCtx := l.WithContext(ctx)
			b.handleUpdate(updateCtx, &update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	l := zerolog.Ctx(ctx)
	l.Debug().
		Int64("user_id", update.Message.From.ID).
		Str("text", update.Message.Text).
		Msg("handling message")
	b.handleMessage(ctx, update.Message)
}

// buttonLabels maps reply-keyboard captions to the phrases the dialog
// layer understands.
var buttonLabels = map[string]string{
	"📍 Москва":           "Москва",
	"📍 Санкт-Петербург":  "Санкт-Петербург",
	"📍 Сочи":             "Сочи",
	"📅 Завтра":           "завтра",
	"📅 На выходные":      "на выходные",
	"🎯 Сценарии":         "сценарии",
	"🎉 Акции":            "акции",
	"🛒 Корзина":          "корзина",
	"🎫 Мой билет":        "мой билет",
	"📚 Мои заказы":       "мои заказы",
	"📋 Оформить заказ":   "оформить заказ",
	"🗑 Очистить корзину": "очистить корзину",
	"✅ Да, подтверждаю":  "да",
	"❌ Нет, отменить":    "нет",
	"▶️ Продолжить":       "продолжить",
	"🔄 Сброс":            "сброс",
	"ℹ️ Помощь":           "помощь",
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg == nil || msg.From == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch {
	case strings.HasPrefix(text, "/start"):
		b.handleStart(ctx, msg)
		return
	case strings.HasPrefix(text, "/help"):
		text = "помощь"
	case strings.HasPrefix(text, "/cart"):
		text = "корзина"
	case strings.HasPrefix(text, "/ticket"):
		text = "мой билет"
	case strings.HasPrefix(text, "/orders"):
		text = "мои заказы"
	case strings.HasPrefix(text, "/reset"):
		text = "сброс"
	case strings.HasPrefix(text, "/export"):
		b.handleExport(ctx, chatID, userID)
		return
	}

	if mapped, ok := buttonLabels[text]; ok {
		text = mapped
	}

	resp := b.dialog.HandleMessage(ctx, userID, text)
	b.reply(chatID, resp)

	if resp.Order != nil {
		b.notifyManagers(resp.Order)
	}
}

const welcomeText = `Добро пожаловать! Я помогу организовать путешествие на поезде! 🚂

Напишите, куда хотите поехать (Москва, Санкт-Петербург, Сочи или другой город), или воспользуйтесь кнопками ниже.`

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	l := zerolog.Ctx(ctx)

	u := &models.User{
		TelegramID: msg.From.ID,
		Username:   msg.From.UserName,
		FirstName:  msg.From.FirstName,
		LastName:   msg.From.LastName,
	}
	if err := b.store.SaveUser(ctx, u); err != nil {
		l.Error().Err(err).Int64("user_id", msg.From.ID).Msg("user save failed")
	}

	b.dialog.Session(msg.From.ID).Reset(true)
	b.reply(msg.Chat.ID, dialog.Response{Text: welcomeText, UI: dialog.UIMain})
}

func (b *Bot) handleExport(ctx context.Context, chatID, userID int64) {
	if !b.isManager(userID) {
		b.reply(chatID, dialog.Response{Text: "Эта команда доступна только менеджерам.", UI: dialog.UIMain})
		return
	}
	if err := b.audit.ExportOrders(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("export failed")
		b.reply(chatID, dialog.Response{Text: "❌ Не удалось сформировать отчет.", UI: dialog.UIMain})
		return
	}
	b.reply(chatID, dialog.Response{Text: "📊 Отчет отправлен менеджерам.", UI: dialog.UIMain})
}

func (b *Bot) reply(chatID int64, resp dialog.Response) {
	msg := tgbotapi.NewMessage(chatID, resp.Text)
	msg.ReplyMarkup = keyboardFor(resp.UI)
	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send failed")
	}
}

// notifyManagers tells every manager about a freshly confirmed order.
func (b *Bot) notifyManagers(o *models.Order) {
	text := fmt.Sprintf("🆕 Новый заказ %s\n📍 %s (%s)\n💰 %.2f руб.\n👤 Пользователь %d",
		o.BookingNumber, o.Destination, o.TravelDate, o.TotalPrice, o.UserID)
	for id := range b.managers {
		if _, err := b.sender.Send(tgbotapi.NewMessage(id, text)); err != nil {
			b.logger.Warn().Err(err).Int64("manager_id", id).Msg("manager notify failed")
		}
	}
}

// SendDocument delivers a report file to every manager. Implements
// audit.Notifier.
func (b *Bot) SendDocument(ctx context.Context, filename string, data io.Reader, caption string) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	var lastErr error
	for id := range b.managers {
		doc := tgbotapi.NewDocument(id, tgbotapi.FileBytes{Name: filename, Bytes: raw})
		doc.Caption = caption
		if _, err := b.sender.Send(doc); err != nil {
			lastErr = err
			b.logger.Warn().Err(err).Int64("manager_id", id).Msg("document send failed")
		}
	}
	return lastErr
}
