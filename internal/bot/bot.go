package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"event-bot/internal/service"
)

const (
	msgWelcome          = "Welcome! Please select an option from the menu:"
	msgAuthSuccess      = "Authorization successful!"
	msgAuthInvalid      = "Invalid code. Please try again."
	msgAuthConflict     = "User is already authorized."
	msgTransientFailure = "An error occurred. Please try again later."
)

// reply is the single outbound message a handler produces. showMenu attaches
// the main reply keyboard; without it the client keeps its current keyboard.
type reply struct {
	text     string
	showMenu bool
}

type handlerFunc func(ctx context.Context, telegramID int64, text string) (*reply, error)

// Bot wires the Telegram transport to the authorization and menu services.
// It is the explicit application context: everything it needs is injected
// once at startup, no package-level state.
type Bot struct {
	api         *tgbotapi.BotAPI
	authSvc     *service.AuthService
	menuSvc     *service.MenuService
	announceSvc *service.AnnounceService
	handlers    map[MessageIntent]handlerFunc
}

func New(token string, authSvc *service.AuthService, menuSvc *service.MenuService, announceSvc *service.AnnounceService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return newBot(api, authSvc, menuSvc, announceSvc), nil
}

func newBot(api *tgbotapi.BotAPI, authSvc *service.AuthService, menuSvc *service.MenuService, announceSvc *service.AnnounceService) *Bot {
	b := &Bot{
		api:         api,
		authSvc:     authSvc,
		menuSvc:     menuSvc,
		announceSvc: announceSvc,
	}
	b.handlers = map[MessageIntent]handlerFunc{
		IntentStart:       b.handleStart,
		IntentSpeakers:    b.sectionHandler(service.SectionSpeakers),
		IntentNetworking:  b.sectionHandler(service.SectionNetworking),
		IntentInformation: b.sectionHandler(service.SectionInformation),
		IntentAgenda:      b.sectionHandler(service.SectionAgenda),
		IntentSignIn:      b.sectionHandler(service.SectionSignIn),
		IntentAuthCode:    b.handleAuthCode,
	}
	return b
}

// Start begins polling updates until ctx is cancelled. Each message is
// handled in its own goroutine so one user's storage round trip does not
// stall the others; the database is the only shared state.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		msg := update.Message
		go func() {
			if err := b.handleMessage(ctx, msg); err != nil {
				log.Printf("handle message from %d: %v", msg.From.ID, err)
			}
		}()
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	intent := ClassifyMessage(msg.IsCommand(), msg.Command(), msg.Text)
	out, err := b.route(ctx, msg.From.ID, intent, msg.Text)
	if err != nil {
		log.Printf("route %s from %d: %v", intent, msg.From.ID, err)
	}
	if out == nil {
		return nil
	}
	return b.send(msg.Chat.ID, out)
}

// route dispatches a classified message to its handler. Unknown intents have
// no handler and produce no reply. A handler error never escapes without a
// user-facing reply; the error itself is for the caller's log line.
func (b *Bot) route(ctx context.Context, telegramID int64, intent MessageIntent, text string) (*reply, error) {
	handler, ok := b.handlers[intent]
	if !ok {
		return nil, nil
	}
	return handler(ctx, telegramID, text)
}

func (b *Bot) handleStart(ctx context.Context, telegramID int64, _ string) (*reply, error) {
	// The menu shows every section regardless of the flag; the lookup only
	// confirms the row is reachable before rendering.
	if _, err := b.authSvc.IsAuthorized(ctx, telegramID); err != nil {
		return &reply{text: msgTransientFailure}, err
	}
	return &reply{text: msgWelcome, showMenu: true}, nil
}

func (b *Bot) sectionHandler(section service.Section) handlerFunc {
	return func(ctx context.Context, telegramID int64, _ string) (*reply, error) {
		isAuthorized := false
		if section == service.SectionSpeakers || section == service.SectionNetworking {
			var err error
			isAuthorized, err = b.authSvc.IsAuthorized(ctx, telegramID)
			if err != nil {
				return &reply{text: msgTransientFailure}, err
			}
		}
		return &reply{text: b.menuSvc.Answer(section, isAuthorized)}, nil
	}
}

func (b *Bot) handleAuthCode(ctx context.Context, telegramID int64, text string) (*reply, error) {
	log.Printf("[info] received auth code from user %d", telegramID)

	// The classifier matched the trimmed text; the store must see the same
	// form, codes are stored without padding.
	outcome, err := b.authSvc.SubmitCode(ctx, telegramID, strings.TrimSpace(text))
	switch outcome {
	case service.AuthSuccess:
		log.Printf("[info] user %d authorized successfully", telegramID)
		return &reply{text: msgAuthSuccess, showMenu: true}, nil
	case service.AuthInvalidCode:
		log.Printf("[info] invalid code for user %d", telegramID)
		return &reply{text: msgAuthInvalid}, nil
	case service.AuthAlreadyAuthorized:
		return &reply{text: msgAuthConflict}, nil
	default:
		return &reply{text: msgTransientFailure}, err
	}
}

// SendAgendaReminders pushes the agenda digest to every authorized user.
func (b *Bot) SendAgendaReminders(ctx context.Context) error {
	users, err := b.authSvc.ListAuthorized(ctx)
	if err != nil {
		return err
	}
	digest := b.announceSvc.AgendaDigest(time.Now())
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := b.send(user.TelegramID, &reply{text: digest, showMenu: true}); err != nil {
			log.Printf("send reminder to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) send(chatID int64, out *reply) error {
	msg := tgbotapi.NewMessage(chatID, out.text)
	msg.ParseMode = tgbotapi.ModeHTML
	if out.showMenu {
		msg.ReplyMarkup = b.mainMenuKeyboard()
	}
	_, err := b.api.Send(msg)
	return err
}

// mainMenuKeyboard lays the sections out in the fixed two-per-row order.
func (b *Bot) mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	sections := b.menuSvc.VisibleSections(true)

	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(sections); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(sections[i].Label())}
		if i+1 < len(sections) {
			row = append(row, tgbotapi.NewKeyboardButton(sections[i+1].Label()))
		}
		rows = append(rows, row)
	}

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}
