package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"event-bot/internal/repository"
	"event-bot/internal/service"
)

// newTestBot builds a bot without a Telegram API connection. Handlers only
// produce replies; sending is the caller's concern.
func newTestBot(t *testing.T, codes ...string) (*Bot, *gorm.DB) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	codeRepo := repository.NewAuthCodeRepository(db)
	require.NoError(t, codeRepo.Seed(context.Background(), codes))

	authSvc := service.NewAuthService(repository.NewUserRepository(db), codeRepo)
	return newBot(nil, authSvc, service.NewMenuService(), service.NewAnnounceService()), db
}

func (b *Bot) mustRoute(t *testing.T, telegramID int64, text string) *reply {
	t.Helper()
	intent := ClassifyMessage(false, "", text)
	out, err := b.route(context.Background(), telegramID, intent, text)
	require.NoError(t, err)
	return out
}

func TestBot_Start_ShowsMenu(t *testing.T) {
	b, _ := newTestBot(t, "1234")

	out, err := b.route(context.Background(), 42, IntentStart, "/start")
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, msgWelcome, out.text)
	require.True(t, out.showMenu)
}

func TestBot_ValidCode_AuthorizesAndShowsMenu(t *testing.T) {
	b, _ := newTestBot(t, "1234")

	out := b.mustRoute(t, 42, "1234")
	require.NotNil(t, out)
	require.Equal(t, msgAuthSuccess, out.text)
	require.True(t, out.showMenu)

	// Gated section now answers with content.
	out = b.mustRoute(t, 42, "Speakers")
	require.Equal(t, "List of speakers: ...", out.text)
}

func TestBot_InvalidCode_NoStateChange(t *testing.T) {
	b, _ := newTestBot(t, "1234")

	out := b.mustRoute(t, 42, "9999")
	require.NotNil(t, out)
	require.Equal(t, msgAuthInvalid, out.text)
	require.False(t, out.showMenu)

	out = b.mustRoute(t, 42, "Speakers")
	require.Equal(t, "You need to be authorized to access this section.", out.text)
}

func TestBot_GatedSection_Unauthorized(t *testing.T) {
	b, _ := newTestBot(t, "1234")

	out := b.mustRoute(t, 42, "Speakers")
	require.NotNil(t, out)
	require.Equal(t, "You need to be authorized to access this section.", out.text)

	out = b.mustRoute(t, 42, "Networking")
	require.NotNil(t, out)
	require.Equal(t, "You need to be authorized to access Networking.", out.text)
}

func TestBot_PaddedValidCode_Authorizes(t *testing.T) {
	b, _ := newTestBot(t, "1234")

	// The classifier matches on trimmed text; the submission must use the
	// same form so a padded valid code still authorizes.
	out := b.mustRoute(t, 42, " 1234 ")
	require.NotNil(t, out)
	require.Equal(t, msgAuthSuccess, out.text)
	require.True(t, out.showMenu)
}

func TestBot_StorageFault_TransientReply(t *testing.T) {
	b, db := newTestBot(t, "1234")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	out, err := b.route(context.Background(), 42, IntentAuthCode, "1234")
	require.Error(t, err)
	require.NotNil(t, out)
	require.Equal(t, msgTransientFailure, out.text)
	require.False(t, out.showMenu)
}

func TestBot_OpenSections_AlwaysAnswer(t *testing.T) {
	b, _ := newTestBot(t, "1234")

	out := b.mustRoute(t, 42, "Information")
	require.Equal(t, "Here is some information about the event...", out.text)

	out = b.mustRoute(t, 42, "Agenda")
	require.Equal(t, "Here is the event agenda...", out.text)

	out = b.mustRoute(t, 42, "Sign In")
	require.Equal(t, "Please enter your unique code to sign in:", out.text)
}

func TestBot_UnknownInput_Dropped(t *testing.T) {
	b, _ := newTestBot(t, "1234")

	out, err := b.route(context.Background(), 42, IntentUnknown, "what is this")
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestBot_MainMenuKeyboard_Layout(t *testing.T) {
	b, _ := newTestBot(t)

	kb := b.mainMenuKeyboard()
	require.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 3)
	require.Equal(t, "Speakers", kb.Keyboard[0][0].Text)
	require.Equal(t, "Networking", kb.Keyboard[0][1].Text)
	require.Equal(t, "Information", kb.Keyboard[1][0].Text)
	require.Equal(t, "Agenda", kb.Keyboard[1][1].Text)
	require.Equal(t, "Sign In", kb.Keyboard[2][0].Text)
}
