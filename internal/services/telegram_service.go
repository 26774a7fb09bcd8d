package services

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"tikoncha/internal/repositories"
	"tikoncha/internal/utils"
)

const linkCodeTTL = 15 * time.Minute

// TelegramService binds parent Telegram accounts to platform users and
// pushes alerts. A nil bot turns every send into a logged no-op so the
// rest of the system never cares whether the integration is configured.
type TelegramService struct {
	bot   *tgbotapi.BotAPI
	links repositories.TelegramLinkRepository
	users repositories.UserRepository
}

func NewTelegramService(botToken string, links repositories.TelegramLinkRepository, users repositories.UserRepository) *TelegramService {
	var bot *tgbotapi.BotAPI
	if botToken != "" {
		b, err := tgbotapi.NewBotAPI(botToken)
		if err != nil {
			log.Printf("[tg][init] bot init failed, alerts disabled: %v", err)
		} else {
			bot = b
		}
	}
	return &TelegramService{bot: bot, links: links, users: users}
}

// IssueLinkCode creates a one-time code the parent sends to the bot as
// "/start <code>".
func (t *TelegramService) IssueLinkCode(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	code, err := utils.RandomHex(8)
	if err != nil {
		return "", time.Time{}, err
	}
	link, err := t.links.Create(ctx, userID, code, linkCodeTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return link.Code, link.ExpiresAt, nil
}

// HandleUpdate processes one webhook update. Only "/start <code>" is
// understood; everything else gets a short hint.
func (t *TelegramService) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	chatID := update.Message.Chat.ID
	if update.Message.Command() != "start" {
		t.reply(chatID, "Hisobni bog'lash uchun: /start <kod>")
		return
	}
	code := update.Message.CommandArguments()
	if code == "" {
		t.reply(chatID, "Kod ko'rsatilmagan. Ilovadan olingan kodni yuboring: /start <kod>")
		return
	}
	link, err := t.links.UseByCode(ctx, code)
	if err != nil {
		log.Printf("[tg][link] code redeem failed: %v", err)
		t.reply(chatID, "Kod noto'g'ri yoki muddati o'tgan.")
		return
	}
	if err := t.users.UpdateTelegramChat(link.UserID, chatID); err != nil {
		log.Printf("[tg][link] bind chat %d to user %s failed: %v", chatID, link.UserID, err)
		t.reply(chatID, "Xatolik yuz berdi, keyinroq urinib ko'ring.")
		return
	}
	log.Printf("[tg][link] user %s bound to chat %d", link.UserID, chatID)
	t.reply(chatID, "Hisob muvaffaqiyatli bog'landi. Ogohlantirishlar shu yerga keladi.")
}

// AlertParents notifies every linked parent of the student. Failures are
// logged and swallowed, alerts are best-effort.
func (t *TelegramService) AlertParents(parentIDs []uuid.UUID, text string) {
	for _, pid := range parentIDs {
		parent, err := t.users.GetByID(pid)
		if err != nil || parent == nil || parent.TelegramChatID == nil {
			continue
		}
		t.reply(*parent.TelegramChatID, text)
	}
}

func (t *TelegramService) reply(chatID int64, text string) {
	if t.bot == nil {
		log.Printf("[tg][skip] bot not configured, chat=%d", chatID)
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send] chat %d: %v", chatID, err)
	}
}

// AlertText builds the parent-facing alert line.
func AlertText(studentName, actionName, degree string, at time.Time) string {
	return fmt.Sprintf("Diqqat: %s — %s (%s), %s", studentName, actionName, degree, at.Format("02.01.2006 15:04"))
}
