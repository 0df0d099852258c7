package bot

import (
	"context"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramAPI is the subset of the Telegram client the bot uses once
// authorized.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type InterviewUsecase interface {
	Questionnaire() *entity.Questionnaire
	FirstQuestion() *entity.QuestionSpec
	Advance(ctx context.Context, state *entity.ConversationState, answer string) (*entity.Outcome, error)
}

type RecordUsecase interface {
	Complete(ctx context.Context, state *entity.ConversationState) (*entity.IntakeRecord, error)
	Render(record *entity.IntakeRecord) string
}
