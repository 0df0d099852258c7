package telegram

import (
	"context"
	"fmt"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/config"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/repository"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/telegram/bot"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	states repository.ChatStateRepository,
	interviewUC bot.InterviewUsecase,
	recordUC bot.RecordUsecase,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, states, interviewUC, recordUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
