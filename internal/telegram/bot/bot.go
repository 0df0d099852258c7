package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/config"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/formatter"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/repository"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/telegram/middleware"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot. Unlike the HTTP API, the bot owns the
// conversation state of each chat and persists it between messages.
type Bot struct {
	api         TelegramAPI
	cfg         *config.TelegramConfig
	states      repository.ChatStateRepository
	interview   InterviewUsecase
	records     RecordUsecase
	formatters  *formatter.Factory
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	states repository.ChatStateRepository,
	interview InterviewUsecase,
	records RecordUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:        api,
		cfg:        cfg,
		states:     states,
		interview:  interview,
		records:    records,
		formatters: formatter.NewFactory(),
		logger:     logger,
		stopChan:   make(chan struct{}),
	}

	// Initialize middleware
	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.updatesChan = updates

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	// Wait for all active handlers to complete
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			// Process update with middleware in separate goroutine
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	// Rate limiter middleware (first to check)
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		// Logging middleware
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			// Recovery middleware
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message)
		return
	}

	b.handleAnswer(ctx, update.Message)
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.sendMessage(message.Chat.ID, render.MsgWelcome)
	case "begin":
		b.handleBeginCommand(ctx, message)
	case "help":
		b.sendMessage(message.Chat.ID, render.Help(b.interview.Questionnaire().Total()))
	case "cancel":
		b.handleCancelCommand(ctx, message)
	default:
		b.sendMessage(message.Chat.ID, render.ErrUnknownCommand)
	}
}

// handleBeginCommand starts a fresh interview for the chat
func (b *Bot) handleBeginCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	existing, err := b.states.Get(ctx, chatID)
	if err != nil && !errors.Is(err, repository.ErrChatStateNotFound) {
		ctxzap.Error(ctx, "failed to get chat state",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}
	if existing != nil && existing.CurrentQuestion <= b.interview.Questionnaire().Total() {
		b.sendMessage(chatID, render.MsgInterviewInProgress)
		return
	}

	state := entity.NewConversationState(uuid.New().String())
	first := b.interview.FirstQuestion()
	state.Transcript = append(state.Transcript, entity.Message{
		Role:    entity.RoleAssistant,
		Content: first.Prompt,
	})

	if err := b.states.Set(ctx, chatID, state); err != nil {
		ctxzap.Error(ctx, "failed to save chat state",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	ctxzap.Info(ctx, "interview started",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", state.SessionID),
	)

	b.sendMessage(chatID, render.Question(first.Number, b.interview.Questionnaire().Total(), first.Prompt))
}

// handleCancelCommand abandons the current interview
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if _, err := b.states.Get(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrChatStateNotFound) {
			b.sendMessage(chatID, render.MsgNoActiveInterview)
			return
		}
		ctxzap.Error(ctx, "failed to get chat state",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	if err := b.states.Delete(ctx, chatID); err != nil {
		ctxzap.Error(ctx, "failed to delete chat state",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	b.sendMessage(chatID, render.MsgCancelled)
}

// handleAnswer feeds a plain text message into the interview sequencer and
// replies with the next step.
func (b *Bot) handleAnswer(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	state, err := b.states.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatStateNotFound) {
			b.sendMessage(chatID, render.MsgNoActiveInterview)
			return
		}
		ctxzap.Error(ctx, "failed to get chat state",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	wasOngoing := state.CurrentQuestion <= b.interview.Questionnaire().Total()

	outcome, err := b.interview.Advance(ctx, state, message.Text)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyAnswer) {
			b.sendMessage(chatID, render.ErrEmptyAnswer)
			return
		}
		ctxzap.Error(ctx, "advance failed",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("session_id", state.SessionID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	if outcome.Kind == entity.OutcomeComplete {
		if !wasOngoing {
			b.sendMessage(chatID, render.MsgInterviewDone)
			return
		}
		b.completeInterview(ctx, chatID, state, outcome)
		return
	}

	if err := b.states.Set(ctx, chatID, state); err != nil {
		ctxzap.Error(ctx, "failed to save chat state",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	switch outcome.Kind {
	case entity.OutcomeAssistance:
		b.sendMessage(chatID, render.Assistance(outcome.Suggestion, outcome.Criteria, outcome.ExampleAnswer))

	case entity.OutcomeFollowUp:
		b.sendMessage(chatID, render.FollowUp(outcome.FollowUpQuestion))

	case entity.OutcomeAdvance:
		b.sendMessage(chatID, render.Question(outcome.QuestionNumber, b.interview.Questionnaire().Total(), outcome.Question.Prompt))
	}
}

// completeInterview finalizes the intake record, then persists the terminal
// state and sends the summary with a PDF export attached. The record is
// written first: if it fails, the stored state stays on the last question
// and the next message retries finalization instead of hitting the
// already-complete branch.
func (b *Bot) completeInterview(ctx context.Context, chatID int64, state *entity.ConversationState, outcome *entity.Outcome) {
	rec, err := b.records.Complete(ctx, state)
	if err != nil {
		ctxzap.Error(ctx, "failed to finalize intake record",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("session_id", state.SessionID),
		)
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	if err := b.states.Set(ctx, chatID, state); err != nil {
		ctxzap.Error(ctx, "failed to save chat state",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}

	b.sendMessage(chatID, render.Completion(outcome.Message))
	b.sendMessage(chatID, render.RecordSummary(rec))

	f, err := b.formatters.Create(entity.FormatPDF)
	if err == nil {
		if body, ferr := f.Format(b.records.Render(rec)); ferr == nil {
			if derr := b.SendDocument(chatID, "intake-"+rec.ID+f.FileExtension(), body); derr != nil {
				ctxzap.Error(ctx, "failed to send intake document",
					zap.Error(derr),
					zap.Int64("chat_id", chatID),
				)
			}
		} else {
			ctxzap.Error(ctx, "failed to format intake document", zap.Error(ferr))
		}
	}

	ctxzap.Info(ctx, "interview finished",
		zap.Int64("chat_id", chatID),
		zap.String("record_id", rec.ID),
	)
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(chatID, text)
}

// SendDocument sends a document
func (b *Bot) SendDocument(chatID int64, filename string, data []byte) error {
	doc := tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	}

	msg := tgbotapi.NewDocument(chatID, doc)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send document: %w", err)
	}

	return nil
}
