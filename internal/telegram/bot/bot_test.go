package bot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/formatter"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/repository"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	texts []string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return nil
}

func (f *fakeAPI) StopReceivingUpdates() {}

// memStates mimics the Postgres store: Get hands out a copy, so mutations
// that were never saved are lost between two messages.
type memStates struct {
	m map[int64][]byte
}

func newMemStates() *memStates {
	return &memStates{m: make(map[int64][]byte)}
}

func (s *memStates) Get(ctx context.Context, chatID int64) (*entity.ConversationState, error) {
	raw, ok := s.m[chatID]
	if !ok {
		return nil, repository.ErrChatStateNotFound
	}
	var state entity.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *memStates) Set(ctx context.Context, chatID int64, state *entity.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.m[chatID] = raw
	return nil
}

func (s *memStates) Delete(ctx context.Context, chatID int64) error {
	delete(s.m, chatID)
	return nil
}

// stubInterview completes on the first answer of a one-question interview.
type stubInterview struct {
	q *entity.Questionnaire
}

func (s *stubInterview) Questionnaire() *entity.Questionnaire { return s.q }

func (s *stubInterview) FirstQuestion() *entity.QuestionSpec { return &s.q.Questions[0] }

func (s *stubInterview) Advance(ctx context.Context, state *entity.ConversationState, answer string) (*entity.Outcome, error) {
	if state.CurrentQuestion <= s.q.Total() {
		state.CurrentQuestion++
	}
	return &entity.Outcome{
		Kind:    entity.OutcomeComplete,
		Message: "all done",
		Answers: state.Answers,
	}, nil
}

type stubRecords struct {
	failures int
	calls    int
}

func (s *stubRecords) Complete(ctx context.Context, state *entity.ConversationState) (*entity.IntakeRecord, error) {
	s.calls++
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("append record: disk full")
	}
	return &entity.IntakeRecord{ID: "rec-1", RecommendedApproach: "Pilot"}, nil
}

func (s *stubRecords) Render(rec *entity.IntakeRecord) string { return "# Intake" }

func newTestBot(states repository.ChatStateRepository, records RecordUsecase) (*Bot, *fakeAPI) {
	api := &fakeAPI{}
	q := &entity.Questionnaire{Questions: []entity.QuestionSpec{{
		ID:     "only",
		Number: 1,
		Prompt: "The one question?",
		Fields: []string{"only"},
	}}}
	b := &Bot{
		api:        api,
		states:     states,
		interview:  &stubInterview{q: q},
		records:    records,
		formatters: formatter.NewFactory(),
		logger:     zap.NewNop(),
	}
	return b, api
}

func testCtx() context.Context {
	return ctxzap.ToContext(context.Background(), zap.NewNop())
}

func answerMessage(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
}

func TestRecordFailureKeepsInterviewRetryable(t *testing.T) {
	ctx := testCtx()
	states := newMemStates()
	records := &stubRecords{failures: 1}
	b, api := newTestBot(states, records)

	require.NoError(t, states.Set(ctx, 7, entity.NewConversationState("s1")))

	b.handleAnswer(ctx, answerMessage(7, "my whole project"))

	assert.Equal(t, 1, records.calls)
	assert.Contains(t, api.texts, render.ErrGeneric)

	stored, err := states.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentQuestion, "the terminal state must not be saved before the record exists")

	// The next message retries finalization instead of replying that the
	// interview is already over.
	b.handleAnswer(ctx, answerMessage(7, "my whole project"))

	assert.Equal(t, 2, records.calls)
	assert.NotContains(t, api.texts, render.MsgInterviewDone)
	assert.Contains(t, api.texts, render.Completion("all done"))

	stored, err = states.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentQuestion)
}

func TestCompletedInterviewIsNotRefinalized(t *testing.T) {
	ctx := testCtx()
	states := newMemStates()
	records := &stubRecords{}
	b, api := newTestBot(states, records)

	done := entity.NewConversationState("s1")
	done.CurrentQuestion = 2
	require.NoError(t, states.Set(ctx, 7, done))

	b.handleAnswer(ctx, answerMessage(7, "hello again"))

	assert.Equal(t, 0, records.calls)
	assert.Contains(t, api.texts, render.MsgInterviewDone)
}
