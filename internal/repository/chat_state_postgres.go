package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatStateRepository persists per-chat conversation state for the Telegram
// surface, which unlike the HTTP API owns its sessions server-side.
type ChatStateRepository interface {
	Get(ctx context.Context, chatID int64) (*entity.ConversationState, error)
	Set(ctx context.Context, chatID int64, state *entity.ConversationState) error
	Delete(ctx context.Context, chatID int64) error
}

// ErrChatStateNotFound is returned when a chat has no stored interview.
var ErrChatStateNotFound = errors.New("chat state not found")

var _ ChatStateRepository = &ChatStatePostgres{}

// ChatStatePostgres stores the serialized ConversationState per chat.
type ChatStatePostgres struct {
	db *pgxpool.Pool
}

func NewChatStatePostgres(db *pgxpool.Pool) *ChatStatePostgres {
	return &ChatStatePostgres{db: db}
}

func (r *ChatStatePostgres) Get(ctx context.Context, chatID int64) (*entity.ConversationState, error) {
	var raw []byte

	err := r.db.QueryRow(ctx,
		`SELECT state FROM chat_states WHERE chat_id = $1`, chatID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrChatStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select chat state: %w", err)
	}

	var state entity.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal chat state: %w", err)
	}

	return &state, nil
}

func (r *ChatStatePostgres) Set(ctx context.Context, chatID int64, state *entity.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal chat state: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO chat_states (chat_id, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id) DO UPDATE SET state = $2, updated_at = $3`,
		chatID, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert chat state: %w", err)
	}

	return nil
}

func (r *ChatStatePostgres) Delete(ctx context.Context, chatID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM chat_states WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("delete chat state: %w", err)
	}
	return nil
}
