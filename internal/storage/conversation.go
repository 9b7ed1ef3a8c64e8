package storage

import (
	"context"
	"os"
	"sync"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/interfaces"
	"github.com/santisabra00/finagent/internal/models"
)

// Compile-time interface check
var _ interfaces.ConversationStore = (*ConversationStore)(nil)

// ConversationStore holds the ordered turn sequence in memory and persists
// the plain-text turns to a single JSON document. Tool-call and tool-result
// turns are kept in memory only: they are meaningless to replay against a
// fresh model session, so a reload yields just the text transcript.
type ConversationStore struct {
	mu     sync.Mutex
	path   string
	turns  []models.Turn
	logger *common.Logger
}

// NewConversationStore loads the persisted transcript. A missing or corrupt
// log silently resets to an empty conversation.
func NewConversationStore(path string, logger *common.Logger) *ConversationStore {
	s := &ConversationStore{path: path, logger: logger}

	var persisted []models.Turn
	if err := readDoc(path, &persisted); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Conversation log unreadable, starting empty")
		}
		return s
	}
	s.turns = persisted
	logger.Info().Int("turns", len(persisted)).Msg("Conversation log loaded")
	return s
}

// Append adds a turn in chronological order. Text turns are persisted before
// the in-memory append so a write failure fails the mutation instead of
// silently dropping it.
func (s *ConversationStore) Append(ctx context.Context, turn models.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if turn.IsText() {
		snapshot := append(s.textTurnsLocked(), turn)
		if err := writeDoc(s.path, snapshot); err != nil {
			return err
		}
	}

	s.turns = append(s.turns, turn)
	return nil
}

// History returns a copy of the full turn sequence.
func (s *ConversationStore) History(ctx context.Context) ([]models.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Turn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

// Reset truncates the conversation in memory and on disk. Resetting an
// already-empty conversation succeeds.
func (s *ConversationStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeDoc(s.path, []models.Turn{}); err != nil {
		return err
	}
	s.turns = nil
	s.logger.Info().Msg("Conversation reset")
	return nil
}

// textTurnsLocked returns the plain-text turns. Caller holds mu.
func (s *ConversationStore) textTurnsLocked() []models.Turn {
	out := make([]models.Turn, 0, len(s.turns))
	for _, t := range s.turns {
		if t.IsText() {
			out = append(out, t)
		}
	}
	return out
}
