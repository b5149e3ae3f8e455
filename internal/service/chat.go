package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/voyago/trip-planner/backend/internal/llm"
	"github.com/voyago/trip-planner/backend/internal/memory"
)

// ChatService answers prompts with full conversational memory. It owns the
// in-memory turn sequence for the life of the process; the on-disk log is a
// best-effort replica used only to survive restarts.
//
// A single mutex serializes Respond calls. The read-modify-append sequence
// must not interleave across requests, or deltas would overlap and the log
// would record turns out of order.
type ChatService struct {
	provider llm.Client
	log      *memory.Log

	mu    sync.Mutex
	turns []memory.Turn
}

// NewChatService initializes the backing log, replays the persisted history
// into memory, and returns a ready service. A missing log file is created; a
// damaged one degrades to whatever turns still parse. Construction fails only
// when the log file cannot be created at all.
func NewChatService(log *memory.Log, provider llm.Client) (*ChatService, error) {
	if err := log.Initialize(); err != nil {
		return nil, fmt.Errorf("service.NewChatService: %w", err)
	}

	turns := log.LoadAll()
	if len(turns) > 0 {
		slog.Info("loaded conversation history", "turns", len(turns), "path", log.Path())
	} else {
		slog.Info("starting with fresh conversation memory", "path", log.Path())
	}

	return &ChatService{
		provider: provider,
		log:      log,
		turns:    turns,
	}, nil
}

// Respond answers prompt using the full conversation context and persists the
// turns this call produced.
//
// The provider call is all-or-nothing: on failure the error propagates and
// neither memory nor the log gains any turn. After a successful completion
// the new human and assistant turns are appended to memory first, then to
// the log. A log write failure is reported and swallowed — in-memory state
// is authoritative for the life of the process, so the reply is still
// returned. The log can therefore lag memory, but never lead it.
func (s *ChatService) Respond(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.turns)
	humanTurn := memory.HumanTurn(prompt)

	convo := make([]memory.Turn, n, n+1)
	copy(convo, s.turns)
	convo = append(convo, humanTurn)

	reply, err := s.provider.Complete(ctx, convo)
	if err != nil {
		return "", fmt.Errorf("service.ChatService.Respond: %w", err)
	}

	s.turns = append(s.turns, humanTurn, reply)

	if err := s.log.Append(s.turns[n:]); err != nil {
		slog.Error("failed to persist conversation turns; continuing with in-memory state",
			"error", err, "turns", len(s.turns)-n)
	}

	return reply.Content, nil
}

// History returns a copy of the in-memory conversation.
// Mostly useful for tests and diagnostics.
func (s *ChatService) History() []memory.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]memory.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}
