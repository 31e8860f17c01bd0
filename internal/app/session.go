package app

import (
	"sync"

	"github.com/innocenzi/dependi/internal/types"
)

// Session is the process-wide replace state: a coarse try-acquire flag
// guarding the shared document against re-entrant replace commands, plus
// the instructions accumulated for replace-all. The flag is not a queueing
// lock: a command arriving while it is held is dropped, never deferred.
// It is cleared before any asynchronous save settles, so an in-flight save
// is deliberately not covered (see DESIGN.md).
type Session struct {
	mu         sync.Mutex
	inProgress bool
	queue      []types.ReplaceInstruction
	saves      sync.WaitGroup
}

func NewSession() *Session {
	return &Session{}
}

// TryAcquire atomically takes the flag, reporting false when a replace is
// already in progress.
func (s *Session) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inProgress {
		return false
	}
	s.inProgress = true
	return true
}

func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inProgress = false
}

// Queue records an instruction for a later replace-all. Instructions keep
// their accumulation order; application reverses it.
func (s *Session) Queue(instruction types.ReplaceInstruction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, instruction)
}

// Drain returns the queued instructions in accumulation order and clears
// the queue.
func (s *Session) Drain() []types.ReplaceInstruction {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.queue
	s.queue = nil
	return drained
}

func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// WaitSaves blocks until all fire-and-forget saves have settled. Only the
// CLI uses this, to avoid exiting mid-write; the protocol itself never
// waits.
func (s *Session) WaitSaves() {
	s.saves.Wait()
}
