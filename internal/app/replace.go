package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/innocenzi/dependi/internal/core"
	"github.com/innocenzi/dependi/internal/ports"
)

// ReplaceSingle decodes a hover-link payload and applies the instruction
// to the document. A malformed payload is rejected before the guard is
// touched; a replace arriving while another is in progress is dropped, not
// queued. The save is fire-and-forget with a logged outcome.
func (s Service) ReplaceSingle(ctx context.Context, doc ports.DocumentPort, payload string) error {
	instruction, err := core.DecodeReplacePayload(payload)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("dropping undecodable replace payload")
		return err
	}
	if !s.Session.TryAcquire() {
		log.Ctx(ctx).Debug().Msg("replace already in progress, dropping")
		return nil
	}
	err = doc.ReplaceRange(instruction.Range, instruction.Value)
	s.Session.Release()
	if err != nil {
		return err
	}
	s.saveAsync(ctx, doc)
	return nil
}

// ReplaceAll applies every queued instruction in reverse accumulation
// order, so replacements later in the document cannot invalidate the
// pre-computed ranges of earlier ones, then saves once. Guarded like
// ReplaceSingle: dropped when a replace is already in progress.
func (s Service) ReplaceAll(ctx context.Context, doc ports.DocumentPort) (ReplaceAllResult, error) {
	if !s.Session.TryAcquire() {
		log.Ctx(ctx).Debug().Msg("replace already in progress, dropping")
		return ReplaceAllResult{}, nil
	}
	instructions := s.Session.Drain()
	applied := 0
	for i := len(instructions) - 1; i >= 0; i-- {
		if err := doc.ReplaceRange(instructions[i].Range, instructions[i].Value); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("value", instructions[i].Value).Msg("replace rejected")
			continue
		}
		applied++
	}
	s.Session.Release()
	if applied > 0 {
		s.saveAsync(ctx, doc)
	}
	return ReplaceAllResult{Applied: applied}, nil
}

// saveAsync persists the document off the caller's path. Failures are
// logged, never surfaced or retried; the guard is already released by the
// time the save settles (accepted race, see DESIGN.md).
func (s Service) saveAsync(ctx context.Context, doc ports.DocumentPort) {
	s.Session.saves.Add(1)
	go func() {
		defer s.Session.saves.Done()
		if err := doc.Save(context.WithoutCancel(ctx)); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("document save failed")
			return
		}
		log.Ctx(ctx).Debug().Msg("document saved")
	}()
}
