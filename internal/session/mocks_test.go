package session

import (
	"context"
	"sync"

	"github.com/verte-zerg/tuiscan/internal/model"
)

type identityStub struct {
	authenticated bool
	promoted      bool
}

func (i identityStub) IsAuthenticated(context.Context) bool { return i.authenticated }
func (i identityStub) IsPromoted(context.Context) bool      { return i.promoted }

type scoreSinkMock struct {
	RecordScoreFunc func(ctx context.Context, entry model.ScoreEntry) (model.ScoreUpdate, error)

	mu    sync.Mutex
	calls []model.ScoreEntry
}

func (m *scoreSinkMock) RecordScore(ctx context.Context, entry model.ScoreEntry) (model.ScoreUpdate, error) {
	m.mu.Lock()
	m.calls = append(m.calls, entry)
	m.mu.Unlock()
	if m.RecordScoreFunc == nil {
		return model.ScoreUpdate{}, nil
	}
	return m.RecordScoreFunc(ctx, entry)
}

func (m *scoreSinkMock) RecordScoreCalls() []model.ScoreEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ScoreEntry(nil), m.calls...)
}

type correctionSinkMock struct {
	RecordCorrectionFunc func(ctx context.Context, c model.Correction) error

	mu    sync.Mutex
	calls []model.Correction
}

func (m *correctionSinkMock) RecordCorrection(ctx context.Context, c model.Correction) error {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
	if m.RecordCorrectionFunc == nil {
		return nil
	}
	return m.RecordCorrectionFunc(ctx, c)
}

func (m *correctionSinkMock) RecordCorrectionCalls() []model.Correction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Correction(nil), m.calls...)
}
