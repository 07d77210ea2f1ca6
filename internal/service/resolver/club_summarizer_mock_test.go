package resolver

import (
	"context"
	"sync"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var _ clubSummarizer = &clubSummarizerMock{}

type clubSummarizerMock struct {
	ClubSummaryFunc func(ctx context.Context, club string) (domain.ClubSummary, error)

	calls struct {
		ClubSummary []struct {
			Ctx  context.Context
			Club string
		}
	}
	lockClubSummary sync.RWMutex
}

func (mock *clubSummarizerMock) ClubSummary(ctx context.Context, club string) (domain.ClubSummary, error) {
	if mock.ClubSummaryFunc == nil {
		panic("clubSummarizerMock.ClubSummaryFunc: method is nil but clubSummarizer.ClubSummary was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Club string
	}{Ctx: ctx, Club: club}
	mock.lockClubSummary.Lock()
	mock.calls.ClubSummary = append(mock.calls.ClubSummary, callInfo)
	mock.lockClubSummary.Unlock()
	return mock.ClubSummaryFunc(ctx, club)
}

func (mock *clubSummarizerMock) ClubSummaryCalls() []struct {
	Ctx  context.Context
	Club string
} {
	mock.lockClubSummary.RLock()
	calls := mock.calls.ClubSummary
	mock.lockClubSummary.RUnlock()
	return calls
}
