package search

import (
	"context"
	"sync"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var _ recordStore = &recordStoreMock{}

type recordStoreMock struct {
	SearchCandidatesFunc func(ctx context.Context, term string) ([]domain.ResultRecord, error)
	FilterFunc           func(ctx context.Context, f domain.RecordFilter) ([]domain.ResultRecord, error)

	calls struct {
		SearchCandidates []struct {
			Ctx  context.Context
			Term string
		}
		Filter []struct {
			Ctx context.Context
			F   domain.RecordFilter
		}
	}
	lockSearchCandidates sync.RWMutex
	lockFilter           sync.RWMutex
}

func (mock *recordStoreMock) SearchCandidates(ctx context.Context, term string) ([]domain.ResultRecord, error) {
	if mock.SearchCandidatesFunc == nil {
		panic("recordStoreMock.SearchCandidatesFunc: method is nil but recordStore.SearchCandidates was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Term string
	}{Ctx: ctx, Term: term}
	mock.lockSearchCandidates.Lock()
	mock.calls.SearchCandidates = append(mock.calls.SearchCandidates, callInfo)
	mock.lockSearchCandidates.Unlock()
	return mock.SearchCandidatesFunc(ctx, term)
}

func (mock *recordStoreMock) SearchCandidatesCalls() []struct {
	Ctx  context.Context
	Term string
} {
	mock.lockSearchCandidates.RLock()
	calls := mock.calls.SearchCandidates
	mock.lockSearchCandidates.RUnlock()
	return calls
}

func (mock *recordStoreMock) Filter(ctx context.Context, f domain.RecordFilter) ([]domain.ResultRecord, error) {
	if mock.FilterFunc == nil {
		panic("recordStoreMock.FilterFunc: method is nil but recordStore.Filter was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.RecordFilter
	}{Ctx: ctx, F: f}
	mock.lockFilter.Lock()
	mock.calls.Filter = append(mock.calls.Filter, callInfo)
	mock.lockFilter.Unlock()
	return mock.FilterFunc(ctx, f)
}

func (mock *recordStoreMock) FilterCalls() []struct {
	Ctx context.Context
	F   domain.RecordFilter
} {
	mock.lockFilter.RLock()
	calls := mock.calls.Filter
	mock.lockFilter.RUnlock()
	return calls
}
