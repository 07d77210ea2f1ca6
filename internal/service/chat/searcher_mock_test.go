package chat

import (
	"context"
	"sync"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var _ searcher = &searcherMock{}

type searcherMock struct {
	SearchFunc func(ctx context.Context, c domain.SearchCriteria) ([]domain.ResultRecord, error)

	calls struct {
		Search []struct {
			Ctx context.Context
			C   domain.SearchCriteria
		}
	}
	lockSearch sync.RWMutex
}

func (mock *searcherMock) Search(ctx context.Context, c domain.SearchCriteria) ([]domain.ResultRecord, error) {
	if mock.SearchFunc == nil {
		panic("searcherMock.SearchFunc: method is nil but searcher.Search was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   domain.SearchCriteria
	}{Ctx: ctx, C: c}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, c)
}

func (mock *searcherMock) SearchCalls() []struct {
	Ctx context.Context
	C   domain.SearchCriteria
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}
