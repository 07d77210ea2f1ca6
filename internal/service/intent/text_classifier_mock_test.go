package intent

import (
	"context"
	"sync"
)

var _ textClassifier = &textClassifierMock{}

type textClassifierMock struct {
	CompleteFunc func(ctx context.Context, system string, user string) (string, error)

	calls struct {
		Complete []struct {
			Ctx    context.Context
			System string
			User   string
		}
	}
	lockComplete sync.RWMutex
}

func (mock *textClassifierMock) Complete(ctx context.Context, system string, user string) (string, error) {
	if mock.CompleteFunc == nil {
		panic("textClassifierMock.CompleteFunc: method is nil but textClassifier.Complete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		System string
		User   string
	}{Ctx: ctx, System: system, User: user}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, system, user)
}

func (mock *textClassifierMock) CompleteCalls() []struct {
	Ctx    context.Context
	System string
	User   string
} {
	mock.lockComplete.RLock()
	calls := mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}
