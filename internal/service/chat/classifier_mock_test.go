package chat

import (
	"context"
	"sync"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var _ classifier = &classifierMock{}

type classifierMock struct {
	ClassifyFunc func(ctx context.Context, text string) domain.Intent

	calls struct {
		Classify []struct {
			Ctx  context.Context
			Text string
		}
	}
	lockClassify sync.RWMutex
}

func (mock *classifierMock) Classify(ctx context.Context, text string) domain.Intent {
	if mock.ClassifyFunc == nil {
		panic("classifierMock.ClassifyFunc: method is nil but classifier.Classify was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockClassify.Lock()
	mock.calls.Classify = append(mock.calls.Classify, callInfo)
	mock.lockClassify.Unlock()
	return mock.ClassifyFunc(ctx, text)
}

func (mock *classifierMock) ClassifyCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockClassify.RLock()
	calls := mock.calls.Classify
	mock.lockClassify.RUnlock()
	return calls
}
