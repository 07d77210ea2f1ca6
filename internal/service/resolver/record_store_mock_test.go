package resolver

import (
	"context"
	"sync"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var _ recordStore = &recordStoreMock{}

type recordStoreMock struct {
	FindByFieldFunc func(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error)

	calls struct {
		FindByField []struct {
			Ctx   context.Context
			Field domain.RecordField
			Value string
			Exact bool
		}
	}
	lockFindByField sync.RWMutex
}

func (mock *recordStoreMock) FindByField(ctx context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error) {
	if mock.FindByFieldFunc == nil {
		panic("recordStoreMock.FindByFieldFunc: method is nil but recordStore.FindByField was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Field domain.RecordField
		Value string
		Exact bool
	}{Ctx: ctx, Field: field, Value: value, Exact: exact}
	mock.lockFindByField.Lock()
	mock.calls.FindByField = append(mock.calls.FindByField, callInfo)
	mock.lockFindByField.Unlock()
	return mock.FindByFieldFunc(ctx, field, value, exact)
}

func (mock *recordStoreMock) FindByFieldCalls() []struct {
	Ctx   context.Context
	Field domain.RecordField
	Value string
	Exact bool
} {
	mock.lockFindByField.RLock()
	calls := mock.calls.FindByField
	mock.lockFindByField.RUnlock()
	return calls
}
