package engine

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/eci-voterfind/voterfind/internal/store"
)

// MockIndexStore is a hand-written stand-in for what `mockgen` would
// generate for store.IndexStore, kept in the same shape (Controller +
// EXPECT recorder) since the toolchain that would normally generate this
// file isn't run in this repo.
type MockIndexStore struct {
	ctrl     *gomock.Controller
	recorder *MockIndexStoreMockRecorder
}

type MockIndexStoreMockRecorder struct {
	mock *MockIndexStore
}

func NewMockIndexStore(ctrl *gomock.Controller) *MockIndexStore {
	m := &MockIndexStore{ctrl: ctrl}
	m.recorder = &MockIndexStoreMockRecorder{mock: m}
	return m
}

func (m *MockIndexStore) EXPECT() *MockIndexStoreMockRecorder {
	return m.recorder
}

func (m *MockIndexStore) Lookup(ctx context.Context, family, ac string, keys []string) ([]store.PostingEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Lookup", ctx, family, ac, keys)
	ret0, _ := ret[0].([]store.PostingEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockIndexStoreMockRecorder) Lookup(ctx, family, ac, keys interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Lookup", reflect.TypeOf((*MockIndexStore)(nil).Lookup), ctx, family, ac, keys)
}

// MockRowStore is the same shape of hand-written stand-in for
// store.RowStore.
type MockRowStore struct {
	ctrl     *gomock.Controller
	recorder *MockRowStoreMockRecorder
}

type MockRowStoreMockRecorder struct {
	mock *MockRowStore
}

func NewMockRowStore(ctrl *gomock.Controller) *MockRowStore {
	m := &MockRowStore{ctrl: ctrl}
	m.recorder = &MockRowStoreMockRecorder{mock: m}
	return m
}

func (m *MockRowStore) EXPECT() *MockRowStoreMockRecorder {
	return m.recorder
}

func (m *MockRowStore) FetchScore(ctx context.Context, ac string, rowIDs []uint64) ([]store.ScoreRow, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FetchScore", ctx, ac, rowIDs)
	ret0, _ := ret[0].([]store.ScoreRow)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockRowStoreMockRecorder) FetchScore(ctx, ac, rowIDs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FetchScore", reflect.TypeOf((*MockRowStore)(nil).FetchScore), ctx, ac, rowIDs)
}

// mockBackend composes a MockIndexStore and MockRowStore into the Backend
// interface Engine expects.
type mockBackend struct {
	*MockIndexStore
	*MockRowStore
}
