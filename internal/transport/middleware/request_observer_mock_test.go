package middleware

import (
	"sync"
	"time"
)

var _ requestObserver = &requestObserverMock{}

type requestObserverMock struct {
	RequestStartedFunc func() func()
	ObserveRequestFunc func(method string, route string, status int, d time.Duration)

	calls struct {
		RequestStarted []struct{}
		ObserveRequest []struct {
			Method string
			Route  string
			Status int
			D      time.Duration
		}
	}
	lockRequestStarted sync.RWMutex
	lockObserveRequest sync.RWMutex
}

func (mock *requestObserverMock) RequestStarted() func() {
	if mock.RequestStartedFunc == nil {
		panic("requestObserverMock.RequestStartedFunc: method is nil but requestObserver.RequestStarted was just called")
	}
	mock.lockRequestStarted.Lock()
	mock.calls.RequestStarted = append(mock.calls.RequestStarted, struct{}{})
	mock.lockRequestStarted.Unlock()
	return mock.RequestStartedFunc()
}

func (mock *requestObserverMock) RequestStartedCalls() []struct{} {
	mock.lockRequestStarted.RLock()
	calls := mock.calls.RequestStarted
	mock.lockRequestStarted.RUnlock()
	return calls
}

func (mock *requestObserverMock) ObserveRequest(method string, route string, status int, d time.Duration) {
	if mock.ObserveRequestFunc == nil {
		panic("requestObserverMock.ObserveRequestFunc: method is nil but requestObserver.ObserveRequest was just called")
	}
	callInfo := struct {
		Method string
		Route  string
		Status int
		D      time.Duration
	}{Method: method, Route: route, Status: status, D: d}
	mock.lockObserveRequest.Lock()
	mock.calls.ObserveRequest = append(mock.calls.ObserveRequest, callInfo)
	mock.lockObserveRequest.Unlock()
	mock.ObserveRequestFunc(method, route, status, d)
}

func (mock *requestObserverMock) ObserveRequestCalls() []struct {
	Method string
	Route  string
	Status int
	D      time.Duration
} {
	mock.lockObserveRequest.RLock()
	calls := mock.calls.ObserveRequest
	mock.lockObserveRequest.RUnlock()
	return calls
}
