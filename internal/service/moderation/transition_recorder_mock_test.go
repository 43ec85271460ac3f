package moderation

import (
	"sync"
)

var _ transitionRecorder = &transitionRecorderMock{}

type transitionRecorderMock struct {
	ModerationTransitionFunc func(from string, to string)

	calls struct {
		ModerationTransition []struct {
			From string
			To   string
		}
	}
	lockModerationTransition sync.RWMutex
}

func (mock *transitionRecorderMock) ModerationTransition(from string, to string) {
	if mock.ModerationTransitionFunc == nil {
		panic("transitionRecorderMock.ModerationTransitionFunc: method is nil but transitionRecorder.ModerationTransition was just called")
	}
	callInfo := struct {
		From string
		To   string
	}{From: from, To: to}
	mock.lockModerationTransition.Lock()
	mock.calls.ModerationTransition = append(mock.calls.ModerationTransition, callInfo)
	mock.lockModerationTransition.Unlock()
	mock.ModerationTransitionFunc(from, to)
}

func (mock *transitionRecorderMock) ModerationTransitionCalls() []struct {
	From string
	To   string
} {
	mock.lockModerationTransition.RLock()
	calls := mock.calls.ModerationTransition
	mock.lockModerationTransition.RUnlock()
	return calls
}
