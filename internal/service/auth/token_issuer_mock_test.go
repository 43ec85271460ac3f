package auth

import (
	"sync"

	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	IssueFunc         func(identity *domain.Identity, rememberMe bool) (auth.TokenPair, error)
	VerifyRefreshFunc func(token string) (auth.RefreshClaims, error)

	calls struct {
		Issue []struct {
			Identity   *domain.Identity
			RememberMe bool
		}
		VerifyRefresh []struct {
			Token string
		}
	}
	lockIssue         sync.RWMutex
	lockVerifyRefresh sync.RWMutex
}

func (mock *tokenIssuerMock) Issue(identity *domain.Identity, rememberMe bool) (auth.TokenPair, error) {
	if mock.IssueFunc == nil {
		panic("tokenIssuerMock.IssueFunc: method is nil but tokenIssuer.Issue was just called")
	}
	callInfo := struct {
		Identity   *domain.Identity
		RememberMe bool
	}{Identity: identity, RememberMe: rememberMe}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(identity, rememberMe)
}

func (mock *tokenIssuerMock) IssueCalls() []struct {
	Identity   *domain.Identity
	RememberMe bool
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

func (mock *tokenIssuerMock) VerifyRefresh(token string) (auth.RefreshClaims, error) {
	if mock.VerifyRefreshFunc == nil {
		panic("tokenIssuerMock.VerifyRefreshFunc: method is nil but tokenIssuer.VerifyRefresh was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockVerifyRefresh.Lock()
	mock.calls.VerifyRefresh = append(mock.calls.VerifyRefresh, callInfo)
	mock.lockVerifyRefresh.Unlock()
	return mock.VerifyRefreshFunc(token)
}

func (mock *tokenIssuerMock) VerifyRefreshCalls() []struct {
	Token string
} {
	mock.lockVerifyRefresh.RLock()
	calls := mock.calls.VerifyRefresh
	mock.lockVerifyRefresh.RUnlock()
	return calls
}
