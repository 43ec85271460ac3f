package auth

import (
	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/domain"
)

// AuthResult is returned by Register, Login and Refresh. The transport
// layer turns Tokens into cookies; they never appear in response bodies.
type AuthResult struct {
	Identity   *domain.Identity
	Tokens     auth.TokenPair
	RememberMe bool
}
