package config

import (
	"fmt"
	"time"
)

// Default quotas, applied when a quota is left unset.
var defaultQuotas = map[string]QuotaConfig{
	"auth":       {Limit: 5, Window: time.Minute},
	"register":   {Limit: 3, Window: time.Hour},
	"upload":     {Limit: 10, Window: time.Hour},
	"submission": {Limit: 20, Window: time.Hour},
}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0")
	}
	if c.Auth.RefreshTokenTTL < c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must not be shorter than access_token_ttl")
	}
	if c.Auth.RememberMeTTL < c.Auth.RefreshTokenTTL {
		return fmt.Errorf("auth.remember_me_ttl must not be shorter than refresh_token_ttl")
	}

	switch c.Audit.FailurePolicy {
	case AuditPolicyStrict, AuditPolicyBestEffort:
	default:
		return fmt.Errorf("audit.failure_policy must be %q or %q (got %q)",
			AuditPolicyStrict, AuditPolicyBestEffort, c.Audit.FailurePolicy)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	return nil
}

func (r *RateLimitConfig) validate() error {
	switch r.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("store must be memory or redis (got %q)", r.Store)
	}
	if r.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be > 0")
	}

	for name, q := range r.Quotas() {
		if q.Limit == 0 && q.Window == 0 {
			q = defaultQuotas[name]
			r.setQuota(name, q)
		}
		if q.Limit <= 0 {
			return fmt.Errorf("%s.limit must be > 0 (got %d)", name, q.Limit)
		}
		if q.Window <= 0 {
			return fmt.Errorf("%s.window must be > 0 (got %v)", name, q.Window)
		}
	}
	return nil
}

// Quotas returns the named quotas keyed by name.
func (r RateLimitConfig) Quotas() map[string]QuotaConfig {
	return map[string]QuotaConfig{
		"auth":       r.Auth,
		"register":   r.Register,
		"upload":     r.Upload,
		"submission": r.Submission,
	}
}

func (r *RateLimitConfig) setQuota(name string, q QuotaConfig) {
	switch name {
	case "auth":
		r.Auth = q
	case "register":
		r.Register = q
	case "upload":
		r.Upload = q
	case "submission":
		r.Submission = q
	}
}
