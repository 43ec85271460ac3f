package app

import (
	"log/slog"

	"github.com/heartmarshall/zine-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/zine-backend/internal/adapter/postgres/audit"
	editionrepo "github.com/heartmarshall/zine-backend/internal/adapter/postgres/edition"
	identityrepo "github.com/heartmarshall/zine-backend/internal/adapter/postgres/identity"
	likerepo "github.com/heartmarshall/zine-backend/internal/adapter/postgres/like"
	submissionrepo "github.com/heartmarshall/zine-backend/internal/adapter/postgres/submission"
	tokenrepo "github.com/heartmarshall/zine-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/zine-backend/internal/auth"
	"github.com/heartmarshall/zine-backend/internal/config"
	"github.com/heartmarshall/zine-backend/internal/metrics"
	auditsvc "github.com/heartmarshall/zine-backend/internal/service/audit"
	authsvc "github.com/heartmarshall/zine-backend/internal/service/auth"
	likesvc "github.com/heartmarshall/zine-backend/internal/service/like"
	"github.com/heartmarshall/zine-backend/internal/service/moderation"
	"github.com/heartmarshall/zine-backend/internal/service/publication"
	submissionsvc "github.com/heartmarshall/zine-backend/internal/service/submission"
)

// Services holds every domain service built over one database handle.
type Services struct {
	Tokens      *auth.TokenService
	Audit       *auditsvc.Service
	Auth        *authsvc.Service
	Submissions *submissionsvc.Service
	Moderation  *moderation.Service
	Publication *publication.Service
	Likes       *likesvc.Service
}

// NewServices wires repositories and services. m may be nil, in which case
// no domain metrics are recorded.
func NewServices(cfg *config.Config, logger *slog.Logger, db postgres.DB, m *metrics.Metrics) *Services {
	tx := postgres.NewTxManager(db)

	identities := identityrepo.New(db)
	sessions := tokenrepo.New(db)
	submissions := submissionrepo.New(db)
	editions := editionrepo.New(db)
	likes := likerepo.New(db)

	tokens := auth.NewTokenService(cfg.Auth)
	audit := auditsvc.NewService(logger, auditrepo.New(db), cfg.Audit)

	moderationSvc := moderation.NewService(logger, submissions, audit, tx)
	publicationSvc := publication.NewService(logger, editions, submissions, audit, tx)
	if m != nil {
		moderationSvc = moderationSvc.WithRecorder(m)
		publicationSvc = publicationSvc.WithRecorder(m)
	}

	return &Services{
		Tokens:      tokens,
		Audit:       audit,
		Auth:        authsvc.NewService(logger, identities, sessions, tokens, audit, tx, cfg.Auth),
		Submissions: submissionsvc.NewService(logger, submissions, audit, tx),
		Moderation:  moderationSvc,
		Publication: publicationSvc,
		Likes:       likesvc.NewService(logger, likes, tx),
	}
}
