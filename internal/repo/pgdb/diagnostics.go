package pgdb

import (
	"context"
	"time"

	"review-lifecycle-api/pkg/postgres"
)

const pingTimeout = 2 * time.Second

type DiagnosticsRepo struct {
	*postgres.Postgres
}

func NewDiagnosticsRepo(pgdb *postgres.Postgres) *DiagnosticsRepo {
	return &DiagnosticsRepo{pgdb}
}

func (r *DiagnosticsRepo) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return r.Database.PingContext(ctx)
}
