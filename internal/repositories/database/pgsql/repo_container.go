package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/webemergencia/petty_cash_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SourceRepo:    newPgxPettyCashSourceRepository(dbPool),
		ReferenceRepo: newPgxReferenceRepository(dbPool),
	}
}
