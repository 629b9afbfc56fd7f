package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/contazen/erp_ledger_core/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Postgres repository against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool, sequenceLockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:   newPgxLedgerRepository(pool),
		MappingRepo:  newPgxAccountMappingRepository(pool),
		SequenceRepo: newPgxSequenceRepository(pool, sequenceLockTimeout),
		BalanceRepo:  newPgxBalanceRepository(pool),
	}
}
