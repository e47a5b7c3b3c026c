package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository to the shared pool. The
// posting repository receives the account repository so balance moves happen
// inside the posting transactions.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool, accountRepo)
	reportingRepo := newPgxReportingRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		PostingRepo:   postingRepo,
		ReportingRepo: reportingRepo,
		VoucherRepo:   voucherRepo,
		InventoryRepo: inventoryRepo,
		UserRepo:      userRepo,
	}
}
