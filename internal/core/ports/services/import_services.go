package services

import (
	"context"
	"io"

	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// ImportSvcFacade ingests CSV exports from legacy systems. Rows flow through
// the same validation and posting paths as hand-entered data; malformed or
// unbalanced rows are skipped and counted, never partially applied.
type ImportSvcFacade interface {
	// ImportAccounts reads {code, name, type, parent_code} rows.
	ImportAccounts(ctx context.Context, r io.Reader, userID string) (*dto.ImportResult, error)

	// ImportTransactions reads flattened {date, description, account_code,
	// debit, credit} rows grouped into transactions by a group column.
	ImportTransactions(ctx context.Context, r io.Reader, userID string) (*dto.ImportResult, error)
}
