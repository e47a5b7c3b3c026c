package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

// PgxReportingRepository serves the read-side aggregates behind reports.
// All queries aggregate the entry log; none of them touch the denormalized
// account balance column.
type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new reporting repository.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// cashAccountPredicate selects cash accounts: the explicit flag, with a name
// fallback for charts imported from systems that lack one.
const cashAccountPredicate = `(a.is_cash = TRUE OR lower(a.name) LIKE '%cash%' OR lower(a.name) LIKE '%bank%')`

func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(e.debit_amount), 0) AS debit,
		       COALESCE(SUM(e.credit_amount), 0) AS credit
		FROM accounts a
		JOIN entries e ON e.account_id = a.account_id
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE a.is_active = TRUE AND t.date <= $1
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PgxReportingRepository) GetAccountNetAmounts(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountAmount, error) {
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}

	query := `
		SELECT a.account_id, a.code, a.name,
		       COALESCE(SUM(e.debit_amount - e.credit_amount), 0) AS net
		FROM accounts a
		JOIN entries e ON e.account_id = a.account_id
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE a.is_active = TRUE AND a.account_type = ANY($1) AND t.date <= $2
	`
	args := []any{typeStrings, to}
	if !from.IsZero() {
		query += ` AND t.date >= $3`
		args = append(args, from)
	}
	query += `
		GROUP BY a.account_id, a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account net amounts: %w", err)
	}
	defer rows.Close()

	var result []domain.AccountAmount
	for rows.Next() {
		var a domain.AccountAmount
		if err := rows.Scan(&a.AccountID, &a.AccountCode, &a.Name, &a.NetAmount); err != nil {
			return nil, fmt.Errorf("failed to scan net amount row: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *PgxReportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(e.debit_amount), 0) AS debit,
		       COALESCE(SUM(e.credit_amount), 0) AS credit
		FROM accounts a
		JOIN entries e ON e.account_id = a.account_id
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE a.is_active = TRUE AND ` + cashAccountPredicate + `
		  AND t.date >= $1 AND t.date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flow data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan cash flow row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PgxReportingRepository) GetLedgerLines(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.debit_amount, e.credit_amount, e.description,
		       t.transaction_number, t.date
		FROM entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE e.account_id = $1
	`
	args := []any{accountID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND t.date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND t.date <= $%d`, len(args))
	}
	query += ` ORDER BY t.date, t.transaction_id, e.entry_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var line domain.LedgerLine
		if err := rows.Scan(&line.EntryID, &line.TransactionID, &line.AccountID, &line.DebitAmount, &line.CreditAmount, &line.Description, &line.TransactionNumber, &line.TransactionDate); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *PgxReportingRepository) GetOpeningBalance(ctx context.Context, accountID string, from time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.debit_amount - e.credit_amount), 0)
		FROM entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		WHERE e.account_id = $1 AND t.date < $2;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, from).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to query opening balance: %w", err)
	}
	return balance, nil
}

func (r *PgxReportingRepository) GetAgingLines(ctx context.Context, asOf time.Time, nameTokens []string) ([]domain.LedgerLine, error) {
	patterns := make([]string, len(nameTokens))
	for i, token := range nameTokens {
		patterns[i] = "%" + token + "%"
	}

	query := `
		SELECT e.entry_id, e.transaction_id, e.account_id, e.debit_amount, e.credit_amount, e.description,
		       t.transaction_number, t.date
		FROM entries e
		JOIN transactions t ON t.transaction_id = e.transaction_id
		JOIN accounts a ON a.account_id = e.account_id
		WHERE a.is_active = TRUE AND lower(a.name) LIKE ANY($1) AND t.date <= $2
		ORDER BY t.date, t.transaction_id, e.entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, patterns, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query aging lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var line domain.LedgerLine
		if err := rows.Scan(&line.EntryID, &line.TransactionID, &line.AccountID, &line.DebitAmount, &line.CreditAmount, &line.Description, &line.TransactionNumber, &line.TransactionDate); err != nil {
			return nil, fmt.Errorf("failed to scan aging line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
