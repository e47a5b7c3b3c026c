package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// importService ingests CSV exports. Rows are pushed through the same
// services as hand-entered data, so every registry and ledger invariant
// applies to imported rows too.
type importService struct {
	BaseService
	accountSvc  portssvc.AccountSvcFacade
	postingSvc  portssvc.PostingSvcFacade
	accountRepo portsrepo.AccountReader
}

// NewImportService creates a new import service.
func NewImportService(accountSvc portssvc.AccountSvcFacade, postingSvc portssvc.PostingSvcFacade, accountRepo portsrepo.AccountReader) portssvc.ImportSvcFacade {
	return &importService{
		accountSvc:  accountSvc,
		postingSvc:  postingSvc,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// columnIndex maps header names to positions, case-insensitively.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ImportAccounts reads rows of code,name,type[,parent_code][,description].
// Parent codes must refer to accounts that already exist, either from before
// the import or from an earlier row of the same file.
func (s *importService) ImportAccounts(ctx context.Context, r io.Reader, userID string) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", apperrors.ErrValidation)
	}
	idx := columnIndex(header)
	for _, required := range []string{"code", "name", "type"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing csv column %q: %w", required, apperrors.ErrValidation)
		}
	}

	result := &dto.ImportResult{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		req := dto.CreateAccountRequest{
			Code:        field(record, idx, "code"),
			Name:        field(record, idx, "name"),
			AccountType: domainAccountType(field(record, idx, "type")),
			Description: field(record, idx, "description"),
		}
		if req.Code == "" || req.Name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: code and name are required", line))
			continue
		}

		if parentCode := field(record, idx, "parent_code"); parentCode != "" {
			parent, err := s.accountRepo.FindAccountByCode(ctx, parentCode)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: unknown parent code %q", line, parentCode))
				continue
			}
			req.ParentAccountID = &parent.AccountID
		}

		if _, err := s.accountSvc.CreateAccount(ctx, req, userID); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}

	s.LogInfo(ctx, "Account import finished",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

// ImportTransactions reads flattened rows of
// group,date,description,account_code,debit,credit[,reference]. Consecutive
// rows sharing a group value form one transaction; a group that fails
// validation is skipped whole.
func (s *importService) ImportTransactions(ctx context.Context, r io.Reader, userID string) (*dto.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", apperrors.ErrValidation)
	}
	idx := columnIndex(header)
	for _, required := range []string{"group", "date", "description", "account_code"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing csv column %q: %w", required, apperrors.ErrValidation)
		}
	}

	result := &dto.ImportResult{}
	var (
		group    string
		groupErr string
		pending  dto.PostTransactionRequest
	)

	flush := func() {
		if group == "" {
			return
		}
		if groupErr != "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("group %s: %s", group, groupErr))
		} else if _, err := s.postingSvc.PostTransaction(ctx, pending, userID); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("group %s: %v", group, err))
		} else {
			result.Imported++
		}
		group, groupErr = "", ""
		pending = dto.PostTransactionRequest{}
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			flush()
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		rowGroup := field(record, idx, "group")
		if rowGroup != group {
			flush()
			group = rowGroup

			date, err := time.Parse(time.DateOnly, field(record, idx, "date"))
			if err != nil {
				groupErr = fmt.Sprintf("line %d: invalid date %q", line, field(record, idx, "date"))
			}
			pending = dto.PostTransactionRequest{
				Date:        date,
				Description: field(record, idx, "description"),
				Reference:   field(record, idx, "reference"),
			}
		}
		if groupErr != "" {
			continue
		}

		account, err := s.accountRepo.FindAccountByCode(ctx, field(record, idx, "account_code"))
		if err != nil {
			groupErr = fmt.Sprintf("line %d: unknown account code %q", line, field(record, idx, "account_code"))
			continue
		}
		debit, err := parseAmount(field(record, idx, "debit"))
		if err != nil {
			groupErr = fmt.Sprintf("line %d: invalid debit amount", line)
			continue
		}
		credit, err := parseAmount(field(record, idx, "credit"))
		if err != nil {
			groupErr = fmt.Sprintf("line %d: invalid credit amount", line)
			continue
		}

		pending.Entries = append(pending.Entries, dto.EntryRequest{
			AccountID:    account.AccountID,
			DebitAmount:  debit,
			CreditAmount: credit,
		})
	}
	flush()

	s.LogInfo(ctx, "Transaction import finished",
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped))
	return result, nil
}

func domainAccountType(raw string) domain.AccountType {
	return domain.AccountType(strings.ToUpper(raw))
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
