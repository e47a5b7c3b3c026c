package services

import (
	"time"

	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
)

// ContainerConfig carries the settings services need beyond repositories.
type ContainerConfig struct {
	JWTSecret          string
	JWTIssuer          string
	TokenExpiry        time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// NewContainer wires all services to their repositories. Construction order
// follows the dependency chain: accounts feed posting, posting feeds import.
func NewContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Posting = NewPostingService(repos.PostingRepo, container.Account)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)
	container.Voucher = NewVoucherService(repos.VoucherRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenExpiry)
	container.GoogleOAuth = NewGoogleOAuthService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	container.Importer = NewImportService(container.Account, container.Posting, repos.AccountRepo)

	return container
}
