package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/tinashem/dukabook/internal/auth"
	"github.com/tinashem/dukabook/internal/biometric"
	"github.com/tinashem/dukabook/internal/config"
	"github.com/tinashem/dukabook/internal/logging"
	"github.com/tinashem/dukabook/internal/repositories/outbox"
	"github.com/tinashem/dukabook/internal/repositories/users"
	"github.com/tinashem/dukabook/internal/secrets"
	"github.com/tinashem/dukabook/internal/services"
	"github.com/tinashem/dukabook/internal/storage"
	"github.com/tinashem/dukabook/internal/syncx"
)

// App wires the credential manager, the bookkeeping services and the
// synchronizer behind the interactive shell.
type App struct {
	config   *config.Config
	log      logging.Logger
	auth     *auth.Manager
	sessions *auth.SessionCache

	shops     services.ShopService
	products  services.ProductService
	customers services.CustomerService
	sales     services.SaleService
	expenses  services.ExpenseService
	outbox    services.OutboxService

	sync   *syncx.Synchronizer
	remote *syncx.HTTPRemote

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	store, err := secrets.NewFileStore(cfg.SecretsPath, cfg.DeviceKeyPath)
	if err != nil {
		return nil, err
	}

	mgr := auth.NewManager(store, biometric.UnavailableGate{}, users.NewSQLiteRepository(db))
	outboxSvc := services.NewOutboxService(outbox.NewSQLiteRepository(db))
	remote := syncx.NewHTTPRemote(cfg.RemoteAddr, log)

	return &App{
		config:    cfg,
		log:       log,
		auth:      mgr,
		sessions:  auth.NewSessionCache(mgr),
		shops:     services.NewShopService(db),
		products:  services.NewProductService(db),
		customers: services.NewCustomerService(db),
		sales:     services.NewSaleService(db),
		expenses:  services.NewExpenseService(db),
		outbox:    outboxSvc,
		sync:      syncx.NewSynchronizer(outboxSvc, remote, services.NewRemoteApplier(db), log, cfg.SyncBatchSize),
		remote:    remote,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session() != nil
}
