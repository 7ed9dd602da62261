package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rashedul-dev/Qourio-client/internal/client/api"
	"github.com/rashedul-dev/Qourio-client/internal/client/config"
	"github.com/rashedul-dev/Qourio-client/internal/client/guard"
	"github.com/rashedul-dev/Qourio-client/internal/client/listview"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/query"
	"github.com/rashedul-dev/Qourio-client/internal/client/services"
	"github.com/rashedul-dev/Qourio-client/internal/client/session"
	"github.com/rashedul-dev/Qourio-client/internal/logging"
)

// App is the interactive client. All state a command needs hangs off here:
// the services, the current session snapshot, and one list coordinator per
// list view.
type App struct {
	config *config.Config

	auth    services.AuthService
	parcels services.ParcelService
	users   services.UserService
	stats   services.StatsService

	apiClient *api.HTTPClient
	store     *session.Store
	cache     *query.Cache
	log       logging.Logger

	session guard.Session

	parcelView *listview.Coordinator
	userView   *listview.Coordinator
	parcelMeta models.Meta
	userMeta   models.Meta
	active     listTarget

	reader *bufio.Reader
	out    io.Writer
}

// listTarget selects the table the shared list commands (list, next, sort,
// search, filter, columns, limit) operate on. 'users' switches to the user
// table, 'parcels' back.
type listTarget int

const (
	listParcels listTarget = iota
	listUsers
)

func (a *App) activeView() *listview.Coordinator {
	if a.active == listUsers {
		return a.userView
	}
	return a.parcelView
}

func (a *App) activeMeta() models.Meta {
	if a.active == listUsers {
		return a.userMeta
	}
	return a.parcelMeta
}

// NewApp wires the whole client: session store, REST client, query cache and
// the services on top.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	store, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	apiClient, err := api.New(c.APIBaseURL, c.RequestTimeout, store, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	cache := query.New(c.CacheTTL, log)

	return &App{
		config:     c,
		auth:       services.NewAuthService(apiClient, cache, store),
		parcels:    services.NewParcelService(apiClient, cache),
		users:      services.NewUserService(apiClient, cache),
		stats:      services.NewStatsService(apiClient, cache),
		apiClient:  apiClient,
		store:      store,
		cache:      cache,
		log:        log,
		parcelView: listview.New(c.PageSize),
		userView:   listview.New(c.PageSize),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

// Run resolves any session left over from the previous run and enters the
// REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.closeAll()

	a.resolveSession(ctx)
	a.repl(ctx)
}

func (a *App) closeAll() {
	if a.apiClient != nil {
		_ = a.apiClient.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}

// resolveSession refreshes the session snapshot the guards decide on. A
// transport failure leaves the snapshot pending; commands then report the
// backend as unreachable instead of pretending the user is anonymous.
func (a *App) resolveSession(ctx context.Context) {
	s, err := a.auth.Session(ctx)
	if err != nil && !errors.Is(err, api.ErrUnauthorized) {
		a.log.Warn(ctx, "session check failed", "error", err)
	}
	a.session = s
}

func (a *App) isLoggedIn() bool {
	return a.session.State == guard.SessionActive
}

func (a *App) role() models.Role {
	if a.session.User == nil {
		return ""
	}
	return a.session.User.Role
}

// protected runs fn only when the route guard renders for this session, the
// same decision the web client's withAuth wrapper makes.
func (a *App) protected(ctx context.Context, required []models.Role, fn func(ctx context.Context) error) error {
	res := guard.Protect(a.session, required...)
	switch res.Decision {
	case guard.DecisionPending:
		fmt.Fprintln(a.out, "Session is not resolved yet; the backend may be unreachable. Try 'login'.")
		return nil
	case guard.DecisionRedirect:
		if res.Route == guard.RouteLogin {
			fmt.Fprintln(a.out, "Please log in first.")
		} else {
			fmt.Fprintln(a.out, "You are not authorized to do that.")
		}
		return nil
	default:
		return fn(ctx)
	}
}
