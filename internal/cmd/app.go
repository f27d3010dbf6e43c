package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/realestatead/adctl/internal/api"
	"github.com/realestatead/adctl/internal/auth"
	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/config"
	"github.com/realestatead/adctl/internal/console"
	"github.com/realestatead/adctl/internal/guard"
	"github.com/realestatead/adctl/internal/log"
	"github.com/realestatead/adctl/internal/query"
	"github.com/realestatead/adctl/internal/session"
)

// app wires the console's components for one command invocation: config,
// session store, HTTP client, query cache, auth gateway, feature services.
type app struct {
	cfg      config.Config
	dir      string
	logger   *log.Logger
	sessions *session.Store
	cache    *query.Cache
	client   *api.Client
	gateway  *auth.Gateway
	console  *console.Console
}

// buildApp assembles the component graph from config, environment, and
// persistent flags.
func buildApp(cmd *cobra.Command) (*app, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if url, _ := cmd.Flags().GetString("api-url"); url != "" {
		cfg.APIURL = url
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
	})
	log.SetDefaultLogger(logger)

	sessions := session.NewStore(dir)
	cache := query.New(query.DefaultTTL)

	opts := []api.Option{
		api.WithLogger(logger),
		// Every cached read belongs to the session a 401 just killed.
		api.WithForcedLogoutHook(cache.Clear),
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	}
	client := api.NewClient(cfg.APIURL, sessions, opts...)

	gateway := auth.NewGateway(client, sessions, cache)

	return &app{
		cfg:      cfg,
		dir:      dir,
		logger:   logger,
		sessions: sessions,
		cache:    cache,
		client:   client,
		gateway:  gateway,
		console:  console.New(client, cache),
	}, nil
}

// requireArea evaluates the area's route guard and returns the authorized
// user. One-shot commands cannot redirect the way the shell does, so the
// misrouted cases turn into actionable errors instead.
func (a *app) requireArea(cmd *cobra.Command, area authz.Area) (*session.User, error) {
	g := guard.New(area, a.gateway, a.cache)
	decision := g.Evaluate(cmd.Context(), "")

	switch decision.State {
	case guard.StateAuthorized:
		return decision.User, nil
	case guard.StateWrongRole:
		if area == authz.AreaSystem {
			return nil, fmt.Errorf("this command requires a system admin; you are logged in as %s (%s)",
				decision.User.Email, decision.User.Role)
		}
		return nil, fmt.Errorf("this command requires an organization user; you are logged in as %s (%s)",
			decision.User.Email, decision.User.Role)
	default:
		if area == authz.AreaSystem {
			return nil, fmt.Errorf("not logged in; run 'adctl login --admin' first")
		}
		return nil, fmt.Errorf("not logged in; run 'adctl login' first")
	}
}

// requireRole additionally checks a navigation-table role restriction, e.g.
// the agents screen being org-admin only.
func (a *app) requireRole(user *session.User, route string) error {
	table := authz.NavigationFor(authz.HomeArea(user.Role))
	entry, ok := authz.EntryByRoute(table, route)
	if !ok {
		return fmt.Errorf("no such screen: %s", route)
	}
	if !entry.AllowedFor(user.Role) {
		return fmt.Errorf("%s is not available to role %s", entry.Name, user.Role)
	}
	return nil
}

// parseID parses a numeric identifier argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
