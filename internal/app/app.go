// Package app wires configuration, storage, credentials, sources, and
// the badge poller into a running desk client.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shiftdesk/shiftdesk/internal/badge"
	"github.com/shiftdesk/shiftdesk/internal/credential"
	"github.com/shiftdesk/shiftdesk/internal/earnings"
	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/schedule"
	"github.com/shiftdesk/shiftdesk/internal/source"
	"github.com/shiftdesk/shiftdesk/internal/source/marketplace"
	"github.com/shiftdesk/shiftdesk/internal/store"
	"github.com/shiftdesk/shiftdesk/internal/viewed"
	"github.com/shiftdesk/shiftdesk/internal/week"
)

// App owns the desk client's long-lived components. Build one with New,
// use the exported services directly for one-shot commands, or call Run
// for the polling daemon.
type App struct {
	Config   *model.AppConfig
	Badges   *badge.Service
	Poller   *badge.Poller
	Schedule *schedule.Service
	Earnings *earnings.Service
	Client   *marketplace.Client

	store   *store.SQLiteStore
	redis   *store.RedisViewedStore
	tracker *viewed.Tracker
	sources []source.Source
	log     *logrus.Entry
}

// New builds an App from configuration. A missing API token is not fatal:
// the client runs from the local cache and skips syncing until a token is
// stored.
func New(cfg *model.AppConfig) (*App, error) {
	switch cfg.Role {
	case model.RoleEmployee, model.RoleBusiness, model.RoleAdmin:
	default:
		return nil, fmt.Errorf("unknown role %q in config", cfg.Role)
	}

	a := &App{
		Config: cfg,
		log:    logrus.WithField("component", "app"),
	}

	s, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}
	a.store = s

	var viewedStore viewed.Store
	switch cfg.Store.ViewedBackend {
	case "redis":
		r, err := store.NewRedisViewedStore(
			cfg.Store.RedisAddr, cfg.Store.RedisPassword, cfg.Store.RedisDB,
		)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("opening viewed-state backend: %w", err)
		}
		a.redis = r
		viewedStore = r
	default:
		viewedStore = store.NewViewedStore(s)
	}
	a.tracker = viewed.NewTracker(viewedStore)

	scheduleWindow := week.Window{
		Back:    cfg.Windows.ScheduleWeeksBack,
		Forward: cfg.Windows.ScheduleWeeksForward,
	}
	hoursWindow := week.Window{
		Back:    cfg.Windows.HoursWeeksBack,
		Forward: cfg.Windows.HoursWeeksForward,
	}

	identity := badge.Identity{
		UserID:     cfg.API.AccountID,
		Role:       cfg.Role,
		BusinessID: cfg.API.BusinessID,
	}
	categories := resolveCategories(cfg)

	a.Badges = badge.NewService(s, a.tracker, identity, badge.Windows{
		Schedule: scheduleWindow,
		Hours:    hoursWindow,
	}, categories)

	employeeID, businessID := "", ""
	switch cfg.Role {
	case model.RoleEmployee:
		employeeID = cfg.API.AccountID
	case model.RoleBusiness:
		businessID = cfg.API.BusinessID
	}
	a.Schedule = schedule.NewService(s, employeeID, businessID, scheduleWindow)
	a.Earnings = earnings.NewService(s, employeeID, businessID, hoursWindow)

	interval := time.Duration(cfg.Sync.PollIntervalSec) * time.Second
	a.Poller = badge.NewPoller(a.Badges, interval)

	token, err := credential.Get(credential.TokenKey)
	if err != nil || token == "" {
		a.log.Warn("no marketplace token stored, running from local cache only")
		return a, nil
	}
	if cfg.API.BaseURL == "" {
		a.log.Warn("no marketplace base URL configured, running from local cache only")
		return a, nil
	}

	a.Client = marketplace.NewClient(cfg.API.BaseURL, token)
	a.registerSources(scheduleWindow, hoursWindow, categories)

	return a, nil
}

// registerSources builds one marketplace source per configured category
// and registers it with the poller.
func (a *App) registerSources(scheduleWindow, hoursWindow week.Window, categories []model.Category) {
	cfg := a.Config
	pageSize := cfg.Sync.PageSize

	for _, cat := range categories {
		var src source.Source

		switch cat {
		case model.CategorySchedules:
			sc := marketplace.ScheduleConfig{Window: scheduleWindow, PageSize: pageSize}
			if cfg.Role == model.RoleBusiness {
				sc.BusinessID = cfg.API.BusinessID
			} else {
				sc.AccountID = cfg.API.AccountID
			}
			src = marketplace.NewScheduleSource(a.Client, a.store, sc)

		case model.CategoryJoinRequests:
			jc := marketplace.JoinRequestConfig{PageSize: pageSize}
			if cfg.Role == model.RoleBusiness {
				jc.BusinessID = cfg.API.BusinessID
			} else {
				jc.EmployeeID = cfg.API.AccountID
			}
			src = marketplace.NewJoinRequestSource(a.Client, a.store, jc)

		case model.CategoryEarnings:
			ec := marketplace.EarningsConfig{Window: hoursWindow, PageSize: pageSize}
			if cfg.Role == model.RoleBusiness {
				ec.BusinessID = cfg.API.BusinessID
			} else {
				ec.AccountID = cfg.API.AccountID
			}
			src = marketplace.NewEarningsSource(a.Client, a.store, ec)

		case model.CategoryTickets:
			src = marketplace.NewTicketSource(a.Client, a.store, marketplace.TicketConfig{
				PageSize: pageSize,
			})
		}

		if src != nil {
			a.sources = append(a.sources, src)
			a.Poller.RegisterSource(src)
		}
	}
}

// Run starts the poller and blocks until ctx is cancelled or the process
// receives SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	if len(a.sources) == 0 {
		return fmt.Errorf("no sources configured: store a token with the token command first")
	}

	a.Poller.Start()
	defer a.Poller.Stop()

	go a.logSnapshots()

	a.log.WithFields(logrus.Fields{
		"role":       a.Config.Role,
		"categories": len(a.sources),
	}).Info("desk client started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-ctx.Done():
	case <-quit:
	}

	a.log.Info("desk client shutting down")
	return nil
}

// logSnapshots drains the poller's update channel so badge changes are
// visible in the daemon log.
func (a *App) logSnapshots() {
	for snap := range a.Poller.Updates() {
		for _, b := range snap.Badges {
			if !b.Unseen {
				continue
			}
			a.log.WithFields(logrus.Fields{
				"category": b.Category,
				"count":    b.Count,
			}).Info("unseen activity")
		}
	}
}

// SyncOnce runs a single sync and badge refresh outside the poller, for
// one-shot commands. With no token stored, it refreshes from the cache
// alone.
func (a *App) SyncOnce(ctx context.Context) []badge.Badge {
	for _, src := range a.sources {
		if _, err := src.Sync(ctx); err != nil {
			a.log.WithError(err).WithField("category", src.Category()).
				Warn("sync failed, using cached data")
		}
	}
	return a.Badges.Refresh(ctx)
}

// Store exposes the local cache for read-only listing commands.
func (a *App) Store() store.Store {
	return a.store
}

// Close releases the app's storage handles.
func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("closing redis viewed-state backend")
		}
	}
	return a.store.Close()
}

// resolveCategories maps the config's category list to validated
// categories, falling back to the role's defaults.
func resolveCategories(cfg *model.AppConfig) []model.Category {
	if len(cfg.Sync.Categories) == 0 {
		return model.DefaultCategories(cfg.Role)
	}

	var categories []model.Category
	for _, raw := range cfg.Sync.Categories {
		cat := model.Category(raw)
		if cat.Valid() {
			categories = append(categories, cat)
		}
	}
	if len(categories) == 0 {
		return model.DefaultCategories(cfg.Role)
	}
	return categories
}
