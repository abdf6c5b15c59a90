package badge

import (
	"context"
	gosync "sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shiftdesk/shiftdesk/internal/model"
	"github.com/shiftdesk/shiftdesk/internal/source"
)

// SyncState represents the current state of a category sync.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the sync state for a single category.
type SyncStatus struct {
	Category    model.Category
	State       SyncState
	LastSync    time.Time
	Error       error
	AuthExpired bool
}

// Snapshot is one complete badge refresh, published after every poll
// cycle.
type Snapshot struct {
	Badges []Badge
	At     time.Time
}

// fetchTimeout bounds a full poll cycle: every category sync and the
// badge recompute share it.
const fetchTimeout = 30 * time.Second

// defaultInterval is the poll cadence when the config leaves it unset.
const defaultInterval = 5 * time.Second

// Poller drives the refresh loop: on every tick it syncs each registered
// source into the local store, recomputes badges, and publishes a
// snapshot. Reads and recomputes only; it never acknowledges anything on
// the user's behalf.
type Poller struct {
	service   *Service
	sources   []source.Source
	interval  time.Duration
	statuses  map[model.Category]*SyncStatus
	updatesCh chan Snapshot
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
	log       *logrus.Entry
}

// NewPoller creates a poller refreshing badges through service at the
// given interval.
func NewPoller(service *Service, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		service:   service,
		interval:  interval,
		statuses:  make(map[model.Category]*SyncStatus),
		updatesCh: make(chan Snapshot, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		log:       logrus.WithField("component", "poller"),
	}
}

// RegisterSource adds a category source to the poll cycle.
func (p *Poller) RegisterSource(src source.Source) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cat := src.Category()
	p.sources = append(p.sources, src)
	p.statuses[cat] = &SyncStatus{
		Category: cat,
		State:    SyncIdle,
	}
}

// Start launches the polling goroutine. The first cycle runs immediately
// rather than waiting out the first tick.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go p.run()
}

// Stop halts the polling goroutine. Safe to call once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// TriggerSync requests an immediate refresh without waiting for the next
// tick. Non-blocking: a refresh already pending absorbs the request.
func (p *Poller) TriggerSync() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Updates returns the channel badge snapshots are published on. Slow
// consumers miss snapshots rather than stalling the poll loop.
func (p *Poller) Updates() <-chan Snapshot {
	return p.updatesCh
}

// Statuses returns the current sync status of all registered categories.
func (p *Poller) Statuses() []SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]SyncStatus, 0, len(p.statuses))
	for _, s := range p.statuses {
		statuses = append(statuses, *s)
	}
	return statuses
}

// run is the polling loop.
func (p *Poller) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.cycle()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.cycle()
		case <-p.triggerCh:
			p.cycle()
		}
	}
}

// cycle performs one full refresh: sync every source, then recompute and
// publish badges.
func (p *Poller) cycle() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	for _, src := range p.sources {
		p.syncSource(ctx, src)
	}

	badges := p.service.Refresh(ctx)
	p.publish(Snapshot{Badges: badges, At: time.Now()})
}

// syncSource runs a single category sync and records its status.
func (p *Poller) syncSource(ctx context.Context, src source.Source) {
	cat := src.Category()
	p.setStatus(cat, SyncRunning, nil, false)

	summary, err := src.Sync(ctx)
	if err != nil {
		authExpired := source.IsAuthError(err)
		p.setStatus(cat, SyncError, err, authExpired)
		if authExpired {
			p.log.WithField("category", cat).
				Warn("authentication expired, reconnect with a fresh token")
			return
		}
		p.log.WithError(err).WithField("category", cat).Warn("sync failed")
		return
	}

	p.setStatus(cat, SyncIdle, nil, false)
	p.log.WithFields(logrus.Fields{
		"category": cat,
		"count":    summary.Count,
		"latest":   summary.Latest,
	}).Debug("sync complete")
}

// setStatus updates the sync status for a category.
func (p *Poller) setStatus(cat model.Category, state SyncState, err error, authExpired bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.statuses[cat]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	status.AuthExpired = authExpired
	if state == SyncIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// publish sends a snapshot on the updates channel without blocking.
func (p *Poller) publish(snap Snapshot) {
	select {
	case p.updatesCh <- snap:
	default:
		// Drop if the channel is full to avoid blocking the poller.
	}
}
