package matrix

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"secadmin/internal/admin/directory"
	"secadmin/internal/admin/metrics"
	"secadmin/internal/admin/model"
	"secadmin/internal/admin/registry"
	"secadmin/internal/admin/repository"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrLoadFailed wraps a directory or store failure during Load. The
	// previously published grid, if any, is left untouched.
	ErrLoadFailed = errors.New("matrix load failed")
	// ErrInvariant marks a candidate carrying capabilities without the
	// access gate. Unreachable through SetAccess/SetCapability; a raise
	// means a broken call site and must fail the commit loudly.
	ErrInvariant = errors.New("capabilities require access")
	// ErrAccessRequired rejects a capability edit on a cell whose access
	// gate is off. The caller must grant access first.
	ErrAccessRequired = errors.New("access must be granted before capabilities")
	// ErrCellBusy rejects a second edit for a cell while one commit is
	// still in flight.
	ErrCellBusy = errors.New("edit already in flight for this cell")
	// ErrCommitFailed wraps a store write failure. The grid keeps the
	// pre-edit value so the UI can revert.
	ErrCommitFailed = errors.New("commit failed")
)

type cellKey struct {
	userID   string
	pagePath string
}

// Engine owns the in-memory permission grid and is the only writer to
// it. The presentation layer reads snapshots and requests mutations
// through SetAccess/SetCapability/Commit; it never touches cells
// directly.
type Engine struct {
	directory    directory.Source
	registry     *registry.Registry
	store        repository.PermissionRepository
	storeTimeout time.Duration
	logger       *slog.Logger

	mu      sync.RWMutex
	users   []model.User
	pages   []model.Page
	records map[cellKey]model.Permission
	loaded  bool

	inflightMu sync.Mutex
	inflight   map[cellKey]struct{}
}

func NewEngine(dir directory.Source, reg *registry.Registry, store repository.PermissionRepository, storeTimeout time.Duration, logger *slog.Logger) *Engine {
	return &Engine{
		directory:    dir,
		registry:     reg,
		store:        store,
		storeTimeout: storeTimeout,
		logger:       logger,
		records:      map[cellKey]model.Permission{},
		inflight:     map[cellKey]struct{}{},
	}
}

// Load fetches principals, pages and stored grants concurrently and
// rebuilds the grid. All three must succeed; on any failure the prior
// grid stays published and ErrLoadFailed is returned.
func (e *Engine) Load(ctx context.Context) error {
	var (
		users []model.User
		pages []model.Page
		perms []*model.Permission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = e.directory.ListPrincipals(gctx)
		return err
	})
	g.Go(func() error {
		pages = e.registry.ListResources()
		return nil
	})
	g.Go(func() error {
		var err error
		perms, err = e.store.ListAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.ObserveLoad("failure")
		e.logger.Error("grid load failed", "error", err)
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	records := make(map[cellKey]model.Permission, len(perms))
	for _, p := range perms {
		records[cellKey{userID: p.UserID, pagePath: p.PagePath}] = *p
	}

	e.mu.Lock()
	e.users = users
	e.pages = pages
	e.records = records
	e.loaded = true
	e.mu.Unlock()

	metrics.ObserveLoad("success")
	e.logger.Info("grid loaded", "users", len(users), "pages", len(pages), "records", len(perms))
	return nil
}

// KnownPage reports whether the path is part of the protected catalog.
func (e *Engine) KnownPage(path string) bool {
	_, ok := e.registry.Lookup(path)
	return ok
}

// Loaded reports whether a grid has ever been published.
func (e *Engine) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loaded
}

// Row is one grid line: a page and its effective permission per user,
// in the same order as the users slice of the snapshot.
type Row struct {
	Page  model.Page         `json:"page"`
	Cells []model.Permission `json:"cells"`
}

// Snapshot projects the full cross-product of pages and users, with
// missing records replaced by the all-false default.
func (e *Engine) Snapshot() ([]model.User, []model.Page, []Row) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	users := make([]model.User, len(e.users))
	copy(users, e.users)
	pages := make([]model.Page, len(e.pages))
	copy(pages, e.pages)

	rows := make([]Row, 0, len(pages))
	for _, page := range pages {
		row := Row{Page: page, Cells: make([]model.Permission, 0, len(users))}
		for _, user := range users {
			row.Cells = append(row.Cells, e.effectiveLocked(user.ID, page.Path))
		}
		rows = append(rows, row)
	}
	return users, pages, rows
}

// Effective returns the current grant for a cell, synthesizing the
// all-false default when no record is stored. Never nil.
func (e *Engine) Effective(userID, pagePath string) model.Permission {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.effectiveLocked(userID, pagePath)
}

func (e *Engine) effectiveLocked(userID, pagePath string) model.Permission {
	if p, ok := e.records[cellKey{userID: userID, pagePath: pagePath}]; ok {
		return p
	}
	return model.Permission{UserID: userID, PagePath: pagePath}
}

// SetAccess builds the candidate record for a master-gate edit. Turning
// access off forces all four capabilities off; turning it on preserves
// whatever capabilities were already stored, granting none implicitly.
func (e *Engine) SetAccess(userID, pagePath string, access bool) model.Permission {
	candidate := e.Effective(userID, pagePath)
	candidate.Access = access
	if !access {
		candidate.Create = false
		candidate.Read = false
		candidate.Update = false
		candidate.Delete = false
	}
	return candidate
}

// SetCapability builds the candidate for a single capability flip. The
// access precondition is re-checked here regardless of what the caller's
// UI believes the cell state is.
func (e *Engine) SetCapability(userID, pagePath string, capability model.Capability, value bool) (model.Permission, error) {
	if !capability.Valid() {
		return model.Permission{}, fmt.Errorf("unknown capability %q", capability)
	}
	current := e.Effective(userID, pagePath)
	if !current.Access {
		return model.Permission{}, ErrAccessRequired
	}
	current.SetCapability(capability, value)
	return current, nil
}

// Commit validates, persists and merges a candidate. Same-cell commits
// are serialized: while one is outstanding, further edits for that cell
// are rejected with ErrCellBusy. The merge happens only after the store
// accepted the record, so a failed write never reaches the grid.
func (e *Engine) Commit(ctx context.Context, candidate model.Permission) error {
	if !candidate.ValidInvariant() {
		metrics.ObserveCommit("invariant", -1)
		e.logger.Error("invariant violation reached commit",
			"user_id", candidate.UserID, "page_path", candidate.PagePath)
		return ErrInvariant
	}

	key := cellKey{userID: candidate.UserID, pagePath: candidate.PagePath}

	e.inflightMu.Lock()
	if _, busy := e.inflight[key]; busy {
		e.inflightMu.Unlock()
		metrics.ObserveCommit("busy", -1)
		return ErrCellBusy
	}
	e.inflight[key] = struct{}{}
	e.inflightMu.Unlock()

	defer func() {
		e.inflightMu.Lock()
		delete(e.inflight, key)
		e.inflightMu.Unlock()
	}()

	if e.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.storeTimeout)
		defer cancel()
	}

	start := time.Now()
	err := e.store.Upsert(ctx, &candidate)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.ObserveCommit("failure", elapsed)
		e.logger.Error("permission upsert failed",
			"user_id", candidate.UserID, "page_path", candidate.PagePath, "error", err)
		return fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	e.mu.Lock()
	e.records[key] = candidate
	e.mu.Unlock()

	metrics.ObserveCommit("success", elapsed)
	e.logger.Info("permission committed",
		"user_id", candidate.UserID, "page_path", candidate.PagePath,
		"access", candidate.Access, "by", candidate.UpdatedBy)
	return nil
}
