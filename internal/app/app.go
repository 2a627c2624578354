package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"time"

	"github.com/gofrs/flock"

	"github.com/dori/habitpet/internal/config"
	"github.com/dori/habitpet/internal/db"
	"github.com/dori/habitpet/internal/dialogue"
	"github.com/dori/habitpet/internal/notify"
	"github.com/dori/habitpet/internal/pets"
	"github.com/dori/habitpet/internal/store"
	"github.com/dori/habitpet/internal/tasks"
	"github.com/dori/habitpet/internal/update"
)

// ErrConfirmationRequired is returned by destructive operations called
// without the user's explicit confirmation.
var ErrConfirmationRequired = errors.New("confirmation required")

// Snapshot is the whole persisted application state
type Snapshot struct {
	Roster pets.Roster
	Tasks  tasks.List
}

// Listener observes committed mutations
type Listener func(prev, next Snapshot)

// App holds the application state and dependencies. All mutations go
// through its methods; it is not safe for concurrent use.
type App struct {
	Config   *config.Config
	Notifier *notify.Notifier
	Updates  *update.Checker
	Log      *log.Logger
	Version  string

	DB       *db.DB
	store    *store.Store
	lockFile *flock.Flock
	logFile  *os.File

	state     Snapshot
	listeners []Listener
	speech    *dialogue.Selector
	now       func() time.Time
}

// New opens the data directory and loads the saved state. If the database
// cannot be opened the session continues on an in-memory store.
func New(cfg *config.Config, version string) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
		if err := cfg.Complete(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logger, logFile := openLog(cfg)

	lock, err := acquireLock(cfg.LockPath())
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}

	var kv store.KV
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Printf("open database, using memory store: %v", err)
		kv = store.NewMemoryKV()
	} else {
		kv = database
	}

	a := NewSession(kv, cfg, version, logger)
	a.DB = database
	a.lockFile = lock
	a.logFile = logFile
	return a, nil
}

// NewSession builds an App on top of an existing store without touching
// the filesystem.
func NewSession(kv store.KV, cfg *config.Config, version string, logger *log.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	notifier := notify.NewNotifier()
	notifier.SetEnabled(cfg.Notifications)

	s := store.New(kv, logger)
	a := &App{
		Config:   cfg,
		Notifier: notifier,
		Updates:  update.NewChecker(cfg.UpdateURL, version, s.KV(), cfg.UpdateTimeout, logger),
		Log:      logger,
		Version:  version,
		store:    s,
		speech:   dialogue.NewSelector(),
		now:      time.Now,
		state: Snapshot{
			Roster: s.LoadRoster(),
			Tasks:  s.LoadTasks(),
		},
	}
	a.Subscribe(a.persist)
	return a
}

// openLog writes to <data dir>/habitpet.log in debug mode; anything written
// to the terminal would corrupt the TUI.
func openLog(cfg *config.Config) (*log.Logger, *os.File) {
	if !cfg.Debug {
		return log.New(io.Discard, "", 0), nil
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return log.New(io.Discard, "", 0), nil
	}
	return log.New(f, "habitpet ", log.LstdFlags|log.Lmicroseconds), f
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func acquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)

	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return nil, fmt.Errorf("another instance of habitpet is already running")
	}

	return lock, nil
}

// WithSelector swaps the dialogue selector, for reproducible tests
func (a *App) WithSelector(s *dialogue.Selector) *App {
	a.speech = s
	return a
}

// WithClock swaps the time source used for task ids
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Subscribe registers fn to run after every committed mutation
func (a *App) Subscribe(fn Listener) {
	a.listeners = append(a.listeners, fn)
}

// State returns the current snapshot. Callers must treat it as read-only.
func (a *App) State() Snapshot {
	return a.state
}

func (a *App) commit(next Snapshot) {
	prev := a.state
	a.state = next
	for _, fn := range a.listeners {
		fn(prev, next)
	}
}

// persist writes each entry that changed. Write failures are logged; the
// in-memory state stays authoritative for the session.
func (a *App) persist(prev, next Snapshot) {
	if !reflect.DeepEqual(prev.Roster.Pets, next.Roster.Pets) {
		if err := a.store.SavePets(next.Roster.Pets); err != nil {
			a.Log.Printf("%v", err)
		}
	}
	if prev.Roster.ActiveID != next.Roster.ActiveID {
		if err := a.store.SaveActiveID(next.Roster.ActiveID); err != nil {
			a.Log.Printf("%v", err)
		}
	}
	if !reflect.DeepEqual(prev.Tasks, next.Tasks) {
		if err := a.store.SaveTasks(next.Tasks); err != nil {
			a.Log.Printf("%v", err)
		}
	}
}

// Reset wipes the store and returns to the first-run state
func (a *App) Reset(confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if a.DB != nil {
		if err := a.DB.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	// The empty prev forces every entry to be written.
	a.state = Snapshot{}
	a.commit(Snapshot{Roster: pets.Initial(), Tasks: tasks.Initial()})
	return nil
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if a.lockFile != nil {
		a.lockFile.Unlock()
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
