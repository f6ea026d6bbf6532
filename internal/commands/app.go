package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tripsplit-dev/tripsplit/internal/config"
	"github.com/tripsplit-dev/tripsplit/internal/ledger"
	"github.com/tripsplit-dev/tripsplit/internal/logging"
	"github.com/tripsplit-dev/tripsplit/internal/money"
	"github.com/tripsplit-dev/tripsplit/internal/trip"
)

const (
	configFile = "tripsplit.yaml"
	dotenvFile = ".env"
)

// app carries state shared by every subcommand.
type app struct {
	dir      string
	logLevel string

	cfg *config.Config
	log *zap.Logger
}

// setup loads tripsplit.yaml (or defaults), applies .env and environment
// overrides, and builds the logger.
func (a *app) setup() error {
	cfg, err := config.LoadOrDefault(filepath.Join(a.dir, configFile))
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg, filepath.Join(a.dir, dotenvFile)); err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Environment: logging.Environment(cfg.Log.Environment),
		Level:       cfg.Log.Level,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	return nil
}

func (a *app) tripPath() string {
	return filepath.Join(a.dir, a.cfg.Trip.File)
}

// loadTrip reads the trip file and replays it into a fresh Ledger.
func (a *app) loadTrip() (*trip.File, *ledger.Ledger, error) {
	f, err := trip.Load(a.tripPath())
	if err != nil {
		return nil, nil, err
	}
	if f.Currency == "" {
		f.Currency = a.cfg.Trip.Currency
	}

	l, err := trip.Build(f, ledger.WithLogger(a.log))
	if err != nil {
		return nil, nil, a.report(fmt.Errorf("loading %s: %w", a.tripPath(), err))
	}
	a.log.Debug("trip loaded",
		zap.String("path", a.tripPath()),
		zap.Int("participants", len(f.Participants)),
		zap.Int("expenses", len(f.Expenses)),
	)
	return f, l, nil
}

// saveTrip writes the ledger back over the trip file.
func (a *app) saveTrip(f *trip.File, l *ledger.Ledger) error {
	out := trip.FromLedger(f.Name, f.Currency, l)
	out.Budget = f.Budget
	if err := trip.Save(a.tripPath(), out); err != nil {
		return a.report(err)
	}
	a.log.Debug("trip saved", zap.String("path", a.tripPath()))
	return nil
}

// report logs errors that changing the input cannot fix, such as invariant
// violations or unreadable files, and passes err through.
func (a *app) report(err error) error {
	if err != nil && !ledger.IsUserError(err) {
		a.log.Error("command failed", zap.Error(err), zap.Bool("invariant", errors.Is(err, ledger.ErrInvariant)))
	}
	return err
}

func currencyOf(f *trip.File) money.Currency {
	cur, err := money.Lookup(f.Currency)
	if err != nil {
		// Build already rejected unknown currencies.
		return money.Currency{Code: f.Currency}
	}
	return cur
}

func participantNames(l *ledger.Ledger) map[string]string {
	names := make(map[string]string)
	for _, p := range l.Participants() {
		names[p.ID] = p.Name
	}
	return names
}
