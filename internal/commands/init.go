package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/config"
	"github.com/tripsplit-dev/tripsplit/internal/money"
	"github.com/tripsplit-dev/tripsplit/internal/trip"
)

func newInitCommand(a *app) *cobra.Command {
	var name string
	var currency string
	var members []string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new trip",
		Args:  cobra.MaximumNArgs(1),
		// init creates the config; it must not require one.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, currency, members)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "trip name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "JPY", "currency expenses are paid in")
	cmd.Flags().StringSliceVar(&members, "member", nil, "initial participant (repeatable)")

	return cmd
}

func runInit(out io.Writer, dir, name, currency string, members []string) error {
	cur, err := money.Lookup(currency)
	if err != nil {
		return err
	}

	// Check members the same way later loads will.
	f := &trip.File{Name: name, Currency: cur.Code, Participants: members}
	if f.Participants == nil {
		f.Participants = []string{}
	}
	if _, err := trip.Build(f); err != nil {
		return err
	}

	cfg := config.Default(name)
	cfg.Trip.Currency = cur.Code

	// Refuse if either file survives from an earlier trip.
	cfgPath := filepath.Join(dir, configFile)
	tripPath := filepath.Join(dir, cfg.Trip.File)
	for _, path := range []string{cfgPath, tripPath} {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	// Create directory structure.
	for _, d := range []string{"", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write tripsplit.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write trip.yaml.
	if err := trip.Save(tripPath, f); err != nil {
		return err
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Fprintf(out, "Initialized trip %q (%s) at %s\n", name, cur.Code, dir)
	return nil
}
