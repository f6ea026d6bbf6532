package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tripsplit-dev/tripsplit/internal/expenses"
	"github.com/tripsplit-dev/tripsplit/internal/importer"
	"github.com/tripsplit-dev/tripsplit/internal/ledger"
)

func newExportCommand(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all expenses as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, outPath)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func runExport(cmd *cobra.Command, a *app, outPath string) error {
	_, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	if outPath == "" {
		return writeExport(cmd.OutOrStdout(), l)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := writeExport(f, l); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}
	return nil
}

func writeExport(w io.Writer, l *ledger.Ledger) error {
	if err := expenses.WriteTransactions(w, l.Transactions(), l.Scale()); err != nil {
		return fmt.Errorf("exporting expenses: %w", err)
	}
	return nil
}

func newImportCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file.csv]...",
		Short: "Add expenses from CSV files (default: every CSV in <dir>/import)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, format, args)
		},
	}
	cmd.Flags().StringVar(&format, "format", "tripsplit", "CSV format")
	return cmd
}

func runImport(cmd *cobra.Command, a *app, format string, paths []string) error {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown import format %q", format)
	}

	// Files found by scanning are moved to import/processed once saved.
	var scanned []string
	if len(paths) == 0 {
		files, err := importer.Scan(a.dir)
		if err != nil {
			return err
		}
		for _, fi := range files {
			paths = append(paths, fi.Path)
			scanned = append(scanned, fi.Name)
		}
	}
	if len(paths) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
		return nil
	}

	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	// All files are applied before anything is saved, so a rejected row
	// leaves the trip file untouched.
	total := 0
	for _, path := range paths {
		n, err := importer.ImportFile(l, parser, path)
		if err != nil {
			return err
		}
		a.log.Debug("imported file", zap.String("path", path), zap.Int("expenses", n))
		total += n
	}

	if err := a.saveTrip(f, l); err != nil {
		return err
	}
	for _, name := range scanned {
		if err := importer.MarkProcessed(a.dir, name); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expense(s) from %d file(s)\n", total, len(paths))
	return nil
}
