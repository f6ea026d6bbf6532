package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripsplit-dev/tripsplit/internal/ledger"
)

func newMemberCommand(a *app) *cobra.Command {
	memberCmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"members"},
		Short:   "Manage trip participants",
	}
	memberCmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>...",
			Short: "Add participants",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMemberAdd(cmd, a, args)
			},
		},
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Remove a participant who has no expenses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMemberRemove(cmd, a, args[0])
			},
		},
		&cobra.Command{
			Use:   "ls",
			Short: "List participants",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMemberList(cmd, a)
			},
		},
	)
	return memberCmd
}

func runMemberAdd(cmd *cobra.Command, a *app, names []string) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	for _, name := range names {
		// The trip file refers to participants by name.
		if _, err := l.ParticipantByName(name); err == nil {
			return fmt.Errorf("participant %q already exists", name)
		} else if !errors.Is(err, ledger.ErrNotFound) {
			return err
		}
		p, err := l.AddParticipant(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", p.Name)
	}

	return a.saveTrip(f, l)
}

func runMemberRemove(cmd *cobra.Command, a *app, name string) error {
	f, l, err := a.loadTrip()
	if err != nil {
		return err
	}

	p, err := l.ParticipantByName(name)
	if err != nil {
		return err
	}
	if err := l.RemoveParticipant(p.ID); err != nil {
		if errors.Is(err, ledger.ErrConstraint) {
			return fmt.Errorf("%s still appears in expenses; remove those first: %w", p.Name, err)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.Name)

	return a.saveTrip(f, l)
}

func runMemberList(cmd *cobra.Command, a *app) error {
	_, l, err := a.loadTrip()
	if err != nil {
		return err
	}
	for _, p := range l.Participants() {
		fmt.Fprintln(cmd.OutOrStdout(), p.Name)
	}
	return nil
}
