package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

func (a *App) ListVoters(_ context.Context, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	rows := [][]string{{"ID", "NAME", "EMAIL", "ELECTION", "VOTED", "ACTIVE"}}
	for _, v := range a.store.Voters() {
		if filter != "" && v.ElectionID != filter {
			continue
		}
		rows = append(rows, []string{
			v.ID, v.Name, v.Email, a.store.ElectionName(v.ElectionID), yesNo(v.HasVoted), yesNo(v.IsActive),
		})
	}
	if len(rows) == 1 {
		fmt.Fprintln(a.out, "No voters")
		return nil
	}
	table(a.out, rows)
	return nil
}

func (a *App) AddVoter(ctx context.Context, _ []string) error {
	var (
		d   models.VoterDraft
		err error
	)
	if d.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if d.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if d.ElectionID, err = getSimpleText(a.reader, "Election ID", a.out); err != nil {
		return err
	}

	v, err := a.store.CreateVoter(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added voter %s (%s)\n", v.Name, v.ID)
	return nil
}

// ToggleVoter flips a voter's active flag. The change is local to the
// console (and its database when offline); the backend is not told.
func (a *App) ToggleVoter(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("togglevoter <voterId>")
	}
	if err := a.store.ToggleVoterStatus(ctx, args[0]); err != nil {
		return err
	}
	for _, v := range a.store.Voters() {
		if v.ID == args[0] {
			fmt.Fprintf(a.out, "%s active: %s\n", v.Name, yesNo(v.IsActive))
			return nil
		}
	}
	fmt.Fprintln(a.out, "No voter with ID", args[0])
	return nil
}
