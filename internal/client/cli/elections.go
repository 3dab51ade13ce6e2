package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

func (a *App) ListElections(_ context.Context, _ []string) error {
	items := a.store.Elections()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No elections")
		return nil
	}

	rows := [][]string{{"ID", "NAME", "STATUS", "START", "END", "POSITIONS"}}
	for _, e := range items {
		rows = append(rows, []string{
			e.ID, e.Name, string(e.Status), orDash(e.StartDate), orDash(e.EndDate),
			orDash(strings.Join(e.Positions, ", ")),
		})
	}
	table(a.out, rows)
	return nil
}

func (a *App) AddElection(ctx context.Context, _ []string) error {
	var (
		d   models.ElectionDraft
		err error
	)
	if d.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if d.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if d.StartDate, err = getSimpleText(a.reader, "Start date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if d.EndDate, err = getSimpleText(a.reader, "End date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	status, err := getSimpleText(a.reader, "Status (Draft, Active, Paused, Ended; empty for Draft)", a.out)
	if err != nil {
		return err
	}
	d.Status = models.ElectionStatus(status)
	if d.Positions, err = GetList(a.reader, "Positions (comma separated)", a.out); err != nil {
		return err
	}

	e, err := a.store.CreateElection(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created election %s (%s)\n", e.Name, e.ID)
	return nil
}

func (a *App) SetElectionStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("setstatus <electionId> <status>")
	}
	status, ok := models.ParseElectionStatus(args[1])
	if !ok {
		return fmt.Errorf("unknown status %q", args[1])
	}
	if !a.hasElection(args[0]) {
		fmt.Fprintln(a.out, "No election with ID", args[0])
		return nil
	}
	if err := a.store.UpdateElectionStatus(ctx, args[0], status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now %s\n", a.store.ElectionName(args[0]), status)
	return nil
}

func (a *App) hasElection(id string) bool {
	for _, e := range a.store.Elections() {
		if e.ID == id {
			return true
		}
	}
	return false
}
