package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

func (a *App) Stats(_ context.Context, _ []string) error {
	st := a.store.Stats()
	table(a.out, [][]string{
		{"Total voters", humanize.Comma(int64(st.TotalVoters))},
		{"Total candidates", humanize.Comma(int64(st.TotalCandidates))},
		{"Votes cast", humanize.Comma(int64(st.TotalVotesCast))},
		{"Active elections", humanize.Comma(int64(st.ActiveElections))},
	})
	if err := a.store.LastError(); err != nil {
		fmt.Fprintln(a.out, "Last load failed:", err)
	}
	return nil
}

// Results prints the tally of every election, leaders first.
func (a *App) Results(ctx context.Context, _ []string) error {
	results, err := a.store.Results(ctx)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No results")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(a.out, "%s [%s] total %s\n", r.ElectionName, r.Status, humanize.Comma(int64(r.TotalVotes)))
		rows := [][]string{{"", "CANDIDATE", "POSITION", "PARTY", "VOTES", "SHARE"}}
		for i, c := range r.Candidates {
			share := "-"
			if r.TotalVotes > 0 {
				share = humanize.FtoaWithDigits(float64(c.VoteCount)*100/float64(r.TotalVotes), 1) + "%"
			}
			rows = append(rows, []string{
				humanize.Ordinal(i + 1), c.Name, c.Position, orDash(c.Party), strconv.Itoa(c.VoteCount), share,
			})
		}
		table(a.out, rows)
	}
	return nil
}

// Audit prints the audit log newest first, optionally filtered by action.
func (a *App) Audit(_ context.Context, args []string) error {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}
	entries := a.store.FilterAuditLog(filter)
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Audit log is empty")
		return nil
	}

	rows := [][]string{{"WHEN", "ACTOR", "ACTION", "ENTITY", "DETAILS"}}
	for _, e := range entries {
		when := e.Timestamp
		if ts, err := e.Time(); err == nil {
			when = humanize.Time(ts)
		}
		rows = append(rows, []string{when, e.ActorID, e.Action, e.TargetEntity, e.Details})
	}
	table(a.out, rows)
	return nil
}

func (a *App) PurgeAudit(ctx context.Context, _ []string) error {
	answer, err := getSimpleText(a.reader, "Purge the whole audit log? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.store.PurgeAuditLog(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Audit log purged")
	return nil
}
