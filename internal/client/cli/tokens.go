package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/ballotkeeper/internal/client/models"
)

// ListTokens prints a summary of every batch, or the codes of one batch.
func (a *App) ListTokens(_ context.Context, args []string) error {
	batches := a.store.TokenBatches()

	if len(args) > 0 {
		for _, b := range batches {
			if b.BatchID != args[0] {
				continue
			}
			rows := [][]string{{"ID", "TOKEN", "USED"}}
			for _, t := range b.Tokens {
				rows = append(rows, []string{t.ID, t.Token, yesNo(t.IsUsed)})
			}
			table(a.out, rows)
			return nil
		}
		fmt.Fprintln(a.out, "No token batch with ID", args[0])
		return nil
	}

	if len(batches) == 0 {
		fmt.Fprintln(a.out, "No token batches")
		return nil
	}
	rows := [][]string{{"BATCH", "ELECTIONS", "TOKENS", "UNUSED"}}
	for _, b := range batches {
		rows = append(rows, []string{
			b.BatchID, electionNames(b.Elections), strconv.Itoa(len(b.Tokens)), strconv.Itoa(b.Unused()),
		})
	}
	table(a.out, rows)
	return nil
}

func electionNames(refs []models.ElectionRef) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, orDash(r.Name))
	}
	return orDash(strings.Join(names, ", "))
}

func (a *App) GenerateTokens(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("gentokens <count> <electionId>...")
	}
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid count %q", args[0])
	}

	b, err := a.store.GenerateTokens(ctx, args[1:], count)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Generated %d tokens in batch %s for %s\n", len(b.Tokens), b.BatchID, electionNames(b.Elections))
	return nil
}

func (a *App) DeleteTokenBatch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delbatch <batchId>")
	}
	if err := a.store.DeleteTokenBatch(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Done")
	return nil
}

func (a *App) DeleteToken(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("deltoken <tokenId>")
	}
	if err := a.store.DeleteToken(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Done")
	return nil
}
