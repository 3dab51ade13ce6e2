package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb. args are the whitespace-separated words after it.
type command struct {
	name    string
	aliases []string
	usage   string
	run     func(ctx context.Context, args []string) error
}

// runREPL reads lines from scanner, dispatches the first word to the
// matching command and prints any error it returns. It exits on EOF, on
// "exit"/"quit" or when ctx is done.
func runREPL(ctx context.Context, cmds []command, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	byName := make(map[string]command, len(cmds))
	for _, c := range cmds {
		byName[c.name] = c
		for _, alias := range c.aliases {
			byName[alias] = c
		}
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "bk %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		case "help":
			printHelp(out, cmds)
			continue
		}

		c, ok := byName[name]
		if !ok {
			fmt.Fprintln(out, "Unknown command:", name)
			continue
		}
		if err := c.run(ctx, args); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

func printHelp(out io.Writer, cmds []command) {
	fmt.Fprintln(out, "Available commands:")
	for _, c := range cmds {
		fmt.Fprintf(out, "  %-34s\n", c.usage)
	}
	fmt.Fprintln(out, "  help | exit")
}

// commands returns the console's command table in help order.
func (a *App) commands() []command {
	return []command{
		{name: "login", usage: "login", run: a.Login},
		{name: "token", usage: "token                (paste a bearer token)", run: a.SetToken},
		{name: "logout", usage: "logout", run: a.Logout},
		{name: "reload", aliases: []string{"sync"}, usage: "reload", run: a.Reload},
		{name: "stats", usage: "stats", run: a.Stats},
		{name: "elections", aliases: []string{"el"}, usage: "elections", run: a.ListElections},
		{name: "addelection", usage: "addelection", run: a.AddElection},
		{name: "setstatus", usage: "setstatus <electionId> <status>", run: a.SetElectionStatus},
		{name: "candidates", aliases: []string{"ca"}, usage: "candidates [electionId]", run: a.ListCandidates},
		{name: "addcandidate", usage: "addcandidate", run: a.AddCandidate},
		{name: "delcandidate", usage: "delcandidate <candidateId>", run: a.DeleteCandidate},
		{name: "voters", usage: "voters [electionId]", run: a.ListVoters},
		{name: "addvoter", usage: "addvoter", run: a.AddVoter},
		{name: "togglevoter", usage: "togglevoter <voterId>", run: a.ToggleVoter},
		{name: "tokens", usage: "tokens [batchId]", run: a.ListTokens},
		{name: "gentokens", usage: "gentokens <count> <electionId>...", run: a.GenerateTokens},
		{name: "delbatch", usage: "delbatch <batchId>", run: a.DeleteTokenBatch},
		{name: "deltoken", usage: "deltoken <tokenId>", run: a.DeleteToken},
		{name: "results", usage: "results", run: a.Results},
		{name: "audit", usage: "audit [action filter]", run: a.Audit},
		{name: "purgeaudit", usage: "purgeaudit", run: a.PurgeAudit},
	}
}
