// Command vimy-journal prints the most recent decisions recorded by a
// vimy-tactics run. Build with -tags sqlite to read a sqlite journal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/nstehr/vimy/vimy-tactics/journal"
)

func main() {
	dbPath := flag.String("db", "vimy-tactics.db", "sqlite journal path")
	limit := flag.Int("n", 20, "number of decisions to show (0 for all)")
	player := flag.String("player", "", "only show decisions for this player")
	flag.Parse()

	if err := run(context.Background(), *dbPath, *limit, *player); err != nil {
		slog.Error("vimy-journal failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath string, limit int, player string) error {
	store, err := journal.NewStore("sqlite", dbPath, 0)
	if err != nil {
		return err
	}
	defer journal.CloseIfSupported(store)
	if err := store.Init(ctx); err != nil {
		return err
	}

	decisions, err := store.ListDecisions(ctx, 0)
	if err != nil {
		return err
	}
	shown := filter(decisions, player, limit)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tPLAYER\tTICK\tKIND\tUNIT\tTARGET\tSCORE\tCOST\tCANDIDATES")
	for _, d := range shown {
		unit := "-"
		if d.Kind == journal.KindObjective {
			unit = fmt.Sprint(d.AgentID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t(%d,%d)\t%s\t%s\t%d\n",
			humanize.Time(d.CreatedAt),
			d.Player,
			humanize.Comma(int64(d.Tick)),
			d.Kind,
			unit,
			d.Target.X, d.Target.Y,
			humanize.FtoaWithDigits(d.Score, 2),
			humanize.FtoaWithDigits(d.PathCost, 2),
			d.Candidates,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%s of %s decisions\n", humanize.Comma(int64(len(shown))), humanize.Comma(int64(len(decisions))))
	return nil
}

// filter keeps decisions for player (all when empty), newest first, up to
// limit (all when limit <= 0).
func filter(decisions []journal.Decision, player string, limit int) []journal.Decision {
	var out []journal.Decision
	for _, d := range decisions {
		if player != "" && d.Player != player {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
