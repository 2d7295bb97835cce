package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/luvora/luvora/internal/pool"
	"github.com/luvora/luvora/internal/seo"
	"github.com/luvora/luvora/internal/spark"
	"github.com/luvora/luvora/internal/tier"
)

// --- validate ---

var validateCmd = &cobra.Command{
	Use:   "validate <pool.json>",
	Short: "Parse and validate a pool file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pool.Load(args[0])
		if err != nil {
			return err
		}

		counts := p.Counts()
		names := make([]string, 0, len(counts))
		for n := range counts {
			names = append(names, n)
		}
		sort.Strings(names)

		fmt.Printf("pool version %d, %d nicknames\n", p.Version, len(p.Nicknames))
		for _, n := range names {
			fmt.Printf("  %-24s %5d\n", n, counts[n])
		}
		return nil
	},
}

// --- stats ---

var statsCmd = &cobra.Command{
	Use:   "stats <pool.json>",
	Short: "Sample the selector and report the observed rarity mix",
	Long: `Sample the selector and report the observed rarity mix.

The content team targets roughly 50/30/15/5 for
common/rare/epic/legendary.  This command replays the live selector over
a run of consecutive dates (both slots) so drift in the pool shows up
before users notice.

Examples:
  sparkctl stats data/pool.json
  sparkctl stats data/pool.json --days 5000 --target feminine`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		targetStr, _ := cmd.Flags().GetString("target")

		p, err := pool.Load(args[0])
		if err != nil {
			return err
		}
		target := pool.Target(targetStr)

		counts := map[pool.Rarity]int{}
		start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < days; i++ {
			daily, err := spark.Select(p, start.AddDate(0, 0, i), target, tier.Legend)
			if err != nil {
				return err
			}
			counts[daily.Morning.Rarity]++
			counts[daily.Night.Rarity]++
		}

		total := days * 2
		fmt.Printf("%d draws over %d dates (target=%s)\n", total, days, target)
		for _, r := range []pool.Rarity{
			pool.RarityCommon, pool.RarityRare, pool.RarityEpic, pool.RarityLegendary,
		} {
			pct := 100 * float64(counts[r]) / float64(total)
			fmt.Printf("  %-10s %6d  %5.1f%%\n", r, counts[r], pct)
		}
		return nil
	},
}

// --- seogen ---

var seogenCmd = &cobra.Command{
	Use:   "seogen <pool.json>",
	Short: "Materialize static category pages for one date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		dateStr, _ := cmd.Flags().GetString("date")

		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("bad --date, want YYYY-MM-DD: %w", err)
		}

		p, err := pool.Load(args[0])
		if err != nil {
			return err
		}
		pages, err := seo.MaterializeAll(p, day)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		for _, page := range pages {
			raw, err := json.MarshalIndent(page, "", "  ")
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, page.Slug+".json")
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 2000, "number of consecutive dates to sample")
	statsCmd.Flags().String("target", "neutral", "recipient target to sample")

	seogenCmd.Flags().String("out", "public/seo", "output directory")
	seogenCmd.Flags().String("date", time.Now().UTC().Format("2006-01-02"),
		"date to materialize (YYYY-MM-DD)")
}
