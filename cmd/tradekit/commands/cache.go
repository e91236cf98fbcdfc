package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wonny/tradekit/pkg/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached entry counts per namespace",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()

		if !d.cacheConn.Enabled() {
			PrintInfo("Cache is disabled (set REDIS_ENABLED=true)")
			return nil
		}

		stats, err := cache.NewCache(d.cacheConn, "tradekit").Stats(context.Background())
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			PrintInfo("Cache is empty")
			return nil
		}

		namespaces := make([]string, 0, len(stats))
		for ns := range stats {
			namespaces = append(namespaces, ns)
		}
		sort.Strings(namespaces)

		PrintHeader("Cache Stats")
		for _, ns := range namespaces {
			fmt.Printf("  %-16s %d entries\n", ns, stats[ns])
		}
		fmt.Println()
		return nil
	},
}

var cacheClearNamespace string

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := initDeps()
		if err != nil {
			return err
		}
		defer d.close()

		if !d.cacheConn.Enabled() {
			PrintInfo("Cache is disabled, nothing to clear")
			return nil
		}

		removed, err := cache.NewCache(d.cacheConn, "tradekit").Clear(context.Background(), cacheClearNamespace)
		if err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Removed %d cached entries", removed))
		return nil
	},
}

func init() {
	cacheClearCmd.Flags().StringVar(&cacheClearNamespace, "namespace", "", "clear only one namespace (yahoo_quote, yahoo_history, finviz)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
