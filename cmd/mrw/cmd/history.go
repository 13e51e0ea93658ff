package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/internal/euler/service"
	"github.com/msto63/mRW/internal/euler/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		calculator string
		status     string
		limit      int
		offset     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Zeigt den Berechnungsverlauf",
		Long: `Zeigt die zuletzt ausgeführten Berechnungen aus dem Verlauf.

Beispiele:
  mrw history
  mrw history --calculator age --limit 5
  mrw history --status declined
  mrw history stats
  mrw history prune`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.historyService()
			if err != nil {
				return err
			}
			defer svc.Close()

			entries, err := svc.History(context.Background(), store.Filter{
				Calculator: calculator,
				Status:     store.Status(status),
				Limit:      limit,
				Offset:     offset,
			})
			if err != nil {
				return err
			}

			if a.output != OutputText {
				if entries == nil {
					entries = []*store.Entry{}
				}
				return a.print(cmd.OutOrStdout(), entries)
			}

			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(w, "Keine Einträge im Verlauf")
				return nil
			}
			for _, e := range entries {
				marker := "[+]"
				if e.Status == store.StatusDeclined {
					marker = "[-]"
				}
				fmt.Fprintf(w, "%s %s  %-20s %s\n",
					marker, e.Timestamp.Local().Format("02.01.2006 15:04:05"), e.Calculator, formatInputs(e.Inputs))
				if e.ErrorCode != "" {
					fmt.Fprintf(w, "    %s\n", e.ErrorCode)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&calculator, "calculator", "", "Nur Einträge dieses Rechners")
	cmd.Flags().StringVar(&status, "status", "", "Nur Einträge mit Status ok oder declined")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximale Anzahl Einträge")
	cmd.Flags().IntVar(&offset, "offset", 0, "Einträge überspringen")

	cmd.AddCommand(newHistoryStatsCmd(a), newHistoryPruneCmd(a))
	return cmd
}

func newHistoryStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Zeigt Statistiken zum Verlauf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.historyService()
			if err != nil {
				return err
			}
			defer svc.Close()

			stats, err := svc.HistoryStats(context.Background())
			if err != nil {
				return err
			}
			if a.output != OutputText {
				return a.print(cmd.OutOrStdout(), stats)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Berechnungen gesamt: %d\n", stats.Total)
			for _, name := range sortedKeys(stats.ByStatus) {
				fmt.Fprintf(w, "  %-20s %d\n", name, stats.ByStatus[name])
			}
			fmt.Fprintln(w, "\nNach Rechner:")
			for _, name := range sortedKeys(stats.ByCalculator) {
				fmt.Fprintf(w, "  %-20s %d\n", name, stats.ByCalculator[name])
			}
			return nil
		},
	}
}

func newHistoryPruneCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Löscht alte Einträge aus dem Verlauf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.historyService()
			if err != nil {
				return err
			}
			defer svc.Close()

			retention := a.config.Retention()
			if cmd.Flags().Changed("days") {
				retention = daysDuration(days)
			}
			if retention <= 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Keine Aufbewahrungsdauer konfiguriert, nichts zu tun")
				return nil
			}

			n, err := svc.Prune(context.Background(), retention)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d Einträge gelöscht\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Einträge älter als diese Anzahl Tage löschen (default: retention_days)")
	return cmd
}

// historyService opens the service with its journal, failing when the
// history is disabled
func (a *app) historyService() (*service.Service, error) {
	if !a.config.History.Enabled {
		return nil, fmt.Errorf("der Verlauf ist deaktiviert ([history] enabled = false)")
	}
	return a.newService(true)
}

func daysDuration(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}

func formatInputs(inputs map[string]string) string {
	keys := sortedKeys(inputs)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + inputs[k]
	}
	return strings.Join(parts, " ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
