package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/mRW/internal/tui/calculator"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Startet die interaktive TUI",
		Long: `Startet die Terminal User Interface (TUI) von meinRECHENWERK.

Navigation:
  Enter           - Rechner öffnen / berechnen
  Tab/Shift+Tab   - Zwischen Feldern wechseln
  Ctrl+N          - Zeile zu einer Liste hinzufügen
  Ctrl+D          - Fokussierte Zeile entfernen
  Esc             - Zurück zur Rechnerliste
  Ctrl+C          - Beenden`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService(true)
			if err != nil {
				return err
			}
			defer svc.Close()

			return calculator.Run(svc, a.reportOptions())
		},
	}
}
