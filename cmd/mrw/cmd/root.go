package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/euler/report"
	"github.com/msto63/mRW/internal/euler/service"
	"github.com/msto63/mRW/internal/euler/store"
	"github.com/msto63/mRW/pkg/core/config"
	"github.com/msto63/mRW/pkg/core/logging"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// app holds the state shared by all commands of one invocation
type app struct {
	cfgFile string
	verbose bool
	output  string

	config *config.Config
	now    func() time.Time
}

// Execute runs the CLI
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Fehler: %v\n", err)
		return err
	}
	return nil
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mrw",
		Short: "meinRECHENWERK - Rechenplattform",
		Long: `meinRECHENWERK ist eine Sammlung von Alltagsrechnern für
Datum und Zeit, Gesundheit, Finanzen, Zahlen und Bildung.

Jeder Rechner ist als eigener Befehl verfügbar, z.B.:
  mrw age --birth 1990-05-17
  mrw discount --price 129.90 --percent 25
  mrw calc ratio a=16 b=9

Weitere Oberflächen:
  serve    - HTTP/WebSocket API
  tui      - Interaktive Terminal-Oberfläche`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose Output")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", OutputText, "Ausgabeformat: text, json oder yaml")

	addCalculatorCommands(root, a)
	root.AddCommand(
		newCalcCmd(a),
		newCalculatorsCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
		newTUICmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the configuration and configures logging
func (a *app) setup(cmd *cobra.Command, args []string) error {
	switch a.output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unbekanntes Ausgabeformat %q (text, json, yaml)", a.output)
	}

	var err error
	if a.cfgFile != "" {
		a.config, err = config.Load(a.cfgFile)
	} else {
		a.config, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("Config nicht geladen: %w", err)
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	logging.Configure(logging.LoggerConfig{
		Level:  level,
		Format: a.config.General.LogFormat,
		Output: os.Stderr,
	})
	return nil
}

// newService builds the calculator service. With history the journal is
// opened as configured, the caller must Close the service.
func (a *app) newService(history bool) (*service.Service, error) {
	cfg := service.DefaultConfig()
	cfg.Calculators = a.config.Calculators
	if a.now != nil {
		cfg.Now = a.now
	}

	if history && a.config.History.Enabled {
		journal, err := store.NewSQLiteJournal(store.Config{Path: a.config.HistoryPath()})
		if err != nil {
			return nil, err
		}
		cfg.Journal = journal
	}
	return service.NewService(cfg)
}

func (a *app) reportOptions() report.Options {
	return report.Options{Currency: mathx.LookupCurrency(a.config.Calculators.Currency)}
}

// printOutcome writes an outcome in the selected output format
func (a *app) printOutcome(w io.Writer, out *service.Outcome) error {
	if a.output != OutputText {
		return a.print(w, out)
	}
	text, err := report.Text(out, a.reportOptions())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}
