package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/internal/euler/service"
	"github.com/msto63/mRW/pkg/core/config"
)

// addCalculatorCommands adds one subcommand per registered calculator,
// grouped by category
func addCalculatorCommands(root *cobra.Command, a *app) {
	registry := service.Builtin(config.Default().Calculators)

	seen := map[string]bool{}
	for _, calc := range registry.List() {
		if !seen[calc.Category] {
			root.AddGroup(&cobra.Group{ID: calc.Category, Title: calc.Category + ":"})
			seen[calc.Category] = true
		}
		root.AddCommand(newCalculatorCmd(a, calc))
	}
}

// newCalculatorCmd builds the command of one calculator. Scalar fields
// become flags, groups become repeatable key=value row flags.
func newCalculatorCmd(a *app, calc *service.Calculator) *cobra.Command {
	cmd := &cobra.Command{
		Use:     calc.Name,
		Short:   calc.Title,
		Long:    calc.Title + "\n\n" + calc.Description,
		GroupID: calc.Category,
		Args:    cobra.NoArgs,
	}

	values := make(map[string]*string, len(calc.Fields))
	for _, f := range calc.Fields {
		values[f.Name] = cmd.Flags().String(flagName(f.Name), "", fieldUsage(f))
	}

	rows := make(map[string]*[]string, len(calc.Groups))
	for _, g := range calc.Groups {
		rows[g.Name] = cmd.Flags().StringArray(flagName(g.Name), nil, groupUsage(g))
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		fields := make(map[string]string)
		for _, f := range calc.Fields {
			if cmd.Flags().Changed(flagName(f.Name)) {
				fields[f.Name] = *values[f.Name]
			}
		}
		for _, g := range calc.Groups {
			if err := rowFields(g, *rows[g.Name], fields); err != nil {
				return err
			}
		}
		return a.calculate(cmd, calc.Name, fields)
	}
	return cmd
}

// newCalcCmd runs any calculator with key=value arguments
func newCalcCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <rechner> [feld=wert ...]",
		Short: "Führt einen Rechner mit Feldern als key=value aus",
		Long: `Führt einen Rechner über seinen Namen aus.

Listenfelder werden mit Index angegeben:
  mrw calc gpa course.0.credits=3 course.0.grade=A course.1.credits=4 course.1.grade=B
  mrw calc average number.0=4 number.1=8 number.2=15`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			return a.calculate(cmd, args[0], fields)
		},
	}
}

// calculate runs one calculation and prints the outcome
func (a *app) calculate(cmd *cobra.Command, name string, fields map[string]string) error {
	svc, err := a.newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	out, err := svc.Calculate(context.Background(), name, fields)
	if err != nil {
		return err
	}
	return a.printOutcome(cmd.OutOrStdout(), out)
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func fieldUsage(f service.Field) string {
	usage := f.Label
	if f.Help != "" {
		usage += " (" + f.Help + ")"
	}
	if f.Required {
		usage += " [Pflichtfeld]"
	}
	if f.Default != "" {
		usage += " (Standard: " + f.Default + ")"
	}
	return usage
}

func groupUsage(g service.Group) string {
	if len(g.Fields) == 1 && g.Fields[0].Name == "" {
		return g.Label + ", einmal pro Wert angeben"
	}
	names := make([]string, len(g.Fields))
	for i, f := range g.Fields {
		names[i] = f.Name
	}
	return g.Label + " als " + strings.Join(names, "=..,") + "=.., einmal pro Zeile"
}

// rowFields converts repeated row flags into indexed form keys
func rowFields(g service.Group, rows []string, fields map[string]string) error {
	for i, row := range rows {
		if len(g.Fields) == 1 && g.Fields[0].Name == "" {
			fields[g.Fields[0].Key(g.Name, i)] = row
			continue
		}
		for _, part := range strings.Split(row, ",") {
			key, value, ok := strings.Cut(part, "=")
			if !ok {
				return fmt.Errorf("--%s %q: erwartet key=value", flagName(g.Name), row)
			}
			field, found := groupField(g, strings.TrimSpace(key))
			if !found {
				return fmt.Errorf("--%s: unbekanntes Feld %q", flagName(g.Name), key)
			}
			fields[field.Key(g.Name, i)] = strings.TrimSpace(value)
		}
	}
	return nil
}

func groupField(g service.Group, name string) (service.Field, bool) {
	for _, f := range g.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return service.Field{}, false
}

// parseAssignments parses key=value arguments
func parseAssignments(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("ungültiges Argument %q, erwartet feld=wert", arg)
		}
		fields[strings.TrimSpace(key)] = value
	}
	return fields, nil
}

// newCalculatorsCmd lists the registered calculators
func newCalculatorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "calculators",
		Aliases: []string{"list"},
		Short:   "Listet alle Rechner auf",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService(false)
			if err != nil {
				return err
			}
			calcs := svc.Calculators()

			if a.output != OutputText {
				return a.print(cmd.OutOrStdout(), calcs)
			}

			w := cmd.OutOrStdout()
			byCategory := map[string][]*service.Calculator{}
			var order []string
			for _, c := range calcs {
				if _, ok := byCategory[c.Category]; !ok {
					order = append(order, c.Category)
				}
				byCategory[c.Category] = append(byCategory[c.Category], c)
			}
			for _, category := range order {
				fmt.Fprintf(w, "%s:\n", category)
				list := byCategory[category]
				sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
				for _, c := range list {
					fmt.Fprintf(w, "  %-22s %s\n", c.Name, c.Title)
				}
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%d Rechner\n", len(calcs))
			return nil
		},
	}
}
