package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mRW/pkg/core/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Zeigt die Version an",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if a.output != OutputText {
				return a.print(cmd.OutOrStdout(), info)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "meinRECHENWERK v%s\n", info.Version)
			fmt.Fprintf(w, "  Git Commit: %s\n", info.GitCommit)
			fmt.Fprintf(w, "  Build Date: %s\n", info.BuildDate)
			fmt.Fprintf(w, "  Go Version: %s\n", info.GoVersion)
			fmt.Fprintf(w, "  OS/Arch:    %s\n", info.Platform)
			return nil
		},
	}
}
