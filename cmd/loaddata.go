package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Leonard1379/MyDjangoProject/internal/fixtures"
)

var loaddataCmd = &cobra.Command{
	Use:   "loaddata FILE",
	Short: "Load questions and choices from a YAML fixture file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fixtures.Read(args[0])
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.Migrate(cmd.Context()); err != nil {
			return err
		}

		n, err := f.Apply(cmd.Context(), a.Polls)
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %d question(s) from %s.\n", n, args[0])
		return nil
	},
}
