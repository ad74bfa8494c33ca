package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

func (a *app) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent activations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.mgr.History(commandContext(cmd), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activations recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "Activated\tAccount\tConfig")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.ActivatedAt.Local().Format(timeLayout), e.Account, e.Config)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of activations to show (0 for all)")
	return cmd
}

func (a *app) currentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the last activated account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok, err := a.mgr.Current(commandContext(cmd))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No account activated yet.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (config %s, activated %s ago)\n",
				e.Account, e.Config, time.Since(e.ActivatedAt).Round(time.Second))
			return nil
		},
	}
}
