package app

import (
	"fmt"

	"github.com/spf13/cobra"

	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/history"
)

func (s *runtimeState) newHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List extrinsics submitted from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(s.settings.HistoryPath, s.settings.HistoryLockPath)
			if err != nil {
				return clierr.Wrap(clierr.CodeInternal, "open history store", err)
			}
			defer func() { _ = store.Close() }()

			records, err := store.List(limit)
			if err != nil {
				return clierr.Wrap(clierr.CodeInternal, "list submissions", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(s.runner.stdout, "No submissions recorded.")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(s.runner.stdout, "%s  %-12s  %s  %s\n", rec.SubmittedAt, rec.Command, rec.ExtrinsicHash, rec.NodeURL)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of submissions to list")
	return cmd
}
