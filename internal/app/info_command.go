package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gustavo/contract-cli/internal/balance"
	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/extrinsics"
	"github.com/gustavo/contract-cli/internal/out"
)

func (s *runtimeState) newInfoCommand() *cobra.Command {
	var (
		contract string
		url      string
	)
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Display information about a deployed contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if contract == "" {
				return clierr.New(clierr.CodeUsage, "--contract is required")
			}
			nodeURL := url
			if nodeURL == "" {
				nodeURL = s.settings.DefaultNodeURL
			}
			if nodeURL == "" {
				nodeURL = extrinsics.DefaultNodeURL
			}

			ctx, cancel := context.WithTimeout(context.Background(), s.settings.Timeout)
			defer cancel()
			client, err := s.dialNode(ctx, nodeURL)
			if err != nil {
				return clierr.Wrap(clierr.CodeRPC, "connect node", err)
			}
			defer client.Close()

			info, err := client.ContractInfo(ctx, contract)
			if err != nil {
				return clierr.Wrap(clierr.CodeRPC, "fetch contract info", err)
			}

			out.WriteRows(s.runner.stdout, out.MaxKeyColWidth, []out.Row{
				{Label: "TrieId", Value: info.TrieID},
				{Label: "Code Hash", Value: info.CodeHash.Hex()},
				{Label: "Storage Items", Value: fmt.Sprintf("%d", info.StorageItems)},
				{Label: "Storage Items Deposit", Value: balance.Format(info.StorageItemsDeposit, balance.NativeDecimals)},
				{Label: "Storage Total Deposit", Value: balance.Format(info.StorageTotalDeposit, balance.NativeDecimals)},
				{Label: "Source Language", Value: info.SourceLanguage},
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&contract, "contract", "", "Address of the contract to inspect")
	cmd.Flags().StringVar(&url, "url", "", fmt.Sprintf("Websocket url of the node (default %s)", extrinsics.DefaultNodeURL))
	return cmd
}
