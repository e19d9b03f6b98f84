package app

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/gustavo/contract-cli/internal/balance"
	"github.com/gustavo/contract-cli/internal/chain"
	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/extrinsics"
	"github.com/gustavo/contract-cli/internal/out"
	"github.com/gustavo/contract-cli/internal/signer"
)

func (s *runtimeState) newCallCommand() *cobra.Command {
	var (
		flags    extrinsicFlags
		contract string
		data     string
		value    string
	)
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Call a message on a deployed contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if contract == "" {
				return clierr.New(clierr.CodeUsage, "--contract is required")
			}
			opts, err := s.buildOpts(flags, "")
			if err != nil {
				return err
			}
			input, err := decodeHexFlag("data", data)
			if err != nil {
				return err
			}
			transfer, err := parseValueFlag(value)
			if err != nil {
				return err
			}

			return s.runExtrinsic(txPlan{
				commandName: "call",
				opts:        opts,
				details: []out.Row{
					{Label: "Contract", Value: contract},
					{Label: "Value", Value: balance.Format(transfer, balance.NativeDecimals)},
				},
				dryRun: func(ctx context.Context, client chain.Client, origin common.Address) (*extrinsics.DryRunOutcome, error) {
					return client.DryRunCall(ctx, chain.CallRequest{
						Origin:              origin,
						Contract:            contract,
						Value:               transfer,
						StorageDepositLimit: opts.StorageDepositLimit(),
						Data:                input,
					})
				},
				submit: func(ctx context.Context, client chain.Client, kp *signer.Keypair) (common.Hash, error) {
					return client.Submit(ctx, "call", map[string]any{
						"dest":                contract,
						"value":               transfer.String(),
						"data":                hexPayload(input),
						"storageDepositLimit": bigPayload(opts.StorageDepositLimit()),
					}, kp)
				},
			})
		},
	}
	registerExtrinsicFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&contract, "contract", "", "Address of the contract to call")
	cmd.Flags().StringVar(&data, "data", "", "Hex encoded message input data")
	cmd.Flags().StringVar(&value, "value", "", "Balance to transfer with the call")
	return cmd
}
