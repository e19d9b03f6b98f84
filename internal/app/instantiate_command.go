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

func (s *runtimeState) newInstantiateCommand() *cobra.Command {
	var (
		flags    extrinsicFlags
		codeHash string
		data     string
		salt     string
		value    string
	)
	cmd := &cobra.Command{
		Use:   "instantiate [contract-artifact]",
		Short: "Instantiate a contract from code or an uploaded code hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			opts, err := s.buildOpts(flags, file)
			if err != nil {
				return err
			}

			var (
				code       []byte
				parsedHash common.Hash
				sourceRow  out.Row
			)
			if codeHash != "" {
				parsedHash, err = extrinsics.ParseCodeHash(codeHash)
				if err != nil {
					return clierr.Wrap(clierr.CodeUsage, "parse --code-hash", err)
				}
				sourceRow = out.Row{Label: "Code Hash", Value: parsedHash.Hex()}
			} else {
				var path string
				path, code, err = loadArtifact(opts)
				if err != nil {
					return err
				}
				sourceRow = out.Row{Label: "File", Value: path}
			}

			input, err := decodeHexFlag("data", data)
			if err != nil {
				return err
			}
			saltBytes, err := decodeHexFlag("salt", salt)
			if err != nil {
				return err
			}
			endowment, err := parseValueFlag(value)
			if err != nil {
				return err
			}

			return s.runExtrinsic(txPlan{
				commandName: "instantiate",
				opts:        opts,
				details: []out.Row{
					sourceRow,
					{Label: "Value", Value: balance.Format(endowment, balance.NativeDecimals)},
				},
				dryRun: func(ctx context.Context, client chain.Client, origin common.Address) (*extrinsics.DryRunOutcome, error) {
					return client.DryRunInstantiate(ctx, chain.InstantiateRequest{
						Origin:              origin,
						Value:               endowment,
						StorageDepositLimit: opts.StorageDepositLimit(),
						Code:                code,
						CodeHash:            parsedHash,
						Data:                input,
						Salt:                saltBytes,
					})
				},
				submit: func(ctx context.Context, client chain.Client, kp *signer.Keypair) (common.Hash, error) {
					call := "instantiate"
					payload := map[string]any{
						"value":               endowment.String(),
						"data":                hexPayload(input),
						"salt":                hexPayload(saltBytes),
						"storageDepositLimit": bigPayload(opts.StorageDepositLimit()),
					}
					if len(code) > 0 {
						call = "instantiate_with_code"
						payload["code"] = hexPayload(code)
					} else {
						payload["codeHash"] = parsedHash.Hex()
					}
					return client.Submit(ctx, call, payload, kp)
				},
			})
		},
	}
	registerExtrinsicFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&codeHash, "code-hash", "", "Hash of an already uploaded contract code")
	cmd.Flags().StringVar(&data, "data", "", "Hex encoded constructor input data")
	cmd.Flags().StringVar(&salt, "salt", "", "Hex encoded salt for contract address derivation")
	cmd.Flags().StringVar(&value, "value", "", "Balance to transfer to the instantiated contract")
	return cmd
}
