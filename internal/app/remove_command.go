package app

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/gustavo/contract-cli/internal/chain"
	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/extrinsics"
	"github.com/gustavo/contract-cli/internal/out"
	"github.com/gustavo/contract-cli/internal/signer"
)

func (s *runtimeState) newRemoveCommand() *cobra.Command {
	var (
		flags    extrinsicFlags
		codeHash string
	)
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove uploaded contract code from the chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if codeHash == "" {
				return clierr.New(clierr.CodeUsage, "--code-hash is required")
			}
			opts, err := s.buildOpts(flags, "")
			if err != nil {
				return err
			}
			parsedHash, err := extrinsics.ParseCodeHash(codeHash)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "parse --code-hash", err)
			}

			return s.runExtrinsic(txPlan{
				commandName: "remove",
				opts:        opts,
				details: []out.Row{
					{Label: "Code Hash", Value: parsedHash.Hex()},
				},
				submit: func(ctx context.Context, client chain.Client, kp *signer.Keypair) (common.Hash, error) {
					return client.Submit(ctx, "remove_code", map[string]any{
						"codeHash": parsedHash.Hex(),
					}, kp)
				},
			})
		},
	}
	registerExtrinsicFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&codeHash, "code-hash", "", "Hash of the code to remove")
	return cmd
}
