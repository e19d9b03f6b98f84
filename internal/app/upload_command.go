package app

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/gustavo/contract-cli/internal/chain"
	"github.com/gustavo/contract-cli/internal/extrinsics"
	"github.com/gustavo/contract-cli/internal/out"
	"github.com/gustavo/contract-cli/internal/signer"
)

func (s *runtimeState) newUploadCommand() *cobra.Command {
	var flags extrinsicFlags
	cmd := &cobra.Command{
		Use:   "upload [contract-artifact]",
		Short: "Upload contract code to the chain without instantiating",
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
			path, code, err := loadArtifact(opts)
			if err != nil {
				return err
			}

			return s.runExtrinsic(txPlan{
				commandName: "upload",
				opts:        opts,
				details: []out.Row{
					{Label: "File", Value: path},
				},
				dryRun: func(ctx context.Context, client chain.Client, origin common.Address) (*extrinsics.DryRunOutcome, error) {
					return client.DryRunUpload(ctx, chain.UploadRequest{
						Origin:              origin,
						Code:                code,
						StorageDepositLimit: opts.StorageDepositLimit(),
					})
				},
				submit: func(ctx context.Context, client chain.Client, kp *signer.Keypair) (common.Hash, error) {
					return client.Submit(ctx, "upload_code", map[string]any{
						"code":                hexPayload(code),
						"storageDepositLimit": bigPayload(opts.StorageDepositLimit()),
					}, kp)
				},
			})
		},
	}
	registerExtrinsicFlags(cmd.Flags(), &flags)
	return cmd
}
