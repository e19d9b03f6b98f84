package app

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gustavo/contract-cli/internal/balance"
	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/extrinsics"
)

// extrinsicFlags are the arguments shared by every command that creates
// and sends an extrinsic.
type extrinsicFlags struct {
	manifestPath        string
	url                 string
	suri                string
	storageDepositLimit string
	verbose             bool
	quiet               bool
	execute             bool
	skipDryRun          bool
	skipConfirm         bool
}

func registerExtrinsicFlags(fs *pflag.FlagSet, f *extrinsicFlags) {
	fs.StringVar(&f.manifestPath, "manifest-path", "", "Path to the manifest of the contract")
	fs.StringVar(&f.url, "url", "", fmt.Sprintf("Websocket url of the node (default %s)", extrinsics.DefaultNodeURL))
	fs.StringVarP(&f.suri, "suri", "s", "", "Secret key URI of the signing account, e.g. //Alice or //Alice///PASSWORD")
	fs.BoolVarP(&f.execute, "execute", "x", false, "Submit the extrinsic for on-chain execution")
	fs.StringVar(&f.storageDepositLimit, "storage-deposit-limit", "", "Maximum balance chargeable from the caller for storage")
	fs.BoolVar(&f.skipDryRun, "skip-dry-run", false, "Do not dry-run the transaction via RPC before submitting")
	fs.BoolVarP(&f.skipConfirm, "skip-confirm", "y", false, "Do not ask for confirmation before submitting")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Print extra status output")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress status output")
}

// buildOpts validates per-command flags against the resolved settings.
// Flags win over the config/env defaults.
func (s *runtimeState) buildOpts(f extrinsicFlags, file string) (*extrinsics.Opts, error) {
	url := f.url
	if strings.TrimSpace(url) == "" {
		url = s.settings.DefaultNodeURL
	}
	suri := f.suri
	if strings.TrimSpace(suri) == "" {
		suri = s.settings.DefaultSuri
	}

	opts, err := extrinsics.NewOpts(extrinsics.RawOpts{
		File:                file,
		ManifestPath:        f.manifestPath,
		URL:                 url,
		Suri:                suri,
		Verbose:             f.verbose,
		Quiet:               f.quiet,
		Execute:             f.execute,
		StorageDepositLimit: f.storageDepositLimit,
		SkipDryRun:          f.skipDryRun,
		SkipConfirm:         f.skipConfirm,
	})
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, "validate extrinsic options", err)
	}
	return opts, nil
}

// parseValueFlag parses an optional balance transfer amount; empty
// means zero.
func parseValueFlag(value string) (*big.Int, error) {
	if strings.TrimSpace(value) == "" {
		return big.NewInt(0), nil
	}
	amount, err := balance.Parse(value, balance.NativeDecimals)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, "parse --value", err)
	}
	return amount, nil
}

// decodeHexFlag decodes a 0x-prefixed or bare hex flag value. An empty
// value is allowed and decodes to nil.
func decodeHexFlag(name, value string) ([]byte, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(value), "0x")
	if clean == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeUsage, fmt.Sprintf("decode --%s", name), err)
	}
	return raw, nil
}
