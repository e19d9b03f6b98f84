package app

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/gustavo/contract-cli/internal/chain"
	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/extrinsics"
	"github.com/gustavo/contract-cli/internal/history"
	"github.com/gustavo/contract-cli/internal/out"
	"github.com/gustavo/contract-cli/internal/prompt"
	"github.com/gustavo/contract-cli/internal/signer"
)

// txPlan is one command's contribution to the shared pre-submission
// workflow: what to simulate, what to submit, and what to show the user
// at the confirmation checkpoint.
type txPlan struct {
	commandName string
	opts        *extrinsics.Opts
	details     []out.Row
	dryRun      func(ctx context.Context, client chain.Client, origin common.Address) (*extrinsics.DryRunOutcome, error)
	submit      func(ctx context.Context, client chain.Client, kp *signer.Keypair) (common.Hash, error)
}

// runExtrinsic drives the workflow: resolve signer, dry-run, report,
// confirm, submit. Errors are returned to the caller untouched beyond
// exit-code classification; nothing is retried here.
func (s *runtimeState) runExtrinsic(plan txPlan) error {
	opts := plan.opts
	kp, err := signer.FromURI(opts.Suri())
	if err != nil {
		return clierr.Wrap(clierr.CodeSigner, "resolve signer", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.settings.Timeout)
	defer cancel()

	client, err := s.dialNode(ctx, opts.URL().String())
	if err != nil {
		return clierr.Wrap(clierr.CodeRPC, "connect node", err)
	}
	defer client.Close()

	var outcome *extrinsics.DryRunOutcome
	if plan.dryRun != nil && !opts.SkipDryRun() {
		if !opts.Verbosity().IsQuiet() {
			out.DryRunningStatus(s.runner.stdout, plan.commandName)
		}
		outcome, err = plan.dryRun(ctx, client, kp.Address())
		if err != nil {
			return clierr.Wrap(clierr.CodeDryRun, fmt.Sprintf("dry-run %s", plan.commandName), err)
		}
		if !opts.Verbosity().IsQuiet() {
			out.GasRequiredSuccess(s.runner.stdout, outcome.GasRequired.String())
		}
	}

	if !opts.Execute() {
		if outcome != nil {
			rows, err := out.RenderDryRun(outcome)
			if err != nil {
				return clierr.Wrap(clierr.CodeDryRun, "render dry-run result", err)
			}
			out.WriteRows(s.runner.stdout, out.MaxKeyColWidth, rows)
		}
		out.NotExecutedNotice(s.runner.stdout, plan.commandName)
		return nil
	}

	if outcome != nil && opts.Verbosity().IsVerbose() {
		rows, err := out.RenderDryRunDebug(outcome)
		if err != nil {
			return clierr.Wrap(clierr.CodeDryRun, "render dry-run debug output", err)
		}
		out.WriteRows(s.runner.stdout, out.MaxKeyColWidth, rows)
	}

	if !opts.SkipConfirm() {
		if err := s.confirm(plan, kp); err != nil {
			return err
		}
	}

	hash, err := plan.submit(ctx, client, kp)
	if err != nil {
		return clierr.Wrap(clierr.CodeRPC, fmt.Sprintf("submit %s", plan.commandName), err)
	}
	out.NameValue(s.runner.stdout, out.MaxKeyColWidth, "Extrinsic Hash", hash.Hex())

	s.recordSubmission(plan.commandName, opts, kp, hash)
	return nil
}

func (s *runtimeState) confirm(plan txPlan, kp *signer.Keypair) error {
	gate := prompt.NewStdio(s.runner.stdout)
	if s.runner.readLine != nil {
		gate = prompt.New(s.runner.stdout, s.runner.readLine)
	}

	details := append([]out.Row{
		{Label: "Url", Value: plan.opts.URL().String()},
		{Label: "Signer", Value: kp.Address().Hex()},
	}, plan.details...)

	err := gate.ConfirmSubmission(prompt.DetailsFunc(func() {
		out.WriteRows(s.runner.stdout, out.MaxKeyColWidth, details)
	}))
	if err == nil {
		return nil
	}
	if errors.Is(err, prompt.ErrUserDeclined) {
		return clierr.Wrap(clierr.CodeDeclined, "confirm transaction", err)
	}
	var unrecognized *prompt.UnrecognizedInputError
	if errors.As(err, &unrecognized) {
		return clierr.Wrap(clierr.CodeUsage, "confirm transaction", err)
	}
	return clierr.Wrap(clierr.CodeInternal, "confirm transaction", err)
}

func (s *runtimeState) dialNode(ctx context.Context, url string) (chain.Client, error) {
	if s.runner.dial != nil {
		return s.runner.dial(ctx, url)
	}
	return chain.Dial(ctx, url)
}

func hexPayload(raw []byte) string {
	return hexutil.Encode(raw)
}

// bigPayload renders an optional big integer for the submit payload;
// nil means the field is absent.
func bigPayload(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}

// recordSubmission logs the extrinsic to the local history store.
// Best-effort: a history failure never fails the submission.
func (s *runtimeState) recordSubmission(command string, opts *extrinsics.Opts, kp *signer.Keypair, hash common.Hash) {
	if !s.settings.HistoryEnabled {
		return
	}
	store, err := history.Open(s.settings.HistoryPath, s.settings.HistoryLockPath)
	if err != nil {
		fmt.Fprintf(s.runner.stderr, "warning: open history store: %v\n", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Append(history.Record{
		ExtrinsicHash: hash.Hex(),
		Command:       command,
		NodeURL:       opts.URL().String(),
		Signer:        kp.Address().Hex(),
	}); err != nil {
		fmt.Fprintf(s.runner.stderr, "warning: record submission: %v\n", err)
	}
}
