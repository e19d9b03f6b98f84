package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"

	"github.com/gustavo/contract-cli/internal/chain"
	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/extrinsics"
	"github.com/gustavo/contract-cli/internal/signer"
)

func init() {
	color.NoColor = true
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("CONTRACT_NODE_URL", "")
	t.Setenv("CONTRACT_SURI", "")
}

func TestRunnerVersion(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer
	runner := NewRunnerWithWriters(&stdout, &stderr)
	if code := runner.Run([]string{"version"}); code != 0 {
		t.Fatalf("version exited with %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "0.1.0") {
		t.Fatalf("missing version output: %q", stdout.String())
	}
}

func TestRunnerConflictingArtifactSource(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer
	runner := NewRunnerWithWriters(&stdout, &stderr)
	code := runner.Run([]string{"upload", "flipper.contract", "--manifest-path", "Cargo.toml", "--suri", "//Alice"})
	if code != int(clierr.CodeUsage) {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr.String(), "conflicting artifact source") {
		t.Fatalf("missing conflict message: %q", stderr.String())
	}
}

func TestRunnerUnknownFlag(t *testing.T) {
	isolateEnv(t)
	var stdout, stderr bytes.Buffer
	runner := NewRunnerWithWriters(&stdout, &stderr)
	if code := runner.Run([]string{"call", "--bogus"}); code != int(clierr.CodeUsage) {
		t.Fatalf("expected usage exit code, got %d", code)
	}
}

type fakeClient struct {
	outcome    *extrinsics.DryRunOutcome
	dryRunErr  error
	submitHash common.Hash
	submitErr  error

	dryRuns   int
	submitted int
	lastCall  string
}

func (f *fakeClient) DryRunCall(ctx context.Context, req chain.CallRequest) (*extrinsics.DryRunOutcome, error) {
	f.dryRuns++
	return f.outcome, f.dryRunErr
}

func (f *fakeClient) DryRunInstantiate(ctx context.Context, req chain.InstantiateRequest) (*extrinsics.DryRunOutcome, error) {
	f.dryRuns++
	return f.outcome, f.dryRunErr
}

func (f *fakeClient) DryRunUpload(ctx context.Context, req chain.UploadRequest) (*extrinsics.DryRunOutcome, error) {
	f.dryRuns++
	return f.outcome, f.dryRunErr
}

func (f *fakeClient) Submit(ctx context.Context, call string, payload any, s signer.Signer) (common.Hash, error) {
	f.submitted++
	f.lastCall = call
	return f.submitHash, f.submitErr
}

func (f *fakeClient) ContractInfo(ctx context.Context, contract string) (*chain.ContractInfo, error) {
	return nil, nil
}

func (f *fakeClient) Close() {}

func fakeRunner(t *testing.T, fake *fakeClient, answers ...string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	runner := NewRunnerWithWriters(&stdout, &bytes.Buffer{})
	runner.dial = func(ctx context.Context, url string) (chain.Client, error) {
		return fake, nil
	}
	remaining := answers
	runner.readLine = func(prompt string) (string, error) {
		if len(remaining) == 0 {
			t.Fatal("unexpected confirmation prompt")
		}
		answer := remaining[0]
		remaining = remaining[1:]
		return answer, nil
	}
	return runner, &stdout
}

func callArgs(extra ...string) []string {
	args := []string{"call", "--contract", "5GrwvaEF...", "--suri", "//Alice"}
	return append(args, extra...)
}

func sampleFake() *fakeClient {
	return &fakeClient{
		outcome: &extrinsics.DryRunOutcome{
			GasConsumed:  extrinsics.Weight{RefTime: 100, ProofSize: 10},
			GasRequired:  extrinsics.Weight{RefTime: 200, ProofSize: 20},
			DebugMessage: []byte("hello from contract"),
		},
		submitHash: common.HexToHash("0x01"),
	}
}

func TestCallDryRunOnly(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	runner, stdout := fakeRunner(t, fake)
	if code := runner.Run(callArgs()); code != 0 {
		t.Fatalf("dry-run call exited with %d", code)
	}
	if fake.dryRuns != 1 {
		t.Fatalf("expected one dry run, got %d", fake.dryRuns)
	}
	if fake.submitted != 0 {
		t.Fatal("dry-run only call must not submit")
	}
	text := stdout.String()
	if !strings.Contains(text, "Gas Required") || !strings.Contains(text, "Debug Message") {
		t.Fatalf("missing dry-run report: %q", text)
	}
	if !strings.Contains(text, "has not been executed") {
		t.Fatalf("missing not-executed notice: %q", text)
	}
}

func TestCallExecuteApproved(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	runner, stdout := fakeRunner(t, fake, "")
	if code := runner.Run(callArgs("-x")); code != 0 {
		t.Fatalf("execute call exited with %d: %s", code, stdout.String())
	}
	if fake.submitted != 1 || fake.lastCall != "call" {
		t.Fatalf("expected one submitted call, got %d (%s)", fake.submitted, fake.lastCall)
	}
	if !strings.Contains(stdout.String(), "Extrinsic Hash") {
		t.Fatalf("missing extrinsic hash output: %q", stdout.String())
	}
}

func TestCallExecuteDeclined(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	runner, _ := fakeRunner(t, fake, "n")
	if code := runner.Run(callArgs("-x")); code != int(clierr.CodeDeclined) {
		t.Fatalf("expected declined exit code, got %d", code)
	}
	if fake.submitted != 0 {
		t.Fatal("declined confirmation must not submit")
	}
}

func TestCallExecuteUnrecognizedAnswer(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	runner, _ := fakeRunner(t, fake, "maybe")
	var stderr bytes.Buffer
	runner.stderr = &stderr
	if code := runner.Run(callArgs("-x")); code != int(clierr.CodeUsage) {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr.String(), "maybe") {
		t.Fatalf("error should carry the offending input: %q", stderr.String())
	}
	if fake.submitted != 0 {
		t.Fatal("unrecognized answer must not submit")
	}
}

func TestCallExecuteSkipConfirm(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	runner, _ := fakeRunner(t, fake) // no answers: prompting would fail the test
	if code := runner.Run(callArgs("-x", "-y")); code != 0 {
		t.Fatalf("skip-confirm call exited with %d", code)
	}
	if fake.submitted != 1 {
		t.Fatal("skip-confirm call should submit without prompting")
	}
}

func TestCallSkipDryRun(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	runner, _ := fakeRunner(t, fake, "y")
	if code := runner.Run(callArgs("-x", "--skip-dry-run")); code != 0 {
		t.Fatalf("skip-dry-run call exited with %d", code)
	}
	if fake.dryRuns != 0 {
		t.Fatalf("expected no dry runs, got %d", fake.dryRuns)
	}
	if fake.submitted != 1 {
		t.Fatal("call should still submit after skipping the dry run")
	}
}

func TestCallDryRunFailure(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	fake.dryRunErr = context.DeadlineExceeded
	runner, _ := fakeRunner(t, fake)
	if code := runner.Run(callArgs("-x")); code != int(clierr.CodeDryRun) {
		t.Fatalf("expected dry-run exit code, got %d", code)
	}
	if fake.submitted != 0 {
		t.Fatal("failed dry run must block submission")
	}
}

func TestCallBadSuri(t *testing.T) {
	isolateEnv(t)
	fake := sampleFake()
	runner, _ := fakeRunner(t, fake)
	code := runner.Run([]string{"call", "--contract", "x", "--suri", "//"})
	if code != int(clierr.CodeSigner) {
		t.Fatalf("expected signer exit code, got %d", code)
	}
}
