package extrinsics

import (
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"github.com/gustavo/contract-cli/internal/balance"
)

// DefaultNodeURL is the websocket endpoint of a local development node.
const DefaultNodeURL = "ws://localhost:9944"

// ErrConflictingArtifactSource reports that both a build artifact file
// and a manifest path were supplied.
var ErrConflictingArtifactSource = errors.New("conflicting artifact source: use either a contract artifact file or --manifest-path, not both")

// RawOpts holds the unvalidated per-command inputs for building and
// sending an extrinsic, exactly as the CLI layer collected them.
type RawOpts struct {
	File                string
	ManifestPath        string
	URL                 string
	Suri                string
	Verbose             bool
	Quiet               bool
	Execute             bool
	StorageDepositLimit string
	SkipDryRun          bool
	SkipConfirm         bool
}

// Opts is the validated, immutable record of all user choices governing
// how a transaction is built and submitted. Constructed once per command
// invocation; read-only thereafter.
type Opts struct {
	file                string
	manifestPath        string
	url                 *url.URL
	suri                string
	verbosity           Verbosity
	execute             bool
	storageDepositLimit *big.Int
	skipDryRun          bool
	skipConfirm         bool
}

// NewOpts validates and normalizes raw inputs. It performs no I/O.
func NewOpts(raw RawOpts) (*Opts, error) {
	file := strings.TrimSpace(raw.File)
	manifestPath := strings.TrimSpace(raw.ManifestPath)
	if file != "" && manifestPath != "" {
		return nil, ErrConflictingArtifactSource
	}

	rawURL := strings.TrimSpace(raw.URL)
	if rawURL == "" {
		rawURL = DefaultNodeURL
	}
	nodeURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid node url %q: %w", rawURL, err)
	}
	if nodeURL.Scheme == "" || nodeURL.Host == "" {
		return nil, fmt.Errorf("invalid node url %q: missing scheme or host", rawURL)
	}

	verbosity, err := NewVerbosity(raw.Verbose, raw.Quiet)
	if err != nil {
		return nil, err
	}

	var depositLimit *big.Int
	if strings.TrimSpace(raw.StorageDepositLimit) != "" {
		depositLimit, err = balance.Parse(raw.StorageDepositLimit, balance.NativeDecimals)
		if err != nil {
			return nil, fmt.Errorf("storage deposit limit: %w", err)
		}
	}

	return &Opts{
		file:                file,
		manifestPath:        manifestPath,
		url:                 nodeURL,
		suri:                raw.Suri,
		verbosity:           verbosity,
		execute:             raw.Execute,
		storageDepositLimit: depositLimit,
		skipDryRun:          raw.SkipDryRun,
		skipConfirm:         raw.SkipConfirm,
	}, nil
}

// File returns the contract artifact file path, if one was supplied.
func (o *Opts) File() string { return o.file }

// ManifestPath returns the manifest path, if one was supplied.
func (o *Opts) ManifestPath() string { return o.manifestPath }

func (o *Opts) URL() *url.URL        { return o.url }
func (o *Opts) Suri() string         { return o.suri }
func (o *Opts) Verbosity() Verbosity { return o.verbosity }
func (o *Opts) Execute() bool        { return o.execute }
func (o *Opts) SkipDryRun() bool     { return o.skipDryRun }
func (o *Opts) SkipConfirm() bool    { return o.skipConfirm }

// StorageDepositLimit returns a copy of the limit in base units, or nil
// when no limit was set.
func (o *Opts) StorageDepositLimit() *big.Int {
	if o.storageDepositLimit == nil {
		return nil
	}
	return new(big.Int).Set(o.storageDepositLimit)
}
