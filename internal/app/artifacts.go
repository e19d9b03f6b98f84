package app

import (
	"fmt"
	"os"
	"path/filepath"

	clierr "github.com/gustavo/contract-cli/internal/errors"
	"github.com/gustavo/contract-cli/internal/extrinsics"
)

// loadArtifact reads the contract code from the artifact file, or finds
// a built artifact next to the manifest when --manifest-path was given.
func loadArtifact(opts *extrinsics.Opts) (string, []byte, error) {
	path := opts.File()
	if path == "" && opts.ManifestPath() != "" {
		found, err := findBuiltArtifact(opts.ManifestPath())
		if err != nil {
			return "", nil, err
		}
		path = found
	}
	if path == "" {
		return "", nil, clierr.New(clierr.CodeUsage, "missing contract artifact: pass an artifact file or --manifest-path")
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return "", nil, clierr.Wrap(clierr.CodeUsage, "read contract artifact", err)
	}
	return path, code, nil
}

func findBuiltArtifact(manifestPath string) (string, error) {
	dir := filepath.Dir(manifestPath)
	for _, pattern := range []string{"target/ink/*.contract", "target/ink/*.wasm"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return "", clierr.Wrap(clierr.CodeInternal, "scan build directory", err)
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("no built contract artifact found under %s", filepath.Join(dir, "target", "ink")))
}
