package extrinsics

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrMalformedHex reports a character outside [0-9a-fA-F].
	ErrMalformedHex = errors.New("malformed hex string")
	// ErrWrongLength reports valid hex that does not decode to 32 bytes.
	ErrWrongLength = errors.New("code hash should be 32 bytes in length")
)

// ParseCodeHash parses a hex encoded 32 byte code hash, with or without
// a leading 0x prefix. All-or-nothing: character validity is checked
// before length, so short-but-valid hex fails with ErrWrongLength.
func ParseCodeHash(input string) (common.Hash, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	for _, r := range clean {
		if !isHexDigit(r) {
			return common.Hash{}, fmt.Errorf("%w: unexpected character %q in %q", ErrMalformedHex, r, input)
		}
	}
	if len(clean) != common.HashLength*2 {
		return common.Hash{}, fmt.Errorf("%w: got %d hex characters", ErrWrongLength, len(clean))
	}
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return common.BytesToHash(raw), nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
