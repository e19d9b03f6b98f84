package extrinsics

import (
	"errors"
	"strings"
	"testing"
)

const validHash = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func TestParseCodeHashPrefixInsensitive(t *testing.T) {
	withPrefix, err := ParseCodeHash("0x" + validHash)
	if err != nil {
		t.Fatalf("ParseCodeHash with prefix failed: %v", err)
	}
	withoutPrefix, err := ParseCodeHash(validHash)
	if err != nil {
		t.Fatalf("ParseCodeHash without prefix failed: %v", err)
	}
	if withPrefix != withoutPrefix {
		t.Fatalf("prefix changed the parsed value: %s vs %s", withPrefix.Hex(), withoutPrefix.Hex())
	}
}

func TestParseCodeHashRoundTrip(t *testing.T) {
	parsed, err := ParseCodeHash(validHash)
	if err != nil {
		t.Fatalf("ParseCodeHash failed: %v", err)
	}
	again, err := ParseCodeHash(parsed.Hex())
	if err != nil {
		t.Fatalf("re-parse of %s failed: %v", parsed.Hex(), err)
	}
	if parsed != again {
		t.Fatalf("round trip changed the value: %s vs %s", parsed.Hex(), again.Hex())
	}
}

func TestParseCodeHashWrongLength(t *testing.T) {
	cases := []string{
		validHash[:62],       // short, even
		validHash[:63],       // short, odd but still valid hex digits
		validHash + "ab",     // long
		"",                   // empty
		"0x" + validHash[2:], // 62 chars after prefix
	}
	for _, input := range cases {
		_, err := ParseCodeHash(input)
		if !errors.Is(err, ErrWrongLength) {
			t.Fatalf("ParseCodeHash(%q): expected ErrWrongLength, got %v", input, err)
		}
		if errors.Is(err, ErrMalformedHex) {
			t.Fatalf("ParseCodeHash(%q): length error must not be malformed hex", input)
		}
	}
}

func TestParseCodeHashMalformed(t *testing.T) {
	cases := []string{
		"x" + validHash[1:],                     // bad leading char, correct length
		strings.Replace(validHash, "d", "g", 1), // non-hex char
		"zz",                                    // short and malformed
	}
	for _, input := range cases {
		_, err := ParseCodeHash(input)
		if !errors.Is(err, ErrMalformedHex) {
			t.Fatalf("ParseCodeHash(%q): expected ErrMalformedHex, got %v", input, err)
		}
	}
}

func TestParseCodeHashUppercase(t *testing.T) {
	if _, err := ParseCodeHash(strings.ToUpper(validHash)); err != nil {
		t.Fatalf("uppercase hex should parse: %v", err)
	}
}
