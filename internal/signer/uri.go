package signer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DevPhrase is the well-known development phrase used when a secret URI
// omits the leading phrase (e.g. "//Alice").
const DevPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

// ErrInvalidSecretURI reports a string that does not conform to the
// secret-URI grammar: [phrase][/soft-junction|//hard-junction]*[///password].
var ErrInvalidSecretURI = errors.New("invalid secret uri")

var (
	suriPattern     = regexp.MustCompile(`^(?P<phrase>[\w\d ]+)?(?P<path>(//?[^/]+)*)(///(?P<password>.*))?$`)
	junctionPattern = regexp.MustCompile(`/(/?[^/]+)`)
)

// Junction is a single derivation step. Hard junctions are written with
// a double slash ("//Alice"), soft junctions with a single one.
type Junction struct {
	Path string
	Hard bool
}

// SecretURI is the parsed form of a secret key URI.
type SecretURI struct {
	Phrase    string
	Junctions []Junction
	Password  string
}

// ParseURI splits a secret URI into phrase, derivation junctions and
// password. It validates grammar only; key derivation happens later.
func ParseURI(suri string) (SecretURI, error) {
	match := suriPattern.FindStringSubmatch(suri)
	if match == nil {
		return SecretURI{}, fmt.Errorf("%w: %q", ErrInvalidSecretURI, suri)
	}

	groups := map[string]string{}
	for i, name := range suriPattern.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}

	phrase := groups["phrase"]
	if phrase == "" {
		phrase = DevPhrase
	}

	var junctions []Junction
	for _, m := range junctionPattern.FindAllStringSubmatch(groups["path"], -1) {
		part := m[1]
		if strings.HasPrefix(part, "/") {
			junctions = append(junctions, Junction{Path: part[1:], Hard: true})
			continue
		}
		junctions = append(junctions, Junction{Path: part, Hard: false})
	}

	return SecretURI{
		Phrase:    phrase,
		Junctions: junctions,
		Password:  groups["password"],
	}, nil
}
