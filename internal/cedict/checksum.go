package cedict

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/pinlyric/pinlyric/core/errors"
)

// Checksum returns the hex BLAKE3-256 digest of the bundle file as
// shipped (compressed bytes, not the decompressed stream).
func Checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIO("read", path, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Verify checks the bundle at path against an expected hex digest, as
// recorded in a release manifest. A mismatch is a validation error.
func Verify(path, expected string) error {
	actual, err := Checksum(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		return errors.NewValidation("checksum",
			"lexicon bundle digest mismatch: got "+actual+", want "+expected)
	}
	return nil
}
