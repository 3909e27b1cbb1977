package report

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/sha3"
)

// ChecksumExt is appended to a report path to name its checksum file.
const ChecksumExt = ".sha3"

// Checksum returns the hex SHA3-256 digest of data.
func Checksum(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteChecksumFile writes the SHA3-256 digest of the file at path to
// path+ChecksumExt in the "<digest>  <name>" format of sha3sum, and
// returns the checksum file's path.
func WriteChecksumFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the report file chosen by the user
	if err != nil {
		return "", fmt.Errorf("failed to read report for checksum: %w", err)
	}

	sumPath := path + ChecksumExt
	line := Checksum(data) + "  " + filepath.Base(path) + "\n"
	if err := os.WriteFile(sumPath, []byte(line), 0o600); err != nil {
		return "", fmt.Errorf("failed to write checksum file: %w", err)
	}
	return sumPath, nil
}
