package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ChecksumVersion identifies the rendering the checksum is computed over.
const ChecksumVersion = 1

// SerializationChecksum is a deterministic checksum of a game state.
type SerializationChecksum struct {
	Hash    string // SHA-256 of the omniscient view
	Version int
}

// ComputeChecksum hashes the JSON rendering of view. Views hold only
// slices and structs, so the rendering does not depend on map order.
func ComputeChecksum(view any) (*SerializationChecksum, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize view: %w", err)
	}
	sum := sha256.Sum256(data)
	return &SerializationChecksum{
		Hash:    hex.EncodeToString(sum[:]),
		Version: ChecksumVersion,
	}, nil
}

// Checksum returns the hex hash of view.
func Checksum(view any) (string, error) {
	sum, err := ComputeChecksum(view)
	if err != nil {
		return "", err
	}
	return sum.Hash, nil
}

// VerifyChecksum reports whether view hashes to expected.
func VerifyChecksum(view any, expected *SerializationChecksum) (bool, error) {
	if expected.Version != ChecksumVersion {
		return false, fmt.Errorf("unsupported checksum version: %d", expected.Version)
	}
	actual, err := ComputeChecksum(view)
	if err != nil {
		return false, err
	}
	return actual.Hash == expected.Hash, nil
}
