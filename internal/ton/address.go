package ton

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// ValidateAddress checks if the TON address format is valid.
// Accepted forms:
//   - Raw: workchain:hash, e.g. 0:hex or -1:hex
//   - User-friendly: URL-safe base64, 48 chars
func ValidateAddress(address string) bool {
	if len(address) == 0 {
		return false
	}

	if len(address) >= 66 && (address[0:2] == "0:" || address[0:3] == "-1:") {
		return true
	}

	if len(address) == 48 {
		_, err := base64.URLEncoding.DecodeString(address)
		return err == nil
	}

	return false
}

// NormalizeAddress converts a user-friendly address to raw
// workchain:hash form.
func NormalizeAddress(address string) (string, error) {
	if len(address) >= 66 && (address[0:2] == "0:" || address[0:3] == "-1:") {
		return address, nil
	}

	if len(address) == 48 {
		decoded, err := base64.URLEncoding.DecodeString(address)
		if err != nil {
			return "", fmt.Errorf("invalid address format: %w", err)
		}

		// 1 byte flags + 1 byte workchain + 32 bytes hash + 2 bytes CRC
		if len(decoded) != 36 {
			return "", errors.New("invalid address length")
		}

		workchain := int8(decoded[1])
		hash := decoded[2:34]

		return fmt.Sprintf("%d:%s", workchain, hex.EncodeToString(hash)), nil
	}

	return "", errors.New("unknown address format")
}
