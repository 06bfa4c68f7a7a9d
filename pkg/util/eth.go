package util

import (
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

var hexAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsHexAddress reports whether s is a syntactically valid EVM address:
// 0x-prefixed, 40 hex characters. Mixed-case addresses must additionally
// carry a valid EIP-55 checksum.
func IsHexAddress(s string) bool {
	if !hexAddressRe.MatchString(s) {
		return false
	}
	body := s[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return ChecksumAddress(s) == s
}

// ChecksumAddress returns the EIP-55 checksummed form of an address. The
// input must already be a 40-hex-char 0x address; casing is ignored.
func ChecksumAddress(s string) string {
	body := strings.ToLower(strings.TrimPrefix(s, "0x"))
	hash := Keccak256([]byte(body))
	hexHash := hex.EncodeToString(hash)

	out := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c >= 'a' && c <= 'f' && hexHash[i] >= '8' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return "0x" + string(out)
}

// Keccak256 computes the legacy Keccak-256 digest used by EVM chains.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
