package chainrpc

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"CreditPull/pkg/util"
)

// Minimal ABI helpers for the read-only pool calls. Only what the pool
// summary shape needs: static words (address/uint) and dynamic strings.

const wordSize = 32

// selector returns the 0x-prefixed 4-byte selector for a method signature.
func selector(signature string) string {
	return "0x" + hex.EncodeToString(util.Keccak256([]byte(signature))[:4])
}

// decodeHex strips the 0x prefix and decodes the payload.
func decodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("malformed hex payload: %w", err)
	}
	return b, nil
}

func word(data []byte, slot int) ([]byte, error) {
	start := slot * wordSize
	if start+wordSize > len(data) {
		return nil, fmt.Errorf("return data too short: want slot %d, have %d bytes", slot, len(data))
	}
	return data[start : start+wordSize], nil
}

func wordBig(data []byte, slot int) (*big.Int, error) {
	w, err := word(data, slot)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(w), nil
}

func wordAddress(data []byte, slot int) (string, error) {
	w, err := word(data, slot)
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(w[wordSize-20:]), nil
}

// wordString reads a dynamic string whose offset lives at slot.
func wordString(data []byte, slot int) (string, error) {
	offsetBig, err := wordBig(data, slot)
	if err != nil {
		return "", err
	}
	offset := int(offsetBig.Int64())
	if offset+wordSize > len(data) {
		return "", fmt.Errorf("string offset %d out of range", offset)
	}
	length := int(new(big.Int).SetBytes(data[offset : offset+wordSize]).Int64())
	start := offset + wordSize
	if start+length > len(data) {
		return "", fmt.Errorf("string of length %d out of range at offset %d", length, offset)
	}
	return string(data[start : start+length]), nil
}
