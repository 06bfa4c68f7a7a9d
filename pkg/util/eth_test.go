package util

import "testing"

func TestIsHexAddressLowercase(t *testing.T) {
	if !IsHexAddress("0x2177d6c4ec1a6511184ca6ffab4fd1d1f5bff39f") {
		t.Fatalf("lowercase address should be valid")
	}
}

func TestIsHexAddressChecksum(t *testing.T) {
	// Known EIP-55 vector.
	if !IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed") {
		t.Fatalf("checksummed address should be valid")
	}
	if IsHexAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1Beaed") {
		t.Fatalf("bad checksum should be invalid")
	}
}

func TestIsHexAddressRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "0x123", "not-an-address", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe"} {
		if IsHexAddress(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestChecksumAddress(t *testing.T) {
	got := ChecksumAddress("0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359")
	want := "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	if got != want {
		t.Fatalf("checksum mismatch: got %s want %s", got, want)
	}
}
