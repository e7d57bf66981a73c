package crypting

import (
	"bytes"
	"errors"
	"testing"
)

func testEncryptor(t *testing.T) *AESGCMEncryptor {
	t.Helper()
	return NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: bytes.Repeat([]byte{0x4b}, 32)})
}

func TestAESGCMRoundTrip(t *testing.T) {
	enc := testEncryptor(t)
	scope := Scope{OwnerID: 9876543210, Purpose: PurposeNomineeAadhaar}

	ct, err := enc.EncryptString("123412341234", scope)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if ct == "123412341234" {
		t.Fatal("ciphertext equals plaintext")
	}

	pt, err := enc.DecryptString(ct, scope)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if pt != "123412341234" {
		t.Errorf("plaintext = %q", pt)
	}
}

func TestAESGCMScopeMismatch(t *testing.T) {
	enc := testEncryptor(t)
	scope := Scope{OwnerID: 9876543210, Purpose: PurposeNomineeAadhaar}

	ct, err := enc.EncryptString("123412341234", scope)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if _, err := enc.DecryptString(ct, Scope{OwnerID: 1111111111, Purpose: PurposeNomineeAadhaar}); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("decrypt with wrong owner = %v, want ErrDecryptFailed", err)
	}
	if _, err := enc.DecryptString(ct, Scope{OwnerID: 9876543210, Purpose: PurposeProofDocument}); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("decrypt with wrong purpose = %v, want ErrDecryptFailed", err)
	}
}

func TestAESGCMFreshNoncePerCall(t *testing.T) {
	enc := testEncryptor(t)
	scope := Scope{OwnerID: 1, Purpose: PurposeNomineeAadhaar}

	a, err := enc.EncryptString("123412341234", scope)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := enc.EncryptString("123412341234", scope)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if a == b {
		t.Error("two encryptions of the same plaintext are identical")
	}
}

func TestAESGCMRejectsEmptyPlaintext(t *testing.T) {
	enc := testEncryptor(t)

	if _, err := enc.EncryptString("", Scope{OwnerID: 1, Purpose: PurposeNomineeAadhaar}); !errors.Is(err, ErrPlaintextEmpty) {
		t.Errorf("error = %v, want ErrPlaintextEmpty", err)
	}
}

func TestAESGCMRejectsBadKeyLength(t *testing.T) {
	enc := NewAESGCMEncryptor(StaticKeyProvider{KeyBytes: []byte("short")})

	if _, err := enc.EncryptString("123412341234", Scope{OwnerID: 1, Purpose: PurposeNomineeAadhaar}); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("error = %v, want ErrInvalidKeyLength", err)
	}
}
