package crypting

// Purpose identifies what kind of data a ciphertext protects.
type Purpose string

const (
	// PurposeNomineeAadhaar scopes encryption to nominee Aadhaar numbers.
	PurposeNomineeAadhaar Purpose = "nominee_aadhaar"
	// PurposeProofDocument scopes encryption to proof document metadata.
	PurposeProofDocument Purpose = "proof_document"
)

// Scope binds a ciphertext to its owner and purpose.
// It is used as AAD (Additional Authenticated Data) in AES-GCM, so a
// ciphertext copied between rows or between purposes fails to decrypt.
type Scope struct {
	// OwnerID is the vault owner's user identifier.
	OwnerID int64
	// Purpose is the encryption purpose.
	Purpose Purpose
}

// Encryptor defines the interface for encrypting and decrypting sensitive
// fields before they reach storage.
type Encryptor interface {
	// EncryptString returns an encoded ciphertext for the given plaintext and scope.
	EncryptString(plaintext string, scope Scope) (string, error)
	// DecryptString returns the plaintext for the given encoded ciphertext and scope.
	DecryptString(ciphertext string, scope Scope) (string, error)
}

// KeyProvider provides raw AES keys.
// For AES-256-GCM, keys must be 32 bytes.
type KeyProvider interface {
	// Key returns the raw AES key to use for this scope.
	Key(scope Scope) ([]byte, error)
}
