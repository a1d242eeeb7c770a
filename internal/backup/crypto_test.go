package backup

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	if len(salt1) != saltSize {
		t.Errorf("salt length = %d, want %d", len(salt1), saltSize)
	}

	salt2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt 2: %v", err)
	}
	if bytes.Equal(salt1, salt2) {
		t.Error("two salts should not be equal")
	}
}

func TestDeriveKey(t *testing.T) {
	salt := []byte("1234567890abcdef")

	key1 := DeriveKey("mypassphrase", salt)
	key2 := DeriveKey("mypassphrase", salt)
	if !bytes.Equal(key1, key2) {
		t.Error("same passphrase+salt should produce same key")
	}
	if len(key1) != keySize {
		t.Errorf("key length = %d, want %d", len(key1), keySize)
	}
	if bytes.Equal(key1, DeriveKey("other", salt)) {
		t.Error("different passphrases should produce different keys")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	original := []byte(`{"version":2,"playerName":"Sam","zones":[],"history":[]}`)
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}

	sealed, err := Encrypt(original, "test-passphrase-123", salt)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(sealed, []byte("Sam")) {
		t.Error("ciphertext contains plaintext")
	}
	if !bytes.Equal(sealed[:saltSize], salt) {
		t.Error("output should start with salt")
	}

	opened, err := Decrypt(sealed, "test-passphrase-123")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(opened, original) {
		t.Errorf("decrypted = %q, want %q", opened, original)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	salt, _ := GenerateSalt()
	sealed, err := Encrypt([]byte("secret data"), "correct-password", salt)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := Decrypt(sealed, "wrong-password"); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
}

func TestDecryptTampered(t *testing.T) {
	salt, _ := GenerateSalt()
	sealed, _ := Encrypt([]byte("secret data"), "password", salt)

	sealed[saltSize+nonceSize+1] ^= 0xFF
	if _, err := Decrypt(sealed, "password"); err == nil {
		t.Fatal("expected error with tampered ciphertext")
	}
}

func TestEncryptEmpty(t *testing.T) {
	salt, _ := GenerateSalt()
	sealed, err := Encrypt(nil, "password", salt)
	if err != nil {
		t.Fatalf("encrypt empty: %v", err)
	}
	opened, err := Decrypt(sealed, "password")
	if err != nil {
		t.Fatalf("decrypt empty: %v", err)
	}
	if len(opened) != 0 {
		t.Errorf("expected empty plaintext, got %d bytes", len(opened))
	}
}

func TestDecryptTooShort(t *testing.T) {
	if _, err := Decrypt([]byte("too short"), "password"); !errors.Is(err, ErrTooShort) {
		t.Fatalf("err = %v, want %v", err, ErrTooShort)
	}
}

func TestEncryptBadSalt(t *testing.T) {
	if _, err := Encrypt([]byte("x"), "password", []byte("short")); err == nil {
		t.Fatal("expected error for short salt")
	}
}
