package crypto

import (
	"strings"
	"testing"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestKeyFromHex(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		wantErr bool
	}{
		{"valid 32-byte key", testKeyHex, false},
		{"too short", "0001", true},
		{"not hex", strings.Repeat("zz", 32), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := KeyFromHex(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Errorf("KeyFromHex() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := KeyFromHex(testKeyHex)
	if err != nil {
		t.Fatalf("KeyFromHex() error = %v", err)
	}

	plaintext := "430123456"

	encrypted, err := Encrypt(key, plaintext)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if encrypted == plaintext {
		t.Error("Encrypt() returned plaintext unchanged")
	}

	decrypted, err := Decrypt(key, encrypted)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("Decrypt() = %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptNonceUniqueness(t *testing.T) {
	key, _ := KeyFromHex(testKeyHex)

	a, _ := Encrypt(key, "same value")
	b, _ := Encrypt(key, "same value")
	if a == b {
		t.Error("Encrypt() should produce distinct ciphertexts for the same plaintext")
	}
}

func TestDecryptErrors(t *testing.T) {
	key, _ := KeyFromHex(testKeyHex)

	tests := []struct {
		name    string
		encoded string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"too short", "AAAA"},
		{"tampered", func() string {
			s, _ := Encrypt(key, "secret")
			return s[:len(s)-4] + "AAAA"
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decrypt(key, tt.encoded); err == nil {
				t.Error("Decrypt() expected error, got nil")
			}
		})
	}
}

func TestHashDeterministic(t *testing.T) {
	if Hash("430123456") != Hash("430123456") {
		t.Error("Hash() should be deterministic")
	}
	if Hash("430123456") == Hash("430123457") {
		t.Error("Hash() should differ for different inputs")
	}
	if len(Hash("x")) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(Hash("x")))
	}
}
