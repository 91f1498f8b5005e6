package auth

import "testing"

func initTestKey(t *testing.T) {
	t.Helper()
	t.Setenv("REFRESH_TOKEN_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")
	if err := InitCrypto(); err != nil {
		t.Fatalf("InitCrypto: %v", err)
	}
}

func TestInitCryptoRejectsBadKeys(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_ENCRYPTION_KEY", "")
	if err := InitCrypto(); err == nil {
		t.Error("expected an error for a missing key")
	}

	t.Setenv("REFRESH_TOKEN_ENCRYPTION_KEY", "too-short")
	if err := InitCrypto(); err == nil {
		t.Error("expected an error for a key that is not 32 bytes")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	initTestKey(t)

	token := "1//0example-refresh-token"
	sealed, err := EncryptRefreshToken(token)
	if err != nil {
		t.Fatalf("EncryptRefreshToken: %v", err)
	}
	if sealed == "" || sealed == token {
		t.Fatalf("token was not encrypted: %q", sealed)
	}

	got, err := DecryptRefreshToken(sealed)
	if err != nil {
		t.Fatalf("DecryptRefreshToken: %v", err)
	}
	if got != token {
		t.Errorf("round trip = %q, want %q", got, token)
	}
}

func TestEncryptRefreshTokenUsesFreshNonces(t *testing.T) {
	initTestKey(t)

	first, err := EncryptRefreshToken("same-token")
	if err != nil {
		t.Fatalf("EncryptRefreshToken: %v", err)
	}
	second, err := EncryptRefreshToken("same-token")
	if err != nil {
		t.Fatalf("EncryptRefreshToken: %v", err)
	}
	if first == second {
		t.Error("sealing the same token twice should produce different ciphertexts")
	}
}

func TestDecryptRefreshTokenRejectsTampering(t *testing.T) {
	initTestKey(t)

	sealed, err := EncryptRefreshToken("token-to-tamper")
	if err != nil {
		t.Fatalf("EncryptRefreshToken: %v", err)
	}

	flipped := byte('A')
	if sealed[len(sealed)-1] == 'A' {
		flipped = 'B'
	}
	tampered := sealed[:len(sealed)-1] + string(flipped)

	if _, err := DecryptRefreshToken(tampered); err == nil {
		t.Error("expected an error for a tampered ciphertext")
	}

	if _, err := DecryptRefreshToken("not base64!!"); err == nil {
		t.Error("expected an error for garbage input")
	}
}

func TestCryptoPassesEmptyTokensThrough(t *testing.T) {
	initTestKey(t)

	if sealed, err := EncryptRefreshToken(""); err != nil || sealed != "" {
		t.Errorf("EncryptRefreshToken(\"\") = %q, %v; want empty, nil", sealed, err)
	}
	if plain, err := DecryptRefreshToken(""); err != nil || plain != "" {
		t.Errorf("DecryptRefreshToken(\"\") = %q, %v; want empty, nil", plain, err)
	}
}
