package security

import (
	"bytes"
	"testing"
)

func TestNewSealer(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{name: "valid 32-byte key", key: make([]byte, 32), wantErr: false},
		{name: "invalid short key", key: make([]byte, 16), wantErr: true},
		{name: "invalid long key", key: make([]byte, 64), wantErr: true},
		{name: "empty key", key: []byte{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSealer(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSealer() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && s == nil {
				t.Error("NewSealer() returned nil without error")
			}
		})
	}
}

func TestNewSealerFromPassphrase(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		wantErr    bool
	}{
		{name: "valid passphrase", passphrase: "my-secure-passphrase", wantErr: false},
		{name: "empty passphrase", passphrase: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSealerFromPassphrase(tt.passphrase)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSealerFromPassphrase() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && s == nil {
				t.Error("NewSealerFromPassphrase() returned nil without error")
			}
		})
	}
}

func TestSealUnsealRoundtrip(t *testing.T) {
	key := make([]byte, 32)
	copy(key, []byte("test-encryption-key-32-bytes-!!"))

	s, err := NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer() error = %v", err)
	}

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "simple string", plaintext: []byte("hello world")},
		{name: "json data", plaintext: []byte(`{"username":"admin","password":"secret123"}`)},
		{name: "binary data", plaintext: []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD}},
		{name: "large data", plaintext: bytes.Repeat([]byte("test"), 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ciphertext, err := s.Seal(tt.plaintext)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if bytes.Equal(ciphertext, tt.plaintext) {
				t.Error("ciphertext should not equal plaintext")
			}

			decrypted, err := s.Unseal(ciphertext)
			if err != nil {
				t.Fatalf("Unseal() error = %v", err)
			}
			if !bytes.Equal(decrypted, tt.plaintext) {
				t.Errorf("Unseal() = %v, want %v", decrypted, tt.plaintext)
			}
		})
	}
}

func TestSeal_Errors(t *testing.T) {
	key := make([]byte, 32)
	s, _ := NewSealer(key)

	tests := []struct {
		name      string
		plaintext []byte
		wantErr   bool
	}{
		{name: "empty data", plaintext: []byte{}, wantErr: true},
		{name: "nil data", plaintext: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Seal(tt.plaintext)
			if (err != nil) != tt.wantErr {
				t.Errorf("Seal() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnseal_Errors(t *testing.T) {
	key := make([]byte, 32)
	s, _ := NewSealer(key)

	tests := []struct {
		name       string
		ciphertext []byte
		wantErr    bool
	}{
		{name: "empty data", ciphertext: []byte{}, wantErr: true},
		{name: "nil data", ciphertext: nil, wantErr: true},
		{name: "too short data", ciphertext: []byte{0x01, 0x02}, wantErr: true},
		{name: "corrupted data", ciphertext: bytes.Repeat([]byte("x"), 100), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Unseal(tt.ciphertext)
			if (err != nil) != tt.wantErr {
				t.Errorf("Unseal() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnsealWithWrongKey(t *testing.T) {
	key1 := make([]byte, 32)
	copy(key1, []byte("key-one-32-bytes-long-!!!!!!!!!!"))

	key2 := make([]byte, 32)
	copy(key2, []byte("key-two-32-bytes-long-!!!!!!!!!!"))

	s1, _ := NewSealer(key1)
	s2, _ := NewSealer(key2)

	plaintext := []byte("secret data")

	ciphertext, err := s1.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if _, err := s2.Unseal(ciphertext); err == nil {
		t.Error("Unseal() should fail with wrong key")
	}
}

func TestDeriveSealKey(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
	}{
		{name: "simple passphrase", passphrase: "cluster-123"},
		{name: "UUID-shaped passphrase", passphrase: "550e8400-e29b-41d4-a716-446655440000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := DeriveSealKey(tt.passphrase)
			if len(key) != 32 {
				t.Errorf("DeriveSealKey() returned key of length %d, want 32", len(key))
			}

			key2 := DeriveSealKey(tt.passphrase)
			if !bytes.Equal(key, key2) {
				t.Error("DeriveSealKey() should be deterministic")
			}

			differentKey := DeriveSealKey(tt.passphrase + "-different")
			if bytes.Equal(key, differentKey) {
				t.Error("different passphrases should produce different keys")
			}
		})
	}
}
