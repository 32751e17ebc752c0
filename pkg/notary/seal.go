package notary

import "github.com/cuemby/nebula/pkg/security"

// keySeal encrypts private key material at rest, delegating the
// actual AES-256-GCM work to security.Sealer and keeping the key
// instance-scoped rather than the teacher's package-level global.
type keySeal struct {
	sealer *security.Sealer
}

func newKeySeal(key []byte) (*keySeal, error) {
	sealer, err := security.NewSealer(key)
	if err != nil {
		return nil, err
	}
	return &keySeal{sealer: sealer}, nil
}

func (s *keySeal) encrypt(plaintext []byte) ([]byte, error) {
	return s.sealer.Seal(plaintext)
}

func (s *keySeal) decrypt(ciphertext []byte) ([]byte, error) {
	return s.sealer.Unseal(ciphertext)
}
