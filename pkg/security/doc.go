/*
Package security provides at-rest encryption for an account's private
key material, used by pkg/notary to seal a private key alongside the
certificate it signs under.

# Sealer

Sealer wraps a single 32-byte AES-256-GCM key and offers Seal/Unseal
over arbitrary byte blobs:

	Plaintext → AES-256-GCM → [nonce || ciphertext || tag]
	                ↑
	            32-byte key

Each call to Seal draws a fresh random 12-byte nonce and prepends it to
the returned ciphertext, so encrypting the same plaintext twice never
produces the same bytes. Unseal splits the nonce back off and verifies
the authentication tag, so tampering or the wrong key both fail loudly
rather than returning corrupted plaintext.

# Key derivation

DeriveSealKey turns an operator-supplied passphrase into a 32-byte key
via SHA-256:

	key = SHA-256(passphrase)

This is deterministic: the same passphrase always reopens the same
sealed key, without that key ever touching disk itself.

# Usage

	key := security.DeriveSealKey(passphrase)
	sealer, err := security.NewSealer(key)
	if err != nil {
		return err
	}

	sealed, err := sealer.Seal(privateKeyBytes)
	if err != nil {
		return err
	}
	// persist sealed alongside the account record

	// later, to reopen:
	raw, err := sealer.Unseal(sealed)
*/
package security
