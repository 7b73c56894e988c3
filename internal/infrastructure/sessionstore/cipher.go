package sessionstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// secretKey passphrase embebida de la que se deriva la clave simétrica.
// Es ofuscación, no confidencialidad: cualquiera con el binario puede
// derivar la misma clave. Protege el token en reposo frente a lecturas
// casuales del disco, nada más.
const secretKey = "inventorySecretKey"

// deriveKey deriva la clave AES-256 con HKDF-SHA256.
func deriveKey() ([]byte, error) {
	h := hkdf.New(sha256.New, []byte(secretKey), nil, []byte("session-store"))
	key := make([]byte, 32)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("sessionstore: derivar clave: %w", err)
	}
	return key, nil
}

// encrypt cifra plaintext con AES-256-GCM y nonce aleatorio.
// El resultado es base64(nonce || ciphertext).
func encrypt(plaintext string) (string, error) {
	key, err := deriveKey()
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("sessionstore: cifrador AES: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("sessionstore: modo GCM: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("sessionstore: nonce aleatorio: %w", err)
	}
	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// decrypt revierte encrypt. Falla si el blob está truncado o manipulado.
func decrypt(encoded string) (string, error) {
	key, err := deriveKey()
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("sessionstore: base64 inválido: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("sessionstore: cifrador AES: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("sessionstore: modo GCM: %w", err)
	}
	if len(raw) < gcm.NonceSize() {
		return "", fmt.Errorf("sessionstore: blob cifrado truncado")
	}
	nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("sessionstore: descifrar: %w", err)
	}
	return string(plain), nil
}
