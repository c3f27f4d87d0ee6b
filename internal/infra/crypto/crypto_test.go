package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return hex.EncodeToString(key)
}

func TestEncryptor_EncryptDecrypt(t *testing.T) {
	enc, err := NewEncryptor(testKey(), []byte("refs/ironjira/snapshot"))
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}

	plaintext := []byte("current_id: 1\ndata: {}\n")

	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if bytes.Contains(ciphertext, plaintext) {
		t.Error("ciphertext should not contain plaintext")
	}
	if len(ciphertext) != NonceSize+len(plaintext)+16 {
		t.Errorf("ciphertext length = %d, want nonce + plaintext + tag", len(ciphertext))
	}

	decrypted, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("decrypted text mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptor_FreshNoncePerCall(t *testing.T) {
	enc, err := NewEncryptor(testKey(), nil)
	require.NoError(t, err)

	c1, err := enc.Encrypt([]byte("same"))
	require.NoError(t, err)
	c2, err := enc.Encrypt([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, c1, c2)
}

func TestEncryptor_AssociatedDataMismatch(t *testing.T) {
	a, err := NewEncryptor(testKey(), []byte("refs/team-a/snapshot"))
	require.NoError(t, err)
	b, err := NewEncryptor(testKey(), []byte("refs/team-b/snapshot"))
	require.NoError(t, err)

	ciphertext, err := a.Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = b.Decrypt(ciphertext)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptor_WrongKey(t *testing.T) {
	enc, err := NewEncryptor(testKey(), nil)
	require.NoError(t, err)
	other, err := GenerateKey()
	require.NoError(t, err)
	wrong, err := NewEncryptor(other, nil)
	require.NoError(t, err)

	ciphertext, err := enc.Encrypt([]byte("secret"))
	require.NoError(t, err)

	_, err = wrong.Decrypt(ciphertext)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptor_TamperedCiphertext(t *testing.T) {
	enc, err := NewEncryptor(testKey(), nil)
	require.NoError(t, err)

	ciphertext, err := enc.Encrypt([]byte("secret"))
	require.NoError(t, err)
	ciphertext[len(ciphertext)-1] ^= 0xff

	_, err = enc.Decrypt(ciphertext)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptor_CiphertextTooShort(t *testing.T) {
	enc, err := NewEncryptor(testKey(), nil)
	require.NoError(t, err)

	_, err = enc.Decrypt([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestNewEncryptor_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "not hex", key: "zz"},
		{name: "too short", key: "0011"},
		{name: "too long", key: testKey() + "00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncryptor(tt.key, nil)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	assert.Len(t, key, 2*KeySize)
	_, err = NewEncryptor(key, nil)
	assert.NoError(t, err)

	another, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, another)
}
