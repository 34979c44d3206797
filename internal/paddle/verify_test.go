package paddle

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // matching the production signature scheme
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genKeyPEM(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signFields(t *testing.T, key *rsa.PrivateKey, fields map[string]string) string {
	t.Helper()
	digest := sha1.Sum(SerializeFields(fields)) //nolint:gosec
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA1, digest[:])
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(sig)
}

func TestVerifyValidSignature(t *testing.T) {
	key, pubPEM := genKeyPEM(t)
	v, err := NewVerifier(pubPEM)
	require.NoError(t, err)

	fields := map[string]string{
		"alert_name":  "payment_succeeded",
		"passthrough": "job-123",
		"currency":    "USD",
	}
	sig := signFields(t, key, fields)

	assert.NoError(t, v.Verify(fields, sig))
}

func TestVerifyTamperedPayload(t *testing.T) {
	key, pubPEM := genKeyPEM(t)
	v, err := NewVerifier(pubPEM)
	require.NoError(t, err)

	fields := map[string]string{"alert_name": "payment_succeeded", "passthrough": "job-123"}
	sig := signFields(t, key, fields)

	fields["passthrough"] = "job-456"
	assert.ErrorIs(t, v.Verify(fields, sig), ErrInvalidSignature)
}

func TestVerifyWrongKey(t *testing.T) {
	key, _ := genKeyPEM(t)
	_, otherPEM := genKeyPEM(t)
	v, err := NewVerifier(otherPEM)
	require.NoError(t, err)

	fields := map[string]string{"alert_name": "payment_succeeded"}
	assert.ErrorIs(t, v.Verify(fields, signFields(t, key, fields)), ErrInvalidSignature)
}

func TestVerifyBadBase64(t *testing.T) {
	_, pubPEM := genKeyPEM(t)
	v, err := NewVerifier(pubPEM)
	require.NoError(t, err)

	err = v.Verify(map[string]string{"a": "b"}, "!!! not base64 !!!")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestNewVerifierFromFile(t *testing.T) {
	_, pubPEM := genKeyPEM(t)
	path := filepath.Join(t.TempDir(), "paddle.pem")
	require.NoError(t, os.WriteFile(path, []byte(pubPEM), 0o600))

	v, err := NewVerifier(path)
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestNewVerifierRejectsGarbage(t *testing.T) {
	_, err := NewVerifier("")
	assert.Error(t, err)

	_, err = NewVerifier("-----BEGIN PUBLIC KEY-----\nnot valid\n-----END PUBLIC KEY-----")
	assert.Error(t, err)

	_, err = NewVerifier(filepath.Join(t.TempDir(), "missing.pem"))
	assert.Error(t, err)
}

func TestSerializeFieldsSortsByKey(t *testing.T) {
	got := SerializeFields(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, "123", string(got))

	assert.Empty(t, SerializeFields(nil))
}
