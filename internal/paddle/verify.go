// Package paddle integrates with the Paddle classic vendor API: creating
// pay links and verifying webhook notification signatures.
package paddle

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // Paddle classic webhooks are signed with RSA-SHA1; not our choice.
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// SignatureField is the form field carrying the detached signature. It is not
// part of the signed payload.
const SignatureField = "p_signature"

// ErrInvalidSignature is returned when a webhook signature does not verify.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Verifier checks Paddle webhook signatures: base64 RSA PKCS1v15 over the
// SHA-1 digest of the payload's field values concatenated in key order.
type Verifier struct {
	key *rsa.PublicKey
}

// NewVerifier builds a Verifier from PEM key material or a path to a PEM file.
func NewVerifier(publicKey string) (*Verifier, error) {
	material := strings.TrimSpace(publicKey)
	if material == "" {
		return nil, errors.New("public key is required")
	}
	if !strings.HasPrefix(material, "-----BEGIN") {
		raw, err := os.ReadFile(material)
		if err != nil {
			return nil, fmt.Errorf("read public key file: %w", err)
		}
		material = string(raw)
	}

	block, _ := pem.Decode([]byte(material))
	if block == nil {
		return nil, errors.New("public key is not valid PEM")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unsupported public key type %T", parsed)
	}
	return &Verifier{key: rsaKey}, nil
}

// Verify checks signature (base64) against the payload fields. The caller
// must already have removed SignatureField from fields.
func (v *Verifier) Verify(fields map[string]string, signature string) error {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	digest := sha1.Sum(SerializeFields(fields)) //nolint:gosec // see package note on RSA-SHA1
	if err := rsa.VerifyPKCS1v15(v.key, crypto.SHA1, digest[:], sig); err != nil {
		return ErrInvalidSignature
	}
	return nil
}

// SerializeFields concatenates field values in ascending key order, the byte
// stream Paddle signs.
func SerializeFields(fields map[string]string) []byte {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(fields[k])
	}
	return []byte(b.String())
}
