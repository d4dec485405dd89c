package proof

import (
	"bytes"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"

	"github.com/zeebo/blake3"
)

// keyContext separates proof keys from any other key derived from the same secret.
const keyContext = "campusdelivery 2026-10-19 delivery proof signing key v1"

const (
	keySize    = 32
	digestSize = 32

	claimOrderID   = "order_id"
	claimStudentID = "student_id"
)

var (
	// ErrMalformedProof is returned when a token cannot be parsed: bad base64
	// or hex, bad JSON, a payload that is not in canonical form, or bad ids.
	ErrMalformedProof = errors.New("proof: malformed")
	// ErrInvalidSignature is returned when the digest does not match the payload.
	ErrInvalidSignature = errors.New("proof: invalid signature")
	// ErrNoCodeFound is returned when an uploaded image contains no readable code.
	ErrNoCodeFound = errors.New("proof: no code found in image")
)

// Claims is what a valid proof asserts: the order belongs to the student.
type Claims struct {
	OrderID   kernel.UUID
	StudentID kernel.UUID
}

// Signer mints and verifies delivery proofs with a key derived from a secret.
// A Signer is immutable and safe for concurrent use.
type Signer struct {
	key [keySize]byte
}

// NewSigner derives the signing key from secret. An empty secret is rejected.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("proof secret")
	}
	s := &Signer{}
	blake3.DeriveKey(keyContext, []byte(secret), s.key[:])
	return s, nil
}

// Mint signs the canonical claims for orderID and studentID. The result is
// deterministic for the same ids and secret.
func (s *Signer) Mint(orderID, studentID kernel.UUID) (Token, error) {
	if err := errors.Join(orderID.Validate(), studentID.Validate()); err != nil {
		return Token{}, err
	}

	payload, err := canonical(orderID, studentID)
	if err != nil {
		return Token{}, err
	}

	sum, err := s.digest(payload)
	if err != nil {
		return Token{}, err
	}

	return Token{
		Payload:   base64.StdEncoding.EncodeToString(payload),
		Signature: hex.EncodeToString(sum),
	}, nil
}

// Verify checks the token and returns its claims. It fails closed: the
// signature is checked before the payload is interpreted.
func (s *Signer) Verify(t Token) (Claims, error) {
	payload, err := base64.StdEncoding.DecodeString(t.Payload)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: payload: %v", ErrMalformedProof, err)
	}
	signature, err := hex.DecodeString(t.Signature)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: signature: %v", ErrMalformedProof, err)
	}
	if len(signature) != digestSize {
		return Claims{}, fmt.Errorf("%w: signature is %d bytes, want %d", ErrMalformedProof, len(signature), digestSize)
	}

	expected, err := s.digest(payload)
	if err != nil {
		return Claims{}, err
	}
	if subtle.ConstantTimeCompare(expected, signature) != 1 {
		return Claims{}, ErrInvalidSignature
	}

	return parseClaims(payload)
}

func (s *Signer) digest(payload []byte) ([]byte, error) {
	hasher, err := blake3.NewKeyed(s.key[:])
	if err != nil {
		return nil, fmt.Errorf("proof: init keyed hash: %w", err)
	}
	_, _ = hasher.Write(payload)
	return hasher.Sum(nil), nil
}

// canonical renders the claims as JSON with sorted keys and no whitespace.
// encoding/json sorts map keys, which is the canonical order.
func canonical(orderID, studentID kernel.UUID) ([]byte, error) {
	return json.Marshal(map[string]string{
		claimOrderID:   orderID.String(),
		claimStudentID: studentID.String(),
	})
}

func parseClaims(payload []byte) (Claims, error) {
	var raw map[string]string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Claims{}, fmt.Errorf("%w: payload: %v", ErrMalformedProof, err)
	}
	if len(raw) != 2 {
		return Claims{}, fmt.Errorf("%w: payload has %d fields, want 2", ErrMalformedProof, len(raw))
	}

	orderID, err := kernel.UUIDFromString(raw[claimOrderID])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %s: %v", ErrMalformedProof, claimOrderID, err)
	}
	studentID, err := kernel.UUIDFromString(raw[claimStudentID])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %s: %v", ErrMalformedProof, claimStudentID, err)
	}

	again, err := canonical(orderID, studentID)
	if err != nil {
		return Claims{}, err
	}
	if !bytes.Equal(again, payload) {
		return Claims{}, fmt.Errorf("%w: payload is not canonical", ErrMalformedProof)
	}

	return Claims{OrderID: orderID, StudentID: studentID}, nil
}
