package proof_test

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"sync"
	"testing"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/proof"
	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T, secret string) *proof.Signer {
	t.Helper()
	s, err := proof.NewSigner(secret)
	require.NoError(t, err)
	return s
}

func TestNewSigner(t *testing.T) {
	_, err := proof.NewSigner("")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestSigner_Mint(t *testing.T) {
	s := newSigner(t, "top-secret")
	orderID := kernel.NewUUID()
	studentID := kernel.NewUUID()

	t.Run("should be deterministic", func(t *testing.T) {
		a, err := s.Mint(orderID, studentID)
		require.NoError(t, err)
		b, err := s.Mint(orderID, studentID)
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("should produce canonical payload", func(t *testing.T) {
		tok, err := s.Mint(orderID, studentID)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(tok.Payload)
		require.NoError(t, err)
		want := `{"order_id":"` + orderID.String() + `","student_id":"` + studentID.String() + `"}`
		assert.Equal(t, want, string(raw))
		assert.Len(t, tok.Signature, 64)
	})

	t.Run("should depend on the secret", func(t *testing.T) {
		a, _ := s.Mint(orderID, studentID)
		b, _ := newSigner(t, "other-secret").Mint(orderID, studentID)

		assert.Equal(t, a.Payload, b.Payload)
		assert.NotEqual(t, a.Signature, b.Signature)
	})

	t.Run("should reject zero ids", func(t *testing.T) {
		_, err := s.Mint(kernel.UUID{}, studentID)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestSigner_Verify(t *testing.T) {
	s := newSigner(t, "top-secret")
	orderID := kernel.NewUUID()
	studentID := kernel.NewUUID()
	tok, err := s.Mint(orderID, studentID)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		claims, err := s.Verify(tok)

		require.NoError(t, err)
		assert.True(t, claims.OrderID.IsEqual(orderID))
		assert.True(t, claims.StudentID.IsEqual(studentID))
	})

	t.Run("round trip through envelope", func(t *testing.T) {
		env, err := tok.Envelope()
		require.NoError(t, err)

		parsed, err := proof.ParseEnvelope(env)
		require.NoError(t, err)
		claims, err := s.Verify(parsed)

		require.NoError(t, err)
		assert.True(t, claims.OrderID.IsEqual(orderID))
	})

	t.Run("tampered payload", func(t *testing.T) {
		forged, _ := s.Mint(kernel.NewUUID(), studentID)
		bad := proof.Token{Payload: forged.Payload, Signature: tok.Signature}

		_, err := s.Verify(bad)

		require.ErrorIs(t, err, proof.ErrInvalidSignature)
	})

	t.Run("every flipped signature byte is rejected", func(t *testing.T) {
		sig, _ := hex.DecodeString(tok.Signature)
		for i := range sig {
			flipped := append([]byte(nil), sig...)
			flipped[i] ^= 0x01

			_, err := s.Verify(proof.Token{Payload: tok.Payload, Signature: hex.EncodeToString(flipped)})

			require.ErrorIs(t, err, proof.ErrInvalidSignature, "byte %d", i)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := newSigner(t, "guess").Verify(tok)

		require.ErrorIs(t, err, proof.ErrInvalidSignature)
	})

	t.Run("malformed encodings", func(t *testing.T) {
		cases := map[string]proof.Token{
			"bad base64":       {Payload: "%%%", Signature: tok.Signature},
			"bad hex":          {Payload: tok.Payload, Signature: "zz"},
			"short signature":  {Payload: tok.Payload, Signature: tok.Signature[:10]},
			"empty everything": {},
		}
		for name, bad := range cases {
			_, err := s.Verify(bad)
			require.ErrorIs(t, err, proof.ErrMalformedProof, name)
		}
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Verify(tok)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}

func TestParseEnvelope(t *testing.T) {
	t.Run("should reject non json", func(t *testing.T) {
		_, err := proof.ParseEnvelope([]byte("https://example.org"))

		require.ErrorIs(t, err, proof.ErrMalformedProof)
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		_, err := proof.ParseEnvelope([]byte(`{"payload":"abc"}`))

		require.ErrorIs(t, err, proof.ErrMalformedProof)
	})

	t.Run("should use lowercase keys", func(t *testing.T) {
		env, err := proof.Token{Payload: "p", Signature: "s"}.Envelope()

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(env), `{"payload":"p"`))
	})
}
