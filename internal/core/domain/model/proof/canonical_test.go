package proof

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

// signRaw signs arbitrary bytes so that payload checks can be reached past the digest.
func signRaw(t *testing.T, s *Signer, payload string) Token {
	t.Helper()
	sum, err := s.digest([]byte(payload))
	require.NoError(t, err)
	return Token{
		Payload:   base64.StdEncoding.EncodeToString([]byte(payload)),
		Signature: hex.EncodeToString(sum),
	}
}

func TestVerify_RejectsNonCanonicalSignedPayload(t *testing.T) {
	s, err := NewSigner("top-secret")
	require.NoError(t, err)
	o, st := kernel.NewUUID().String(), kernel.NewUUID().String()

	cases := map[string]string{
		"reordered keys": `{"student_id":"` + st + `","order_id":"` + o + `"}`,
		"whitespace":     `{"order_id": "` + o + `", "student_id": "` + st + `"}`,
		"extra field":    `{"extra":"x","order_id":"` + o + `","student_id":"` + st + `"}`,
		"missing field":  `{"order_id":"` + o + `"}`,
		"bad uuid":       `{"order_id":"nope","student_id":"` + st + `"}`,
		"nil uuid":       `{"order_id":"00000000-0000-0000-0000-000000000000","student_id":"` + st + `"}`,
		"not json":       `order=` + o,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(signRaw(t, s, payload))

			require.ErrorIs(t, err, ErrMalformedProof)
		})
	}

	t.Run("canonical payload passes", func(t *testing.T) {
		_, err := s.Verify(signRaw(t, s, `{"order_id":"`+o+`","student_id":"`+st+`"}`))

		require.NoError(t, err)
	})
}
