package proof

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Token is a minted proof: the base64 canonical payload and its hex digest.
type Token struct {
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

// Envelope returns the JSON document that is embedded in the QR code.
func (t Token) Envelope() ([]byte, error) {
	return json.Marshal(t)
}

// ParseEnvelope reads a Token from the JSON document found in a QR code.
// Both fields must be present.
func ParseEnvelope(data []byte) (Token, error) {
	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return Token{}, fmt.Errorf("%w: envelope: %v", ErrMalformedProof, err)
	}
	if t.Payload == "" || t.Signature == "" {
		return Token{}, fmt.Errorf("%w: envelope is missing payload or signature", ErrMalformedProof)
	}
	return t, nil
}

// pngDataURIPrefix is prepended to the base64 PNG stored on the order.
const pngDataURIPrefix = "data:image/png;base64,"

// PNGDataURI wraps a PNG image as a data URI suitable for an <img> tag.
func PNGDataURI(png []byte) string {
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(png)
}
