// Package proof mints and verifies the tamper-evident token that binds an order
// to the student who created it.
//
// A token is the canonical JSON {"order_id":"…","student_id":"…"} (keys sorted,
// no whitespace), base64 encoded, plus a hex BLAKE3 keyed digest of the JSON.
// The key is derived from a configured secret. The token travels as a small JSON
// envelope inside a QR code printed on the package; scanning it at drop-off is
// how delivery is confirmed.
//
// Verification fails closed with ErrMalformedProof or ErrInvalidSignature.
package proof
