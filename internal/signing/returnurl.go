package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// State classifies the outcome of a return-URL signature check.
type State string

const (
	StateVerified         State = "verified"
	StateInvalid          State = "invalid"
	StateMissingSignature State = "missing_signature"
	StateMissingSecret    State = "missing_secret"
)

// SignatureParam is the query parameter the payment provider appends to
// success/cancel redirect URLs.
const SignatureParam = "signature"

// Result carries the verification state plus the sanitized parameter map the
// signature was computed over. Callers must not trust status/checkout fields
// unless State is StateVerified.
type Result struct {
	State  State
	Params map[string]string
}

// Verified reports whether the payload can be trusted.
func (r Result) Verified() bool { return r.State == StateVerified }

// Evaluate checks the provider signature over the given query parameters.
// A missing secret fails closed but stays distinguishable from tampering.
func Evaluate(params map[string]string, secret string) Result {
	sanitized := make(map[string]string, len(params))
	provided := ""
	for k, v := range params {
		if k == SignatureParam {
			provided = v
			continue
		}
		sanitized[k] = v
	}

	if strings.TrimSpace(secret) == "" {
		return Result{State: StateMissingSecret, Params: sanitized}
	}
	if provided == "" {
		return Result{State: StateMissingSignature, Params: sanitized}
	}

	expected := Sign(sanitized, secret)
	if hmac.Equal([]byte(expected), []byte(strings.ToLower(provided))) {
		return Result{State: StateVerified, Params: sanitized}
	}
	return Result{State: StateInvalid, Params: sanitized}
}

// Sign computes the hex HMAC-SHA256 over the order-stable encoding of params
// (keys sorted, k=v pairs joined with &). Exported for tests and for signing
// outbound return URLs handed to the provider.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == SignatureParam {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
