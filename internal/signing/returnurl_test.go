package signing

import "testing"

const testSecret = "whsec_test_1234"

func signedParams() map[string]string {
	params := map[string]string{
		"status":      "success",
		"checkout_id": "chk_789",
		"order_id":    "ord_42",
	}
	params[SignatureParam] = Sign(params, testSecret)
	return params
}

func TestEvaluateVerified(t *testing.T) {
	res := Evaluate(signedParams(), testSecret)
	if res.State != StateVerified {
		t.Fatalf("expected verified, got %s", res.State)
	}
	if !res.Verified() {
		t.Fatalf("Verified() should be true")
	}
	if _, ok := res.Params[SignatureParam]; ok {
		t.Fatalf("signature must be stripped from sanitized params")
	}
	if res.Params["checkout_id"] != "chk_789" {
		t.Fatalf("sanitized params should keep payload fields")
	}
}

func TestEvaluateTamperedParam(t *testing.T) {
	params := signedParams()
	params["status"] = "failed"
	res := Evaluate(params, testSecret)
	if res.State != StateInvalid {
		t.Fatalf("tampered payload should be invalid, got %s", res.State)
	}
}

func TestEvaluateTamperedSignature(t *testing.T) {
	params := signedParams()
	params[SignatureParam] = "deadbeef"
	if res := Evaluate(params, testSecret); res.State != StateInvalid {
		t.Fatalf("bad signature should be invalid, got %s", res.State)
	}
}

func TestEvaluateMissingSignature(t *testing.T) {
	params := signedParams()
	delete(params, SignatureParam)
	if res := Evaluate(params, testSecret); res.State != StateMissingSignature {
		t.Fatalf("expected missing_signature, got %s", res.State)
	}
}

func TestEvaluateMissingSecret(t *testing.T) {
	res := Evaluate(signedParams(), "")
	if res.State != StateMissingSecret {
		t.Fatalf("expected missing_secret, got %s", res.State)
	}
	if res.State == StateInvalid {
		t.Fatalf("missing secret must stay distinguishable from tampering")
	}
}

func TestSignOrderStable(t *testing.T) {
	a := Sign(map[string]string{"b": "2", "a": "1"}, testSecret)
	b := Sign(map[string]string{"a": "1", "b": "2"}, testSecret)
	if a != b {
		t.Fatalf("signature must not depend on map order: %s vs %s", a, b)
	}
	c := Sign(map[string]string{"a": "1", "b": "3"}, testSecret)
	if a == c {
		t.Fatalf("different payloads must sign differently")
	}
}
