package signature_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/xraph/rotawatch/signature"
)

func TestSignKnownVector(t *testing.T) {
	body := []byte("--boundary\r\nimage bytes\r\n--boundary--")
	secret := "rwsec_testsecret123"
	timestamp := int64(1700000000)

	got := signature.Sign(body, secret, timestamp)

	content := fmt.Sprintf("%d.%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(content))
	expected := "v1=" + hex.EncodeToString(mac.Sum(nil))

	if got != expected {
		t.Errorf("Sign() = %q, want %q", got, expected)
	}
}

func TestSignDependsOnEveryInput(t *testing.T) {
	body := []byte("original")
	secret := "rwsec_tamper"
	ts := int64(1700000002)
	sig := signature.Sign(body, secret, ts)

	if signature.Sign([]byte("changed"), secret, ts) == sig {
		t.Error("signature ignores the body")
	}
	if signature.Sign(body, "rwsec_other", ts) == sig {
		t.Error("signature ignores the secret")
	}
	if signature.Sign(body, secret, ts+1) == sig {
		t.Error("signature ignores the timestamp")
	}
}

func TestApply(t *testing.T) {
	body := []byte("payload")
	h := http.Header{}
	signature.Apply(h, body, "rwsec_hdr", time.Unix(1700000005, 0))

	if h.Get(signature.HeaderTimestamp) != "1700000005" {
		t.Fatalf("timestamp header: got %q", h.Get(signature.HeaderTimestamp))
	}
	if sig := h.Get(signature.HeaderSignature); len(sig) != 67 || sig[:3] != "v1=" {
		t.Fatalf("signature header: got %q", sig)
	}
	if h.Get(signature.HeaderSignature) != signature.Sign(body, "rwsec_hdr", 1700000005) {
		t.Fatal("signature header does not match Sign")
	}
}

func TestApplyWithoutSecret(t *testing.T) {
	h := http.Header{}
	signature.Apply(h, []byte("x"), "", time.Now())

	if len(h) != 0 {
		t.Fatalf("expected no headers, got %v", h)
	}
}
