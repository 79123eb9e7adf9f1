// Package signature signs outgoing webhook bodies with HMAC-SHA256 so a
// receiver that shares the secret can check where an upload came from.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"
)

// Header names set on signed requests.
const (
	HeaderSignature = "X-Rotawatch-Signature"
	HeaderTimestamp = "X-Rotawatch-Timestamp"
)

// Sign generates the HMAC-SHA256 signature for the given body.
// The content to sign is "{timestamp}.{body}".
// Returns a versioned signature in the format "v1=<hex>".
func Sign(body []byte, secret string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(body)
	return "v1=" + hex.EncodeToString(mac.Sum(nil))
}

// Apply signs body and sets the signature and timestamp headers on h.
// An empty secret leaves h untouched.
func Apply(h http.Header, body []byte, secret string, now time.Time) {
	if secret == "" {
		return
	}
	ts := now.Unix()
	h.Set(HeaderSignature, Sign(body, secret, ts))
	h.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
}
