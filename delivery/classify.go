package delivery

import "net/http"

// Classify maps an upload result to its outcome.
//
//   - 2xx → Delivered
//   - 404, 410 → Gone
//   - anything else, including 0 (connection/timeout error) → Failed
//
// There is no retry: the next rotation change produces a fresh upload.
func Classify(res Result) Outcome {
	code := res.StatusCode

	if res.Error == "" && code >= 200 && code < 300 {
		return OutcomeDelivered
	}
	if code == http.StatusNotFound || code == http.StatusGone {
		return OutcomeGone
	}
	return OutcomeFailed
}
