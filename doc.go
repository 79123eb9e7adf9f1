// Package rotawatch watches a map-pool rotation API and announces changes.
//
// A Watcher polls the latest rotation ID. When it changes, the Watcher
// fetches every configured pool, diffs each one against the last stored
// snapshot, renders a summary PNG, writes it to the image sinks, saves the
// new snapshot and uploads the image to each webhook target.
//
// Key features:
//   - One pipeline at a time; overlapping checks are rejected
//   - Snapshot stores for files, Redis, SQLite, Postgres, MongoDB and DynamoDB
//   - Atomic snapshot and image writes
//   - Optional HMAC-SHA256 signatures on webhook uploads
//   - Prometheus metrics and OpenTelemetry spans
//
// Quick start:
//
//	cat, err := catalog.Load("maps.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w, err := rotawatch.New(
//	    rotawatch.WithCatalog(cat),
//	    rotawatch.WithStore(file.New("currentRotation.json")),
//	    rotawatch.WithTargets(delivery.Target{URL: webhookURL}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w.Start(ctx)
//	defer w.Stop(ctx)
package rotawatch
