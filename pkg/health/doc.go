// Package health provides liveness and readiness probe handlers for a
// website.
//
// The liveness handler answers OK while the process runs. The readiness
// handler runs its checks in parallel and answers 503 if any fails:
//
//	app, err := pando.New(
//	    pando.WithFS(fsys),
//	    pando.WithHandler("/_health/live", health.LivenessHandler()),
//	    pando.WithHandler("/_health/ready", health.ReadinessHandler(health.Checks{
//	        "www": health.RootCheck(fsys),
//	    }, health.WithLogger(log))),
//	)
//
// Responses are plain text, or JSON with ?format=json or an Accept header
// preferring application/json:
//
//	{"status":"unhealthy","checks":{"www":{"status":"unhealthy","error":"..."}}}
package health
