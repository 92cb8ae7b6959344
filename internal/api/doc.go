// Package api provides the HTTP REST server for bookmarkd.
//
// Routes split into three groups: the public auth endpoints
// (signup/login/logout), the refresh endpoint guarded by refresh-token
// authentication, and the protected resource endpoints (profile,
// bookmarks) guarded by access-token authentication. Error responses use
// a structured JSON envelope with a fixed status mapping: bad credentials
// and duplicate identities are 403, missing or invalid tokens are 401,
// ownership violations are 403, missing resources are 404.
//
// The server follows the lifecycle pattern:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
