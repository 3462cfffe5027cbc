// Package api provides the HTTP REST API for pulselink core.
//
// Routes live under /api. Health, register and login are public; every
// other route needs an "Authorization: Bearer <token>" header carrying
// a token issued by POST /api/auth/login.
//
// The server follows the same lifecycle pattern as other infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api
