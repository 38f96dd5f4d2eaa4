package testutil

import (
	"net/http"

	id "riskgate/pkg/domain"
	"riskgate/pkg/requestcontext"
)

// WithAuditor adds an authenticated auditor ID to the request context,
// simulating what the auth middleware does for bearer-token requests.
func WithAuditor(req *http.Request, auditorID id.AuditorID) *http.Request {
	return req.WithContext(requestcontext.WithAuditorID(req.Context(), auditorID))
}
