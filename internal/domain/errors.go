package domain

import "errors"

var (
	// ErrCredentialMismatch: login email does not resolve to any member.
	ErrCredentialMismatch = errors.New("CREDENTIAL_MISMATCH: no active node found matching these coordinates")
	// ErrIdentityRevoked: login resolved to a BANNED member.
	ErrIdentityRevoked = errors.New("IDENTITY_REVOKED: this node has been permanently terminated from the network")
	// ErrEnrichmentUnavailable is absorbed into fallback text and never reaches a client.
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

	ErrAuthRequired      = errors.New("authentication required")
	ErrForbidden         = errors.New("role not permitted for this view")
	ErrUnknownView       = errors.New("unknown view")
	ErrRoleNotSelectable = errors.New("role cannot be selected at registration")
	ErrInvalidEmail      = errors.New("email is required")
	ErrPostNotFound      = errors.New("post not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrFlowInProgress    = errors.New("another flow is already open")
	ErrNoActiveFlow      = errors.New("no open flow")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrPasswordMismatch  = errors.New("new password and confirmation differ")
	ErrPasswordRequired  = errors.New("new password is required")
	ErrUnknownCopyType   = errors.New("unknown copy type")
	ErrUnknownContext    = errors.New("unsupported checkout context")
)
