package domain

// Token types embedded in signed payloads.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPayload is the signed content of an access or refresh token. Admin is
// only serialized when true; it reflects the account's flag at issue time and
// is not re-read from storage while an access token is alive.
type TokenPayload struct {
	Username string `json:"username"`
	Type     string `json:"type"`
	Admin    bool   `json:"admin,omitempty"`
}
