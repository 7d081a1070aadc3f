package httpapi

// Request/response DTOs for the auth API. Challenge and session tokens travel
// as opaque strings; keys and responses as hex.

type registerRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Key      string `json:"key"`
}

type challengeRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type challengeResponse struct {
	Challenge string `json:"challenge"`
}

type loginRequest struct {
	Challenge string `json:"challenge"`
	Response  string `json:"response"`
	Stay      bool   `json:"stay"`
}

type passwordRequest struct {
	Challenge string `json:"challenge"`
	Response  string `json:"response"`
	NewKey    string `json:"new_key"`
}

type paramsResponse struct {
	Salt string `json:"salt"`
}

type sessionResponse struct {
	AccountID    string `json:"account_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion int64  `json:"token_version"`
}

type errorResponse struct {
	Error string `json:"error"`
}
