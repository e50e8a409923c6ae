package dto

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type PageResponse struct {
	OK     bool `json:"ok"`
	Data   any  `json:"data"`
	Limit  int  `json:"limit"`
	Offset int  `json:"offset"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	AuditDropped int64  `json:"audit_dropped"`
}
