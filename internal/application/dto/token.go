package dto

// InjectTokenRequest is the body of POST /api/auth/external-token.
type InjectTokenRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// Validate applies schema checks.
func (r *InjectTokenRequest) Validate() ValidationErrors {
	return Check(r)
}

// SwitchSourceRequest is the body of POST /api/auth/token-source.
type SwitchSourceRequest struct {
	Source string `json:"source" validate:"required,oneof=oauth external"`
}

// Validate applies schema checks.
func (r *SwitchSourceRequest) Validate() ValidationErrors {
	return Check(r)
}
