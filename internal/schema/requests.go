package schema

import "fmt"

// GenerateRequest asks for speech synthesis from an existing voice model.
type GenerateRequest struct {
	ModelID string `json:"modelId"`
	Text    string `json:"text"`
}

// Validate checks required fields. Quality parameters are fixed server-side
// and not caller-configurable.
func (r *GenerateRequest) Validate() error {
	if r.ModelID == "" || r.Text == "" {
		return fmt.Errorf("Missing modelId or text")
	}
	return nil
}

// SignupRequest is the stub account-creation payload. No persistence or
// credential verification happens behind it.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

func (r *SignupRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return fmt.Errorf("Name, email, and password are required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("Password must be at least 8 characters")
	}
	return nil
}

// WaitlistRequest joins the append-only waitlist log.
type WaitlistRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

func (r *WaitlistRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("Email is required")
	}
	return nil
}
