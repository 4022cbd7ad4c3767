package transport

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskRequest carries the writable task fields for create and update.
// Fields are pointers so a PUT can distinguish "absent" from "set to
// empty". Owner is never part of the wire payload; it always comes from
// the verified token subject.
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

// StringOrEmpty dereferences an optional field for create flows.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
