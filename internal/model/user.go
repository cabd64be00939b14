package model

// User is a staff account. The password hash never leaves this process:
// it is excluded from JSON on purpose.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
}
