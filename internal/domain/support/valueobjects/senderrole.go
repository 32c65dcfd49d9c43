package valueobjects

import "fmt"

type SenderRole string

const (
	RoleUser  SenderRole = "user"
	RoleAdmin SenderRole = "admin"
)

func (r SenderRole) String() string {
	return string(r)
}

func (r SenderRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r SenderRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r SenderRole) IsUser() bool {
	return r == RoleUser
}

func NewSenderRole(s string) (SenderRole, error) {
	r := SenderRole(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid sender role: %s", s)
	}
	return r, nil
}
