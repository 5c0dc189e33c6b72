package models

// User types.
const (
	UserTypeClient   = "client"
	UserTypeProvider = "provider"
	UserTypeAdmin    = "admin"
)

// Actor is the identity acting on behalf of a request.
type Actor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}

func (a Actor) IsClient() bool   { return a.UserType == UserTypeClient }
func (a Actor) IsProvider() bool { return a.UserType == UserTypeProvider }
func (a Actor) IsAdmin() bool    { return a.UserType == UserTypeAdmin }
