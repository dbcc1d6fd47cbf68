package model

// UserCredential is the structured record behind `keyvault login`: a
// username/password pair stored under a single identity. Field order is
// the prompting order.
type UserCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
