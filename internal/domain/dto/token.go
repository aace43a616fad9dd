package dto

type TokenResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
