package auth

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SocialRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
