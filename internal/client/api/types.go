package api

// Settings mirrors the per-user settings object.
type Settings struct {
	Vibrate bool `json:"vibrate"`
}

// Session is what a successful login returns.
type Session struct {
	Token    string   `json:"token"`
	ID       string   `json:"id"`
	Handle   string   `json:"handle"`
	Image    string   `json:"image"`
	Settings Settings `json:"settings"`
	Home     string   `json:"home,omitempty"`
}

// UploadURL is a presigned upload target and the public URL the object will
// have afterwards.
type UploadURL struct {
	SignedRequest string `json:"signedRequest"`
	URL           string `json:"url"`
}

type RegisterRequest struct {
	Handle   string `json:"handle"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Warning string `json:"warning,omitempty"`
}

type idResponse struct {
	ID string `json:"id"`
}
