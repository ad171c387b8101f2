package types

// CreateUserRequest registers a backend profile for a freshly signed-up
// principal. The filter starts empty and the subscription is off until
// the email is verified.
type CreateUserRequest struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// SyncUserRequest upserts a backend profile from an external identity,
// used after federated sign-in where no explicit signup step ran.
type SyncUserRequest struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// UnsubscribeRequest carries the opaque token from an unsubscribe link.
type UnsubscribeRequest struct {
	Token string `json:"token"`
}

// ResendVerificationRequest asks the backend to send a new
// verification email.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}
