package unlock_session

// UnlockRequest HTTP request model
type UnlockRequest struct {
	Passcode string `json:"passcode"`
}
