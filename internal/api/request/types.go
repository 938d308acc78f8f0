package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
	Address     string `json:"address,omitempty"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Address     string `json:"address,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateAddressRequest is the request body for changing the reward address
type UpdateAddressRequest struct {
	Address string `json:"address"`
}

// GenerateCategoryRequest asks for a new category around a theme
type GenerateCategoryRequest struct {
	Theme string `json:"theme"`
}

// StartRoundRequest is the request body for starting a round.
// An empty category picks one at random.
type StartRoundRequest struct {
	CategoryID string `json:"category_id,omitempty"`
}

// CellRequest is the request body for press and extend
type CellRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// ClaimRequest is the request body for claiming a round's reward.
// The player's stored address is used when Address is empty.
type ClaimRequest struct {
	Address string `json:"address,omitempty"`
}
