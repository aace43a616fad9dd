package dto

// ClubCreate is the client payload for creating a club. There is no
// owner field: the owner is always the authenticated actor.
type ClubCreate struct {
	Name        string   `json:"name" validate:"required"`
	Website     string   `json:"website" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required"`
	Longitude   *float64 `json:"longitude" validate:"required"`
}

// ClubPatch carries a partial update; nil fields are left untouched.
// Identifier and owner are never patchable.
type ClubPatch struct {
	Name        *string  `json:"name"`
	Website     *string  `json:"website"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// ClubResponse is the wire representation of a club. Owner is the
// owning account's username, never an internal identifier.
type ClubResponse struct {
	URL         string  `json:"url"`
	Owner       string  `json:"owner"`
	Name        string  `json:"name"`
	Website     string  `json:"website"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
