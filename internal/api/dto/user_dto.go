package dto

// UpdateProfileRequest payload for PATCH /users/me. Omitted fields stay
// unchanged; role is only honored for admin callers.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}
