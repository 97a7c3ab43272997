package entity

// SignUpRequest is the registration payload. Validation happens in
// ValidateNewUser so that every broken field is reported, not just the first.
type SignUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// SignInRequest is the login payload.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordRequest is the self-service password change payload.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgetPasswordRequest carries the account email for password recovery.
type ForgetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of a token-based password reset.
type ResetPasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateMeRequest is the self-service profile update. Only name and email are
// representable; role or active-flag values in the request body have no field
// to land in and are dropped.
type UpdateMeRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// UserUpdateRequest is the administrative update payload.
type UserUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// UserCreateRequest is the administrative create payload (test environment only).
type UserCreateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// UserQuery supports listing users with pagination and sorting.
type UserQuery struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Sort  string `form:"sort"`
}

// Meta contains pagination metadata.
type Meta struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
	Total    int64 `json:"total"`
}

// UserUpdates is a column-keyed partial update applied by the repository.
type UserUpdates = map[string]interface{}
