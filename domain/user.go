package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessRegister      = "user registered successfully"
	MessageSuccessLogin         = "login successful"
	MessageSuccessGoogleLogin   = "google login successful"
	MessageSuccessGetMe         = "user profile retrieved successfully"
	MessageSuccessUpdateProfile = "profile updated successfully"
	MessageNoChangesProfile     = "no changes detected, profile left untouched"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGoogleLogin   = "failed to login with google"
	MessageFailedGetMe         = "failed to retrieve user profile"
	MessageFailedUpdateProfile = "failed to update profile"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidGoogleToken = errors.New("invalid google id token")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	GoogleLoginRequest struct {
		IDToken string `json:"idToken" validate:"required"`
	}

	// UpdateProfileRequest is sparse like UpdateBillRequest: nil means the
	// field was absent from the form.
	UpdateProfileRequest struct {
		Name    *string
		Phone   *string
		Address *string
		Picture *multipart.FileHeader
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	UserResponse struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone,omitempty"`
		Address    string `json:"address,omitempty"`
		PictureURL string `json:"pictureUrl,omitempty"`
	}
)
