package user

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/entities"
	"Billfold-Backend/internal/utils"
	"Billfold-Backend/internal/utils/storage"
	"Billfold-Backend/pkg/jwt"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		// UpdateProfile writes only fields whose value actually differs. The
		// bool result reports whether anything was written.
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.UserResponse, bool, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
		httpClient     *http.Client
		tokenInfoURL   string
		googleClientID string
	}

	googleTokenClaims struct {
		Aud     string `json:"aud"`
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		tokenInfoURL:   "https://oauth2.googleapis.com/tokeninfo",
		googleClientID: utils.GetConfig("GOOGLE_CLIENT_ID"),
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return domain.AuthResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.AuthResponse{}, err
	}

	return s.authResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	// Accounts created through google sign-in carry no password hash.
	if user.PasswordHash == "" {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	return s.authResponse(user), nil
}

func (s *userService) GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (domain.AuthResponse, error) {
	claims, err := s.verifyGoogleToken(ctx, req.IDToken)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user, err := s.userRepository.GetUserByGoogleID(ctx, claims.Sub)
	if err == nil {
		return s.authResponse(user), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	email := strings.ToLower(claims.Email)

	// An existing password account with the same email gets linked instead of
	// duplicated.
	user, err = s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		if err := s.userRepository.UpdateUserFields(ctx, user.ID.String(), map[string]interface{}{
			"google_id": claims.Sub,
		}); err != nil {
			return domain.AuthResponse{}, err
		}
		user.GoogleID = claims.Sub
		return s.authResponse(user), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	user = &entities.User{
		ID:         uuid.New(),
		Name:       claims.Name,
		Email:      email,
		GoogleID:   claims.Sub,
		PictureURL: claims.Picture,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.AuthResponse{}, err
	}

	return s.authResponse(user), nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return userToResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.UserResponse, bool, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, false, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, false, err
	}

	fields := map[string]interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != "" && name != user.Name {
			fields["name"] = name
		}
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != user.Phone {
			fields["phone"] = phone
		}
	}

	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address != user.Address {
			fields["address"] = address
		}
	}

	// Same ordering as the bill flow: new picture first, record write, then
	// best-effort delete of the replaced object.
	var newKey, oldKey string
	if req.Picture != nil {
		if !storage.ExtensionAllowed(req.Picture.Filename, storage.AllowImage...) {
			return domain.UserResponse{}, false, domain.ErrInvalidFileExtension
		}

		objectKey, err := s.s3.UploadFile(
			ctx,
			fmt.Sprintf("profile-%s", uuid.NewString()),
			req.Picture,
			fmt.Sprintf("profiles/%s", userID),
			storage.AllowImage...,
		)
		if err != nil {
			return domain.UserResponse{}, false, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		newKey = objectKey
		oldKey = user.PictureKey
		fields["picture_url"] = s.s3.GetPublicLinkKey(objectKey)
		fields["picture_key"] = objectKey
	}

	if len(fields) == 0 {
		return userToResponse(user), false, nil
	}

	if err := s.userRepository.UpdateUserFields(ctx, userID, fields); err != nil {
		if newKey != "" {
			if delErr := s.s3.DeleteFile(ctx, newKey); delErr != nil {
				log.Printf("failed to clean up uploaded profile picture %s: %v", newKey, delErr)
			}
		}
		return domain.UserResponse{}, false, err
	}

	if oldKey != "" {
		if err := s.s3.DeleteFile(ctx, oldKey); err != nil {
			log.Printf("failed to delete replaced profile picture %s: %v", oldKey, err)
		}
	}

	updated, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, false, err
	}

	return userToResponse(updated), true, nil
}

func (s *userService) verifyGoogleToken(ctx context.Context, idToken string) (*googleTokenClaims, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", s.tokenInfoURL, url.QueryEscape(idToken))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrInvalidGoogleToken
	}

	var claims googleTokenClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, domain.ErrInvalidGoogleToken
	}

	if s.googleClientID != "" && claims.Aud != s.googleClientID {
		return nil, domain.ErrInvalidGoogleToken
	}

	if claims.Sub == "" || claims.Email == "" {
		return nil, domain.ErrInvalidGoogleToken
	}

	return &claims, nil
}

func (s *userService) authResponse(user *entities.User) domain.AuthResponse {
	return domain.AuthResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), domain.RoleUser),
		User:  userToResponse(user),
	}
}

func userToResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Address:    user.Address,
		PictureURL: user.PictureURL,
	}
}
