package services

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IDTokenVerifier is satisfied by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// SignInResult is returned by the sign-in flows.
type SignInResult struct {
	Token string          `json:"token"`
	User  *models.Profile `json:"user"`
}

// UserService handles signup, sign-in and profile updates.
type UserService struct {
	userRepository repositories.UserRepository
	credentials    CredentialService
	accounts       AccountGenerator
	firebase       IDTokenVerifier
}

// NewUserService creates a new UserService. accounts defaults to a random
// 10-digit generator.
func NewUserService(userRepo repositories.UserRepository, credentials CredentialService, accounts AccountGenerator) *UserService {
	if accounts == nil {
		accounts = RandomAccountGenerator{}
	}
	return &UserService{
		userRepository: userRepo,
		credentials:    credentials,
		accounts:       accounts,
	}
}

// WithFirebase enables FirebaseSignIn.
func (s *UserService) WithFirebase(verifier IDTokenVerifier) *UserService {
	s.firebase = verifier
	return s
}

// Register creates a user. Account and email are derived when omitted.
func (s *UserService) Register(ctx context.Context, req models.CreateUserRequest) (*models.Profile, error) {
	if req.Password != req.CheckPassword {
		return nil, validationError("passwords do not match")
	}

	account := req.Account
	if account == "" {
		account = s.accounts.NextAccount()
	} else if err := s.ensureAccountFree(ctx, account, 0); err != nil {
		return nil, err
	}

	email := req.Email
	if email == "" {
		email = defaultEmail(account)
	}

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Account:  account,
		Email:    email,
		Name:     req.Name,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, storeError("create user", err)
	}
	return user.ToProfile(), nil
}

// ensureAccountFree reports Conflict when another user than owner holds the
// account. owner 0 means nobody.
func (s *UserService) ensureAccountFree(ctx context.Context, account string, owner uint) error {
	user, err := s.userRepository.GetUserByAccount(ctx, account)
	if err == nil {
		if user.ID == owner {
			return nil
		}
		return conflictError("account already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeError("get user by account", err)
	}
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, owner uint) error {
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		if user.ID == owner {
			return nil
		}
		return conflictError("email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storeError("get user by email", err)
	}
	return nil
}

// hashPassword treats secrets bcrypt cannot take as bad input.
func (s *UserService) hashPassword(secret string) (string, error) {
	hash, err := s.credentials.Hash(secret)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validationError("password is longer than 72 bytes")
	}
	if err != nil {
		return "", storeError("hash password", err)
	}
	return hash, nil
}

// Update applies a partial profile change. Account, email, avatar,
// introduction and password are applied only when sent and non-empty; name is
// applied whenever it is sent, including the empty string.
func (s *UserService) Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.Profile, error) {
	if req.Password != nil || req.CheckPassword != nil {
		if deref(req.Password) != deref(req.CheckPassword) {
			return nil, validationError("passwords do not match")
		}
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, lookupError("get user", "user didn't exist", err)
	}

	fields := map[string]any{}
	if v := deref(req.Account); v != "" {
		if err := s.ensureAccountFree(ctx, v, user.ID); err != nil {
			return nil, err
		}
		user.Account = v
		fields["account"] = v
	}
	if req.Name != nil {
		user.Name = *req.Name
		fields["name"] = *req.Name
	}
	if v := deref(req.Email); v != "" {
		if err := s.ensureEmailFree(ctx, v, user.ID); err != nil {
			return nil, err
		}
		user.Email = v
		fields["email"] = v
	}
	if v := deref(req.Avatar); v != "" {
		user.Avatar = v
		fields["avatar"] = v
	}
	if v := deref(req.Introduction); v != "" {
		user.Introduction = v
		fields["introduction"] = v
	}
	if v := deref(req.Password); v != "" {
		hash, err := s.hashPassword(v)
		if err != nil {
			return nil, err
		}
		user.Password = hash
		fields["password"] = hash
	}

	if err := s.userRepository.UpdateUser(ctx, user, fields); err != nil {
		return nil, storeError("update user", err)
	}
	return user.ToProfile(), nil
}

// SignIn accepts an account or an email together with the password.
func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (*SignInResult, error) {
	user, err := s.userRepository.GetUserByAccount(ctx, req.Account)
	if errors.Is(err, gorm.ErrRecordNotFound) && strings.Contains(req.Account, "@") {
		user, err = s.userRepository.GetUserByEmail(ctx, req.Account)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, validationError("account or password incorrect")
	}
	if err != nil {
		return nil, storeError("get user", err)
	}

	if err := s.credentials.Compare(user.Password, req.Password); err != nil {
		return nil, validationError("account or password incorrect")
	}
	return s.issue(user)
}

// FirebaseSignIn exchanges a Firebase ID token for a local token, registering
// the user on first sight.
func (s *UserService) FirebaseSignIn(ctx context.Context, idToken string) (*SignInResult, error) {
	if s.firebase == nil {
		return nil, validationError("firebase sign-in is not configured")
	}

	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, validationError("invalid firebase id token")
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, validationError("firebase token carries no email")
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("get user by email", err)
	}

	// Firebase users never sign in with a local password.
	secret := uuid.NewString()
	name, _ := token.Claims["name"].(string)
	profile, err := s.Register(ctx, models.CreateUserRequest{
		Email:         email,
		Name:          name,
		Password:      secret,
		CheckPassword: secret,
	})
	if err != nil {
		return nil, err
	}

	signed, err := s.credentials.IssueToken(profile)
	if err != nil {
		return nil, storeError("issue token", err)
	}
	return &SignInResult{Token: signed, User: profile}, nil
}

func (s *UserService) issue(user *models.User) (*SignInResult, error) {
	profile := user.ToProfile()
	token, err := s.credentials.IssueToken(profile)
	if err != nil {
		return nil, storeError("issue token", err)
	}
	return &SignInResult{Token: token, User: profile}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
