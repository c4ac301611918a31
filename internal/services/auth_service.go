package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"travelapp/internal/auth"
	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/repositories"
	"travelapp/internal/utils"
)

// AuthService handles signup, signin and bearer-token checks.
type AuthService struct {
	Users      repositories.UserRepository
	Tokens     *auth.TokenManager
	BcryptCost int
	RequestID  string
}

type SignupInput struct {
	Fullname string
	Username string
	Password string
	Email    string
}

type SigninResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.PublicUser
}

func (s AuthService) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	in.Fullname = utils.NormalizeSpace(in.Fullname)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	switch {
	case in.Fullname == "":
		return models.User{}, domain.ValidationError{Field: "fullname", Msg: "fullname is required"}
	case in.Username == "":
		return models.User{}, domain.ValidationError{Field: "username", Msg: "username is required"}
	case in.Password == "":
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password is required"}
	}

	n, err := s.Users.CountByHandle(ctx, in.Username, in.Email)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "signup failed", Err: err}
	}
	if n > 0 {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "username or email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost())
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "signup failed", Err: err}
	}

	u := models.User{
		Fullname:     in.Fullname,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    utils.NowUTC(),
	}
	if err := s.Users.Create(ctx, &u); err != nil {
		if domain.IsConflict(err) {
			return models.User{}, err
		}
		return models.User{}, domain.InternalError{Msg: "signup failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "signup", "user created username="+u.Username)
	return u, nil
}

// Signin accepts a username or an email as handle.
func (s AuthService) Signin(ctx context.Context, handle, password string) (SigninResult, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" || password == "" {
		return SigninResult{}, domain.ValidationError{Msg: "username and password are required"}
	}

	u, err := s.Users.FindByHandle(ctx, handle)
	if err != nil {
		if domain.IsNotFound(err) {
			return SigninResult{}, domain.AuthError{}
		}
		return SigninResult{}, domain.InternalError{Msg: "signin failed", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return SigninResult{}, domain.AuthError{Err: err}
	}

	token, exp, err := s.Tokens.Issue(u.ID, u.Username, u.Fullname)
	if err != nil {
		return SigninResult{}, domain.InternalError{Msg: "signin failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "signin", "user signed in username="+u.Username)
	return SigninResult{Token: token, ExpiresAt: exp, User: u.ToPublic()}, nil
}

// Authenticate turns a raw bearer token into the caller's identity.
func (s AuthService) Authenticate(token string) (domain.RequestContext, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		msg := "invalid or expired token"
		if errors.Is(err, auth.ErrMissingToken) {
			msg = "no token provided"
		}
		return domain.RequestContext{}, domain.AuthError{Msg: msg, Err: err}
	}
	return domain.RequestContext{
		UserID:   claims.UserID,
		Username: claims.Username,
		Fullname: claims.Fullname,
	}, nil
}

func (s AuthService) cost() int {
	if s.BcryptCost < bcrypt.MinCost || s.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}
