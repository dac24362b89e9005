package services

import (
	"context"
	"database/sql"
	"errors"

	"jewelbox/internal/auth"
	"jewelbox/internal/domain"
	"jewelbox/internal/repos"
	"jewelbox/internal/validate"
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *auth.Tokens
	Cost   int
}

func NewAuthService(users *repos.UserRepo, tokens *auth.Tokens, cost int) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Cost: cost}
}

// Session is a user plus a freshly issued bearer token.
type Session struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, invalid("Email and password are required")
	}
	if !validate.Password(password) {
		return Session{}, invalid("Password must be at least %d characters long", validate.MinPasswordLen)
	}
	email, ok := validate.Email(email)
	if !ok {
		return Session{}, invalid("A valid email address is required")
	}
	name, ok = validate.Name(name)
	if !ok {
		return Session{}, invalid("Name is too long")
	}

	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return Session{}, newError(KindConflict, "User with this email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return Session{}, err
	}

	hash, err := auth.HashPassword(password, s.Cost)
	if err != nil {
		return Session{}, err
	}
	u, err := s.Users.Create(ctx, email, hash, name)
	if errors.Is(err, repos.ErrDuplicate) {
		return Session{}, newError(KindConflict, "User with this email already exists")
	}
	if err != nil {
		return Session{}, err
	}
	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	if email == "" || password == "" {
		return Session{}, invalid("Email and password are required")
	}
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrBadCreds
	}
	if err != nil {
		return Session{}, err
	}
	if !auth.CheckPassword(u.Hash, password) {
		return Session{}, ErrBadCreds
	}
	return s.session(u)
}

func (s *AuthService) session(u *domain.User) (Session, error) {
	tok, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: tok}, nil
}

// Authenticate checks a bearer token's signature and expiry only.
func (s *AuthService) Authenticate(token string) (domain.Identity, error) {
	id, err := s.Tokens.Verify(token)
	if err != nil {
		return domain.Identity{}, newError(KindAuth, "Invalid or expired token")
	}
	return id, nil
}

// VerifyToken authenticates the token and confirms its user still exists.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, invalid("Token is required")
	}
	id, err := s.Authenticate(token)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.ByID(ctx, id.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, newError(KindAuth, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
