package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"flashquest-backend/internal/models"
)

// PlayerStore is the slice of the player repository the auth flow needs.
type PlayerStore interface {
	Create(ctx context.Context, player *models.Player) error
	GetByName(ctx context.Context, name string) (*models.Player, error)
	EmailOrNameTaken(ctx context.Context, email, name string) (bool, error)
}

type AuthService struct {
	players PlayerStore
}

func NewAuthService(players PlayerStore) *AuthService {
	return &AuthService{players: players}
}

// Signup creates a new player. Duplicate email or name is reported as one
// combined conflict, without saying which field collided.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.Player, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return nil, &ValidationError{Message: "Email, username and password are required."}
	}

	taken, err := s.players.EmailOrNameTaken(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &ConflictError{Message: "Email or name already exists."}
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	player := &models.Player{
		Email:        req.Email,
		Name:         req.Username,
		PasswordHash: string(hash),
	}

	if err := s.players.Create(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// Login verifies the credential by player name. The failure message never
// reveals whether the name or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Player, error) {
	player, err := s.players.GetByName(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &UnauthorizedError{Message: "Wrong username or password."}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &UnauthorizedError{Message: "Wrong username or password."}
	}

	return player, nil
}

// Service error types, mapped to HTTP status in the handlers.

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }
