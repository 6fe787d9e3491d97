package auth

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
)

const DefaultAccessTokenExpiry = 3600 // 1 hour

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	User        *domain.User
}

type Login struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	issuer    ports.TokenIssuer
	accessExp int64
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExp int64) *Login {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	return &Login{users: users, hasher: hasher, issuer: issuer, accessExp: accessExp}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Verify runs even for unknown users so timing does not leak existence.
	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if !uc.hasher.Verify(input.Password, hash) || user == nil {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), uc.accessExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresIn: uc.accessExp, User: user}, nil
}
