package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
	"github.com/upzy-app/hub-api/pkg/brdoc"
	"github.com/upzy-app/hub-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuração para geração de tokens de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: registro e login.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	jwtCfg         JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, membershipRepo repository.MembershipRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, membershipRepo: membershipRepo, jwtCfg: jwtCfg}
}

// Register cria uma identidade: valida CPF/CNPJ, faz hash do password com
// bcrypt e persiste. Devolve ErrEmailAlreadyExists se o email já existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if err := brdoc.ValidateDocument(in.TaxID); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Phone != "" {
		if err := brdoc.ValidatePhone(in.Phone); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        brdoc.FormatPhone(in.Phone),
		TaxID:        brdoc.FormatDocument(in.TaxID),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, gera o JWT de sessão e retorna token +
// usuário. O token embute a empresa padrão e o papel do usuário nela.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	role := ""
	if user.CompanyID != "" {
		if m, err := uc.membershipRepo.Get(ctx, user.ID, user.CompanyID); err == nil && m != nil {
			role = m.Role
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		TaxID:     u.TaxID,
		CompanyID: u.CompanyID,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
