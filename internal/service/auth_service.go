package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sjwaight/gu/internal/config"
	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateEditor(ctx context.Context, req dto.CreateEditorRequest) (*dto.EditorResponse, error)
	ListEditors(ctx context.Context, includeInactive bool) ([]dto.EditorResponse, error)
	DeactivateEditor(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	editors repository.EditorRepository
	cfg     *config.Config
}

func NewAuthService(editors repository.EditorRepository, cfg *config.Config) AuthService {
	return &authService{editors: editors, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	editor, err := s.editors.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(editor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.tokenPair(editor)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	editorIDStr, ok := claims["editor_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	editorID, err := uuid.Parse(editorIDStr)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	editor, err := s.editors.FindByID(ctx, editorID)
	if err != nil || !editor.Active {
		return nil, errors.New("editor not found or inactive")
	}
	return s.tokenPair(editor)
}

func (s *authService) CreateEditor(ctx context.Context, req dto.CreateEditorRequest) (*dto.EditorResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	editor := &model.Editor{
		ID:           uuid.New(),
		Username:     req.Username,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.editors.Create(ctx, editor); err != nil {
		return nil, err
	}
	resp := editorToResponse(editor)
	return &resp, nil
}

func (s *authService) ListEditors(ctx context.Context, includeInactive bool) ([]dto.EditorResponse, error) {
	editors, err := s.editors.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EditorResponse, len(editors))
	for i := range editors {
		out[i] = editorToResponse(&editors[i])
	}
	return out, nil
}

func (s *authService) DeactivateEditor(ctx context.Context, id uuid.UUID) error {
	editor, err := s.editors.FindByID(ctx, id)
	if err != nil {
		return errors.New("editor not found")
	}
	editor.Active = false
	return s.editors.Update(ctx, editor)
}

func (s *authService) tokenPair(editor *model.Editor) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(editor, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(editor, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Editor:       editorToResponse(editor),
	}, nil
}

func (s *authService) generateToken(editor *model.Editor, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"editor_id": editor.ID.String(),
		"username":  editor.Username,
		"role":      editor.Role,
		"exp":       time.Now().Add(duration).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func editorToResponse(e *model.Editor) dto.EditorResponse {
	return dto.EditorResponse{
		ID:       e.ID.String(),
		Username: e.Username,
		Name:     e.Name,
		Email:    e.Email,
		Role:     e.Role,
		Active:   e.Active,
	}
}
