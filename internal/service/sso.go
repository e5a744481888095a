// OIDC SSO 로그인 (선택 기능)
//
// 환경변수 OIDC_ISSUER 등이 설정된 경우에만 활성화된다.
// 코드 교환 후 ID 토큰을 검증하고, 이메일 기준으로 로컬 사용자를
// 조회/생성한 뒤 일반 로그인과 동일한 토큰 쌍을 발급한다.

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/skycopilot/backend/internal/config"
	"golang.org/x/oauth2"
)

type SSOService struct {
	auth     *AuthService
	repo     AuthRepo
	verifier *oidc.IDTokenVerifier
	oauthCfg oauth2.Config
}

// NewSSOService - OIDC 설정이 비어 있으면 (nil, nil)을 반환하고 SSO 라우트는
// 등록되지 않는다.
func NewSSOService(ctx context.Context, auth *AuthService, repo AuthRepo, cfg config.OIDCConfig) (*SSOService, error) {
	if cfg.Issuer == "" {
		return nil, nil
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, fmt.Errorf("%w: OIDC_CLIENT_ID/OIDC_CLIENT_SECRET/OIDC_REDIRECT_URL are required", ErrMisconfigured)
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider discovery failed: %w", err)
	}

	return &SSOService{
		auth:     auth,
		repo:     repo,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauthCfg: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}

// AuthURL - 로그인 리다이렉트 URL과 CSRF 방지용 state를 생성한다.
func (s *SSOService) AuthURL() (url, state string, err error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	state = base64.RawURLEncoding.EncodeToString(raw)
	return s.oauthCfg.AuthCodeURL(state), state, nil
}

// Exchange - 인가 코드를 교환하고 ID 토큰을 검증한 뒤 토큰 쌍을 발급한다.
func (s *SSOService) Exchange(ctx context.Context, code string) (string, string, int64, error) {
	token, err := s.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: code exchange failed", ErrUnauthorized)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return "", "", 0, fmt.Errorf("%w: no id_token in token response", ErrUnauthorized)
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: id_token verification failed", ErrUnauthorized)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil || claims.Email == "" {
		return "", "", 0, ErrUnauthorized
	}

	user, err := s.repo.GetUserByLoginID(ctx, claims.Email)
	if err != nil {
		if !s.repo.IsNoRows(err) {
			return "", "", 0, err
		}
		// SSO 사용자는 로컬 비밀번호가 없으므로 해시 자리에 빈 값 대신
		// 로그인 불가능한 마커를 저장한다.
		user, err = s.repo.CreateUser(ctx, claims.Email, "!sso")
		if err != nil {
			return "", "", 0, err
		}
	}

	return s.auth.issueTokens(ctx, user)
}
