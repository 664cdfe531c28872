package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	ClaimSupervisorID = "supervisor_id"
	ClaimUsername     = "username"
	ClaimType         = "type"

	TokenTypeAccess = "access"
)

type Service interface {
	GenerateAccessToken(supervisorID string, username string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(supervisorID string, username string) (token string, expiresAt int64, err error) {
	issuedAt := j.now()
	expiresAt = issuedAt.Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		ClaimSupervisorID: supervisorID,
		ClaimUsername:     username,
		ClaimType:         TokenTypeAccess,
		"iat":             issuedAt.Unix(),
		"exp":             expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
