package lib

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenTTL is the lifetime of every issued token: 3,600,000 seconds.
const TokenTTL = 3600000 * time.Second

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("token is not valid")
)

type TokenUser struct {
	ID string `json:"id"`
}

// TokenClaims is the signed payload: {"user": {"id": ...}} plus iat/exp
type TokenClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// GenerateJWT signs a token for the given user ID
func (s *TokenService) GenerateJWT(userID primitive.ObjectID) (string, error) {
	issuedAt := s.now()
	claims := TokenClaims{
		User: TokenUser{ID: userID.Hex()},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyJWT checks signature and expiry and returns the user ID it carries
func (s *TokenService) VerifyJWT(tokenString string) (primitive.ObjectID, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.User.ID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return userID, nil
}
