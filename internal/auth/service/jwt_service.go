package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// Token decode errors. All of them wrap domain.ErrInvalidToken so callers can
// treat them uniformly, while logout can single out ErrTokenExpired.
var (
	// ErrTokenEmpty indicates an empty token string.
	ErrTokenEmpty = apperrors.Wrap(authDomain.ErrInvalidToken, "token is empty")

	// ErrTokenMalformed indicates the token is not a well-formed JWT.
	ErrTokenMalformed = apperrors.Wrap(authDomain.ErrInvalidToken, "token is malformed")

	// ErrTokenSignatureInvalid indicates the token signature does not verify.
	ErrTokenSignatureInvalid = apperrors.Wrap(authDomain.ErrInvalidToken, "token signature is invalid")

	// ErrTokenUnsupported indicates the token uses an unexpected signing algorithm.
	ErrTokenUnsupported = apperrors.Wrap(authDomain.ErrInvalidToken, "token algorithm is unsupported")

	// ErrTokenExpired indicates the token is past its expiration. Decode still
	// returns the claims in this case.
	ErrTokenExpired = apperrors.Wrap(authDomain.ErrInvalidToken, "token is expired")

	// ErrTokenClaimsInvalid indicates the token claims are missing or unusable.
	ErrTokenClaimsInvalid = apperrors.Wrap(authDomain.ErrInvalidToken, "token claims are invalid")
)

// accessTokenClaims is the wire representation of access token claims.
type accessTokenClaims struct {
	Authority string `json:"authority"`
	jwt.RegisteredClaims
}

// jwtService implements TokenService using HMAC-SHA256 signed JWTs.
type jwtService struct {
	signingKey []byte
	expiration time.Duration
}

// NewJWTService creates a new TokenService that signs tokens with HS256 using
// the given key. Issued tokens expire after the given duration.
func NewJWTService(signingKey []byte, expiration time.Duration) TokenService {
	return &jwtService{
		signingKey: signingKey,
		expiration: expiration,
	}
}

// Issue creates a signed access token carrying the user email as subject and
// the user's authority as a custom claim. Timestamps are truncated to second
// precision to match the JWT NumericDate encoding.
func (j *jwtService) Issue(
	user *authDomain.User,
) (string, *authDomain.AccessClaims, error) {
	issuedAt := time.Now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(j.expiration)

	claims := accessTokenClaims{
		Authority: string(user.Authority),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.signingKey)
	if err != nil {
		return "", nil, apperrors.Wrap(err, "failed to sign access token")
	}

	return signed, &authDomain.AccessClaims{
		Email:     user.Email,
		Authority: user.Authority,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Decode validates the token and returns its claims. Expiration is checked
// with zero leeway. An expired but otherwise valid token returns the claims
// together with ErrTokenExpired.
func (j *jwtService) Decode(token string) (*authDomain.AccessClaims, error) {
	if token == "" {
		return nil, ErrTokenEmpty
	}

	var claims accessTokenClaims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenUnsupported
			}
			return j.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			// The parser populated the claims before failing the exp check.
			accessClaims, claimsErr := claims.toAccessClaims()
			if claimsErr != nil {
				return nil, claimsErr
			}
			return accessClaims, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, ErrTokenUnsupported):
			return nil, ErrTokenUnsupported
		default:
			return nil, apperrors.Wrap(authDomain.ErrInvalidToken, err.Error())
		}
	}

	return claims.toAccessClaims()
}

// toAccessClaims converts wire claims to domain claims, validating required fields.
func (c *accessTokenClaims) toAccessClaims() (*authDomain.AccessClaims, error) {
	if c.Subject == "" || c.IssuedAt == nil || c.ExpiresAt == nil {
		return nil, ErrTokenClaimsInvalid
	}

	authority := authDomain.Authority(c.Authority)
	if !authDomain.ValidAuthority(authority) {
		return nil, ErrTokenClaimsInvalid
	}

	return &authDomain.AccessClaims{
		Email:     c.Subject,
		Authority: authority,
		IssuedAt:  c.IssuedAt.Time.UTC(),
		ExpiresAt: c.ExpiresAt.Time.UTC(),
	}, nil
}
