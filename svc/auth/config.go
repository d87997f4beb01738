package auth

import "time"

type Config struct {
	SecretKey       string        `env:"JWT_SECRET_KEY,required"`                 // SecretKey signs access and refresh tokens (HS256).
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" envDefault:"30m"`   // AccessTokenTTL is the access token lifetime.
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" envDefault:"168h"` // RefreshTokenTTL is the refresh token lifetime and its storage TTL.
	Issuer          string        `env:"JWT_ISSUER" envDefault:"identikit"`       // Issuer is written to the iss claim.
	BcryptCost      int           `env:"AUTH_BCRYPT_COST" envDefault:"10"`        // BcryptCost is the bcrypt work factor.
}
