// Package jwt signs and verifies HS256 JSON Web Tokens on top of
// github.com/golang-jwt/jwt/v5.
//
// Application claims embed StandardClaims:
//
//	type AccessClaims struct {
//		jwt.StandardClaims
//		Email string `json:"email"`
//	}
//
//	svc, _ := jwt.NewFromString(secret)
//	token, err := svc.Generate(AccessClaims{...})
//	var claims AccessClaims
//	err = svc.Parse(token, &claims)
//
// Parse accepts only HS256 and maps library errors onto the package
// sentinels so callers can match them with errors.Is.
package jwt
