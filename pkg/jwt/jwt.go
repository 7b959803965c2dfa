package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles reconocidos por la API de slotting.
const (
	RoleAdmin    = "admin"    // configura bodegas y genera planes
	RolePlanner  = "planner"  // genera y consulta planes
	RoleOperator = "operator" // consulta planes y ejecuta movimientos en piso
)

var (
	ErrEmptySecret = errors.New("jwt: secret vacío")
	ErrUnknownRole = errors.New("jwt: rol desconocido")
)

// KnownRole indica si role es uno de los roles de la API.
func KnownRole(role string) bool {
	switch role {
	case RoleAdmin, RolePlanner, RoleOperator:
		return true
	}
	return false
}

// Claims emitidos por el servicio de identidad. Un Role vacío se acepta aquí
// y lo rechaza RequireRole.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Verifier valida tokens HS256 de un emisor.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewVerifier construye un Verifier. issuer vacío = no se valida el emisor.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Verifier{secret: []byte(secret), issuer: issuer, leeway: 30 * time.Second}, nil
}

// Verify valida firma, algoritmo, expiración y emisor, y devuelve los claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	if claims.Role != "" && !KnownRole(claims.Role) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	return claims, nil
}

// Sign firma claims con HS256 fijando iat/exp. Lo usan los tests y las
// herramientas de operación; los tokens de producción se emiten aguas arriba.
func Sign(secret, issuer string, c Claims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	c.Issuer = issuer
	if c.Subject == "" {
		c.Subject = c.UserID
	}
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
