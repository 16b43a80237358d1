package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultJWKSURL is Google's published signing-key set for ID tokens.
const DefaultJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

var (
	ErrTokenInvalid  = errors.New("id token is invalid")
	ErrUnknownKeyID  = errors.New("id token signed with unknown key")
	ErrWrongAudience = errors.New("id token was issued for a different client")
	ErrWrongIssuer   = errors.New("id token was not issued by google")
)

// Claims carries the identity fields the application consumes from a
// verified Google ID token.
type Claims struct {
	Subject      string
	Email        string
	Name         string
	Picture      string
	HostedDomain string
}

// TokenVerifier validates an interactive sign-in token and extracts the
// provider identity. It is an interface so handlers can be exercised with a
// fake in tests.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (Claims, error)
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Kid string `json:"kid,omitempty"`
	Alg string `json:"alg,omitempty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k jwk) publicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

// GoogleVerifier validates Google-issued ID tokens against Google's JWKS.
// Keys are cached and refreshed at most once per refresh interval.
type GoogleVerifier struct {
	clientID   string
	jwksURL    string
	httpClient *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func NewGoogleVerifier(clientID, jwksURL string) *GoogleVerifier {
	if jwksURL == "" {
		jwksURL = DefaultJWKSURL
	}
	return &GoogleVerifier{
		clientID: clientID,
		jwksURL:  jwksURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

const jwksRefreshInterval = time.Hour

func (v *GoogleVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetchedAt) < jwksRefreshInterval {
		return key, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var set jwkSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}
	v.keys = keys
	v.fetchedAt = time.Now()

	key, ok := v.keys[kid]
	if !ok {
		return nil, ErrUnknownKeyID
	}
	return key, nil
}

type googleClaims struct {
	jwt.RegisteredClaims
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	HostedDomain string `json:"hd"`
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (Claims, error) {
	var claims googleClaims
	token, err := jwt.ParseWithClaims(idToken, &claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		return v.key(ctx, kid)
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if claims.Issuer != "accounts.google.com" && claims.Issuer != "https://accounts.google.com" {
		return Claims{}, ErrWrongIssuer
	}
	if v.clientID != "" {
		found := false
		for _, aud := range claims.Audience {
			if aud == v.clientID {
				found = true
				break
			}
		}
		if !found {
			return Claims{}, ErrWrongAudience
		}
	}

	return Claims{
		Subject:      claims.Subject,
		Email:        claims.Email,
		Name:         claims.Name,
		Picture:      claims.Picture,
		HostedDomain: claims.HostedDomain,
	}, nil
}
