package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/model"
)

// Claims is the JWT payload: the user id plus standard expiry.
type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if creds.Name == "" || creds.Email == "" || creds.Password == "" {
		fail(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(w, http.StatusInternalServerError, "could not store credentials")
		return
	}

	s.mu.Lock()
	if _, exists := s.byEmail[creds.Email]; exists {
		s.mu.Unlock()
		fail(w, http.StatusConflict, "an account with this email already exists")
		return
	}
	id := uuid.NewString()
	acct := &account{
		user: model.User{
			ID:     id,
			Name:   creds.Name,
			Email:  creds.Email,
			Avatar: fmt.Sprintf("https://picsum.photos/seed/%s/200", id),
		},
		hash: hash,
	}
	s.byID[id] = acct
	s.byEmail[creds.Email] = acct
	s.mu.Unlock()

	token, err := s.issueToken(id)
	if err != nil {
		fail(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	respond(w, http.StatusCreated, map[string]any{"user": acct.user, "token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.RLock()
	acct, ok := s.byEmail[creds.Email]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(creds.Password)) != nil {
		fail(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.issueToken(acct.user.ID)
	if err != nil {
		fail(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	respond(w, http.StatusOK, map[string]any{"user": acct.user, "token": token})
}

func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request, userID string) {
	s.mu.RLock()
	acct, ok := s.byID[userID]
	s.mu.RUnlock()
	if !ok {
		fail(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	respond(w, http.StatusOK, map[string]any{"user": acct.user})
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request, userID string) {
	var body struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Address == "" {
		fail(w, http.StatusBadRequest, "wallet address required")
		return
	}

	s.mu.Lock()
	acct, ok := s.byID[userID]
	if ok {
		acct.user.WalletAddress = body.Address
	}
	s.mu.Unlock()
	if !ok {
		fail(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	respond(w, http.StatusOK, map[string]any{"user": acct.user})
}

// issueToken signs an HS256 JWT for the user.
func (s *Server) issueToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(s.tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// withAuth wraps a handler with bearer-token verification.
func (s *Server) withAuth(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			fail(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			fail(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next(w, r, claims.UserID)
	}
}
