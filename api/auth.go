package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	accountRepo   repository.AccountRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ar repository.AccountRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{accountRepo: ar, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "error hashing password")
		return
	}

	ctx := r.Context()

	account := models.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	accountID, err := h.accountRepo.CreateAccount(ctx, &account)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.issueToken(accountID, req.Email)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "error signing token")
		return
	}

	writeData(w, http.StatusCreated, authResponse{Token: token})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, err := h.accountRepo.GetAccountByEmail(r.Context(), req.Email)
	if err != nil || account == nil {
		writeFailure(w, http.StatusUnauthorized, "credentials not found")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		writeFailure(w, http.StatusUnauthorized, "credentials not found")
		return
	}

	token, err := h.issueToken(account.ID, req.Email)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "error signing token")
		return
	}

	writeData(w, http.StatusOK, authResponse{Token: token})
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, signout is client-side (just delete token)
	writeData(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) issueToken(accountID int64, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"email":      email,
		"exp":        time.Now().Add(h.tokenDuration).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}
