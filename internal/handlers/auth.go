package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"studymate/internal/models"
	"studymate/pkg"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an account and issues a session token. Role and profile
// details come later through the onboarding flow.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if !strings.Contains(body.Email, "@") || len(body.Password) < 8 {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"error": "a valid email and a password of at least 8 characters are required"})
		return
	}

	var existing models.User
	err := h.db.Where("email = ?", body.Email).First(&existing).Error
	if err == nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"error": "account_conflict", "message": "An account with this email already exists."})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        body.Email,
		PasswordHash: string(hash),
	}
	if err := h.db.Create(&user).Error; err != nil {
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := pkg.CreateToken(user.ID, []byte(h.cfg.JWTSecret), h.cfg.SessionTokenTTL)
	if err != nil {
		http.Error(w, "failed to create token", http.StatusInternalServerError)
		return
	}
	log.Println("Signup: created user", user.ID)
	writeJSONResp(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

// Login verifies credentials and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User
	err := h.db.Where("email = ?", body.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusUnauthorized, map[string]any{"error": "invalid email or password"})
		return
	} else if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		writeJSONResp(w, http.StatusUnauthorized, map[string]any{"error": "invalid email or password"})
		return
	}

	token, err := pkg.CreateToken(user.ID, []byte(h.cfg.JWTSecret), h.cfg.SessionTokenTTL)
	if err != nil {
		http.Error(w, "failed to create token", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// Me returns the current account's profile and onboarding status.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	var user models.User
	err := h.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	} else if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{
		"user":      user,
		"onboarded": user.Role != "",
	})
}
