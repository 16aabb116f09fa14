package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/store"
)

// AuthHandler serves signup and login for users and the admin login.
type AuthHandler struct {
	users         *store.UserRepository
	tokens        *auth.TokenManager
	adminUsername string
	adminPassword string
	logger        *zap.SugaredLogger
}

func NewAuthHandler(users *store.UserRepository, tokens *auth.TokenManager, adminUsername, adminPassword string, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	City     string `json:"city"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"user_id,omitempty"`
	Expires  int64  `json:"expires"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Errorw("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	user := &store.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Age:          req.Age,
		City:         req.City,
	}
	if err := h.users.Create(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "username or email already taken")
			return
		}
		h.logger.Errorw("create user", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	h.session(w, user.ID, user.Username, auth.RoleUser)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.logger.Errorw("lookup user", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	h.session(w, user.ID, user.Username, auth.RoleUser)
}

// AdminLogin handles POST /api/auth/admin/login. Admin credentials come
// from configuration, not from the users table.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username != h.adminUsername || req.Password != h.adminPassword {
		writeError(w, http.StatusUnauthorized, "invalid admin credentials")
		return
	}

	h.session(w, 0, req.Username, auth.RoleAdmin)
}

func (h *AuthHandler) session(w http.ResponseWriter, userID int64, username, role string) {
	token, expiry, err := h.tokens.Sign(userID, username, role)
	if err != nil {
		h.logger.Errorw("sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:    token,
		Username: username,
		Role:     role,
		UserID:   userID,
		Expires:  expiry.Unix(),
	})
}
