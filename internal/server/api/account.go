package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/store"
)

// AccountHandler serves the signed-in user's own profile.
type AccountHandler struct {
	users    *store.UserRepository
	identity *Identity
	logger   *zap.SugaredLogger
}

func NewAccountHandler(users *store.UserRepository, identity *Identity, logger *zap.SugaredLogger) *AccountHandler {
	return &AccountHandler{users: users, identity: identity, logger: logger}
}

type accountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Age      int    `json:"age,omitempty"`
	City     string `json:"city"`
}

func accountFromUser(u *store.User) accountResponse {
	return accountResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Age:      u.Age,
		City:     u.City,
	}
}

// ServeHTTP routes GET and PUT /api/account.
func (h *AccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := h.identity.User(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, claims.UserID)
	case http.MethodPut:
		h.update(w, r, claims.UserID)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *AccountHandler) get(w http.ResponseWriter, userID int64) {
	user, err := h.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		h.logger.Errorw("get account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}
	writeJSON(w, http.StatusOK, accountFromUser(user))
}

type updateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
	City  string `json:"city"`
}

func (h *AccountHandler) update(w http.ResponseWriter, r *http.Request, userID int64) {
	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		current, err := h.users.GetByID(userID)
		if err == nil {
			req.Email = current.Email
		}
	}
	if err := h.users.UpdateProfile(userID, req.Name, req.Email, req.Age, req.City); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "email already taken")
			return
		}
		h.logger.Errorw("update account", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update account")
		return
	}

	h.get(w, userID)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/account/password.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims, err := h.identity.User(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.NewPassword) < 4 {
		writeError(w, http.StatusBadRequest, "password must be at least 4 characters")
		return
	}

	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := auth.ComparePassword(user.PasswordHash, req.CurrentPassword); err != nil {
		writeError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Errorw("hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}
	if err := h.users.UpdatePassword(claims.UserID, hash); err != nil {
		h.logger.Errorw("update password", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
