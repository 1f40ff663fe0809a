package handlers

import (
	"encoding/json"
	"net/http"

	"linebell/middleware"
	"linebell/models"
	"linebell/store"

	"golang.org/x/crypto/bcrypt"
)

// AdminHandler serves the ops API: token issuance and the cross-owner
// reminder listing.
type AdminHandler struct {
	store        *store.Store
	auth         *middleware.Authenticator
	passwordHash []byte
}

func NewAdminHandler(s *store.Store, auth *middleware.Authenticator, adminPassword string) (*AdminHandler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &AdminHandler{store: s, auth: auth, passwordHash: hash}, nil
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.auth.GenerateToken("admin")
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{Token: token})
}

// ListReminders returns every reminder across all owners.
func (h *AdminHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.store.GetAllReminders()
	if err != nil {
		http.Error(w, "Failed to fetch reminders", http.StatusInternalServerError)
		return
	}

	if reminders == nil {
		reminders = []models.Reminder{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminders)
}
