package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"grouppass/internal/delivery/http/helpers"
	"grouppass/internal/domain"
)

type RecoveryController struct {
	Logger  *slog.Logger
	Service domain.RecoveryService
}

func NewRecoveryController(logger *slog.Logger, svc domain.RecoveryService) *RecoveryController {
	return &RecoveryController{
		Logger:  logger,
		Service: svc,
	}
}

// UnbanRequest is the request body for POST /recover. UserID accepts both a
// JSON number and a numeric string, matching what operator tooling sends.
type UnbanRequest struct {
	Action string      `json:"action,omitempty"`
	UserID json.Number `json:"user_id"`
}

// Unban godoc
// @Summary Unban a group member
// @Description Lifts a ban on the given member so they can rejoin through a fresh invite. Platform-side rejections are returned in a 200 envelope with success false and the platform's own description.
// @Tags recovery
// @Accept json
// @Produce json
// @Param body body controllers.UnbanRequest true "Member to unban"
// @Success 200 {object} domain.UnbanResult
// @Failure 400 {object} domain.UnbanResult "user_id missing or malformed"
// @Router /recover [post]
func (c *RecoveryController) Unban(w http.ResponseWriter, r *http.Request) {
	var req UnbanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSON(w, http.StatusBadRequest, domain.UnbanResult{Success: false, Message: "invalid request body"})
		return
	}
	if req.UserID == "" {
		helpers.WriteJSON(w, http.StatusBadRequest, domain.UnbanResult{Success: false, Message: "user_id is required"})
		return
	}
	memberID, err := req.UserID.Int64()
	if err != nil || memberID <= 0 {
		helpers.WriteJSON(w, http.StatusBadRequest, domain.UnbanResult{Success: false, Message: "user_id must be a positive integer"})
		return
	}

	result, err := c.Service.Unban(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSON(w, http.StatusBadRequest, domain.UnbanResult{Success: false, Message: "user_id must be a positive integer"})
			return
		}
		c.Logger.ErrorContext(r.Context(), "unban failed", "member_id", memberID, "err", err)
		helpers.WriteJSON(w, http.StatusInternalServerError, domain.UnbanResult{Success: false, Message: err.Error()})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result)
}
