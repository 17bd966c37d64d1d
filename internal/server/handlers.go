package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/advisor"
	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/profile"
)

func (h *handler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/status
func (h *handler) status(c *gin.Context) {
	if err := h.deps.Status.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Completion API unreachable", zap.Error(err))
		respondOK(c, gin.H{"status": "disconnected", "model": h.deps.Status.Model()})
		return
	}
	respondOK(c, gin.H{"status": "connected", "model": h.deps.Status.Model()})
}

// GET /api/season
func (h *handler) season(c *gin.Context) {
	info := h.deps.Advisor.Season()
	respondOK(c, gin.H{
		"season":            info,
		"teaching_tip":      advisor.TeachingTip("general"),
		"opening_questions": advisor.OpeningQuestions(h.deps.Session.Level(), info),
	})
}

type chatRequest struct {
	Message string                 `json:"message"`
	Level   models.ExperienceLevel `json:"level"`
}

type chatResponse struct {
	Turn              models.ChatTurn         `json:"turn"`
	FollowUpQuestions []string                `json:"follow_up_questions"`
	TeachingElements  models.TeachingElements `json:"teaching_elements"`
}

// POST /api/chat
func (h *handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, advisor.ErrEmptyMessage)
		return
	}
	if req.Level != "" {
		level, ok := models.ParseExperienceLevel(strings.ToLower(string(req.Level)))
		if !ok {
			respondError(c, http.StatusBadRequest, codeInvalidRequest, errors.New("level must be beginner, intermediate or advanced"))
			return
		}
		h.deps.Session.SetLevel(level)
	}

	turn, resp, err := h.deps.Session.Submit(c.Request.Context(), req.Message)
	switch {
	case errors.Is(err, advisor.ErrEmptyMessage):
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	case errors.Is(err, advisor.ErrStaleResponse):
		respondError(c, http.StatusConflict, codeStale, err)
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, codeInternal, err)
		return
	}

	respondOK(c, chatResponse{
		Turn:              turn,
		FollowUpQuestions: resp.FollowUpQuestions,
		TeachingElements:  resp.TeachingElements,
	})
}

// GET /api/chat/messages
func (h *handler) messages(c *gin.Context) {
	respondOK(c, gin.H{
		"messages": h.deps.Session.Turns(),
		"level":    h.deps.Session.Level(),
	})
}

type ratingRequest struct {
	Rating models.Rating `json:"rating"`
}

// POST /api/chat/messages/:id/rating
func (h *handler) rate(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	err := h.deps.Session.Rate(c.Param("id"), req.Rating)
	switch {
	case errors.Is(err, advisor.ErrInvalidRating):
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	case errors.Is(err, advisor.ErrTurnNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, err)
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, codeInternal, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/recommendations
func (h *handler) recommendations(c *gin.Context) {
	soil := models.DefaultSoilData()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&soil); err != nil {
			respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
			return
		}
	}
	if soil.PH < 0 || soil.PH > 14 {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, errors.New("ph must be between 0 and 14"))
		return
	}

	respondOK(c, h.deps.Recommender.Recommend(c.Request.Context(), soil))
}

// GET /api/weather?location=
func (h *handler) weather(c *gin.Context) {
	snap, err := h.deps.Weather.Current(c.Request.Context(), c.Query("location"))
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, codeInternal, err)
		return
	}
	respondOK(c, snap)
}

// POST /api/weather/advice
func (h *handler) weatherAdvice(c *gin.Context) {
	var snap models.WeatherSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	respondOK(c, h.deps.WeatherAdvisor.Advise(c.Request.Context(), snap))
}

func (h *handler) profileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profile.ErrNotLoggedIn):
		respondError(c, http.StatusUnauthorized, codeNotLoggedIn, err)
	case errors.Is(err, profile.ErrEmailRequired), errors.Is(err, profile.ErrInvalidLanguage), errors.Is(err, profile.ErrInvalidLevel):
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
	default:
		h.logger.Error("Profile operation failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, codeInternal, errors.New("profile storage unavailable"))
	}
}

// GET /api/profile
func (h *handler) currentProfile(c *gin.Context) {
	p, err := h.deps.Profiles.Current(c.Request.Context())
	if err != nil {
		h.profileError(c, err)
		return
	}
	respondOK(c, p)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/profile/login
func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	p, err := h.deps.Profiles.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.profileError(c, err)
		return
	}
	respondOK(c, p)
}

// POST /api/profile/register
func (h *handler) register(c *gin.Context) {
	var req profile.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	p, err := h.deps.Profiles.Register(c.Request.Context(), req)
	if err != nil {
		h.profileError(c, err)
		return
	}
	if p.ExperienceLevel != "" {
		h.deps.Session.SetLevel(p.ExperienceLevel)
	}
	c.JSON(http.StatusCreated, p)
}

// PATCH /api/profile
func (h *handler) updateProfile(c *gin.Context) {
	var req profile.Update
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}

	p, err := h.deps.Profiles.Update(c.Request.Context(), req)
	if err != nil {
		h.profileError(c, err)
		return
	}
	if req.ExperienceLevel != "" {
		h.deps.Session.SetLevel(p.ExperienceLevel)
	}
	respondOK(c, p)
}

// DELETE /api/profile
func (h *handler) logout(c *gin.Context) {
	if err := h.deps.Profiles.Logout(c.Request.Context()); err != nil {
		h.profileError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
