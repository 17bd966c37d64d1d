// Package profile keeps the single farmer profile of the client. Login and
// registration are mock: credentials are accepted without verification.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/storage"
)

const DefaultKey = "user"

var (
	ErrNotLoggedIn     = errors.New("no profile is logged in")
	ErrEmailRequired   = errors.New("email is required")
	ErrInvalidLanguage = errors.New("preferred language must be en, sn or nd")
	ErrInvalidLevel    = errors.New("experience level must be beginner, intermediate or advanced")
)

// Registration is the sign-up form. Password is accepted and discarded.
type Registration struct {
	Name              string                 `json:"name"`
	Email             string                 `json:"email"`
	Password          string                 `json:"password"`
	Phone             string                 `json:"phone"`
	Location          string                 `json:"location"`
	FarmSize          *float64               `json:"farm_size"`
	PreferredLanguage models.Language        `json:"preferred_language"`
	ExperienceLevel   models.ExperienceLevel `json:"experience_level"`
	PrimaryCrops      []string               `json:"primary_crops"`
}

// Update holds profile edits. Empty fields leave the stored value alone.
type Update struct {
	Name              string                 `json:"name"`
	Email             string                 `json:"email"`
	Phone             string                 `json:"phone"`
	Location          string                 `json:"location"`
	FarmSize          *float64               `json:"farm_size"`
	PreferredLanguage models.Language        `json:"preferred_language"`
	ExperienceLevel   models.ExperienceLevel `json:"experience_level"`
	PrimaryCrops      []string               `json:"primary_crops"`
}

type Service struct {
	store  storage.Storage
	key    string
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store storage.Storage, key string, logger *zap.Logger) *Service {
	if key == "" {
		key = DefaultKey
	}
	return &Service{
		store:  store,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
}

// Current returns the stored profile or ErrNotLoggedIn.
func (s *Service) Current(ctx context.Context) (models.UserProfile, error) {
	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return models.UserProfile{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Login signs in a demo farmer under the given email.
func (s *Service) Login(ctx context.Context, email, _ string) (models.UserProfile, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.UserProfile{}, ErrEmailRequired
	}

	farmSize := 5.0
	p := models.UserProfile{
		ID:                uuid.New().String(),
		Name:              "John Farmer",
		Email:             email,
		Phone:             "+263 77 123 4567",
		Location:          "Harare, Zimbabwe",
		FarmSize:          &farmSize,
		PreferredLanguage: models.LanguageEnglish,
		PrimaryCrops:      []string{"Maize", "Tomatoes"},
		CreatedAt:         s.now(),
		JoinedAt:          time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
	}

	if err := s.save(ctx, p); err != nil {
		return models.UserProfile{}, err
	}
	s.logger.Info("Profile logged in", zap.String("profile_id", p.ID))
	return p, nil
}

func (s *Service) Register(ctx context.Context, r Registration) (models.UserProfile, error) {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return models.UserProfile{}, ErrEmailRequired
	}

	lang := r.PreferredLanguage
	if lang == "" {
		lang = models.LanguageEnglish
	}
	if !validLanguage(lang) {
		return models.UserProfile{}, ErrInvalidLanguage
	}
	if !validLevel(r.ExperienceLevel) {
		return models.UserProfile{}, ErrInvalidLevel
	}

	crops := r.PrimaryCrops
	if crops == nil {
		crops = []string{}
	}

	now := s.now()
	p := models.UserProfile{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(r.Name),
		Email:             email,
		Phone:             r.Phone,
		Location:          r.Location,
		FarmSize:          r.FarmSize,
		PreferredLanguage: lang,
		ExperienceLevel:   r.ExperienceLevel,
		PrimaryCrops:      crops,
		CreatedAt:         now,
		JoinedAt:          now,
	}

	if err := s.save(ctx, p); err != nil {
		return models.UserProfile{}, err
	}
	s.logger.Info("Profile registered", zap.String("profile_id", p.ID))
	return p, nil
}

// Update merges u into the stored profile.
func (s *Service) Update(ctx context.Context, u Update) (models.UserProfile, error) {
	p, err := s.Current(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}

	if u.PreferredLanguage != "" && !validLanguage(u.PreferredLanguage) {
		return models.UserProfile{}, ErrInvalidLanguage
	}
	if !validLevel(u.ExperienceLevel) {
		return models.UserProfile{}, ErrInvalidLevel
	}

	setIf(&p.Name, u.Name)
	setIf(&p.Email, u.Email)
	setIf(&p.Phone, u.Phone)
	setIf(&p.Location, u.Location)
	if u.FarmSize != nil {
		p.FarmSize = u.FarmSize
	}
	if u.PreferredLanguage != "" {
		p.PreferredLanguage = u.PreferredLanguage
	}
	if u.ExperienceLevel != "" {
		p.ExperienceLevel = u.ExperienceLevel
	}
	if u.PrimaryCrops != nil {
		p.PrimaryCrops = u.PrimaryCrops
	}
	if p.PrimaryCrops == nil {
		p.PrimaryCrops = []string{}
	}

	if err := s.save(ctx, p); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (s *Service) save(ctx context.Context, p models.UserProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.store.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func validLanguage(l models.Language) bool {
	switch l {
	case models.LanguageEnglish, models.LanguageShona, models.LanguageNdebele:
		return true
	}
	return false
}

// validLevel accepts the empty level as "not given".
func validLevel(l models.ExperienceLevel) bool {
	if l == "" {
		return true
	}
	_, ok := models.ParseExperienceLevel(string(l))
	return ok
}
