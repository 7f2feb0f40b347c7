package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"mindzy/internal/models"
)

// ProfileService covers onboarding and the profile screen.
type ProfileService interface {
	// Login registers a new device for userName. Passwords are not checked.
	Login(ctx context.Context, userName string, acceptedTerms bool) (deviceID string, err error)
	Get(ctx context.Context, deviceID string) (*models.Profile, error)
	Rename(ctx context.Context, deviceID, userName string) (*models.Profile, error)
	LinkTelegram(ctx context.Context, deviceID string, chatID int64) error
}

type profileService struct {
	store *StateStore
}

func NewProfileService(store *StateStore) ProfileService {
	return &profileService{store: store}
}

func (s *profileService) Login(ctx context.Context, userName string, acceptedTerms bool) (string, error) {
	if !acceptedTerms {
		return "", ErrTermsNotAccepted
	}
	if strings.TrimSpace(userName) == "" {
		return "", fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}
	deviceID := uuid.NewString()
	err := s.store.Update(ctx, deviceID, func(st *AppState) error {
		st.AcceptTerms()
		return st.SetUserName(userName)
	})
	if err != nil {
		return "", err
	}
	return deviceID, nil
}

func (s *profileService) Get(ctx context.Context, deviceID string) (*models.Profile, error) {
	var p models.Profile
	err := s.store.View(ctx, deviceID, func(st *AppState) error {
		p = st.Profile()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *profileService) Rename(ctx context.Context, deviceID, userName string) (*models.Profile, error) {
	var p models.Profile
	err := s.store.Update(ctx, deviceID, func(st *AppState) error {
		if err := st.SetUserName(userName); err != nil {
			return err
		}
		p = st.Profile()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *profileService) LinkTelegram(ctx context.Context, deviceID string, chatID int64) error {
	return s.store.Update(ctx, deviceID, func(st *AppState) error {
		st.LinkTelegram(chatID)
		return nil
	})
}
