package services

import (
	"context"

	"mindzy/internal/models"
)

// RewardService defines the reward shop operations for one device.
type RewardService interface {
	Create(ctx context.Context, deviceID, title string, cost int, icon string) (*models.Reward, error)
	List(ctx context.Context, deviceID string) ([]models.Reward, int, error)
	Quote(ctx context.Context, deviceID, id string) (*models.RedeemQuote, error)
	Redeem(ctx context.Context, deviceID, id string) (*models.RedeemResult, error)
	Delete(ctx context.Context, deviceID, id string) error
}

type rewardService struct {
	store *StateStore
}

func NewRewardService(store *StateStore) RewardService {
	return &rewardService{store: store}
}

func (s *rewardService) Create(ctx context.Context, deviceID, title string, cost int, icon string) (*models.Reward, error) {
	var created models.Reward
	err := s.store.Update(ctx, deviceID, func(st *AppState) error {
		r, err := st.AddReward(title, cost, icon)
		created = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns the catalog together with the current balance.
func (s *rewardService) List(ctx context.Context, deviceID string) ([]models.Reward, int, error) {
	var (
		out   []models.Reward
		coins int
	)
	err := s.store.View(ctx, deviceID, func(st *AppState) error {
		out = append([]models.Reward{}, st.Rewards...)
		coins = st.Coins
		return nil
	})
	return out, coins, err
}

// Quote is the confirmation step: it never changes the balance.
func (s *rewardService) Quote(ctx context.Context, deviceID, id string) (*models.RedeemQuote, error) {
	var q *models.RedeemQuote
	err := s.store.View(ctx, deviceID, func(st *AppState) error {
		r, ok := st.Reward(id)
		if !ok {
			return ErrRewardNotFound
		}
		q = &models.RedeemQuote{
			Reward:     r,
			Balance:    st.Coins,
			Affordable: st.Coins >= r.Cost,
			Remaining:  st.Coins - r.Cost,
		}
		return nil
	})
	return q, err
}

func (s *rewardService) Redeem(ctx context.Context, deviceID, id string) (*models.RedeemResult, error) {
	var res *models.RedeemResult
	err := s.store.Update(ctx, deviceID, func(st *AppState) error {
		r, ok := st.Reward(id)
		if !ok {
			return ErrRewardNotFound
		}
		if !st.RedeemReward(id) {
			return ErrInsufficientCoins
		}
		res = &models.RedeemResult{Title: r.Title, Spent: r.Cost, Remaining: st.Coins}
		return nil
	})
	return res, err
}

func (s *rewardService) Delete(ctx context.Context, deviceID, id string) error {
	return s.store.Update(ctx, deviceID, func(st *AppState) error {
		st.DeleteReward(id)
		return nil
	})
}
