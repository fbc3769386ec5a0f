package reward

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"FeastForBeasts/pkg/notification"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	RewardService interface {
		Grant(ctx context.Context, donationID string, points int) (bool, error)
		Balance(ctx context.Context, userID string) (int, error)
		Redeem(ctx context.Context, userID string, pointsCost int) (*domain.LedgerEntry, error)

		GetRewards(ctx context.Context) []domain.Reward
		RedeemReward(ctx context.Context, session domain.Session, rewardID string) (*domain.LedgerEntry, error)
		GetPointsSummary(ctx context.Context, session domain.Session) (*domain.PointsSummary, error)
		GetLedgerHistory(ctx context.Context, session domain.Session, page, limit int) ([]*domain.LedgerEntry, int64, error)
	}

	// DonationLookup resolves the owner of a donation being credited.
	DonationLookup interface {
		Get(ctx context.Context, id string) (entities.Donation, error)
	}

	rewardService struct {
		rewardRepository RewardRepository
		donations        DonationLookup
		notifier         notification.Notifier
		now              func() time.Time

		// redeemMu keeps the balance check and the debit of a redemption atomic in this process.
		redeemMu sync.Mutex
	}
)

func NewRewardService(rewardRepository RewardRepository, donations DonationLookup, notifier notification.Notifier) RewardService {
	if notifier == nil {
		notifier = notification.NopNotifier{}
	}
	return &rewardService{
		rewardRepository: rewardRepository,
		donations:        donations,
		notifier:         notifier,
		now:              time.Now,
	}
}

// PointsForDonation is the credit for a delivered donation.
func PointsForDonation(d entities.Donation) int {
	bonus := int(d.Quantity.IntPart()) * domain.REWARD_POINTS_PER_UNIT
	if bonus > domain.REWARD_MAX_UNIT_BONUS {
		bonus = domain.REWARD_MAX_UNIT_BONUS
	}
	if bonus < 0 {
		bonus = 0
	}
	return domain.REWARD_POINTS_PER_DONATION + bonus
}

// Grant credits points for a donation at most once. It reports whether a new entry was written.
func (s *rewardService) Grant(ctx context.Context, donationID string, points int) (bool, error) {
	if points <= 0 {
		return false, domain.ErrInvalidPoints
	}

	donation, err := s.donations.Get(ctx, donationID)
	if err != nil {
		return false, err
	}

	entry := &entities.RewardLedgerEntry{
		ID:          uuid.NewString(),
		UserID:      donation.UserID,
		DonationID:  &donationID,
		Type:        domain.LedgerEntryGrant,
		Points:      points,
		Description: fmt.Sprintf("Rewarded %d points for delivered donation %s", points, donationID),
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.rewardRepository.CreateGrant(ctx, entry)
	if err != nil {
		return false, err
	}
	if created {
		log.Infow("points granted", "donation_id", donationID, "user_id", donation.UserID, "points", points)
	}
	return created, nil
}

func (s *rewardService) Balance(ctx context.Context, userID string) (int, error) {
	return s.rewardRepository.GetUserBalance(ctx, userID)
}

func (s *rewardService) Redeem(ctx context.Context, userID string, pointsCost int) (*domain.LedgerEntry, error) {
	if pointsCost <= 0 {
		return nil, domain.ErrInvalidPoints
	}
	return s.redeem(ctx, userID, pointsCost, nil, fmt.Sprintf("Redeemed %d points", pointsCost))
}

func (s *rewardService) redeem(ctx context.Context, userID string, pointsCost int, rewardID *string, description string) (*domain.LedgerEntry, error) {
	s.redeemMu.Lock()
	defer s.redeemMu.Unlock()

	entry := &entities.RewardLedgerEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		RewardID:    rewardID,
		Type:        domain.LedgerEntryRedeem,
		Points:      -pointsCost, // Negative for spending
		Description: description,
		CreatedAt:   s.now().UTC(),
	}

	err := s.rewardRepository.WithinTransaction(ctx, func(repo RewardRepository) error {
		if rewardID != nil {
			redeemed, err := repo.HasRedeemedReward(ctx, userID, *rewardID)
			if err != nil {
				return err
			}
			if redeemed {
				return domain.ErrRewardAlreadyRedeemed
			}
		}

		balance, err := repo.GetUserBalance(ctx, userID)
		if err != nil {
			return err
		}
		if balance < pointsCost {
			return &domain.InsufficientPointsError{Balance: balance, Required: pointsCost}
		}
		return repo.CreateRedemption(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return toDomainLedgerEntry(entry), nil
}

func (s *rewardService) GetRewards(ctx context.Context) []domain.Reward {
	out := make([]domain.Reward, len(domain.RewardCatalog))
	copy(out, domain.RewardCatalog)
	return out
}

func (s *rewardService) RedeemReward(ctx context.Context, session domain.Session, rewardID string) (*domain.LedgerEntry, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	reward, ok := domain.FindReward(rewardID)
	if !ok {
		return nil, domain.ErrInvalidReward
	}

	redeemed, err := s.rewardRepository.HasRedeemedReward(ctx, session.UserID, reward.ID)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return nil, domain.ErrRewardAlreadyRedeemed
	}

	if reward.RequiredDonations > 0 {
		delivered, err := s.rewardRepository.CountUserGrants(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		if delivered < int64(reward.RequiredDonations) {
			return nil, &domain.PreconditionError{
				Reason: fmt.Sprintf("%s needs %d delivered donations, you have %d", reward.Name, reward.RequiredDonations, delivered),
			}
		}
	}

	var description string
	if reward.PointsRequired > 0 {
		description = fmt.Sprintf("Redeemed %d points for %s", reward.PointsRequired, reward.Name)
	} else {
		description = fmt.Sprintf("Unlocked %s", reward.Name)
	}

	entry, err := s.redeem(ctx, session.UserID, reward.PointsRequired, &reward.ID, description)
	if err != nil {
		return nil, err
	}

	s.notifier.RewardRedeemed(ctx, session.UserID, reward)
	return entry, nil
}

func (s *rewardService) GetPointsSummary(ctx context.Context, session domain.Session) (*domain.PointsSummary, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	stats, err := s.rewardRepository.GetUserPointsStats(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return &domain.PointsSummary{
		Balance:       stats["balance"],
		TotalGranted:  stats["total_granted"],
		TotalRedeemed: stats["total_redeemed"],
	}, nil
}

func (s *rewardService) GetLedgerHistory(ctx context.Context, session domain.Session, page, limit int) ([]*domain.LedgerEntry, int64, error) {
	if err := session.Validate(); err != nil {
		return nil, 0, err
	}

	entries, count, err := s.rewardRepository.GetUserLedgerEntries(ctx, session.UserID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toDomainLedgerEntry(entry))
	}

	return result, count, nil
}

func toDomainLedgerEntry(entry *entities.RewardLedgerEntry) *domain.LedgerEntry {
	out := &domain.LedgerEntry{
		ID:          entry.ID,
		UserID:      entry.UserID,
		Type:        entry.Type,
		Points:      entry.Points,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
	if entry.DonationID != nil {
		out.DonationID = *entry.DonationID
	}
	if entry.RewardID != nil {
		out.RewardID = *entry.RewardID
	}
	return out
}
