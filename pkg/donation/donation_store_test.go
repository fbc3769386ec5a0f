package donation

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"FeastForBeasts/internal/testutil"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDonation(id string, submittedAt time.Time) entities.Donation {
	return entities.Donation{
		ID:             id,
		UserID:         "user-1",
		FoodType:       domain.DonationTypeCannedGoods,
		Quantity:       decimal.NewFromInt(10),
		QuantityUnit:   domain.UnitKilogram,
		ExpiryDate:     "2025-01-01",
		PickupLocation: "X",
		Status:         domain.StatusPending,
		SubmittedAt:    submittedAt,
	}
}

var baseTime = time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (DonationStore, DonationRepository) {
	t.Helper()
	repo := NewDonationRepository(testutil.NewTestDB(t))
	store, err := NewDonationStore(context.Background(), repo, nil)
	require.NoError(t, err)
	return store, repo
}

// failingRepository wraps a real repository and fails writes on demand.
type failingRepository struct {
	DonationRepository
	failWrites bool
	updates    int
}

var errDiskFull = errors.New("disk full")

func (r *failingRepository) CreateDonation(ctx context.Context, d *entities.Donation) error {
	if r.failWrites {
		return errDiskFull
	}
	return r.DonationRepository.CreateDonation(ctx, d)
}

func (r *failingRepository) UpdateDonation(ctx context.Context, d *entities.Donation) error {
	r.updates++
	if r.failWrites {
		return errDiskFull
	}
	return r.DonationRepository.UpdateDonation(ctx, d)
}

func TestStore_AppendThenLoad(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	d := sampleDonation("don-1", baseTime)
	d.Notes = "fragile"
	require.NoError(t, store.Append(ctx, d))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Equal(d))

	got, err := store.Get(ctx, "don-1")
	require.NoError(t, err)
	assert.True(t, got.Equal(d))
}

func TestStore_AppendDuplicate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Append(ctx, sampleDonation("don-1", baseTime)))
	err := store.Append(ctx, sampleDonation("don-1", baseTime.Add(time.Hour)))

	var dup *domain.DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "don-1", dup.ID)

	records, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.Update(ctx, "missing", func(d entities.Donation) (entities.Donation, error) { return d, nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_LoadNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Append(ctx, sampleDonation("don-b", baseTime.Add(time.Hour))))
	require.NoError(t, store.Append(ctx, sampleDonation("don-a", baseTime)))
	require.NoError(t, store.Append(ctx, sampleDonation("don-c", baseTime.Add(2*time.Hour))))
	require.NoError(t, store.Append(ctx, sampleDonation("don-d", baseTime.Add(time.Hour))))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"don-c", "don-d", "don-b", "don-a"}, ids)
}

func TestStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "donations.db")

	repo := NewDonationRepository(testutil.OpenTestDB(t, path))
	store, err := NewDonationStore(ctx, repo, DefaultSeed())
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, sampleDonation("don-1", baseTime)))
	_, err = store.Update(ctx, "don-1", func(d entities.Donation) (entities.Donation, error) {
		d.Status = domain.StatusApproved
		d.AssignedNgoID = "food-bank-abc-sug-0"
		d.AssignedNgoName = "Food Bank ABC"
		return d, nil
	})
	require.NoError(t, err)

	reopened := NewDonationRepository(testutil.OpenTestDB(t, path))
	restarted, err := NewDonationStore(ctx, reopened, DefaultSeed())
	require.NoError(t, err)

	got, err := restarted.Get(ctx, "don-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "Food Bank ABC", got.AssignedNgoName)
	assert.True(t, got.SubmittedAt.Equal(baseTime))
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))

	records, err := restarted.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "don-1", records[0].ID)
	assert.Equal(t, "DON_HIST_002", records[1].ID)
	assert.Equal(t, "DON_HIST_001", records[2].ID)
}

func TestStore_SeedWrittenOnlyOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "donations.db")

	db := testutil.OpenTestDB(t, path)
	store, err := NewDonationStore(ctx, NewDonationRepository(db), nil)
	require.NoError(t, err)
	records, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// The store was already initialized without a seed, so a later seed is ignored.
	again, err := NewDonationStore(ctx, NewDonationRepository(testutil.OpenTestDB(t, path)), DefaultSeed())
	require.NoError(t, err)
	records, err = again.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_FailedFlushRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepository{DonationRepository: NewDonationRepository(testutil.NewTestDB(t))}
	store, err := NewDonationStore(ctx, repo, nil)
	require.NoError(t, err)

	require.NoError(t, store.Append(ctx, sampleDonation("don-1", baseTime)))

	repo.failWrites = true
	_, err = store.Update(ctx, "don-1", func(d entities.Donation) (entities.Donation, error) {
		d.Status = domain.StatusApproved
		return d, nil
	})
	require.ErrorIs(t, err, errDiskFull)

	err = store.Append(ctx, sampleDonation("don-2", baseTime.Add(time.Hour)))
	require.ErrorIs(t, err, errDiskFull)

	got, err := store.Get(ctx, "don-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)

	_, err = store.Get(ctx, "don-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_MutatorErrorAndNoOp(t *testing.T) {
	ctx := context.Background()
	repo := &failingRepository{DonationRepository: NewDonationRepository(testutil.NewTestDB(t))}
	store, err := NewDonationStore(ctx, repo, nil)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sampleDonation("don-1", baseTime)))

	rejected := errors.New("rejected")
	_, err = store.Update(ctx, "don-1", func(d entities.Donation) (entities.Donation, error) {
		d.Status = domain.StatusCancelled
		return d, rejected
	})
	require.ErrorIs(t, err, rejected)

	_, err = store.Update(ctx, "don-1", func(d entities.Donation) (entities.Donation, error) { return d, nil })
	require.NoError(t, err)
	assert.Zero(t, repo.updates)

	_, err = store.Update(ctx, "don-1", func(d entities.Donation) (entities.Donation, error) {
		d.SubmittedAt = d.SubmittedAt.Add(time.Second)
		return d, nil
	})
	require.ErrorIs(t, err, errImmutableField)

	got, err := store.Get(ctx, "don-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	require.NoError(t, store.Append(ctx, sampleDonation("don-1", baseTime)))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "don-1", func(d entities.Donation) (entities.Donation, error) {
				d.Quantity = d.Quantity.Add(decimal.NewFromInt(1))
				return d, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "don-1")
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(30)), fmt.Sprintf("quantity %s", got.Quantity))
}
