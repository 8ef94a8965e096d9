package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"card-auction/internal/models"
	"card-auction/internal/repository"
)

// readDeal pulls one deal through the auction's atomic unit; the memory repo
// exposes deals no other way.
func readDeal(t *testing.T, repo *repository.MemoryRepo, auctionID, dealID string) *models.Deal {
	t.Helper()
	var deal *models.Deal
	err := repo.WithAuction(context.Background(), auctionID, func(ctx context.Context, tx repository.AuctionTx) error {
		d, err := tx.GetDeal(ctx, dealID)
		if err != nil {
			return err
		}
		deal = d
		return nil
	})
	require.NoError(t, err)
	return deal
}

func TestSweeper_ActivateScheduledAuctions(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	now := time.Now().UTC()
	repo.AddUser(models.User{UserID: "seller1", Verified: true})
	repo.AddListing(models.Listing{ListingID: "listing1", SellerID: "seller1", Type: models.ListingTypeAuction, Status: models.ListingActive})
	repo.AddListing(models.Listing{ListingID: "listing2", SellerID: "seller1", Type: models.ListingTypeAuction, Status: models.ListingActive})
	repo.AddAuction(models.Auction{
		AuctionID: "due", ListingID: "listing1", Status: models.AuctionScheduled,
		StartAt: now.Add(-time.Minute), EndAt: now.Add(24 * time.Hour),
		StartPrice: decimal.NewFromInt(10), Increment: decimal.NewFromInt(1),
	})
	repo.AddAuction(models.Auction{
		AuctionID: "future", ListingID: "listing2", Status: models.AuctionScheduled,
		StartAt: now.Add(time.Hour), EndAt: now.Add(25 * time.Hour),
		StartPrice: decimal.NewFromInt(10), Increment: decimal.NewFromInt(1),
	})

	sweeper := NewSweeper(repo, 0)
	n, err := sweeper.ActivateScheduledAuctions(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	a, err := repo.GetAuction(context.Background(), "due")
	require.NoError(t, err)
	require.Equal(t, models.AuctionLive, a.Status)

	a, err = repo.GetAuction(context.Background(), "future")
	require.NoError(t, err)
	require.Equal(t, models.AuctionScheduled, a.Status)
}

func TestSweeper_CloseEndedAuctions_WithWinner(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	now := time.Now().UTC()
	repo.AddUser(models.User{UserID: "seller1", Verified: true})
	repo.AddUser(models.User{UserID: "bidder1", Verified: true})
	repo.AddListing(models.Listing{ListingID: "listing1", SellerID: "seller1", Type: models.ListingTypeAuction, Status: models.ListingActive})

	topID := "bid1"
	repo.AddAuction(models.Auction{
		AuctionID: "auction1", ListingID: "listing1", Status: models.AuctionLive,
		StartAt: now.Add(-48 * time.Hour), EndAt: now.Add(-time.Minute),
		StartPrice: decimal.NewFromInt(100), Increment: decimal.NewFromInt(10),
		TopBidID:           &topID,
		TopAmount:          decimal.NullDecimal{Decimal: decimal.NewFromInt(150), Valid: true},
		AutoRelistOnUnpaid: true,
	})
	err := repo.WithAuction(context.Background(), "auction1", func(ctx context.Context, tx repository.AuctionTx) error {
		return tx.InsertBid(ctx, &models.Bid{
			BidID: topID, AuctionID: "auction1", BidderID: "bidder1",
			Amount: decimal.NewFromInt(150), CreatedAt: now.Add(-time.Hour),
		})
	})
	require.NoError(t, err)

	sweeper := NewSweeper(repo, 0)
	outcomes, err := sweeper.CloseEndedAuctions(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Equal(t, "auction1", outcomes[0].ID)
	require.NoError(t, outcomes[0].Err)

	a, err := repo.GetAuction(context.Background(), "auction1")
	require.NoError(t, err)
	require.Equal(t, models.AuctionEnded, a.Status)

	listing, err := repo.GetListing(context.Background(), "listing1")
	require.NoError(t, err)
	require.Equal(t, models.ListingSold, listing.Status)

	// The new deal is SOLD with the top amount and the 48h default window, so
	// it shows up as overdue once past its deadline.
	overdue, err := repo.ListOverdueUnpaidDeals(context.Background(), now.Add(49*time.Hour))
	require.NoError(t, err)
	require.Len(t, overdue, 1)

	deal := readDeal(t, repo, "auction1", overdue[0].DealID)
	require.Equal(t, models.DealSold, deal.Status)
	require.Equal(t, "seller1", deal.SellerID)
	require.Equal(t, "bidder1", deal.BuyerID)
	require.True(t, deal.Amount.Equal(decimal.NewFromInt(150)))
	require.WithinDuration(t, now.Add(48*time.Hour), deal.PaymentDueAt, 2*time.Second)

	// Second sweep finds nothing to close.
	outcomes, err = sweeper.CloseEndedAuctions(context.Background())
	require.NoError(t, err)
	require.Empty(t, outcomes)
}

func TestSweeper_CloseEndedAuctions_NoBids(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	now := time.Now().UTC()
	repo.AddUser(models.User{UserID: "seller1", Verified: true})
	repo.AddListing(models.Listing{ListingID: "listing1", SellerID: "seller1", Type: models.ListingTypeAuction, Status: models.ListingActive})
	repo.AddAuction(models.Auction{
		AuctionID: "auction1", ListingID: "listing1", Status: models.AuctionLive,
		StartAt: now.Add(-48 * time.Hour), EndAt: now.Add(-time.Minute),
		StartPrice: decimal.NewFromInt(100), Increment: decimal.NewFromInt(10),
	})

	sweeper := NewSweeper(repo, 0)
	outcomes, err := sweeper.CloseEndedAuctions(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)

	a, err := repo.GetAuction(context.Background(), "auction1")
	require.NoError(t, err)
	require.Equal(t, models.AuctionEnded, a.Status)

	listing, err := repo.GetListing(context.Background(), "listing1")
	require.NoError(t, err)
	require.Equal(t, models.ListingClosed, listing.Status)
}

// A listing that already carries an active deal must not get a second one
// when its auction closes.
func TestSweeper_CloseEndedAuctions_DealAlreadyExists(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	now := time.Now().UTC()
	repo.AddUser(models.User{UserID: "seller1", Verified: true})
	repo.AddUser(models.User{UserID: "bidder1", Verified: true})
	repo.AddListing(models.Listing{ListingID: "listing1", SellerID: "seller1", Type: models.ListingTypeAuction, Status: models.ListingSold})

	topID := "bid1"
	repo.AddAuction(models.Auction{
		AuctionID: "auction1", ListingID: "listing1", Status: models.AuctionLive,
		StartAt: now.Add(-48 * time.Hour), EndAt: now.Add(-time.Minute),
		StartPrice: decimal.NewFromInt(100), Increment: decimal.NewFromInt(10),
		TopBidID:           &topID,
		TopAmount:          decimal.NullDecimal{Decimal: decimal.NewFromInt(150), Valid: true},
		AutoRelistOnUnpaid: true,
	})
	err := repo.WithAuction(context.Background(), "auction1", func(ctx context.Context, tx repository.AuctionTx) error {
		return tx.InsertBid(ctx, &models.Bid{
			BidID: topID, AuctionID: "auction1", BidderID: "bidder1",
			Amount: decimal.NewFromInt(150), CreatedAt: now.Add(-time.Hour),
		})
	})
	require.NoError(t, err)
	repo.AddDeal(models.Deal{
		DealID: "existing-deal", ListingID: "listing1", SellerID: "seller1", BuyerID: "bidder1",
		Status: models.DealSold, Amount: decimal.NewFromInt(150),
		PaymentDueAt: now.Add(-time.Hour), CreatedAt: now.Add(-2 * time.Hour),
	})

	sweeper := NewSweeper(repo, 0)
	outcomes, err := sweeper.CloseEndedAuctions(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)

	overdue, err := repo.ListOverdueUnpaidDeals(context.Background(), now.Add(72*time.Hour))
	require.NoError(t, err)
	require.Equal(t, []repository.OverdueDeal{{DealID: "existing-deal", AuctionID: "auction1"}}, overdue)
}

// One row's failure must not abort the rest of the sweep.
func TestSweeper_CloseEndedAuctions_FailureIsolation(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	now := time.Now().UTC()
	repo.AddUser(models.User{UserID: "seller1", Verified: true})
	repo.AddListing(models.Listing{ListingID: "listing2", SellerID: "seller1", Type: models.ListingTypeAuction, Status: models.ListingActive})

	// auction1's listing is missing, so settling it fails; auction2 is fine.
	topID := "ghost-bid"
	repo.AddAuction(models.Auction{
		AuctionID: "auction1", ListingID: "missing-listing", Status: models.AuctionLive,
		StartAt: now.Add(-48 * time.Hour), EndAt: now.Add(-time.Minute),
		StartPrice: decimal.NewFromInt(100), Increment: decimal.NewFromInt(10),
		TopBidID:  &topID,
		TopAmount: decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true},
	})
	repo.AddAuction(models.Auction{
		AuctionID: "auction2", ListingID: "listing2", Status: models.AuctionLive,
		StartAt: now.Add(-48 * time.Hour), EndAt: now.Add(-time.Minute),
		StartPrice: decimal.NewFromInt(100), Increment: decimal.NewFromInt(10),
	})

	sweeper := NewSweeper(repo, 0)
	outcomes, err := sweeper.CloseEndedAuctions(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	failed := Failed(outcomes)
	require.Len(t, failed, 1)
	require.Equal(t, "auction1", failed[0].ID)
	require.Error(t, failed[0].Err)

	// The healthy row closed despite its sibling's failure.
	a, err := repo.GetAuction(context.Background(), "auction2")
	require.NoError(t, err)
	require.Equal(t, models.AuctionEnded, a.Status)

	// The failed row rolled back and stays eligible for the next tick.
	a, err = repo.GetAuction(context.Background(), "auction1")
	require.NoError(t, err)
	require.Equal(t, models.AuctionLive, a.Status)
}
