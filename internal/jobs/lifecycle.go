package jobs

import (
	"context"
	"fmt"
	"time"

	"card-auction/internal/models"
	"card-auction/internal/repository"
	"card-auction/utils"
)

// ItemOutcome is the per-row result of a sweep. Failed rows are reported to
// the caller instead of aborting their siblings; the next tick retries them.
type ItemOutcome struct {
	ID  string
	Err error
}

// Failed returns the outcomes that carry an error.
func Failed(outcomes []ItemOutcome) []ItemOutcome {
	var failed []ItemOutcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Sweeper owns the periodic auction lifecycle and settlement sweeps.
type Sweeper struct {
	repo               repository.AuctionDB
	defaultRelistDelay time.Duration
}

// NewSweeper creates a Sweeper. defaultRelistDelay applies to relists whose
// auction sets no explicit delay; zero means the 10 minute default.
func NewSweeper(repo repository.AuctionDB, defaultRelistDelay time.Duration) *Sweeper {
	if defaultRelistDelay <= 0 {
		defaultRelistDelay = 10 * time.Minute
	}
	return &Sweeper{repo: repo, defaultRelistDelay: defaultRelistDelay}
}

// ActivateScheduledAuctions takes every due SCHEDULED auction LIVE. A pure
// status flip with no side effects; re-running it is a no-op for rows the
// predicate no longer matches.
func (s *Sweeper) ActivateScheduledAuctions(ctx context.Context) (int64, error) {
	n, err := s.repo.ActivateScheduledAuctions(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("jobs: activate scheduled auctions: %w", err)
	}
	return n, nil
}

// CloseEndedAuctions ends every LIVE auction past endAt, each in its own
// atomic unit so one row's settlement failure never blocks the others and no
// lock is held across the whole row set.
func (s *Sweeper) CloseEndedAuctions(ctx context.Context) ([]ItemOutcome, error) {
	ids, err := s.repo.ListExpiredLiveAuctionIDs(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("jobs: list expired auctions: %w", err)
	}

	outcomes := make([]ItemOutcome, 0, len(ids))
	for _, id := range ids {
		err := s.repo.WithAuction(ctx, id, s.closeOne)
		outcomes = append(outcomes, ItemOutcome{ID: id, Err: err})
	}
	return outcomes, nil
}

func (s *Sweeper) closeOne(ctx context.Context, tx repository.AuctionTx) error {
	now := time.Now().UTC()
	a := tx.Auction()

	// Re-check under the lock: a racing tick or buy-now may have ended the
	// auction between the listing query and here.
	if a.Status != models.AuctionLive || a.EndAt.After(now) {
		return nil
	}

	a.Status = models.AuctionEnded
	if err := tx.UpdateAuction(ctx, a); err != nil {
		return fmt.Errorf("jobs: end auction %s: %w", a.AuctionID, err)
	}

	if a.TopBidID == nil {
		if err := tx.UpdateListingStatus(ctx, a.ListingID, models.ListingClosed); err != nil {
			return fmt.Errorf("jobs: close listing %s: %w", a.ListingID, err)
		}
		return nil
	}

	topBid, err := tx.GetBid(ctx, *a.TopBidID)
	if err != nil {
		return fmt.Errorf("jobs: load top bid for auction %s: %w", a.AuctionID, err)
	}
	listing, err := tx.GetListing(ctx, a.ListingID)
	if err != nil {
		return fmt.Errorf("jobs: load listing for auction %s: %w", a.AuctionID, err)
	}
	if err := tx.UpdateListingStatus(ctx, a.ListingID, models.ListingSold); err != nil {
		return fmt.Errorf("jobs: mark listing %s sold: %w", a.ListingID, err)
	}

	hasDeal, err := tx.HasActiveDeal(ctx, a.ListingID)
	if err != nil {
		return fmt.Errorf("jobs: active deal check for listing %s: %w", a.ListingID, err)
	}
	if hasDeal {
		return nil
	}

	deal := &models.Deal{
		DealID:       utils.GenerateID(),
		ListingID:    a.ListingID,
		SellerID:     listing.SellerID,
		BuyerID:      topBid.BidderID,
		Status:       models.DealSold,
		Amount:       topBid.Amount,
		PaymentDueAt: now.Add(listing.PaymentWindow()),
		CreatedAt:    now,
	}
	if err := tx.InsertDeal(ctx, deal); err != nil {
		return fmt.Errorf("jobs: create deal for listing %s: %w", a.ListingID, err)
	}
	return nil
}
