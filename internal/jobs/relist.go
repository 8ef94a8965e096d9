package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"card-auction/internal/models"
	"card-auction/internal/repository"
)

// minRelistDuration is the floor for a relisted epoch's length.
const minRelistDuration = time.Hour

// AutoRelistUnpaidAuctions compensates unpaid sales: for every SOLD deal
// past its payment deadline on an auto-relist auction, it clears the bid
// epoch, schedules a fresh one and marks the deal UNPAID_RELISTED. The deal
// row stays behind as the audit record of the failed sale. Deals whose
// auction has auto-relist disabled are left SOLD; remediation for those is a
// moderation concern outside this engine.
func (s *Sweeper) AutoRelistUnpaidAuctions(ctx context.Context) ([]ItemOutcome, error) {
	overdue, err := s.repo.ListOverdueUnpaidDeals(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("jobs: list overdue unpaid deals: %w", err)
	}

	outcomes := make([]ItemOutcome, 0, len(overdue))
	for _, od := range overdue {
		err := s.repo.WithAuction(ctx, od.AuctionID, func(ctx context.Context, tx repository.AuctionTx) error {
			return s.relistOne(ctx, tx, od.DealID)
		})
		outcomes = append(outcomes, ItemOutcome{ID: od.DealID, Err: err})
	}
	return outcomes, nil
}

func (s *Sweeper) relistOne(ctx context.Context, tx repository.AuctionTx, dealID string) error {
	now := time.Now().UTC()
	a := tx.Auction()

	deal, err := tx.GetDeal(ctx, dealID)
	if err != nil {
		return fmt.Errorf("jobs: load deal %s: %w", dealID, err)
	}
	// Re-check under the lock: payment may have landed, or a racing tick may
	// have relisted already.
	if deal.Status != models.DealSold || !deal.PaymentDueAt.Before(now) {
		return nil
	}

	if err := tx.DeleteBidsForAuction(ctx, a.AuctionID); err != nil {
		return fmt.Errorf("jobs: clear bids for auction %s: %w", a.AuctionID, err)
	}

	delay := s.defaultRelistDelay
	if a.AutoRelistAfterHours != nil {
		delay = time.Duration(*a.AutoRelistAfterHours) * time.Hour
	}
	duration := a.EndAt.Sub(a.StartAt)
	if duration < minRelistDuration {
		duration = minRelistDuration
	}

	a.Status = models.AuctionScheduled
	a.StartAt = now.Add(delay)
	a.EndAt = a.StartAt.Add(duration)
	a.TopBidID = nil
	a.TopAmount = decimal.NullDecimal{}
	if err := tx.UpdateAuction(ctx, a); err != nil {
		return fmt.Errorf("jobs: reset auction %s: %w", a.AuctionID, err)
	}

	if err := tx.UpdateListingStatus(ctx, a.ListingID, models.ListingActive); err != nil {
		return fmt.Errorf("jobs: reactivate listing %s: %w", a.ListingID, err)
	}

	deal.Status = models.DealUnpaidRelisted
	deal.UnpaidRelistedAt = &now
	if err := tx.UpdateDeal(ctx, deal); err != nil {
		return fmt.Errorf("jobs: mark deal %s unpaid: %w", dealID, err)
	}
	return nil
}
