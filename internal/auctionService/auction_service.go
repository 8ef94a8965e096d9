package auction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"card-auction/internal/auctionerrors"
	"card-auction/internal/models"
	"card-auction/internal/repository"
	"card-auction/utils"
)

// IdentityVerifier answers the externally maintained question "is this user
// verified?". The engine consumes the fact, it never mutates it.
type IdentityVerifier interface {
	IsVerified(ctx context.Context, userID string) (bool, error)
}

// AuctionService implements the bid placement protocol and auction creation.
type AuctionService struct {
	repo     repository.AuctionDB
	identity IdentityVerifier
}

// NewAuctionService creates a new AuctionService instance.
func NewAuctionService(repo repository.AuctionDB, identity IdentityVerifier) *AuctionService {
	return &AuctionService{
		repo:     repo,
		identity: identity,
	}
}

// CreateAuctionInput carries the seller's auction parameters.
type CreateAuctionInput struct {
	ListingID            string
	SellerID             string
	StartAt              time.Time
	EndAt                time.Time
	StartPrice           decimal.Decimal
	Increment            decimal.Decimal
	ReservePrice         decimal.NullDecimal
	BuyNowPrice          decimal.NullDecimal
	AutoRelistOnUnpaid   bool
	AutoRelistAfterHours *int
}

// CreateAuction validates the input, checks the caller owns an auction-type
// listing without an existing auction, and creates a SCHEDULED auction. The
// activation sweep takes it LIVE.
func (s *AuctionService) CreateAuction(ctx context.Context, in CreateAuctionInput) (*models.Auction, error) {
	if err := validateAuctionInput(in); err != nil {
		return nil, err
	}

	listing, err := s.repo.GetListing(ctx, in.ListingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load listing %s: %w", in.ListingID, err)
	}
	if listing.SellerID != in.SellerID {
		return nil, fmt.Errorf("service: listing %s: %w", in.ListingID, auctionerrors.ErrNotSeller)
	}
	if listing.Type != models.ListingTypeAuction {
		return nil, fmt.Errorf("service: listing %s: %w", in.ListingID, auctionerrors.ErrNotAuctionType)
	}
	if _, err := s.repo.GetAuctionByListing(ctx, in.ListingID); err == nil {
		return nil, fmt.Errorf("service: listing %s: %w", in.ListingID, auctionerrors.ErrAuctionExists)
	}

	auction := &models.Auction{
		AuctionID:            utils.GenerateID(),
		ListingID:            in.ListingID,
		Status:               models.AuctionScheduled,
		StartAt:              in.StartAt.UTC(),
		EndAt:                in.EndAt.UTC(),
		StartPrice:           in.StartPrice,
		Increment:            in.Increment,
		ReservePrice:         in.ReservePrice,
		BuyNowPrice:          in.BuyNowPrice,
		AutoRelistOnUnpaid:   in.AutoRelistOnUnpaid,
		AutoRelistAfterHours: in.AutoRelistAfterHours,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("service: failed to create auction for listing %s: %w", in.ListingID, err)
	}
	return auction, nil
}

func validateAuctionInput(in CreateAuctionInput) error {
	if in.ListingID == "" || in.SellerID == "" {
		return fmt.Errorf("service: %w - missing listingID or sellerID", auctionerrors.ErrInvalidAuction)
	}
	if !in.StartAt.Before(in.EndAt) {
		return fmt.Errorf("service: %w - startAt must precede endAt", auctionerrors.ErrInvalidAuction)
	}
	if in.StartPrice.Sign() <= 0 {
		return fmt.Errorf("service: %w - non-positive start price", auctionerrors.ErrInvalidAuction)
	}
	if in.Increment.Sign() <= 0 {
		return fmt.Errorf("service: %w - non-positive increment", auctionerrors.ErrInvalidAuction)
	}
	if in.ReservePrice.Valid && in.ReservePrice.Decimal.Sign() <= 0 {
		return fmt.Errorf("service: %w - non-positive reserve price", auctionerrors.ErrInvalidAuction)
	}
	if in.BuyNowPrice.Valid && in.BuyNowPrice.Decimal.Sign() <= 0 {
		return fmt.Errorf("service: %w - non-positive buy-now price", auctionerrors.ErrInvalidAuction)
	}
	if in.AutoRelistAfterHours != nil && (*in.AutoRelistAfterHours < 1 || *in.AutoRelistAfterHours > 168) {
		return fmt.Errorf("service: %w - autoRelistAfterHours must be within 1..168", auctionerrors.ErrInvalidAuction)
	}
	return nil
}

// PlaceBid runs the whole validate-then-write sequence as one atomic unit
// under the auction's exclusive lock. A rejection performs zero writes; two
// concurrent bids on the same auction are serialized, so the later one
// evaluates its minimum against the earlier one's committed top amount.
func (s *AuctionService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return nil, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	verified, err := s.identity.IsVerified(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to check verification of bidder %s: %w", bidderID, err)
	}
	if !verified {
		return nil, fmt.Errorf("service: bidder %s: %w", bidderID, auctionerrors.ErrNotVerified)
	}

	var placed *models.Bid
	err = s.repo.WithAuction(ctx, auctionID, func(ctx context.Context, tx repository.AuctionTx) error {
		now := time.Now().UTC()
		a := tx.Auction()

		if a.Status != models.AuctionLive || now.Before(a.StartAt) || now.After(a.EndAt) {
			return fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrAuctionNotLive)
		}

		listing, err := tx.GetListing(ctx, a.ListingID)
		if err != nil {
			return fmt.Errorf("service: failed to load listing %s: %w", a.ListingID, err)
		}
		if listing.SellerID == bidderID {
			return fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrSelfBid)
		}

		minBid := a.MinimumBid()
		if amount.LessThan(minBid) {
			return fmt.Errorf("service: %w - Bid too low. Minimum %s", auctionerrors.ErrBidTooLow, minBid.String())
		}

		bid := &models.Bid{
			BidID:     utils.GenerateID(),
			AuctionID: auctionID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: now,
		}
		if err := tx.InsertBid(ctx, bid); err != nil {
			return fmt.Errorf("service: failed to record bid on auction %s: %w", auctionID, err)
		}

		a.TopBidID = &bid.BidID
		a.TopAmount = decimal.NullDecimal{Decimal: amount, Valid: true}

		// Buy-now settles the sale inside the same unit as the bid insert.
		if a.BuyNowPrice.Valid && amount.GreaterThanOrEqual(a.BuyNowPrice.Decimal) {
			a.Status = models.AuctionEnded
			if err := tx.UpdateAuction(ctx, a); err != nil {
				return fmt.Errorf("service: failed to end auction %s: %w", auctionID, err)
			}
			if err := tx.UpdateListingStatus(ctx, listing.ListingID, models.ListingSold); err != nil {
				return fmt.Errorf("service: failed to mark listing %s sold: %w", listing.ListingID, err)
			}
			deal := &models.Deal{
				DealID:       utils.GenerateID(),
				ListingID:    listing.ListingID,
				SellerID:     listing.SellerID,
				BuyerID:      bidderID,
				Status:       models.DealSold,
				Amount:       amount,
				PaymentDueAt: now.Add(listing.PaymentWindow()),
				CreatedAt:    now,
			}
			if err := tx.InsertDeal(ctx, deal); err != nil {
				return fmt.Errorf("service: failed to create deal for listing %s: %w", listing.ListingID, err)
			}
		} else {
			if err := tx.UpdateAuction(ctx, a); err != nil {
				return fmt.Errorf("service: failed to update top bid on auction %s: %w", auctionID, err)
			}
		}

		placed = bid
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// GetAuction returns an auction for the read surface.
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (*models.Auction, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	a, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// GetBidsForAuction returns all bids of the auction's current epoch.
func (s *AuctionService) GetBidsForAuction(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := s.repo.GetBidsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetWinningBid returns the auction's current top bid.
func (s *AuctionService) GetWinningBid(ctx context.Context, auctionID string) (*models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	a, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	if a.TopBidID == nil {
		return nil, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	bid, err := s.repo.GetBid(ctx, *a.TopBidID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}
	return bid, nil
}
