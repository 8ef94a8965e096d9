package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"card-auction/internal/auctionerrors"
	model "card-auction/internal/models"
	"card-auction/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, "VALIDATION", wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to an HTTP status, a stable
// reason code, and a message
func MapErrorToHTTP(err error) (int, string, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "VALIDATION", "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "VALIDATION", "invalid auction parameters"
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "NOT_FOUND", "auction not found"
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "NOT_FOUND", "listing not found"
	case errors.Is(err, auctionerrors.ErrDealNotFound):
		return http.StatusNotFound, "NOT_FOUND", "deal not found"
	case errors.Is(err, auctionerrors.ErrNoReputation):
		return http.StatusNotFound, "NOT_FOUND", "no reputation calculated for user"
	case errors.Is(err, auctionerrors.ErrNotVerified):
		return http.StatusForbidden, "NOT_VERIFIED", "bidder identity is not verified"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusForbidden, "SELF_BID", "seller cannot bid on own listing"
	case errors.Is(err, auctionerrors.ErrNotSeller):
		return http.StatusForbidden, "NOT_SELLER", "caller is not the seller of the listing"
	case errors.Is(err, auctionerrors.ErrAuctionNotLive):
		return http.StatusConflict, "NOT_LIVE", "auction is not live"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "BID_TOO_LOW", "bid amount below minimum"
	case errors.Is(err, auctionerrors.ErrAuctionExists):
		return http.StatusConflict, "AUCTION_EXISTS", "listing already has an auction"
	case errors.Is(err, auctionerrors.ErrActiveDealExists):
		return http.StatusConflict, "ACTIVE_DEAL_EXISTS", "listing already has an active deal"
	case errors.Is(err, auctionerrors.ErrNotAuctionType):
		return http.StatusConflict, "NOT_AUCTION_TYPE", "listing is not an auction listing"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "NO_BIDS", "no bids found for auction"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// NewBidResponse shapes a bid for the wire.
func NewBidResponse(bid *model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		AuctionID: bid.AuctionID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewAuctionResponse shapes an auction for the wire.
func NewAuctionResponse(a *model.Auction) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:  a.AuctionID,
		ListingID:  a.ListingID,
		Status:     string(a.Status),
		StartAt:    a.StartAt.UTC().Format(time.RFC3339),
		EndAt:      a.EndAt.UTC().Format(time.RFC3339),
		StartPrice: a.StartPrice,
		Increment:  a.Increment,
		TopBidID:   a.TopBidID,
	}
	resp.ReservePrice = nullDecimalPtr(a.ReservePrice)
	resp.BuyNowPrice = nullDecimalPtr(a.BuyNowPrice)
	resp.TopAmount = nullDecimalPtr(a.TopAmount)
	return resp
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
