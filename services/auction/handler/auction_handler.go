package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"card-auction/internal/auctionerrors"
	auction "card-auction/internal/auctionService"
	model "card-auction/internal/models"
	"card-auction/services/auction/helpers"
	"card-auction/utils"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, in auction.CreateAuctionInput) (*model.Auction, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error)
	GetAuction(ctx context.Context, auctionID string) (*model.Auction, error)
	GetBidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	GetWinningBid(ctx context.Context, auctionID string) (*model.Bid, error)
}

type ReputationReader interface {
	Get(ctx context.Context, userID string) (*model.UserReputation, error)
}

type AuctionHandler struct {
	service    AuctionServiceInterface
	reputation ReputationReader
}

func NewAuctionHandler(service AuctionServiceInterface, reputation ReputationReader) *AuctionHandler {
	return &AuctionHandler{service: service, reputation: reputation}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	in := auction.CreateAuctionInput{
		ListingID:            req.ListingID,
		SellerID:             req.SellerID,
		StartAt:              req.StartAt,
		EndAt:                req.EndAt,
		StartPrice:           req.StartPrice,
		Increment:            req.Increment,
		AutoRelistOnUnpaid:   req.AutoRelistOnUnpaid,
		AutoRelistAfterHours: req.AutoRelistAfterHours,
	}
	if req.ReservePrice != nil {
		in.ReservePrice = decimal.NullDecimal{Decimal: *req.ReservePrice, Valid: true}
	}
	if req.BuyNowPrice != nil {
		in.BuyNowPrice = decimal.NullDecimal{Decimal: *req.BuyNowPrice, Valid: true}
	}

	created, err := h.service.CreateAuction(c.Request.Context(), in)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler":    "CreateAuctionHandler",
			"listing_id": req.ListingID,
			"seller_id":  req.SellerID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(created), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.AuctionID,
		"listing_id": created.ListingID,
	})
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), req.AuctionID, req.BidderID, req.Amount)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": req.AuctionID,
			"bidder_id":  req.BidderID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": bid.AuctionID,
		"bidder_id":  bid.BidderID,
		"amount":     bid.Amount.String(),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(a), "auction retrieved successfully")
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetBidsForAuction(c.Request.Context(), auctionID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByAuctionHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// GetWinningBidHandler handles GET /auctions/:auction_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bid, err := h.service.GetWinningBid(c.Request.Context(), auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, "NO_BIDS", err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"auction_id": auctionID})
			return
		}
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
}

// GetReputationHandler handles GET /users/:user_id/reputation
func (h *AuctionHandler) GetReputationHandler(c *gin.Context) {
	userID := c.Param("user_id")
	rep, err := h.reputation.Get(c.Request.Context(), userID)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetReputationHandler: error retrieving reputation", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, rep, "reputation retrieved successfully")
}
