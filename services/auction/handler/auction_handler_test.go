package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"card-auction/internal/auctionerrors"
	auction "card-auction/internal/auctionService"
	model "card-auction/internal/models"
	"card-auction/internal/server"
)

type stubService struct {
	createFn     func(ctx context.Context, in auction.CreateAuctionInput) (*model.Auction, error)
	placeBidFn   func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error)
	getAuctionFn func(ctx context.Context, auctionID string) (*model.Auction, error)
	getBidsFn    func(ctx context.Context, auctionID string) ([]model.Bid, error)
	getWinningFn func(ctx context.Context, auctionID string) (*model.Bid, error)
}

func (s *stubService) CreateAuction(ctx context.Context, in auction.CreateAuctionInput) (*model.Auction, error) {
	return s.createFn(ctx, in)
}

func (s *stubService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error) {
	return s.placeBidFn(ctx, auctionID, bidderID, amount)
}

func (s *stubService) GetAuction(ctx context.Context, auctionID string) (*model.Auction, error) {
	return s.getAuctionFn(ctx, auctionID)
}

func (s *stubService) GetBidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	return s.getBidsFn(ctx, auctionID)
}

func (s *stubService) GetWinningBid(ctx context.Context, auctionID string) (*model.Bid, error) {
	return s.getWinningFn(ctx, auctionID)
}

type stubReputation struct {
	getFn func(ctx context.Context, userID string) (*model.UserReputation, error)
}

func (s *stubReputation) Get(ctx context.Context, userID string) (*model.UserReputation, error) {
	return s.getFn(ctx, userID)
}

func newTestRouter(svc *stubService, rep *stubReputation) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return server.SetupRouter(svc, rep)
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return rec, parsed
}

func TestPlaceBidHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name         string
		body         string
		placeBidFn   func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error)
		expectStatus int
		expectCode   string
	}{
		{
			name: "success",
			body: `{"auction_id":"auction1","bidder_id":"bidder1","amount":"110"}`,
			placeBidFn: func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error) {
				return &model.Bid{
					BidID: "bid1", AuctionID: auctionID, BidderID: bidderID,
					Amount: amount, CreatedAt: now,
				}, nil
			},
			expectStatus: http.StatusCreated,
		},
		{
			name:         "malformed_body",
			body:         `{"auction_id":`,
			placeBidFn:   nil, // must not be called
			expectStatus: http.StatusBadRequest,
			expectCode:   "VALIDATION",
		},
		{
			name:         "missing_amount",
			body:         `{"auction_id":"auction1","bidder_id":"bidder1"}`,
			placeBidFn:   nil,
			expectStatus: http.StatusBadRequest,
			expectCode:   "VALIDATION",
		},
		{
			name: "bid_too_low",
			body: `{"auction_id":"auction1","bidder_id":"bidder1","amount":"105"}`,
			placeBidFn: func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error) {
				return nil, fmt.Errorf("service: %w - Bid too low. Minimum 110", auctionerrors.ErrBidTooLow)
			},
			expectStatus: http.StatusConflict,
			expectCode:   "BID_TOO_LOW",
		},
		{
			name: "not_verified",
			body: `{"auction_id":"auction1","bidder_id":"bidder1","amount":"110"}`,
			placeBidFn: func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error) {
				return nil, fmt.Errorf("service: bidder %s: %w", bidderID, auctionerrors.ErrNotVerified)
			},
			expectStatus: http.StatusForbidden,
			expectCode:   "NOT_VERIFIED",
		},
		{
			name: "auction_not_live",
			body: `{"auction_id":"auction1","bidder_id":"bidder1","amount":"110"}`,
			placeBidFn: func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error) {
				return nil, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrAuctionNotLive)
			},
			expectStatus: http.StatusConflict,
			expectCode:   "NOT_LIVE",
		},
		{
			name: "auction_missing",
			body: `{"auction_id":"ghost","bidder_id":"bidder1","amount":"110"}`,
			placeBidFn: func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error) {
				return nil, fmt.Errorf("lock auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
			},
			expectStatus: http.StatusNotFound,
			expectCode:   "NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{placeBidFn: tc.placeBidFn}
			if tc.placeBidFn == nil {
				svc.placeBidFn = func(ctx context.Context, auctionID, bidderID string, amount decimal.Decimal) (*model.Bid, error) {
					t.Fatal("service must not be reached on a binding failure")
					return nil, nil
				}
			}
			router := newTestRouter(svc, &stubReputation{})

			rec, parsed := doRequest(t, router, http.MethodPost, "/bids", tc.body)
			require.Equal(t, tc.expectStatus, rec.Code)

			if tc.expectCode != "" {
				require.Equal(t, tc.expectCode, parsed["code"])
				return
			}
			data, ok := parsed["data"].(map[string]any)
			require.True(t, ok, "success body should carry bid data")
			require.Equal(t, "bid1", data["bid_id"])
			require.Equal(t, "110", data["amount"])
		})
	}
}

func TestCreateAuctionHandler(t *testing.T) {
	now := time.Now().UTC()
	startAt := now.Add(time.Hour).Format(time.RFC3339)
	endAt := now.Add(25 * time.Hour).Format(time.RFC3339)

	t.Run("created", func(t *testing.T) {
		svc := &stubService{
			createFn: func(ctx context.Context, in auction.CreateAuctionInput) (*model.Auction, error) {
				require.Equal(t, "listing1", in.ListingID)
				require.Equal(t, "seller1", in.SellerID)
				require.True(t, in.BuyNowPrice.Valid)
				require.True(t, in.BuyNowPrice.Decimal.Equal(decimal.NewFromInt(500)))
				return &model.Auction{
					AuctionID: "auction1", ListingID: in.ListingID,
					Status: model.AuctionScheduled, StartAt: in.StartAt, EndAt: in.EndAt,
					StartPrice: in.StartPrice, Increment: in.Increment,
					BuyNowPrice: in.BuyNowPrice, CreatedAt: now,
				}, nil
			},
		}
		router := newTestRouter(svc, &stubReputation{})

		body := fmt.Sprintf(`{
			"listing_id": "listing1",
			"seller_id": "seller1",
			"start_at": %q,
			"end_at": %q,
			"start_price": "100",
			"increment": "10",
			"buy_now_price": "500"
		}`, startAt, endAt)

		rec, parsed := doRequest(t, router, http.MethodPost, "/auctions", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		data, ok := parsed["data"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "auction1", data["auction_id"])
		require.Equal(t, string(model.AuctionScheduled), data["status"])
		require.Equal(t, "500", data["buy_now_price"])
	})

	t.Run("not_seller", func(t *testing.T) {
		svc := &stubService{
			createFn: func(ctx context.Context, in auction.CreateAuctionInput) (*model.Auction, error) {
				return nil, fmt.Errorf("service: listing %s: %w", in.ListingID, auctionerrors.ErrNotSeller)
			},
		}
		router := newTestRouter(svc, &stubReputation{})

		body := fmt.Sprintf(`{
			"listing_id": "listing1",
			"seller_id": "intruder",
			"start_at": %q,
			"end_at": %q,
			"start_price": "100",
			"increment": "10"
		}`, startAt, endAt)

		rec, parsed := doRequest(t, router, http.MethodPost, "/auctions", body)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Equal(t, "NOT_SELLER", parsed["code"])
	})

	t.Run("missing_required_fields", func(t *testing.T) {
		svc := &stubService{
			createFn: func(ctx context.Context, in auction.CreateAuctionInput) (*model.Auction, error) {
				t.Fatal("service must not be reached on a binding failure")
				return nil, nil
			},
		}
		router := newTestRouter(svc, &stubReputation{})

		rec, parsed := doRequest(t, router, http.MethodPost, "/auctions", `{"listing_id":"listing1"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "VALIDATION", parsed["code"])
	})
}

func TestGetBidsByAuctionHandler(t *testing.T) {
	t.Run("empty_is_array_not_null", func(t *testing.T) {
		svc := &stubService{
			getBidsFn: func(ctx context.Context, auctionID string) ([]model.Bid, error) {
				return nil, nil
			},
		}
		router := newTestRouter(svc, &stubReputation{})

		rec, parsed := doRequest(t, router, http.MethodGet, "/auctions/auction1/bids", "")
		require.Equal(t, http.StatusOK, rec.Code)

		data, ok := parsed["data"].([]any)
		require.True(t, ok, "data should be a JSON array, got %T", parsed["data"])
		require.Empty(t, data)
	})

	t.Run("returns_bids", func(t *testing.T) {
		now := time.Now().UTC()
		svc := &stubService{
			getBidsFn: func(ctx context.Context, auctionID string) ([]model.Bid, error) {
				return []model.Bid{
					{BidID: "bid1", AuctionID: auctionID, BidderID: "bidder1", Amount: decimal.NewFromInt(100), CreatedAt: now},
					{BidID: "bid2", AuctionID: auctionID, BidderID: "bidder2", Amount: decimal.NewFromInt(110), CreatedAt: now},
				}, nil
			},
		}
		router := newTestRouter(svc, &stubReputation{})

		rec, parsed := doRequest(t, router, http.MethodGet, "/auctions/auction1/bids", "")
		require.Equal(t, http.StatusOK, rec.Code)

		data, ok := parsed["data"].([]any)
		require.True(t, ok)
		require.Len(t, data, 2)
	})
}

func TestGetWinningBidHandler(t *testing.T) {
	t.Run("no_bids", func(t *testing.T) {
		svc := &stubService{
			getWinningFn: func(ctx context.Context, auctionID string) (*model.Bid, error) {
				return nil, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrNoBids)
			},
		}
		router := newTestRouter(svc, &stubReputation{})

		rec, parsed := doRequest(t, router, http.MethodGet, "/auctions/auction1/winning", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "NO_BIDS", parsed["code"])
	})

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		svc := &stubService{
			getWinningFn: func(ctx context.Context, auctionID string) (*model.Bid, error) {
				return &model.Bid{BidID: "bid9", AuctionID: auctionID, BidderID: "bidder1", Amount: decimal.NewFromInt(200), CreatedAt: now}, nil
			},
		}
		router := newTestRouter(svc, &stubReputation{})

		rec, parsed := doRequest(t, router, http.MethodGet, "/auctions/auction1/winning", "")
		require.Equal(t, http.StatusOK, rec.Code)

		data, ok := parsed["data"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "bid9", data["bid_id"])
		require.Equal(t, "200", data["amount"])
	})
}

func TestGetReputationHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		rep := &stubReputation{
			getFn: func(ctx context.Context, userID string) (*model.UserReputation, error) {
				return &model.UserReputation{
					UserID: userID, Score: 42, SellerScore: 30, BuyerScore: 12,
					SellerRank: 1, BuyerRank: 3, LastCalculatedAt: time.Now().UTC(),
				}, nil
			},
		}
		router := newTestRouter(&stubService{}, rep)

		rec, parsed := doRequest(t, router, http.MethodGet, "/users/alice/reputation", "")
		require.Equal(t, http.StatusOK, rec.Code)

		data, ok := parsed["data"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "alice", data["user_id"])
		require.EqualValues(t, 42, data["score"])
		require.EqualValues(t, 1, data["seller_rank"])
	})

	t.Run("not_calculated_yet", func(t *testing.T) {
		rep := &stubReputation{
			getFn: func(ctx context.Context, userID string) (*model.UserReputation, error) {
				return nil, fmt.Errorf("reputation: get reputation for user %s: %w", userID, auctionerrors.ErrNoReputation)
			},
		}
		router := newTestRouter(&stubService{}, rep)

		rec, parsed := doRequest(t, router, http.MethodGet, "/users/ghost/reputation", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "NOT_FOUND", parsed["code"])
	})
}
