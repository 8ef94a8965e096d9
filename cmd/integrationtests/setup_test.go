package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	auction "card-auction/internal/auctionService"
	"card-auction/internal/jobs"
	model "card-auction/internal/models"
	"card-auction/internal/repository"
	"card-auction/internal/reputation"
	"card-auction/internal/server"
)

// testEnv bundles the in-memory wiring of the whole engine: HTTP surface,
// sweeps and reputation recompute all share one repository.
type testEnv struct {
	repo       *repository.MemoryRepo
	router     *gin.Engine
	sweeper    *jobs.Sweeper
	reputation *reputation.Engine
}

// SetupTestEnv initializes the full stack on the in-memory repository.
func SetupTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	service := auction.NewAuctionService(repo, repo)
	repEngine := reputation.NewEngine(repo)
	return &testEnv{
		repo:       repo,
		router:     server.SetupRouter(service, repEngine),
		sweeper:    jobs.NewSweeper(repo, time.Minute),
		reputation: repEngine,
	}
}

// SeedLiveAuction seeds a verified seller and bidders plus one LIVE auction.
func (env *testEnv) SeedLiveAuction(a model.Auction) {
	env.repo.AddUser(model.User{UserID: "seller1", Username: "seller", Verified: true})
	env.repo.AddUser(model.User{UserID: "bidder1", Username: "first bidder", Verified: true})
	env.repo.AddUser(model.User{UserID: "bidder2", Username: "second bidder", Verified: true})
	env.repo.AddListing(model.Listing{
		ListingID: a.ListingID,
		SellerID:  "seller1",
		Type:      model.ListingTypeAuction,
		Status:    model.ListingActive,
	})
	env.repo.AddAuction(a)
}

// ExecuteRequestAndParse executes an HTTP request on the router and parses
// the JSON envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// liveAuctionFixture is a standard open auction: start 100, increment 10.
func liveAuctionFixture(now time.Time) model.Auction {
	return model.Auction{
		AuctionID:  "auction1",
		ListingID:  "listing1",
		Status:     model.AuctionLive,
		StartAt:    now.Add(-time.Hour),
		EndAt:      now.Add(time.Hour),
		StartPrice: decimal.NewFromInt(100),
		Increment:  decimal.NewFromInt(10),
	}
}
