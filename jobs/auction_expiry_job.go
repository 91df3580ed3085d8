package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"tourmarket/repository"
)

// StartAuctionExpiryJob sweeps OPEN auctions whose deadline has passed and
// marks them CLOSED. Reads already treat an expired OPEN auction as inactive,
// so the sweep only keeps the stored status in step.
func StartAuctionExpiryJob(auctions repository.AuctionStore) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@every 1m", func() {
		closed, err := auctions.CloseExpiredAuctions(time.Now())
		if err != nil {
			log.Printf("🔥 Auction expiry sweep failed: %v", err)
			return
		}
		if closed > 0 {
			log.Printf("✅ Auction expiry sweep closed %d auction(s)", closed)
		}
	})
	if err != nil {
		log.Fatalf("🔥 Failed to schedule auction expiry job: %v", err)
	}

	c.Start()
	log.Println("✅ Auction expiry job scheduled")
	return c
}
