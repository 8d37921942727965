package cli

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Fayob/Reverse-Dutch-Auction/internal/config"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/auction"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/core/ledger"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/storage/audit"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/storage/auctionstore"
	"github.com/Fayob/Reverse-Dutch-Auction/internal/storage/kv"
)

var simulateBuyers int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a standalone settlement scenario against the configured store",
	Long: `Opens the configured record table, escrows a lot on an in-memory ledger,
lists it, and races concurrent buyers against each other. Exactly one buyer
wins the swap; the rest observe the listing as already settled.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simulateBuyers, "buyers", 4, "number of concurrent buyers to race")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(confPath)
	if err != nil {
		return err
	}

	db, err := kv.Open(kv.Options{
		Backend:     cfg.Storage.Backend,
		Path:        cfg.Storage.Path,
		Compression: cfg.Storage.Compression,
	})
	if err != nil {
		return err
	}
	store, err := auctionstore.New(db, cfg.Storage.CacheSize)
	if err != nil {
		db.Close()
		return err
	}
	defer store.Close()

	var archive *audit.Store
	if cfg.Audit.Driver != "" {
		archive, err = audit.Open(cfg.Audit.Driver, cfg.Audit.DSN)
		if err != nil {
			return err
		}
		defer archive.Close()
	}

	const (
		seller     = ledger.AccountID("seller")
		asset      = ledger.AssetID("lot")
		amount     = uint64(100_000)
		startPrice = uint64(5_000)
		endPrice   = uint64(500)
		duration   = uint64(3600)
	)
	custody := ledger.AccountID(cfg.Auction.CustodyAccount)
	payment := ledger.AssetID(cfg.Auction.PaymentAsset)

	assets := ledger.NewInMemory()
	assets.Mint(asset, seller, amount)
	if err := assets.Transfer(asset, seller, custody, amount); err != nil {
		return err
	}

	var reg *auction.Registry
	hooks := &auction.Hooks{
		OnFinalized: func(ev auction.FinalizedEvent) {
			log.Printf("auction %d settled: buyer=%s price=%d", ev.ID, ev.Buyer, ev.Price)
			if archive == nil {
				return
			}
			rec, err := reg.Get(ev.ID)
			if err != nil {
				log.Printf("archive lookup failed: %v", err)
				return
			}
			if err := archive.RecordSettled(rec, ev.Buyer, ev.Price); err != nil {
				log.Printf("archive write failed: %v", err)
			}
		},
	}
	reg, err = auction.NewRegistry(auction.Config{
		CustodyAccount: custody,
		PaymentAsset:   payment,
		Store:          store,
		Events:         hooks,
	}, assets)
	if err != nil {
		return err
	}
	coord := auction.NewCoordinator(reg)

	id, err := reg.Create(seller, asset, amount, startPrice, endPrice, duration)
	if err != nil {
		return err
	}
	price, err := reg.CurrentPrice(id)
	if err != nil {
		return err
	}
	log.Printf("auction %d listed: amount=%d price=%d..%d quote=%d", id, amount, startPrice, endPrice, price)

	var g errgroup.Group
	wins := make(chan ledger.AccountID, simulateBuyers)
	for i := 0; i < simulateBuyers; i++ {
		buyer := ledger.AccountID(fmt.Sprintf("buyer-%d", i))
		assets.Mint(payment, buyer, startPrice)
		g.Go(func() error {
			err := coord.Settle(id, buyer, startPrice)
			if err == nil {
				wins <- buyer
				return nil
			}
			if errors.Is(err, auction.ErrInactiveAuction) {
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(wins)

	var winner ledger.AccountID
	count := 0
	for b := range wins {
		winner = b
		count++
	}
	if count != 1 {
		return fmt.Errorf("expected exactly one winning buyer, got %d", count)
	}

	lot, _ := assets.BalanceOf(winner, asset)
	proceeds, _ := assets.BalanceOf(seller, payment)
	log.Printf("winner=%s lot=%d seller proceeds=%d", winner, lot, proceeds)
	return nil
}
