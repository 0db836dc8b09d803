package market_bench

import (
	"context"
	"testing"

	"github.com/osse101/NemoBot_Go/internal/database/sqlstore"
	"github.com/osse101/NemoBot_Go/internal/domain"
	"github.com/osse101/NemoBot_Go/internal/market"
	"github.com/osse101/NemoBot_Go/internal/testing/dbtest"
)

// Compare runs with:
//   go test -bench . -count 10 ./benchmarks/market > new.txt
//   benchstat old.txt new.txt

type fixture struct {
	svc    market.Service
	seller int64
	buyer  int64
	item   int64
}

func newFixture(b *testing.B, stock int64) fixture {
	b.Helper()
	store := dbtest.OpenSQLite(b)
	f := fixture{
		svc:    market.NewService(sqlstore.NewMarketRepository(store), nil, market.Config{}),
		seller: dbtest.SeedUser(b, store, 0),
		buyer:  dbtest.SeedUser(b, store, 1<<40),
		item:   dbtest.SeedItem(b, store, "ore"),
	}
	dbtest.SeedInventory(b, store, f.seller, f.item, stock)
	return f
}

func BenchmarkListItem(b *testing.B) {
	f := newFixture(b, int64(b.N)+1)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.svc.ListItem(ctx, f.seller, f.item, 1, 10); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuyItem(b *testing.B) {
	f := newFixture(b, int64(b.N)+1)
	ctx := context.Background()

	listings := make([]int64, b.N)
	for i := range listings {
		id, err := f.svc.ListItem(ctx, f.seller, f.item, 1, 10)
		if err != nil {
			b.Fatal(err)
		}
		listings[i] = id
	}

	b.ResetTimer()
	for _, id := range listings {
		if _, err := f.svc.BuyItem(ctx, id, f.buyer); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCheckLog(b *testing.B) {
	f := newFixture(b, 200)
	ctx := context.Background()
	for i := 0; i < 100; i++ {
		id, err := f.svc.ListItem(ctx, f.seller, f.item, 1, 10)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := f.svc.BuyItem(ctx, id, f.buyer); err != nil {
			b.Fatal(err)
		}
	}
	query := domain.LogQuery{RecipientID: f.buyer, Place: domain.PlaceMarket}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.svc.CheckLog(ctx, query); err != nil {
			b.Fatal(err)
		}
	}
}
