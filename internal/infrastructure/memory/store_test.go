package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store) (*inventory.StockLocation, *inventory.StockItem) {
	t.Helper()
	loc := inventory.NewStockLocation("Bodega", "B1")
	require.NoError(t, s.Locations().Create(context.Background(), loc))
	si := inventory.NewStockItem("v1", loc.ID, "SKU-1", false)
	si.QuantityOnHand = 10
	require.NoError(t, s.Items().Create(context.Background(), si))
	return loc, si
}

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	s := memory.NewStore()
	_, si := seed(t, s)
	ctx := context.Background()

	boom := errors.New("boom")
	err := memory.NewTxRunner(s).Run(ctx, func(ctx context.Context, r appinv.TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, si.ID)
		require.NoError(t, err)
		require.NoError(t, item.Adjust(-4, inventory.OriginatorDamage, "", ""))
		require.NoError(t, r.Items.Save(ctx, item))
		require.NoError(t, r.Movements.CreateBatch(ctx, item.PullMovements()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Items().GetByID(ctx, si.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.QuantityOnHand)
	movs, err := s.Movements().ListByStockItem(ctx, si.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTxRunner_CommitAplicaCambios(t *testing.T) {
	s := memory.NewStore()
	_, si := seed(t, s)
	ctx := context.Background()

	err := memory.NewTxRunner(s).Run(ctx, func(ctx context.Context, r appinv.TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, si.ID)
		if err != nil {
			return err
		}
		if err := item.Reserve(3, "o-1"); err != nil {
			return err
		}
		return r.Items.Save(ctx, item)
	})
	require.NoError(t, err)

	got, err := s.Items().GetByID(ctx, si.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.QuantityReserved)
	q, ok := got.ReservedFor("o-1")
	assert.True(t, ok)
	assert.Equal(t, 3, q)
	assert.Empty(t, got.Movements, "los movimientos no se guardan en el item")

	reserved, err := s.Items().ListReservedForOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Len(t, reserved, 1)
}

func TestTxRunner_SerializaReservasConcurrentes(t *testing.T) {
	s := memory.NewStore()
	_, si := seed(t, s)
	runner := memory.NewTxRunner(s)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, func(ctx context.Context, r appinv.TxRepos) error {
				item, err := r.Items.GetForUpdate(ctx, si.ID)
				if err != nil {
					return err
				}
				if err := item.Reserve(1, ""); err != nil {
					return err
				}
				return r.Items.Save(ctx, item)
			})
			if err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, okCount, "solo hay 10 unidades")
	got, err := s.Items().GetByID(ctx, si.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.QuantityReserved)
}

func TestStockItemRepo_Unicidad(t *testing.T) {
	s := memory.NewStore()
	loc, _ := seed(t, s)
	ctx := context.Background()

	dupVariant := inventory.NewStockItem("v1", loc.ID, "OTRO", false)
	assert.ErrorIs(t, s.Items().Create(ctx, dupVariant), inventory.ErrDuplicateSku)

	dupSKU := inventory.NewStockItem("v2", loc.ID, "SKU-1", false)
	assert.ErrorIs(t, s.Items().Create(ctx, dupSKU), inventory.ErrDuplicateSku)

	orphan := inventory.NewStockItem("v3", "nope", "SKU-3", false)
	assert.ErrorIs(t, s.Items().Create(ctx, orphan), inventory.ErrStockLocationMissing)
}

func TestStockLocationRepo_CargaItems(t *testing.T) {
	s := memory.NewStore()
	loc, si := seed(t, s)
	ctx := context.Background()

	plain, err := s.Locations().GetByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Empty(t, plain.StockItems)

	locked, err := s.Locations().GetForUpdate(ctx, loc.ID)
	require.NoError(t, err)
	require.Len(t, locked.StockItems, 1)
	assert.Equal(t, si.ID, locked.StockItems[0].ID)

	byVariant, err := s.Locations().ListByVariant(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, byVariant, 1)
	assert.Equal(t, 10, byVariant[0].CountAvailable("v1"))

	none, err := s.Locations().ListByVariant(ctx, "v9")
	require.NoError(t, err)
	assert.Empty(t, none)

	missing, err := s.Locations().GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSequence_PorClave(t *testing.T) {
	seq := memory.NewSequence()
	ctx := context.Background()

	n, err := seq.Next(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, _ = seq.Next(ctx, "a")
	assert.EqualValues(t, 2, n)
	n, _ = seq.Next(ctx, "b")
	assert.EqualValues(t, 1, n)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = seq.Next(cancelled, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
