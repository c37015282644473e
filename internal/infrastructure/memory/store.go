// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa en tests y con STORAGE_BACKEND=memory; no sobrevive reinicios.
package memory

import (
	"context"
	"sync"

	appinv "github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

// state datos del almacén. Los agregados se guardan como copias propias.
type state struct {
	locations map[string]*inventory.StockLocation // sin StockItems
	items     map[string]*inventory.StockItem
	movements []inventory.StockMovement
	transfers map[string]*inventory.StockTransfer
	variants  map[string]*entity.Variant
	orders    map[string]*entity.Order
}

func newState() *state {
	return &state{
		locations: make(map[string]*inventory.StockLocation),
		items:     make(map[string]*inventory.StockItem),
		transfers: make(map[string]*inventory.StockTransfer),
		variants:  make(map[string]*entity.Variant),
		orders:    make(map[string]*entity.Order),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, l := range s.locations {
		c.locations[id] = l.Clone()
	}
	for id, it := range s.items {
		c.items[id] = it.Clone()
	}
	for id, t := range s.transfers {
		c.transfers[id] = t.Clone()
	}
	// Variantes y pedidos no se modifican después de creados.
	for id, v := range s.variants {
		c.variants[id] = v
	}
	for id, o := range s.orders {
		c.orders[id] = o
	}
	c.movements = append([]inventory.StockMovement(nil), s.movements...)
	return c
}

// Store almacén en memoria. Las transacciones se serializan con un único lock
// y trabajan sobre una copia que reemplaza al estado solo si fn no falla.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// base acceso al estado: atado a una tx (sin lock) o al almacén (con lock).
type base struct {
	store *Store
	tx    *state
}

func (b base) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	return fn(b.store.st)
}

func (b base) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}

// Locations repositorio de ubicaciones fuera de transacción.
func (s *Store) Locations() *StockLocationRepo { return &StockLocationRepo{base{store: s}} }

// Items repositorio de stock items fuera de transacción.
func (s *Store) Items() *StockItemRepo { return &StockItemRepo{base{store: s}} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{base{store: s}} }

// Transfers repositorio de traslados fuera de transacción.
func (s *Store) Transfers() *StockTransferRepo { return &StockTransferRepo{base{store: s}} }

// Variants repositorio de variantes.
func (s *Store) Variants() *VariantRepo { return &VariantRepo{base{store: s}} }

// Orders repositorio de pedidos.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{base{store: s}} }

// TxRunner unidad de trabajo sobre el almacén.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve error la copia se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos appinv.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.st.clone()
	b := base{store: r.store, tx: snap}
	repos := appinv.TxRepos{
		Locations: &StockLocationRepo{b},
		Items:     &StockItemRepo{b},
		Movements: &StockMovementRepo{b},
		Transfers: &StockTransferRepo{b},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	r.store.st = snap
	return nil
}
