package store

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"playmart/internal/domain/catalog"
	"playmart/internal/domain/products"
	"playmart/internal/domain/support"
	"playmart/internal/domain/users"
)

var QueryTimeoutDuration = time.Second * 5

// Storage bundles every domain store behind one handle for the handlers.
type Storage struct {
	Catalog  catalog.Store
	Products products.Store
	Support  support.Store
	Users    users.Store
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Catalog:  catalog.NewRepository(db),
		Products: products.NewRepository(db),
		Support:  support.NewRepository(db),
		Users:    users.NewRepository(db),
	}
}
