package wallet

import "context"

type Repository interface {
	GetByOwnerID(ctx context.Context, ownerID int) (*Wallet, error)
	GetOrCreate(ctx context.Context, ownerID int, currency string) (*Wallet, error)
	ListTransactions(ctx context.Context, ownerID int, limit, offset int) ([]Transaction, error)
}
