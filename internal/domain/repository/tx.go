package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Tenants    TenantRepository
	Principals PrincipalRepository
	SalesReps  SalesRepRepository
	Sales      SaleRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
