// Package sales implementa el ciclo de vida de una venta y el cálculo de su comisión,
// siempre acotado a la empresa del llamador.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/commission"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

const maxDescriptionLen = 255

// Ledger casos de uso de ventas.
type Ledger struct {
	tx    repository.TxRunner
	reps  repository.SalesRepRepository
	sales repository.SaleRepository
	clock clock.Clock
	log   *logger.Logger
}

// NewLedger construye el ledger. reps y sales son los repositorios fuera de transacción.
func NewLedger(tx repository.TxRunner, reps repository.SalesRepRepository, sales repository.SaleRepository, clk clock.Clock, log *logger.Logger) *Ledger {
	return &Ledger{tx: tx, reps: reps, sales: sales, clock: clk, log: log.Component("sales")}
}

// RecordByAdmin registra una venta CONFIRMED para un vendedor de la empresa del llamador.
// Un vendedor de otra empresa responde domain.ErrNotFound.
func (l *Ledger) RecordByAdmin(ctx context.Context, caller *tenancy.Caller, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	if err := validateSale(in.Amount, in.Description); err != nil {
		return nil, err
	}
	repID := strings.TrimSpace(in.RepID)
	if !entity.IsValidID(repID) {
		return nil, fmt.Errorf("%w: repId es requerido y debe ser un UUID", domain.ErrInvalidInput)
	}

	var sale *entity.Sale
	err = l.tx.Run(ctx, func(tx repository.TxRepos) error {
		rep, err := tx.SalesReps.GetByTenantAndID(ctx, tenantID, repID)
		if err != nil {
			return err
		}
		if rep == nil {
			return fmt.Errorf("vendedor: %w", domain.ErrNotFound)
		}
		if sale, err = l.newSale(rep, in.Amount, in.Description, entity.SaleStatusConfirmed); err != nil {
			return err
		}
		return tx.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("tenant_id", tenantID).Str("sale_id", sale.ID).Str("status", string(sale.Status)).Msg("venta registrada")
	return toSaleResponse(sale), nil
}

// RecordBySelf registra una venta PENDING a nombre del vendedor que llama.
// Un llamador sin perfil de vendedor responde domain.ErrNotFound.
func (l *Ledger) RecordBySelf(ctx context.Context, caller *tenancy.Caller, in dto.SelfSaleRequest) (*dto.SaleResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	if err := validateSale(in.Amount, in.Description); err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err = l.tx.Run(ctx, func(tx repository.TxRepos) error {
		rep, err := tx.SalesReps.GetByPrincipalID(ctx, caller.Principal().ID)
		if err != nil {
			return err
		}
		if rep == nil || rep.TenantID != tenantID {
			return fmt.Errorf("perfil de vendedor: %w", domain.ErrNotFound)
		}
		if sale, err = l.newSale(rep, in.Amount, in.Description, entity.SaleStatusPending); err != nil {
			return err
		}
		return tx.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("tenant_id", tenantID).Str("sale_id", sale.ID).Str("status", string(sale.Status)).Msg("venta registrada")
	return toSaleResponse(sale), nil
}

// ListForTenant todas las ventas de la empresa, de la más reciente a la más antigua.
func (l *Ledger) ListForTenant(ctx context.Context, caller *tenancy.Caller) ([]dto.SaleResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	list, err := l.sales.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(list), nil
}

// ListForSelf todas las ventas del vendedor que llama.
func (l *Ledger) ListForSelf(ctx context.Context, caller *tenancy.Caller) ([]dto.SaleResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	rep, err := l.reps.GetByPrincipalID(ctx, caller.Principal().ID)
	if err != nil {
		return nil, err
	}
	if rep == nil || rep.TenantID != tenantID {
		return nil, fmt.Errorf("perfil de vendedor: %w", domain.ErrNotFound)
	}
	list, err := l.sales.ListByRep(ctx, rep.ID)
	if err != nil {
		return nil, err
	}
	return toSaleResponses(list), nil
}

// Update cambia monto y descripción y recalcula la comisión con el porcentaje vigente del vendedor.
func (l *Ledger) Update(ctx context.Context, caller *tenancy.Caller, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	if err := validateSale(in.Amount, in.Description); err != nil {
		return nil, err
	}

	if !entity.IsValidID(saleID) {
		return nil, fmt.Errorf("venta: %w", domain.ErrNotFound)
	}

	amount := in.Amount.Round(commission.Scale)
	var sale *entity.Sale
	err = l.tx.Run(ctx, func(tx repository.TxRepos) error {
		current, err := tx.Sales.GetForUpdate(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("venta: %w", domain.ErrNotFound)
		}
		rep, err := tx.SalesReps.GetByTenantAndID(ctx, tenantID, current.SalesRepID)
		if err != nil {
			return err
		}
		comm, err := commissionFor(amount, rep)
		if err != nil {
			return err
		}
		current.Amount = amount
		current.Commission = comm
		current.Description = strings.TrimSpace(in.Description)
		sale = current
		return tx.Sales.UpdateAmount(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Approve PENDING -> CONFIRMED.
func (l *Ledger) Approve(ctx context.Context, caller *tenancy.Caller, saleID string) (*dto.SaleResponse, error) {
	return l.transition(ctx, caller, saleID, entity.SaleStatusConfirmed)
}

// Cancel PENDING|CONFIRMED -> CANCELLED.
func (l *Ledger) Cancel(ctx context.Context, caller *tenancy.Caller, saleID string) (*dto.SaleResponse, error) {
	return l.transition(ctx, caller, saleID, entity.SaleStatusCancelled)
}

// transition valida contra el estado leído y aplica un compare-and-set. Si otro request
// ganó la carrera, se relee la venta y se informa el estado con el que quedó.
func (l *Ledger) transition(ctx context.Context, caller *tenancy.Caller, saleID string, to entity.SaleStatus) (*dto.SaleResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	sale, err := l.load(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(sale.Status, to) {
		return nil, invalidTransition(sale.Status, to)
	}
	ok, err := l.sales.CompareAndSetStatus(ctx, tenantID, saleID, entity.SourcesFor(to), to)
	if err != nil {
		return nil, err
	}
	if !ok {
		current, err := l.load(ctx, tenantID, saleID)
		if err != nil {
			return nil, err
		}
		return nil, invalidTransition(current.Status, to)
	}
	l.log.Info().
		Str("tenant_id", tenantID).
		Str("sale_id", saleID).
		Str("from", string(sale.Status)).
		Str("to", string(to)).
		Msg("transición de venta")

	// se relee para reflejar un Update concurrente entre la lectura y el compare-and-set
	updated, err := l.load(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(updated), nil
}

// load lee una venta de la empresa. Un id que no es UUID no puede existir y responde domain.ErrNotFound.
func (l *Ledger) load(ctx context.Context, tenantID, saleID string) (*entity.Sale, error) {
	if !entity.IsValidID(saleID) {
		return nil, fmt.Errorf("venta: %w", domain.ErrNotFound)
	}
	sale, err := l.sales.GetByTenantAndID(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta: %w", domain.ErrNotFound)
	}
	return sale, nil
}

func (l *Ledger) newSale(rep *entity.SalesRep, amount decimal.Decimal, description string, status entity.SaleStatus) (*entity.Sale, error) {
	amount = amount.Round(commission.Scale)
	comm, err := commissionFor(amount, rep)
	if err != nil {
		return nil, err
	}
	return &entity.Sale{
		ID:          uuid.New().String(),
		TenantID:    rep.TenantID,
		SalesRepID:  rep.ID,
		RepName:     rep.Name,
		Amount:      amount,
		Commission:  comm,
		Description: strings.TrimSpace(description),
		Status:      status,
		CreatedAt:   l.clock.Now(),
	}, nil
}

// commissionFor calcula la comisión y rechaza la que no entra en la columna de montos.
func commissionFor(amount decimal.Decimal, rep *entity.SalesRep) (decimal.Decimal, error) {
	comm := commission.Calculate(amount, percentageOf(rep))
	if comm.GreaterThan(commission.MaxAmount) {
		return decimal.Zero, fmt.Errorf("%w: la comisión resultante supera %s", domain.ErrInvalidInput, commission.MaxAmount)
	}
	return comm, nil
}

// percentageOf nil si el vendedor no tiene porcentaje configurado.
func percentageOf(rep *entity.SalesRep) *decimal.Decimal {
	if rep == nil {
		return nil
	}
	return rep.CommissionPercentage
}

func invalidTransition(from, to entity.SaleStatus) error {
	return fmt.Errorf("%w: la venta está %s y no puede pasar a %s", domain.ErrInvalidStateTransition, from, to)
}

func validateSale(amount decimal.Decimal, description string) error {
	var errs []error
	if rounded := amount.Round(commission.Scale); !rounded.IsPositive() {
		errs = append(errs, errors.New("amount debe ser mayor que cero"))
	} else if rounded.GreaterThan(commission.MaxAmount) {
		errs = append(errs, fmt.Errorf("amount no puede superar %s", commission.MaxAmount))
	}
	if utf8.RuneCountInString(strings.TrimSpace(description)) > maxDescriptionLen {
		errs = append(errs, fmt.Errorf("description admite hasta %d caracteres", maxDescriptionLen))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:          s.ID,
		RepID:       s.SalesRepID,
		RepName:     s.RepName,
		Amount:      s.Amount,
		Commission:  s.Commission,
		Description: s.Description,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}

func toSaleResponses(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out
}
