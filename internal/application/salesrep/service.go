// Package salesrep alta y gestión de vendedores de una empresa.
package salesrep

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comisiones-api/internal/application/auth"
	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/application/tenancy"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/commission"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
	"github.com/jhoicas/comisiones-api/internal/domain/repository"
	"github.com/jhoicas/comisiones-api/pkg/clock"
	"github.com/jhoicas/comisiones-api/pkg/logger"
)

const (
	passwordLength  = 12
	passwordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// Service casos de uso de vendedores.
type Service struct {
	tx        repository.TxRunner
	reps      repository.SalesRepRepository
	dashboard repository.DashboardRepository
	loc       *time.Location
	clock     clock.Clock
	log       *logger.Logger
}

// NewService construye el servicio. loc es el calendario del histórico mensual.
func NewService(tx repository.TxRunner, reps repository.SalesRepRepository, dashboard repository.DashboardRepository, loc *time.Location, clk clock.Clock, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{tx: tx, reps: reps, dashboard: dashboard, loc: loc, clock: clk, log: log.Component("salesrep")}
}

// Create crea el Principal SALES_REP con una contraseña generada y su perfil de vendedor,
// en una sola transacción. Un email repetido responde domain.ErrConflict.
func (s *Service) Create(ctx context.Context, caller *tenancy.Caller, in dto.CreateSalesRepRequest) (*dto.SalesRepCreatedResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if err := validateCreate(name, email, in.CommissionPercentage); err != nil {
		return nil, err
	}

	password, err := generatePassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	pct := in.CommissionPercentage.Round(commission.Scale)
	principal := &entity.Principal{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleSalesRep,
		CreatedAt:    now,
	}
	rep := &entity.SalesRep{
		ID:                   uuid.New().String(),
		TenantID:             tenantID,
		PrincipalID:          principal.ID,
		CommissionPercentage: &pct,
		Name:                 name,
		Email:                email,
		CreatedAt:            now,
	}
	err = s.tx.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Principals.Create(ctx, principal); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return fmt.Errorf("%w: el email %s ya está registrado", domain.ErrConflict, email)
			}
			return err
		}
		return tx.SalesReps.Create(ctx, rep)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("tenant_id", tenantID).Str("sales_rep_id", rep.ID).Msg("vendedor creado")
	return &dto.SalesRepCreatedResponse{SalesRepResponse: toResponse(rep), TemporaryPassword: password}, nil
}

// List vendedores de la empresa del llamador.
func (s *Service) List(ctx context.Context, caller *tenancy.Caller) ([]dto.SalesRepResponse, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	reps, err := s.reps.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesRepResponse, 0, len(reps))
	for _, r := range reps {
		out = append(out, toResponse(r))
	}
	return out, nil
}

// Get un vendedor; de otra empresa responde domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, caller *tenancy.Caller, id string) (*dto.SalesRepResponse, error) {
	rep, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(rep)
	return &out, nil
}

// UpdatePercentage cambia el porcentaje. Las ventas existentes conservan su comisión
// hasta que se edite su monto.
func (s *Service) UpdatePercentage(ctx context.Context, caller *tenancy.Caller, id string, in dto.UpdateSalesRepRequest) (*dto.SalesRepResponse, error) {
	if err := validatePercentage(in.CommissionPercentage); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	rep, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	pct := in.CommissionPercentage.Round(commission.Scale)
	if err := s.reps.UpdatePercentage(ctx, rep.TenantID, rep.ID, pct); err != nil {
		return nil, err
	}
	rep.CommissionPercentage = &pct
	out := toResponse(rep)
	return &out, nil
}

// Details perfil con cantidad, total y comisión promedio de sus ventas CONFIRMED e histórico mensual.
func (s *Service) Details(ctx context.Context, caller *tenancy.Caller, id string) (*dto.SalesRepDetailsResponse, error) {
	rep, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	q := repository.DashboardQuery{TenantID: rep.TenantID, Status: entity.SaleStatusConfirmed, Location: s.loc}
	totals, err := s.dashboard.RepTotals(ctx, q, rep.ID)
	if err != nil {
		return nil, err
	}
	history, err := s.dashboard.MonthlyHistory(ctx, q, rep.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesRepDetailsResponse{
		SalesRepResponse:  toResponse(rep),
		SalesCount:        totals.Count,
		TotalSales:        totals.TotalAmount,
		AverageCommission: commission.Average(totals.TotalCommission, totals.Count),
		History:           make([]dto.MonthlyTotalsDTO, 0, len(history)),
	}
	for _, h := range history {
		out.History = append(out.History, dto.MonthlyTotalsDTO{Period: h.Period, AmountSum: h.AmountSum, CommissionSum: h.CommissionSum})
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, caller *tenancy.Caller, id string) (*entity.SalesRep, error) {
	tenantID, err := caller.TenantID()
	if err != nil {
		return nil, err
	}
	if !entity.IsValidID(id) {
		return nil, fmt.Errorf("vendedor: %w", domain.ErrNotFound)
	}
	rep, err := s.reps.GetByTenantAndID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, fmt.Errorf("vendedor: %w", domain.ErrNotFound)
	}
	return rep, nil
}

func validateCreate(name, email string, pct *decimal.Decimal) error {
	var errs []error
	if n := utf8.RuneCountInString(name); n < 3 || n > 100 {
		errs = append(errs, errors.New("name debe tener entre 3 y 100 caracteres"))
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email || len(email) > 100 {
		errs = append(errs, errors.New("email inválido"))
	}
	if err := validatePercentage(pct); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

func validatePercentage(pct *decimal.Decimal) error {
	if pct == nil || pct.IsNegative() {
		return errors.New("commissionPercentage es requerido y no puede ser negativo")
	}
	if pct.Round(commission.Scale).GreaterThan(commission.MaxPercentage) {
		return fmt.Errorf("commissionPercentage no puede superar %s", commission.MaxPercentage)
	}
	return nil
}

func generatePassword() (string, error) {
	limit := big.NewInt(int64(len(passwordCharset)))
	b := make([]byte, passwordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generar contraseña: %w", err)
		}
		b[i] = passwordCharset[n.Int64()]
	}
	return string(b), nil
}

func toResponse(r *entity.SalesRep) dto.SalesRepResponse {
	return dto.SalesRepResponse{
		ID:                   r.ID,
		PrincipalID:          r.PrincipalID,
		Name:                 r.Name,
		Email:                r.Email,
		CommissionPercentage: r.CommissionPercentage,
		CreatedAt:            r.CreatedAt,
	}
}
