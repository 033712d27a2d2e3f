package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"duka/manager/internal/ledger"
	"duka/manager/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreditService struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewCreditService(store Store, log *zap.Logger) *CreditService {
	return &CreditService{store: store, log: log, now: time.Now}
}

type CustomerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (s *CreditService) AddCustomer(ctx context.Context, actor model.Member, in CustomerInput) (model.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Customer{}, fmt.Errorf("%w: customer name is required", model.ErrInvalidInput)
	}
	c := model.Customer{
		ID:        uuid.NewString(),
		ShopID:    actor.ShopID,
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: s.now(),
	}
	if err := s.store.CreateCustomer(ctx, c); err != nil {
		return model.Customer{}, err
	}
	s.log.Info("customer added", zap.String("shop_id", c.ShopID), zap.String("customer_id", c.ID))
	return c, nil
}

// ListCustomers returns every customer with what they currently owe.
func (s *CreditService) ListCustomers(ctx context.Context, actor model.Member) ([]model.CustomerBalance, error) {
	customers, err := s.store.ListCustomers(ctx, actor.ShopID)
	if err != nil {
		return nil, err
	}
	credits, err := s.store.ListCreditSales(ctx, actor.ShopID)
	if err != nil {
		return nil, err
	}

	out := make([]model.CustomerBalance, 0, len(customers))
	for _, c := range customers {
		out = append(out, model.CustomerBalance{Customer: c, Owed: ledger.CustomerOwed(credits, c.ID)})
	}
	return out, nil
}

// CreditView is a credit sale with its derived balance.
type CreditView struct {
	model.CreditSale
	Balance decimal.Decimal `json:"balance"`
}

func viewOf(c model.CreditSale) CreditView {
	return CreditView{CreditSale: c, Balance: ledger.Balance(c)}
}

// ListCredits lists the shop's credits. With customerID set, only that customer's unpaid credits are returned.
func (s *CreditService) ListCredits(ctx context.Context, actor model.Member, customerID string) ([]CreditView, error) {
	credits, err := s.store.ListCreditSales(ctx, actor.ShopID)
	if err != nil {
		return nil, err
	}
	if customerID != "" {
		credits = ledger.Outstanding(credits, customerID)
	}
	out := make([]CreditView, 0, len(credits))
	for _, c := range credits {
		out = append(out, viewOf(c))
	}
	return out, nil
}

func (s *CreditService) Summary(ctx context.Context, actor model.Member) (model.CreditSummary, error) {
	credits, err := s.store.ListCreditSales(ctx, actor.ShopID)
	if err != nil {
		return model.CreditSummary{}, err
	}
	return ledger.Summarize(credits), nil
}

func (s *CreditService) CustomerOwed(ctx context.Context, actor model.Member, customerID string) (decimal.Decimal, error) {
	if _, err := s.store.GetCustomer(ctx, actor.ShopID, customerID); err != nil {
		return decimal.Zero, err
	}
	credits, err := s.store.ListCreditSales(ctx, actor.ShopID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.CustomerOwed(credits, customerID), nil
}

// RecordPayment applies a partial or full payment to a credit.
func (s *CreditService) RecordPayment(ctx context.Context, actor model.Member, creditID string, amount decimal.Decimal) (CreditView, error) {
	var updated model.CreditSale
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		credit, err := s.store.GetCreditSaleForUpdate(ctx, actor.ShopID, creditID)
		if err != nil {
			return err
		}
		now := s.now()
		updated, err = ledger.ApplyPayment(credit, amount, now)
		if err != nil {
			return err
		}
		if err := s.store.UpdateCreditPayment(ctx, updated); err != nil {
			return err
		}
		return s.store.CreateCreditPayment(ctx, model.CreditPayment{
			ID:           uuid.NewString(),
			CreditSaleID: creditID,
			Amount:       amount,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return CreditView{}, err
	}

	s.log.Info("credit payment recorded",
		zap.String("shop_id", actor.ShopID),
		zap.String("credit_id", creditID),
		zap.String("amount", amount.String()),
		zap.String("status", string(updated.Status)),
	)
	return viewOf(updated), nil
}

// PayInFull settles the remaining balance of a credit.
func (s *CreditService) PayInFull(ctx context.Context, actor model.Member, creditID string) (CreditView, error) {
	var view CreditView
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		credit, err := s.store.GetCreditSaleForUpdate(ctx, actor.ShopID, creditID)
		if err != nil {
			return err
		}
		view, err = s.RecordPayment(ctx, actor, creditID, ledger.Balance(credit))
		return err
	})
	return view, err
}

// Payments lists the payments made against one of the shop's credits.
func (s *CreditService) Payments(ctx context.Context, actor model.Member, creditID string) ([]model.CreditPayment, error) {
	if _, err := s.store.GetCreditSale(ctx, actor.ShopID, creditID); err != nil {
		return nil, err
	}
	return s.store.ListCreditPayments(ctx, actor.ShopID, creditID)
}
