package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"duka/manager/internal/ledger"
	"duka/manager/internal/model"
	"duka/manager/internal/money"
	"duka/manager/internal/report"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InventoryService struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewInventoryService(store Store, log *zap.Logger) *InventoryService {
	return &InventoryService{store: store, log: log, now: time.Now}
}

type ProductInput struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

func (in *ProductInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return fmt.Errorf("%w: product name is required", model.ErrInvalidInput)
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return fmt.Errorf("%w: prices cannot be negative", model.ErrInvalidInput)
	}
	if err := money.Check("cost price", in.CostPrice); err != nil {
		return err
	}
	if err := money.Check("selling price", in.SellingPrice); err != nil {
		return err
	}
	if in.Quantity < 0 || in.LowStockThreshold < 0 {
		return fmt.Errorf("%w: quantity and low stock threshold cannot be negative", model.ErrInvalidInput)
	}
	if in.Category == "" {
		in.Category = model.DefaultCategory
	}
	if in.Unit == "" {
		in.Unit = model.DefaultUnit
	}
	return nil
}

func (s *InventoryService) AddProduct(ctx context.Context, actor model.Member, in ProductInput) (model.Product, error) {
	if err := requireOwner(actor); err != nil {
		return model.Product{}, err
	}
	if err := in.normalize(); err != nil {
		return model.Product{}, err
	}

	now := s.now()
	p := model.Product{
		ID:                uuid.NewString(),
		ShopID:            actor.ShopID,
		Name:              in.Name,
		Category:          in.Category,
		Unit:              in.Unit,
		CostPrice:         in.CostPrice,
		SellingPrice:      in.SellingPrice,
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return model.Product{}, err
	}
	s.log.Info("product added", zap.String("shop_id", p.ShopID), zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, actor model.Member, id string, in ProductInput) (model.Product, error) {
	if err := requireOwner(actor); err != nil {
		return model.Product{}, err
	}
	if err := in.normalize(); err != nil {
		return model.Product{}, err
	}

	var p model.Product
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.store.GetProductForUpdate(ctx, actor.ShopID, id)
		if err != nil {
			return err
		}
		p.Name = in.Name
		p.Category = in.Category
		p.Unit = in.Unit
		p.CostPrice = in.CostPrice
		p.SellingPrice = in.SellingPrice
		p.Quantity = in.Quantity
		p.LowStockThreshold = in.LowStockThreshold
		p.UpdatedAt = s.now()
		return s.store.UpdateProduct(ctx, p)
	})
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, actor model.Member, id string) error {
	if err := requireOwner(actor); err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, actor.ShopID, id); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.String("shop_id", actor.ShopID), zap.String("product_id", id))
	return nil
}

// ListProducts returns the shop's products ordered by name, filtered by a name search when query is set.
func (s *InventoryService) ListProducts(ctx context.Context, actor model.Member, query string) ([]model.Product, error) {
	products, err := s.store.ListProducts(ctx, actor.ShopID)
	if err != nil {
		return nil, err
	}
	return report.Search(products, query), nil
}

func (s *InventoryService) LowStock(ctx context.Context, actor model.Member) ([]model.Product, error) {
	products, err := s.store.ListProducts(ctx, actor.ShopID)
	if err != nil {
		return nil, err
	}
	return report.LowStock(products), nil
}

type SaleInput struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	CustomerID string `json:"customer_id,omitempty"`
}

// Receipt is the outcome of a recorded sale.
type Receipt struct {
	Sale    model.Sale        `json:"sale"`
	Credit  *model.CreditSale `json:"credit,omitempty"`
	Message string            `json:"message"`
}

// RecordSale sells quantity units of a product at its current price.
// When a customer is given the sale is put on that customer's deni.
func (s *InventoryService) RecordSale(ctx context.Context, actor model.Member, in SaleInput) (Receipt, error) {
	if in.Quantity <= 0 {
		return Receipt{}, fmt.Errorf("%w: quantity must be greater than 0", model.ErrInvalidInput)
	}

	var rec Receipt
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		product, err := s.store.GetProductForUpdate(ctx, actor.ShopID, in.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity < in.Quantity {
			return fmt.Errorf("%w: only %d %s of %s left", model.ErrInsufficientStock, product.Quantity, product.Unit, product.Name)
		}

		if in.CustomerID != "" {
			if _, err := s.store.GetCustomer(ctx, actor.ShopID, in.CustomerID); err != nil {
				return err
			}
		}

		rec.Sale = model.Sale{
			ID:          uuid.NewString(),
			ShopID:      actor.ShopID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.SellingPrice,
			CostPrice:   product.CostPrice,
			TotalAmount: product.SellingPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			CreatedAt:   s.now(),
		}
		if err := money.Check("sale total", rec.Sale.TotalAmount); err != nil {
			return err
		}
		if err := s.store.CreateSale(ctx, rec.Sale); err != nil {
			return err
		}
		if err := s.store.DecrementStock(ctx, actor.ShopID, product.ID, in.Quantity); err != nil {
			return err
		}

		if in.CustomerID != "" {
			credit := ledger.NewCredit(actor.ShopID, in.CustomerID, rec.Sale, uuid.NewString())
			if err := s.store.CreateCreditSale(ctx, credit); err != nil {
				return err
			}
			rec.Credit = &credit
		}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	rec.Message = fmt.Sprintf("Sold %dx %s for %s", rec.Sale.Quantity, rec.Sale.ProductName, money.Format(rec.Sale.TotalAmount))
	if rec.Credit != nil {
		rec.Message += " on credit"
	}
	s.log.Info("sale recorded",
		zap.String("shop_id", actor.ShopID),
		zap.String("sale_id", rec.Sale.ID),
		zap.String("product_id", rec.Sale.ProductID),
		zap.Int("quantity", rec.Sale.Quantity),
		zap.String("total", rec.Sale.TotalAmount.String()),
		zap.Bool("credit", rec.Credit != nil),
	)
	return rec, nil
}

func (s *InventoryService) ListSales(ctx context.Context, actor model.Member) ([]model.Sale, error) {
	return s.store.ListSales(ctx, actor.ShopID)
}
