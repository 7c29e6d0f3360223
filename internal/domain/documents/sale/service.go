package sale

import (
	"context"
	"fmt"

	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/tx"
	"tradebook/internal/domain"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/domain/catalogs/warehouse"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/domain/registers/stock"
	"tradebook/pkg/logger"
)

// Service owns the sale lifecycle: create, edit (rollback + recreate),
// delete. All paths run as one transaction so a reader never observes a
// sale without its movements, and the stock-sufficiency check cannot race
// a concurrent writer (the balance row stays locked from check to commit).
type Service struct {
	repo       Repository
	warehouses *warehouse.Service
	products   *product.Service
	customers  *customer.Service
	accounts   *account.Service
	stockReg   *stock.Service
	cashReg    *cash.Service
	debtors    *debtors.Service
	txManager  tx.Manager
	audit      domain.AuditLogger
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	warehouses *warehouse.Service,
	products *product.Service,
	customers *customer.Service,
	accounts *account.Service,
	stockReg *stock.Service,
	cashReg *cash.Service,
	debtorSvc *debtors.Service,
	txManager tx.Manager,
	audit domain.AuditLogger,
) *Service {
	return &Service{
		repo:       repo,
		warehouses: warehouses,
		products:   products,
		customers:  customers,
		accounts:   accounts,
		stockReg:   stockReg,
		cashReg:    cashReg,
		debtors:    debtorSvc,
		txManager:  txManager,
		audit:      audit,
	}
}

// Create records a new sale. Fails with InsufficientStock before any
// write when the warehouse cannot cover the quantity.
func (s *Service) Create(ctx context.Context, f Fields) (*Sale, error) {
	if err := f.Validate(ctx); err != nil {
		return nil, err
	}

	var doc *Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		doc, err = s.create(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale created", "id", doc.ID, "total", doc.Total, "paid", doc.IsPaid)
	return doc, nil
}

// create runs inside an open transaction.
func (s *Service) create(ctx context.Context, f Fields) (*Sale, error) {
	wh, err := s.warehouses.GetOrCreate(ctx, f.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("resolve warehouse: %w", err)
	}
	pr, err := s.products.GetOrCreate(ctx, f.Product)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	// Locks the balance row; holds until commit.
	if err := s.stockReg.CheckAvailability(ctx, wh.ID, pr.ID, f.Quantity); err != nil {
		return nil, err
	}

	cust, err := s.customers.GetOrCreate(ctx, f.CustomerName, f.CustomerPhone)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	doc := New(f, cust.ID, wh.ID, pr.ID)

	if f.IsPaid {
		acc, err := s.accounts.GetOrCreate(ctx, f.Account, account.Type(f.AccountType))
		if err != nil {
			return nil, fmt.Errorf("resolve account: %w", err)
		}
		doc.AccountID = &acc.ID
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	if err := s.stockReg.Record(ctx, []entity.StockMovement{doc.StockMovement()}); err != nil {
		return nil, err
	}

	if doc.IsPaid {
		if err := s.cashReg.Record(ctx, []entity.CashMovement{doc.CashMovement("sale")}); err != nil {
			return nil, err
		}
	} else {
		d := &debtors.Debtor{
			BaseDocument:  entity.NewBaseDocument(),
			SaleID:        doc.ID,
			DocDate:       doc.Date,
			CustomerID:    cust.ID,
			CustomerName:  cust.Name,
			CustomerPhone: cust.Phone,
			Description:   pr.Name,
			Quantity:      doc.Quantity,
			Price:         doc.PricePerUnit,
			Total:         doc.Total,
		}
		if err := s.debtors.Open(ctx, d); err != nil {
			return nil, err
		}
	}

	return doc, s.audit.Log(ctx, "sale", doc.ID, domain.AuditActionCreate, doc)
}

// Edit replaces a sale with a new field set: the old document is rolled
// back and the replacement created inside one transaction. The stock check
// for the new quantity runs against the balance after the rollback, so
// editing a sale up in quantity cannot overdraw.
func (s *Service) Edit(ctx context.Context, docID id.ID, f Fields) (*Sale, error) {
	if err := f.Validate(ctx); err != nil {
		return nil, err
	}

	var doc *Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		old, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := s.rollback(ctx, old); err != nil {
			return err
		}

		doc, err = s.create(ctx, f)
		if err != nil {
			return err
		}

		return s.audit.Log(ctx, "sale", old.ID, domain.AuditActionUpdate, doc)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale edited", "old_id", docID, "id", doc.ID)
	return doc, nil
}

// Delete rolls a sale back: its movements are removed, its debtor (open
// or settled) goes with it, and balances end as if the sale never existed.
// Re-adding the quantity is plain arithmetic and cannot fail.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetByIDForUpdate(ctx, docID)
		if err != nil {
			return err
		}

		if err := s.rollback(ctx, doc); err != nil {
			return err
		}

		return s.audit.Log(ctx, "sale", doc.ID, domain.AuditActionDelete, doc)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale deleted", "id", docID)
	return nil
}

// rollback removes the document row, its movements (including a
// settlement movement tagged to it, if the debt was settled) and its
// debtor record. Runs inside an open transaction.
func (s *Service) rollback(ctx context.Context, doc *Sale) error {
	if err := s.stockReg.Reverse(ctx, entity.DocTypeSale, doc.ID); err != nil {
		return err
	}
	if err := s.cashReg.Reverse(ctx, entity.DocTypeSale, doc.ID); err != nil {
		return err
	}
	if err := s.debtors.CloseBySale(ctx, doc.ID); err != nil {
		return fmt.Errorf("remove debtor: %w", err)
	}
	if err := s.repo.Delete(ctx, doc.ID); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// MarkPaid flips the sale to paid and records the settlement account.
// Called by debt settlement, inside its transaction.
func (s *Service) MarkPaid(ctx context.Context, saleID, accountID id.ID) error {
	return s.repo.MarkPaid(ctx, saleID, accountID)
}

// GetByID retrieves a sale.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Sale, error) {
	return s.repo.GetByID(ctx, docID)
}

// List retrieves sales, most recent first.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Sale], error) {
	return s.repo.List(ctx, filter)
}
