// Package domaintest provides in-memory repository implementations for
// exercising the document lifecycle without a database. Stores are not
// safe for concurrent use; tests drive them sequentially.
package domaintest

import (
	"context"
	"sort"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/tx"
	"tradebook/internal/core/types"
	"tradebook/internal/domain"
	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/debtors"
	"tradebook/internal/domain/documents/income"
	"tradebook/internal/domain/documents/sale"
	"tradebook/internal/domain/registers/cash"
	"tradebook/internal/domain/registers/stock"
)

// TxManager is a pass-through transaction manager. The lifecycle services
// order their writes so every guard runs before the first mutation, which
// is what lets a rollback-free fake stand in for the real thing.
type TxManager struct{}

// RunInTransaction executes fn directly.
func (TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Catalogs ---

// CatalogRepo is an in-memory domain.CatalogRepository.
type CatalogRepo[T domain.Named] struct {
	entityName string
	byID       map[id.ID]T
	byName     map[string]T
}

// NewCatalogRepo creates an empty catalog store.
func NewCatalogRepo[T domain.Named](entityName string) *CatalogRepo[T] {
	return &CatalogRepo[T]{
		entityName: entityName,
		byID:       make(map[id.ID]T),
		byName:     make(map[string]T),
	}
}

func (r *CatalogRepo[T]) Create(ctx context.Context, e T) error {
	if _, exists := r.byName[e.GetName()]; exists {
		return apperror.NewDuplicate(r.entityName, "name", e.GetName())
	}
	r.byID[e.GetID()] = e
	r.byName[e.GetName()] = e
	return nil
}

func (r *CatalogRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e, ok := r.byID[entityID]
	if !ok {
		return e, apperror.NewNotFound(r.entityName, entityID)
	}
	return e, nil
}

func (r *CatalogRepo[T]) GetByName(ctx context.Context, name string) (T, error) {
	e, ok := r.byName[name]
	if !ok {
		return e, apperror.NewNotFound(r.entityName, name)
	}
	return e, nil
}

func (r *CatalogRepo[T]) List(ctx context.Context) ([]T, error) {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]T, 0, len(names))
	for _, name := range names {
		out = append(out, r.byName[name])
	}
	return out, nil
}

func (r *CatalogRepo[T]) Delete(ctx context.Context, entityID id.ID) error {
	e, ok := r.byID[entityID]
	if !ok {
		return apperror.NewNotFound(r.entityName, entityID)
	}
	delete(r.byName, e.GetName())
	delete(r.byID, entityID)
	return nil
}

// AccountRepo is an in-memory account.Repository.
type AccountRepo struct {
	*CatalogRepo[*account.Account]
}

// NewAccountRepo creates an empty account store.
func NewAccountRepo() *AccountRepo {
	return &AccountRepo{CatalogRepo: NewCatalogRepo[*account.Account]("account")}
}

func (r *AccountRepo) ListByType(ctx context.Context, accType account.Type) ([]*account.Account, error) {
	all, _ := r.List(ctx)
	var out []*account.Account
	for _, a := range all {
		if a.Type == accType {
			out = append(out, a)
		}
	}
	return out, nil
}

// CustomerRepo is an in-memory customer.Repository, unique on (name, phone).
type CustomerRepo struct {
	byID       map[id.ID]*customer.Customer
	byIdentity map[[2]string]*customer.Customer
}

// NewCustomerRepo creates an empty customer store.
func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{
		byID:       make(map[id.ID]*customer.Customer),
		byIdentity: make(map[[2]string]*customer.Customer),
	}
}

func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	key := [2]string{c.Name, c.Phone}
	if _, exists := r.byIdentity[key]; exists {
		return apperror.NewDuplicate("customer", "identity", c.Name+"/"+c.Phone)
	}
	r.byID[c.ID] = c
	r.byIdentity[key] = c
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := r.byID[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	return c, nil
}

func (r *CustomerRepo) GetByIdentity(ctx context.Context, name, phone string) (*customer.Customer, error) {
	c, ok := r.byIdentity[[2]string{name, phone}]
	if !ok {
		return nil, apperror.NewNotFound("customer", name)
	}
	return c, nil
}

func (r *CustomerRepo) List(ctx context.Context) ([]*customer.Customer, error) {
	out := make([]*customer.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- Stock register ---

type stockKey struct {
	warehouseID id.ID
	productID   id.ID
}

// StockRepo is an in-memory stock.Repository.
type StockRepo struct {
	movements []entity.StockMovement
	balances  map[stockKey]types.Quantity
}

// NewStockRepo creates an empty stock register store.
func NewStockRepo() *StockRepo {
	return &StockRepo{balances: make(map[stockKey]types.Quantity)}
}

func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *StockRepo) GetMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.movements {
		if m.DocType == docType && m.DocID == docID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *StockRepo) DeleteMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) error {
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.DocType != docType || m.DocID != docID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

func (r *StockRepo) GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return entity.StockBalance{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    r.balances[stockKey{warehouseID, productID}],
	}, nil
}

func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error) {
	return r.GetBalance(ctx, warehouseID, productID)
}

func (r *StockRepo) ApplyDelta(ctx context.Context, warehouseID, productID id.ID, delta types.Quantity) error {
	r.balances[stockKey{warehouseID, productID}] += delta
	return nil
}

func (r *StockRepo) ListBalances(ctx context.Context) ([]entity.StockBalance, error) {
	var out []entity.StockBalance
	for key, qty := range r.balances {
		if qty == 0 {
			continue
		}
		out = append(out, entity.StockBalance{
			WarehouseID: key.warehouseID,
			ProductID:   key.productID,
			Quantity:    qty,
		})
	}
	return out, nil
}

// Rebuild regenerates balances by summing the movement log.
func (r *StockRepo) Rebuild(ctx context.Context) error {
	r.balances = make(map[stockKey]types.Quantity)
	for i := range r.movements {
		m := &r.movements[i]
		r.balances[stockKey{m.WarehouseID, m.ProductID}] += m.SignedQuantity()
	}
	return nil
}

// MovementCount reports the size of the movement log.
func (r *StockRepo) MovementCount() int {
	return len(r.movements)
}

// --- Cash register ---

// CashRepo is an in-memory cash.Repository.
type CashRepo struct {
	movements []entity.CashMovement
	balances  map[id.ID]types.Money
}

// NewCashRepo creates an empty cash register store.
func NewCashRepo() *CashRepo {
	return &CashRepo{balances: make(map[id.ID]types.Money)}
}

func (r *CashRepo) CreateMovements(ctx context.Context, movements []entity.CashMovement) error {
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *CashRepo) GetMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) ([]entity.CashMovement, error) {
	var out []entity.CashMovement
	for _, m := range r.movements {
		if m.DocType == docType && m.DocID == docID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *CashRepo) DeleteMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) error {
	kept := r.movements[:0]
	for _, m := range r.movements {
		if m.DocType != docType || m.DocID != docID {
			kept = append(kept, m)
		}
	}
	r.movements = kept
	return nil
}

func (r *CashRepo) GetBalance(ctx context.Context, accountID id.ID) (entity.CashBalance, error) {
	amount, ok := r.balances[accountID]
	if !ok {
		amount = types.ZeroMoney()
	}
	return entity.CashBalance{AccountID: accountID, Amount: amount}, nil
}

func (r *CashRepo) ApplyDelta(ctx context.Context, accountID id.ID, delta types.Money) error {
	r.balances[accountID] = r.balances[accountID].Add(delta)
	return nil
}

func (r *CashRepo) ListBalances(ctx context.Context) ([]entity.CashBalance, error) {
	var out []entity.CashBalance
	for accountID, amount := range r.balances {
		out = append(out, entity.CashBalance{AccountID: accountID, Amount: amount})
	}
	return out, nil
}

func (r *CashRepo) Rebuild(ctx context.Context) error {
	r.balances = make(map[id.ID]types.Money)
	for i := range r.movements {
		m := &r.movements[i]
		r.balances[m.AccountID] = r.balances[m.AccountID].Add(m.SignedAmount())
	}
	return nil
}

// MovementCount reports the size of the movement log.
func (r *CashRepo) MovementCount() int {
	return len(r.movements)
}

// --- Documents ---

// SaleRepo is an in-memory sale.Repository.
type SaleRepo struct {
	docs map[id.ID]*sale.Sale
}

// NewSaleRepo creates an empty sale store.
func NewSaleRepo() *SaleRepo {
	return &SaleRepo{docs: make(map[id.ID]*sale.Sale)}
}

func (r *SaleRepo) Create(ctx context.Context, doc *sale.Sale) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID)
	}
	return doc, nil
}

func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*sale.Sale, error) {
	return r.GetByID(ctx, docID)
}

func (r *SaleRepo) Delete(ctx context.Context, docID id.ID) error {
	if _, ok := r.docs[docID]; !ok {
		return apperror.NewNotFound("sale", docID)
	}
	delete(r.docs, docID)
	return nil
}

func (r *SaleRepo) MarkPaid(ctx context.Context, docID, accountID id.ID) error {
	doc, ok := r.docs[docID]
	if !ok || doc.IsPaid {
		return apperror.NewNotFound("unpaid sale", docID)
	}
	doc.IsPaid = true
	doc.AccountID = &accountID
	doc.Touch()
	return nil
}

func (r *SaleRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*sale.Sale], error) {
	items := make([]*sale.Sale, 0, len(r.docs))
	for _, doc := range r.docs {
		items = append(items, doc)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return domain.ListResult[*sale.Sale]{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// Count reports the number of stored documents.
func (r *SaleRepo) Count() int {
	return len(r.docs)
}

// IncomeRepo is an in-memory income.Repository.
type IncomeRepo struct {
	docs map[id.ID]*income.Income
}

// NewIncomeRepo creates an empty income store.
func NewIncomeRepo() *IncomeRepo {
	return &IncomeRepo{docs: make(map[id.ID]*income.Income)}
}

func (r *IncomeRepo) Create(ctx context.Context, doc *income.Income) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *IncomeRepo) GetByID(ctx context.Context, docID id.ID) (*income.Income, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("income", docID)
	}
	return doc, nil
}

func (r *IncomeRepo) GetByIDForUpdate(ctx context.Context, docID id.ID) (*income.Income, error) {
	return r.GetByID(ctx, docID)
}

func (r *IncomeRepo) Delete(ctx context.Context, docID id.ID) error {
	if _, ok := r.docs[docID]; !ok {
		return apperror.NewNotFound("income", docID)
	}
	delete(r.docs, docID)
	return nil
}

func (r *IncomeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*income.Income], error) {
	items := make([]*income.Income, 0, len(r.docs))
	for _, doc := range r.docs {
		items = append(items, doc)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return domain.ListResult[*income.Income]{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// Count reports the number of stored documents.
func (r *IncomeRepo) Count() int {
	return len(r.docs)
}

// DebtorRepo is an in-memory debtors.Repository.
type DebtorRepo struct {
	byID   map[id.ID]*debtors.Debtor
	bySale map[id.ID]*debtors.Debtor
}

// NewDebtorRepo creates an empty debtor store.
func NewDebtorRepo() *DebtorRepo {
	return &DebtorRepo{
		byID:   make(map[id.ID]*debtors.Debtor),
		bySale: make(map[id.ID]*debtors.Debtor),
	}
}

func (r *DebtorRepo) Create(ctx context.Context, d *debtors.Debtor) error {
	if _, exists := r.bySale[d.SaleID]; exists {
		return apperror.NewDuplicate("debtor", "sale", d.SaleID.String())
	}
	r.byID[d.ID] = d
	r.bySale[d.SaleID] = d
	return nil
}

func (r *DebtorRepo) GetByID(ctx context.Context, debtorID id.ID) (*debtors.Debtor, error) {
	d, ok := r.byID[debtorID]
	if !ok {
		return nil, apperror.NewNotFound("debtor", debtorID)
	}
	return d, nil
}

func (r *DebtorRepo) GetByIDForUpdate(ctx context.Context, debtorID id.ID) (*debtors.Debtor, error) {
	return r.GetByID(ctx, debtorID)
}

func (r *DebtorRepo) MarkPaid(ctx context.Context, debtorID id.ID) error {
	d, ok := r.byID[debtorID]
	if !ok || d.IsPaid {
		return apperror.NewNotFound("open debtor", debtorID)
	}
	d.IsPaid = true
	d.Touch()
	return nil
}

func (r *DebtorRepo) DeleteBySale(ctx context.Context, saleID id.ID) error {
	d, ok := r.bySale[saleID]
	if !ok {
		return nil
	}
	delete(r.byID, d.ID)
	delete(r.bySale, saleID)
	return nil
}

func (r *DebtorRepo) ListOpen(ctx context.Context) ([]*debtors.Debtor, error) {
	var out []*debtors.Debtor
	for _, d := range r.byID {
		if !d.IsPaid {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocDate.Before(out[j].DocDate) })
	return out, nil
}

func (r *DebtorRepo) List(ctx context.Context) ([]*debtors.Debtor, error) {
	out := make([]*debtors.Debtor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocDate.After(out[j].DocDate) })
	return out, nil
}

// Count reports the number of stored debtors.
func (r *DebtorRepo) Count() int {
	return len(r.byID)
}

// Interface compliance checks.
var (
	_ tx.Manager          = TxManager{}
	_ account.Repository  = (*AccountRepo)(nil)
	_ customer.Repository = (*CustomerRepo)(nil)
	_ stock.Repository    = (*StockRepo)(nil)
	_ cash.Repository     = (*CashRepo)(nil)
	_ sale.Repository     = (*SaleRepo)(nil)
	_ income.Repository   = (*IncomeRepo)(nil)
	_ debtors.Repository  = (*DebtorRepo)(nil)
)
