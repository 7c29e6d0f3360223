package handlers

import (
	"github.com/gin-gonic/gin"

	"tradebook/internal/domain/catalogs/account"
	"tradebook/internal/domain/catalogs/customer"
	"tradebook/internal/domain/catalogs/product"
	"tradebook/internal/domain/catalogs/warehouse"
	"tradebook/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves the reference catalogs. Rows are usually created
// lazily by documents; the create endpoints pre-register names ahead of
// their first document. Customers have no create endpoint: they only
// exist through sales.
type CatalogHandler struct {
	*BaseHandler
	warehouses *warehouse.Service
	products   *product.Service
	accounts   *account.Service
	customers  *customer.Service
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(
	base *BaseHandler,
	warehouses *warehouse.Service,
	products *product.Service,
	accounts *account.Service,
	customers *customer.Service,
) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: base,
		warehouses:  warehouses,
		products:    products,
		accounts:    accounts,
		customers:   customers,
	}
}

// CreateWarehouse registers a warehouse by name.
func (h *CatalogHandler) CreateWarehouse(c *gin.Context) {
	var req dto.CreateWarehouseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	w := warehouse.New(req.Name)
	if err := h.warehouses.Create(c.Request.Context(), w); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromWarehouse(w))
}

// CreateProduct registers a product by name.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := product.New(req.Name)
	if err := h.products.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromProduct(p))
}

// CreateAccount registers an account with its type.
func (h *CatalogHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a := account.New(req.Name, account.Type(req.Type))
	a.BankName = req.BankName
	if err := h.accounts.Create(c.Request.Context(), a); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromAccount(a))
}

// ListWarehouses returns all warehouses.
func (h *CatalogHandler) ListWarehouses(c *gin.Context) {
	list, err := h.warehouses.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.WarehouseResponse, len(list))
	for i, w := range list {
		items[i] = dto.FromWarehouse(w)
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: int64(len(items))})
}

// ListProducts returns all products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	list, err := h.products.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ProductResponse, len(list))
	for i, p := range list {
		items[i] = dto.FromProduct(p)
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: int64(len(items))})
}

// ListAccounts returns all accounts, optionally filtered by ?type=.
func (h *CatalogHandler) ListAccounts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		list []*account.Account
		err  error
	)
	if accType := c.Query("type"); accType != "" {
		list, err = h.accounts.ListByType(ctx, account.Type(accType))
	} else {
		list, err = h.accounts.List(ctx)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AccountResponse, len(list))
	for i, a := range list {
		items[i] = dto.FromAccount(a)
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: int64(len(items))})
}

// ListCustomers returns all customers.
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	list, err := h.customers.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.CustomerResponse, len(list))
	for i, cu := range list {
		items[i] = dto.FromCustomer(cu)
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: int64(len(items))})
}

// RegisterRoutes registers catalog routes.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/warehouses", h.ListWarehouses)
	rg.POST("/warehouses", h.CreateWarehouse)
	rg.GET("/products", h.ListProducts)
	rg.POST("/products", h.CreateProduct)
	rg.GET("/accounts", h.ListAccounts)
	rg.POST("/accounts", h.CreateAccount)
	rg.GET("/customers", h.ListCustomers)
}
