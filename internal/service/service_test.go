package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"duka/manager/internal/model"
	"duka/manager/internal/repository/sqlite"
	"duka/manager/internal/service/authprovider"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIDP struct {
	mu    sync.Mutex
	users map[string]authprovider.User
}

func newFakeIDP() *fakeIDP {
	return &fakeIDP{users: make(map[string]authprovider.User)}
}

func (f *fakeIDP) SignUp(_ context.Context, email, _, fullName string) (authprovider.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; ok {
		return authprovider.User{}, &authprovider.ErrorResponse{StatusCode: 422, Msg: "User already registered"}
	}
	u := authprovider.User{ID: uuid.NewString(), Email: email, UserMetadata: authprovider.UserMetadata{FullName: fullName}}
	f.users[email] = u
	return u, nil
}

func (f *fakeIDP) SignIn(_ context.Context, email, password string) (authprovider.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok || password == "wrong-password" {
		return authprovider.Session{}, &authprovider.ErrorResponse{StatusCode: 400, ErrorDescription: "Invalid login credentials"}
	}
	return authprovider.Session{AccessToken: "token-" + u.ID, TokenType: "bearer", User: u}, nil
}

var nairobi = time.FixedZone("EAT", 3*60*60)

type fixture struct {
	store     *sqlite.Store
	shops     *ShopService
	inventory *InventoryService
	credits   *CreditService
	expenses  *ExpenseService
	reports   *ReportService
	owner     model.Member
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "duka.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := zap.NewNop()
	rate := dec("0.03")
	f := &fixture{
		store:     store,
		shops:     NewShopService(store, newFakeIDP(), log),
		inventory: NewInventoryService(store, log),
		credits:   NewCreditService(store, log),
		expenses:  NewExpenseService(store, log, nairobi, rate),
		reports:   NewReportService(store, nairobi, rate),
	}

	acc, err := f.shops.SignUp(ctx, SignUpInput{Email: "wanjiku@example.com", Password: "secret1", FullName: "Wanjiku"})
	require.NoError(t, err)
	f.owner = acc.Member
	return f
}

func (f *fixture) setNow(now time.Time) {
	clock := func() time.Time { return now }
	f.shops.now = clock
	f.inventory.now = clock
	f.credits.now = clock
	f.expenses.now = clock
	f.reports.now = clock
}

func (f *fixture) product(t *testing.T, name string, qty int, cost, price string) model.Product {
	t.Helper()
	p, err := f.inventory.AddProduct(context.Background(), f.owner, ProductInput{
		Name:              name,
		CostPrice:         dec(cost),
		SellingPrice:      dec(price),
		Quantity:          qty,
		LowStockThreshold: 5,
	})
	require.NoError(t, err)
	return p
}

func TestShopService_SignUp(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.Equal(t, model.RoleOwner, f.owner.Role)
	acc, err := f.shops.Account(ctx, f.owner)
	require.NoError(t, err)
	require.Equal(t, "Wanjiku's Shop", acc.Shop.Name)

	m, err := f.shops.Membership(ctx, f.owner.UserID)
	require.NoError(t, err)
	require.Equal(t, f.owner.ID, m.ID)

	_, err = f.shops.SignUp(ctx, SignUpInput{Email: "not-an-email", Password: "secret1"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = f.shops.SignUp(ctx, SignUpInput{Email: "a@example.com", Password: "12345"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = f.shops.Membership(ctx, uuid.NewString())
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestShopService_SignIn(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	session, err := f.shops.SignIn(ctx, "wanjiku@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, f.owner.UserID, session.User.ID)

	_, err = f.shops.SignIn(ctx, "wanjiku@example.com", "wrong-password")
	require.ErrorIs(t, err, model.ErrUnauthorized)

	_, err = f.shops.SignIn(ctx, "", "")
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestShopService_Employees(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	emp, err := f.shops.CreateEmployee(ctx, f.owner, EmployeeInput{Email: "otieno@example.com", Password: "kiosk1", FullName: "Otieno"})
	require.NoError(t, err)
	require.Equal(t, model.RoleAttendant, emp.Role)

	employees, err := f.shops.ListEmployees(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Equal(t, "Otieno", employees[0].FullName)

	attendant, err := f.shops.Membership(ctx, emp.UserID)
	require.NoError(t, err)

	_, err = f.shops.CreateEmployee(ctx, attendant, EmployeeInput{Email: "x@example.com", Password: "secret1"})
	require.ErrorIs(t, err, model.ErrForbidden)
	_, err = f.shops.ListEmployees(ctx, attendant)
	require.ErrorIs(t, err, model.ErrForbidden)

	err = f.shops.RemoveEmployee(ctx, f.owner, f.owner.ID)
	require.ErrorIs(t, err, model.ErrForbidden)

	require.NoError(t, f.shops.RemoveEmployee(ctx, f.owner, emp.ID))
	err = f.shops.RemoveEmployee(ctx, f.owner, emp.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestInventoryService_Products(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	sugar := f.product(t, "Sugar 1kg", 20, "150", "180")
	require.Equal(t, model.DefaultCategory, sugar.Category)
	require.Equal(t, model.DefaultUnit, sugar.Unit)
	f.product(t, "Bread", 3, "50", "60")

	_, err := f.inventory.AddProduct(ctx, f.owner, ProductInput{Name: " ", SellingPrice: dec("10")})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.inventory.AddProduct(ctx, f.owner, ProductInput{Name: "Salt", SellingPrice: dec("-1")})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	products, err := f.inventory.ListProducts(ctx, f.owner, "")
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "Bread", products[0].Name)

	found, err := f.inventory.ListProducts(ctx, f.owner, "SUGAR")
	require.NoError(t, err)
	require.Len(t, found, 1)

	low, err := f.inventory.LowStock(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Bread", low[0].Name)

	updated, err := f.inventory.UpdateProduct(ctx, f.owner, sugar.ID, ProductInput{
		Name: "Sugar 2kg", CostPrice: dec("290"), SellingPrice: dec("350"), Quantity: 10, LowStockThreshold: 2,
	})
	require.NoError(t, err)
	require.True(t, updated.SellingPrice.Equal(dec("350")))

	require.NoError(t, f.inventory.DeleteProduct(ctx, f.owner, sugar.ID))
	err = f.inventory.DeleteProduct(ctx, f.owner, sugar.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestInventoryService_AttendantCannotEditProducts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	attendant := f.owner
	attendant.Role = model.RoleAttendant

	_, err := f.inventory.AddProduct(ctx, attendant, ProductInput{Name: "Milk", SellingPrice: dec("60")})
	require.ErrorIs(t, err, model.ErrForbidden)
	err = f.inventory.DeleteProduct(ctx, attendant, uuid.NewString())
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestInventoryService_RecordSale(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	sugar := f.product(t, "Sugar", 10, "500", "600")

	rec, err := f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: sugar.ID, Quantity: 2})
	require.NoError(t, err)
	require.True(t, rec.Sale.TotalAmount.Equal(dec("1200")))
	require.True(t, rec.Sale.Profit().Equal(dec("200")))
	require.Nil(t, rec.Credit)
	require.Equal(t, "Sold 2x Sugar for KSh 1,200", rec.Message)

	products, err := f.inventory.ListProducts(ctx, f.owner, "")
	require.NoError(t, err)
	require.Equal(t, 8, products[0].Quantity)

	_, err = f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: sugar.ID, Quantity: 9})
	require.ErrorIs(t, err, model.ErrInsufficientStock)
	_, err = f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: sugar.ID, Quantity: 0})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: uuid.NewString(), Quantity: 1})
	require.ErrorIs(t, err, model.ErrNotFound)

	sales, err := f.inventory.ListSales(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, sales, 1)
}

func TestInventoryService_RecordSale_Concurrent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	soap := f.product(t, "Soap", 5, "40", "50")

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold, rejected := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: soap.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				sold++
			} else {
				assert.ErrorIs(t, err, model.ErrInsufficientStock)
				rejected++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 5, sold)
	require.Equal(t, 5, rejected)

	products, err := f.inventory.ListProducts(ctx, f.owner, "")
	require.NoError(t, err)
	require.Equal(t, 0, products[0].Quantity)
}

func TestCreditService_Flow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	flour := f.product(t, "Unga", 10, "150", "200")

	_, err := f.credits.AddCustomer(ctx, f.owner, CustomerInput{Name: "  "})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	mama, err := f.credits.AddCustomer(ctx, f.owner, CustomerInput{Name: "Mama Njeri", Phone: "0712345678"})
	require.NoError(t, err)

	rec, err := f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: flour.ID, Quantity: 5, CustomerID: mama.ID})
	require.NoError(t, err)
	require.NotNil(t, rec.Credit)
	require.Equal(t, model.CreditPending, rec.Credit.Status)
	require.True(t, rec.Credit.Amount.Equal(dec("1000")))
	require.Contains(t, rec.Message, "on credit")

	_, err = f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: flour.ID, Quantity: 1, CustomerID: uuid.NewString()})
	require.ErrorIs(t, err, model.ErrNotFound)

	view, err := f.credits.RecordPayment(ctx, f.owner, rec.Credit.ID, dec("400"))
	require.NoError(t, err)
	require.Equal(t, model.CreditPartial, view.Status)
	require.True(t, view.Balance.Equal(dec("600")))

	_, err = f.credits.RecordPayment(ctx, f.owner, rec.Credit.ID, dec("700"))
	require.ErrorIs(t, err, model.ErrOverpayment)

	owed, err := f.credits.CustomerOwed(ctx, f.owner, mama.ID)
	require.NoError(t, err)
	require.True(t, owed.Equal(dec("600")))

	customers, err := f.credits.ListCustomers(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	require.True(t, customers[0].Owed.Equal(dec("600")))

	view, err = f.credits.PayInFull(ctx, f.owner, rec.Credit.ID)
	require.NoError(t, err)
	require.Equal(t, model.CreditPaid, view.Status)
	require.True(t, view.Balance.IsZero())

	payments, err := f.credits.Payments(ctx, f.owner, rec.Credit.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)

	_, err = f.credits.Payments(ctx, f.owner, uuid.NewString())
	require.ErrorIs(t, err, model.ErrNotFound)
	otherShop := f.owner
	otherShop.ShopID = uuid.NewString()
	_, err = f.credits.Payments(ctx, otherShop, rec.Credit.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	summary, err := f.credits.Summary(ctx, f.owner)
	require.NoError(t, err)
	require.True(t, summary.TotalOwed.IsZero())
	require.Equal(t, 0, summary.OpenCredits)

	open, err := f.credits.ListCredits(ctx, f.owner, mama.ID)
	require.NoError(t, err)
	require.Empty(t, open)
	all, err := f.credits.ListCredits(ctx, f.owner, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestExpenseService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.setNow(time.Date(2025, 3, 15, 10, 0, 0, 0, nairobi))

	_, err := f.expenses.AddExpense(ctx, f.owner, ExpenseInput{Category: "Bribes", Description: "x", Amount: dec("10")})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.expenses.AddExpense(ctx, f.owner, ExpenseInput{Category: model.ExpenseRent, Description: "March rent", Amount: dec("0")})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.expenses.AddExpense(ctx, f.owner, ExpenseInput{Category: model.ExpenseRent, Amount: dec("10")})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	rent, err := f.expenses.AddExpense(ctx, f.owner, ExpenseInput{Category: model.ExpenseRent, Description: "March rent", Amount: dec("5000")})
	require.NoError(t, err)
	require.Equal(t, "2025-03-15", rent.Date.Format("2006-01-02"))

	_, err = f.expenses.AddExpense(ctx, f.owner, ExpenseInput{
		Category: model.ExpenseTransport, Description: "Matatu to wholesaler", Amount: dec("200"), Date: "2025-03-01",
	})
	require.NoError(t, err)

	total, err := f.expenses.Total(ctx, f.owner)
	require.NoError(t, err)
	require.True(t, total.Equal(dec("5200")))

	require.NoError(t, f.expenses.DeleteExpense(ctx, f.owner, rent.ID))
	expenses, err := f.expenses.ListExpenses(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
}

func TestExpenseService_QuickAddTOT(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, nairobi)
	f.setNow(now)

	_, err := f.expenses.QuickAddTOT(ctx, f.owner)
	require.ErrorIs(t, err, model.ErrNoSales)

	rice := f.product(t, "Rice", 100, "100", "150")
	_, err = f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: rice.ID, Quantity: 20})
	require.NoError(t, err)

	tot, err := f.expenses.QuickAddTOT(ctx, f.owner)
	require.NoError(t, err)
	require.Equal(t, model.ExpenseTax, tot.Category)
	require.Equal(t, "Turnover Tax (3%)", tot.Description)
	require.True(t, tot.Amount.Equal(dec("90")), tot.Amount.String())
}

func TestReportService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Now().In(nairobi)
	f.setNow(now)

	tea := f.product(t, "Tea leaves", 10, "80", "100")
	milk := f.product(t, "Milk", 4, "50", "60")
	for _, in := range []SaleInput{
		{ProductID: tea.ID, Quantity: 3},
		{ProductID: milk.ID, Quantity: 2},
	} {
		_, err := f.inventory.RecordSale(ctx, f.owner, in)
		require.NoError(t, err)
	}

	stats, err := f.reports.Dashboard(ctx, f.owner)
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalProducts)
	require.Equal(t, 1, stats.LowStockCount)
	require.True(t, stats.TotalStockValue.Equal(dec("820")), stats.TotalStockValue.String())
	require.True(t, stats.TodaySales.Equal(dec("420")))
	require.True(t, stats.TodayProfit.Equal(dec("80")))

	rep, err := f.reports.SalesReport(ctx, f.owner, "")
	require.NoError(t, err)
	require.Equal(t, "7d", rep.Range)
	require.True(t, rep.Totals.Revenue.Equal(dec("420")))
	require.Equal(t, 5, rep.Totals.Items)
	require.Equal(t, "Tea leaves", rep.TopProducts[0].Name)

	_, err = f.reports.SalesReport(ctx, f.owner, "90d")
	require.ErrorIs(t, err, model.ErrInvalidInput)

	history, err := f.reports.SalesHistory(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, history.Days, 1)

	_, err = f.expenses.AddExpense(ctx, f.owner, ExpenseInput{Category: model.ExpenseUtilities, Description: "KPLC tokens", Amount: dec("30")})
	require.NoError(t, err)

	month, err := f.reports.MonthSummary(ctx, f.owner, "")
	require.NoError(t, err)
	require.True(t, month.Revenue.Equal(dec("420")))
	require.True(t, month.Expenses.Equal(dec("30")))
	require.True(t, month.NetProfit.Equal(dec("50")))
	require.True(t, month.TOTDue.Equal(dec("12.6")))

	_, err = f.reports.MonthSummary(ctx, f.owner, "March")
	require.ErrorIs(t, err, model.ErrInvalidInput)
}


func TestMoneyAmountsLimitedToCents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.inventory.AddProduct(ctx, f.owner, ProductInput{Name: "Salt", SellingPrice: dec("10.005")})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.inventory.AddProduct(ctx, f.owner, ProductInput{Name: "Salt", CostPrice: dec("0.001"), SellingPrice: dec("10")})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	_, err = f.inventory.AddProduct(ctx, f.owner, ProductInput{Name: "Gold", SellingPrice: dec("10000000000")})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = f.expenses.AddExpense(ctx, f.owner, ExpenseInput{Category: model.ExpenseOther, Description: "misc", Amount: dec("99.999")})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	// a total past the column limit is refused before anything is written
	pricey := f.product(t, "Generator", 10, "1", "9999999999.99")
	_, err = f.inventory.RecordSale(ctx, f.owner, SaleInput{ProductID: pricey.ID, Quantity: 2})
	require.ErrorIs(t, err, model.ErrInvalidInput)
	sales, err := f.inventory.ListSales(ctx, f.owner)
	require.NoError(t, err)
	require.Empty(t, sales)

	p := f.product(t, "Sukari", 5, "100.25", "120.50")
	got, err := f.inventory.ListProducts(ctx, f.owner, "Sukari")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].SellingPrice.Equal(p.SellingPrice))
}
