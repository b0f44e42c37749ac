package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/founderspw/somanager/internal/catalog/domain"
	catalogrepo "github.com/founderspw/somanager/internal/catalog/repository"
	catalogservice "github.com/founderspw/somanager/internal/catalog/service"
	"github.com/founderspw/somanager/internal/clock"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	customerrepo "github.com/founderspw/somanager/internal/customer/repository"
	customerservice "github.com/founderspw/somanager/internal/customer/service"
	"github.com/founderspw/somanager/internal/serviceorder/domain"
	"github.com/founderspw/somanager/internal/serviceorder/repository"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
	staffrepo "github.com/founderspw/somanager/internal/staff/repository"
	staffservice "github.com/founderspw/somanager/internal/staff/service"
)

type fixture struct {
	db          *gorm.DB
	clock       *clock.FakeClock
	orderSvc    domain.Service
	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
	staffSvc    staffdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Item{},
		&customerdomain.Customer{},
		&customerdomain.PaymentProfile{},
		&customerdomain.ContractedService{},
		&staffdomain.Member{},
		&domain.Order{},
		&domain.LineEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	catalogSvc := catalogservice.New(catalogservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake,
		Repo: catalogrepo.Provide(),
	})
	customerSvc := customerservice.New(customerservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake,
		Repo: customerrepo.Provide(), CatalogSvc: catalogSvc,
	})
	staffSvc := staffservice.New(staffservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake,
		Repo: staffrepo.Provide(),
	})
	orderSvc := New(Params{
		DB: db, Log: log, GenID: node, Clock: fake,
		Repo:        repository.Provide(),
		CatalogSvc:  catalogSvc,
		CustomerSvc: customerSvc,
		StaffSvc:    staffSvc,
	})

	return &fixture{
		db:          db,
		clock:       fake,
		orderSvc:    orderSvc,
		catalogSvc:  catalogSvc,
		customerSvc: customerSvc,
		staffSvc:    staffSvc,
	}
}

var customerSeq atomic.Int64

func (f *fixture) mustCustomer(t *testing.T, cadence string) customerdomain.Customer {
	t.Helper()
	cust, err := f.customerSvc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Name:    fmt.Sprintf("Customer %d", customerSeq.Add(1)),
		Cadence: cadence,
	})
	require.NoError(t, err)
	return cust
}

func (f *fixture) mustItem(t *testing.T, name string, cents int64, taxable bool) catalogdomain.Item {
	t.Helper()
	item, err := f.catalogSvc.Create(context.Background(), catalogdomain.CreateItemRequest{
		Name:           name,
		UnitPriceCents: cents,
		Unit:           "visit",
		Taxable:        taxable,
	})
	require.NoError(t, err)
	return item
}

func (f *fixture) mustOrder(t *testing.T, cust customerdomain.Customer) domain.Order {
	t.Helper()
	order, err := f.orderSvc.Create(context.Background(), domain.CreateOrderRequest{
		CustomerID: cust.ID.String(),
		Title:      "Spring visit",
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) mustStatus(t *testing.T, id string, statuses ...domain.Status) domain.Order {
	t.Helper()
	var order domain.Order
	var err error
	for _, status := range statuses {
		order, err = f.orderSvc.SetStatus(context.Background(), id, status)
		require.NoError(t, err)
	}
	return order
}

func TestCreateOrder_StartsAsDraft(t *testing.T) {
	f := newFixture(t)
	order := f.mustOrder(t, f.mustCustomer(t, ""))

	assert.Equal(t, domain.StatusDraft, order.Status)
	assert.Nil(t, order.AssignedStaffID)
}

func TestSetStatus_TransitionTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	all := []domain.Status{
		domain.StatusDraft, domain.StatusScheduled, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusInvoiced, domain.StatusClosed,
		domain.StatusCancelled,
	}

	for from, allowed := range domain.Transitions {
		allowedSet := map[domain.Status]bool{}
		for _, to := range allowed {
			allowedSet[to] = true
		}

		for _, to := range all {
			order := f.mustOrder(t, f.mustCustomer(t, ""))
			require.NoError(t, f.db.Model(&domain.Order{}).
				Where("id = ?", order.ID).
				Update("status", from).Error)

			_, err := f.orderSvc.SetStatus(ctx, order.ID.String(), to)

			switch {
			case to == domain.StatusInvoiced:
				// Invoiced is only entered through assembly.
				assert.ErrorIs(t, err, domain.ErrIllegalTransition,
					"%s -> %s must not be reachable via SetStatus", from, to)
			case allowedSet[to]:
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
			default:
				assert.ErrorIs(t, err, domain.ErrIllegalTransition,
					"%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	f := newFixture(t)
	order := f.mustOrder(t, f.mustCustomer(t, ""))

	_, err := f.orderSvc.SetStatus(context.Background(), order.ID.String(), domain.Status("paused"))
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestSetStatus_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.orderSvc.SetStatus(context.Background(), "123456789", domain.StatusScheduled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddLine_SnapshotsCatalogItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.mustItem(t, "Mowing", 1999, true)
	order := f.mustOrder(t, f.mustCustomer(t, ""))

	line, err := f.orderSvc.AddLine(ctx, domain.AddLineRequest{
		OrderID:   order.ID.String(),
		CatalogID: item.ID.String(),
		Quantity:  decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1999), line.UnitPriceCents)
	assert.True(t, line.Taxable)

	// Later catalog edits never reach the captured snapshot.
	newPrice := int64(2999)
	_, err = f.catalogSvc.Update(ctx, catalogdomain.UpdateItemRequest{
		ID:             item.ID.String(),
		UnitPriceCents: &newPrice,
	})
	require.NoError(t, err)

	got, err := f.orderSvc.GetByID(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(1999), got.Lines[0].UnitPriceCents)
}

func TestAddLine_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.mustItem(t, "Mowing", 1999, true)
	order := f.mustOrder(t, f.mustCustomer(t, ""))

	_, err := f.orderSvc.AddLine(ctx, domain.AddLineRequest{
		OrderID:   order.ID.String(),
		CatalogID: item.ID.String(),
		Quantity:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	negative := int64(-5)
	_, err = f.orderSvc.AddLine(ctx, domain.AddLineRequest{
		OrderID:            order.ID.String(),
		CatalogID:          item.ID.String(),
		Quantity:           decimal.NewFromInt(1),
		OverridePriceCents: &negative,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestAddLine_FrozenAfterCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.mustItem(t, "Mowing", 1999, true)
	order := f.mustOrder(t, f.mustCustomer(t, ""))
	f.mustStatus(t, order.ID.String(), domain.StatusCancelled)

	_, err := f.orderSvc.AddLine(ctx, domain.AddLineRequest{
		OrderID:   order.ID.String(),
		CatalogID: item.ID.String(),
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrOrderFrozen)
}

func TestRemoveLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.mustItem(t, "Mowing", 1999, true)
	order := f.mustOrder(t, f.mustCustomer(t, ""))

	line, err := f.orderSvc.AddLine(ctx, domain.AddLineRequest{
		OrderID:   order.ID.String(),
		CatalogID: item.ID.String(),
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	require.NoError(t, f.orderSvc.RemoveLine(ctx, order.ID.String(), line.ID.String()))

	err = f.orderSvc.RemoveLine(ctx, order.ID.String(), line.ID.String())
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestAssign_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	member, err := f.staffSvc.Create(ctx, staffdomain.CreateMemberRequest{Name: "Sam"})
	require.NoError(t, err)
	order := f.mustOrder(t, f.mustCustomer(t, ""))

	first, err := f.orderSvc.Assign(ctx, order.ID.String(), member.ID.String())
	require.NoError(t, err)
	require.NotNil(t, first.AssignedStaffID)

	second, err := f.orderSvc.Assign(ctx, order.ID.String(), member.ID.String())
	require.NoError(t, err)
	assert.Equal(t, *first.AssignedStaffID, *second.AssignedStaffID)

	cleared, err := f.orderSvc.Unassign(ctx, order.ID.String())
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedStaffID)
}

func TestNextDue_RequiresCadence(t *testing.T) {
	f := newFixture(t)

	cust := f.mustCustomer(t, "")
	_, err := f.orderSvc.NextDue(context.Background(), cust.ID.String())
	assert.ErrorIs(t, err, domain.ErrNoCadence)
}

func TestCreateNext_SeedsContractedLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mow := f.mustItem(t, "Mowing", 6500, true)
	edge := f.mustItem(t, "Edging", 2500, true)

	cust := f.mustCustomer(t, "weekly")
	override := int64(6000)
	_, err := f.customerSvc.Contract(ctx, customerdomain.ContractRequest{
		CustomerID:     cust.ID.String(),
		CatalogID:      mow.ID.String(),
		UnitPriceCents: &override,
	})
	require.NoError(t, err)
	_, err = f.customerSvc.Contract(ctx, customerdomain.ContractRequest{
		CustomerID: cust.ID.String(),
		CatalogID:  edge.ID.String(),
	})
	require.NoError(t, err)

	order, err := f.orderSvc.CreateNext(ctx, cust.ID.String())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScheduled, order.Status)
	require.NotNil(t, order.ScheduledFor)
	assert.Equal(t, f.clock.Now().AddDate(0, 0, 7).Day(), order.ScheduledFor.Day())
	assert.Equal(t, "Weekly Cleaning", order.Title)

	require.Len(t, order.Lines, 2)
	assert.Equal(t, int64(6000), order.Lines[0].EffectiveUnitPriceCents())
	assert.Equal(t, int64(2500), order.Lines[1].EffectiveUnitPriceCents())
	assert.True(t, order.Lines[0].Quantity.Equal(decimal.NewFromInt(1)))
}

func TestCreateNext_AdvancesFromLastScheduled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cust := f.mustCustomer(t, "weekly")

	first, err := f.orderSvc.CreateNext(ctx, cust.ID.String())
	require.NoError(t, err)
	second, err := f.orderSvc.CreateNext(ctx, cust.ID.String())
	require.NoError(t, err)

	require.NotNil(t, first.ScheduledFor)
	require.NotNil(t, second.ScheduledFor)
	assert.Equal(t, first.ScheduledFor.AddDate(0, 0, 7), *second.ScheduledFor)
}

func TestDelete_RemovesOrderAndLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item := f.mustItem(t, "Mowing", 1999, true)
	order := f.mustOrder(t, f.mustCustomer(t, ""))
	_, err := f.orderSvc.AddLine(ctx, domain.AddLineRequest{
		OrderID:   order.ID.String(),
		CatalogID: item.ID.String(),
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	require.NoError(t, f.orderSvc.Delete(ctx, order.ID.String()))

	_, err = f.orderSvc.GetByID(ctx, order.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&domain.LineEntry{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)
}
