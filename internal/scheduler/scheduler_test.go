package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
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
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
	sorepo "github.com/founderspw/somanager/internal/serviceorder/repository"
	soservice "github.com/founderspw/somanager/internal/serviceorder/service"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
	staffrepo "github.com/founderspw/somanager/internal/staff/repository"
	staffservice "github.com/founderspw/somanager/internal/staff/service"
)

var nameSeq atomic.Int64

type fixture struct {
	db          *gorm.DB
	node        *snowflake.Node
	clock       *clock.FakeClock
	sched       *Scheduler
	catalogSvc  catalogdomain.Service
	customerSvc customerdomain.Service
	orderSvc    sodomain.Service
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
		&sodomain.Order{},
		&sodomain.LineEntry{},
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
	orderSvc := soservice.New(soservice.Params{
		DB: db, Log: log, GenID: node, Clock: fake,
		Repo:        sorepo.Provide(),
		CatalogSvc:  catalogSvc,
		CustomerSvc: customerSvc,
		StaffSvc:    staffSvc,
	})

	sched, err := New(Params{
		DB: db, Log: log, OrderSvc: orderSvc, Clock: fake,
	})
	require.NoError(t, err)

	return &fixture{
		db:          db,
		node:        node,
		clock:       fake,
		sched:       sched,
		catalogSvc:  catalogSvc,
		customerSvc: customerSvc,
		orderSvc:    orderSvc,
	}
}

// seedCadencedCustomer creates a weekly customer with one contracted
// item and a prior order scheduled for lastVisit, so the next visit is
// due lastVisit+7d.
func (f *fixture) seedCadencedCustomer(t *testing.T, lastVisit time.Time) customerdomain.Customer {
	t.Helper()
	ctx := context.Background()

	cust, err := f.customerSvc.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:    fmt.Sprintf("Customer %d", nameSeq.Add(1)),
		Cadence: "weekly",
	})
	require.NoError(t, err)

	item, err := f.catalogSvc.Create(ctx, catalogdomain.CreateItemRequest{
		Name:           fmt.Sprintf("Service %d", nameSeq.Add(1)),
		UnitPriceCents: 6500,
		Taxable:        true,
	})
	require.NoError(t, err)

	_, err = f.customerSvc.Contract(ctx, customerdomain.ContractRequest{
		CustomerID: cust.ID.String(),
		CatalogID:  item.ID.String(),
	})
	require.NoError(t, err)

	prior := sodomain.Order{
		ID:           f.node.Generate(),
		CustomerID:   cust.ID,
		Title:        "Weekly Cleaning",
		Status:       sodomain.StatusCompleted,
		ScheduledFor: &lastVisit,
	}
	require.NoError(t, f.db.Create(&prior).Error)

	return cust
}

func (f *fixture) orderCount(t *testing.T, customerID snowflake.ID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&sodomain.Order{}).
		Where("customer_id = ?", customerID).Count(&n).Error)
	return n
}

func TestRunOnce_CreatesOrderInsideLeadWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Last visit Feb 25, so the next weekly visit (Mar 4) falls inside
	// the default 3-day lead window from Mar 2.
	cust := f.seedCadencedCustomer(t, time.Date(2026, time.February, 25, 9, 0, 0, 0, time.UTC))

	require.NoError(t, f.sched.RunOnce(ctx))
	assert.Equal(t, int64(2), f.orderCount(t, cust.ID))

	orders, err := f.orderSvc.List(ctx, sodomain.ListOrderFilter{CustomerID: cust.ID.String()})
	require.NoError(t, err)

	var created *sodomain.Order
	for i := range orders {
		if orders[i].Status == sodomain.StatusScheduled {
			created = &orders[i]
		}
	}
	require.NotNil(t, created)
	require.NotNil(t, created.ScheduledFor)
	assert.True(t, created.ScheduledFor.Equal(time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)))
}

func TestRunOnce_SkipsCustomerOutsideLeadWindow(t *testing.T) {
	f := newFixture(t)

	// Last visit Mar 1; next due Mar 8 is past the Mar 5 horizon.
	cust := f.seedCadencedCustomer(t, time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, f.sched.RunOnce(context.Background()))
	assert.Equal(t, int64(1), f.orderCount(t, cust.ID))
}

func TestRunOnce_SecondRunCreatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cust := f.seedCadencedCustomer(t, time.Date(2026, time.February, 25, 9, 0, 0, 0, time.UTC))

	require.NoError(t, f.sched.RunOnce(ctx))
	require.NoError(t, f.sched.RunOnce(ctx))
	assert.Equal(t, int64(2), f.orderCount(t, cust.ID))

	// A day later the materialized visit still covers the window.
	f.clock.Advance(24 * time.Hour)
	require.NoError(t, f.sched.RunOnce(ctx))
	assert.Equal(t, int64(2), f.orderCount(t, cust.ID))
}

func TestRunOnce_OneFailingCustomerDoesNotStopTheScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lastVisit := time.Date(2026, time.February, 25, 9, 0, 0, 0, time.UTC)
	healthy := f.seedCadencedCustomer(t, lastVisit)
	broken := f.seedCadencedCustomer(t, lastVisit)

	// Point the broken customer's contract at a catalog id that does
	// not exist, so its order creation fails mid-scan.
	require.NoError(t, f.db.Model(&customerdomain.ContractedService{}).
		Where("customer_id = ?", broken.ID).
		Update("catalog_id", f.node.Generate()).Error)

	require.NoError(t, f.sched.RunOnce(ctx))

	assert.Equal(t, int64(2), f.orderCount(t, healthy.ID))
	assert.Equal(t, int64(1), f.orderCount(t, broken.ID))
}
