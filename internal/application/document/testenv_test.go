package document_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	appdocument "github.com/salonops/backend/internal/application/document"
	"github.com/salonops/backend/internal/domain/catalog"
	"github.com/salonops/backend/internal/domain/document"
	"github.com/salonops/backend/internal/domain/inventory"
	"github.com/salonops/backend/internal/domain/partner"
	"github.com/salonops/backend/internal/domain/scheduling"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/salonops/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv runs the services against an in-memory database so every scenario
// exercises the real transaction scope and repositories.
type testEnv struct {
	t     *testing.T
	db    *gorm.DB
	scope *persistence.GormTransactionScope
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&catalog.Service{},
		&catalog.Course{},
		&catalog.Discount{},
		&partner.Partner{},
		&document.Order{},
		&document.Purchase{},
		&document.Consignment{},
		&document.Item{},
		&document.Transaction{},
		&inventory.InventoryRecord{},
		&scheduling.Appointment{},
	))

	return &testEnv{t: t, db: db, scope: persistence.NewGormTransactionScope(db)}
}

func (e *testEnv) seedPartner(code string, partnerType partner.PartnerType) *partner.Partner {
	e.t.Helper()
	p, err := partner.NewPartner(code, "Partner "+code, partnerType)
	require.NoError(e.t, err)
	require.NoError(e.t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) seedProduct(code string, unitPrice int64, quantity int) *catalog.Product {
	e.t.Helper()
	p, err := catalog.NewProduct(code, "Product "+code, valueobject.NewMoneyVNDFromInt(unitPrice), quantity)
	require.NoError(e.t, err)
	require.NoError(e.t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) seedService(code string, unitPrice int64) *catalog.Service {
	e.t.Helper()
	s, err := catalog.NewService(code, "Service "+code, valueobject.NewMoneyVNDFromInt(unitPrice), 60, 1, 0)
	require.NoError(e.t, err)
	require.NoError(e.t, e.db.Create(s).Error)
	return s
}

func (e *testEnv) seedCourse(code string, unitPrice int64, sessions int) *catalog.Course {
	e.t.Helper()
	c, err := catalog.NewCourse(code, "Course "+code, valueobject.NewMoneyVNDFromInt(unitPrice), sessions)
	require.NoError(e.t, err)
	require.NoError(e.t, e.db.Create(c).Error)
	return c
}

func (e *testEnv) seedPercentDiscount(name string, percent int64) *catalog.Discount {
	e.t.Helper()
	d, err := catalog.NewDiscount(name, catalog.DiscountTypePercentage, decimal.NewFromInt(percent))
	require.NoError(e.t, err)
	require.NoError(e.t, e.db.Create(d).Error)
	return d
}

func (e *testEnv) reloadProduct(id uuid.UUID) *catalog.Product {
	e.t.Helper()
	var p catalog.Product
	require.NoError(e.t, e.db.First(&p, "id = ?", id).Error)
	return &p
}

// seqCodes hands out deterministic document codes for tests
type seqCodes struct {
	mu sync.Mutex
	n  int
}

func (c *seqCodes) Next(_ context.Context, prefix string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("%s-20240101-%04d", prefix, c.n), nil
}

var _ appdocument.CodeGenerator = (*seqCodes)(nil)

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func amountEquals(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.NewFromInt(expected)),
		"expected amount %d, got %s", expected, actual)
}
