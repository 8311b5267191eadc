package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notify"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeProductRepo repositorio de productos en memoria. Registra las llamadas
// a GetByID y GetForUpdate para poder afirmar que un tipo desconocido se
// rechaza antes de tocar storage.
type fakeProductRepo struct {
	products       map[string]*entity.Product
	getByIDCalls   int
	forUpdateCalls int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	f.getByIDCalls++
	return f.products[id], nil
}

func (f *fakeProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	f.forUpdateCalls++
	return f.products[id], nil
}

func (f *fakeProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) IncrementQuantity(_ context.Context, id string, delta int) (int64, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, nil
	}
	p.Quantity += delta
	return 1, nil
}

func (f *fakeProductRepo) FindAtOrBelowMinStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) DetachSupplier(_ context.Context, supplierID string) error {
	for _, p := range f.products {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			p.SupplierID = nil
		}
	}
	return nil
}

// fakeMovementRepo ledger en memoria, solo append y lectura.
type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(_ context.Context, productID string, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range f.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) ListByPeriod(_ context.Context, _, _ time.Time) ([]*entity.Movement, error) {
	return f.movements, nil
}

// fakeTxRunner ejecuta la función directamente sobre los repos en memoria.
// El camino de error del caso de uso devuelve antes de mutar nada, así que
// no hace falta emular rollback.
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	return fn(f.products, f.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildUseCase(products ...*entity.Product) (*inventory.RegisterMovementUseCase, *fakeProductRepo, *fakeMovementRepo, *notify.Registry) {
	productRepo := newFakeProductRepo(products...)
	movementRepo := &fakeMovementRepo{}
	registry := notify.NewRegistry()
	fanout := notify.NewFanout(logger.Nop())
	sweeper := inventory.NewStockAlertEngine(productRepo, fanout, registry)
	uc := inventory.NewRegisterMovementUseCase(
		&fakeTxRunner{products: productRepo, movements: movementRepo},
		productRepo, movementRepo, sweeper, logger.Nop(),
	)
	return uc, productRepo, movementRepo, registry
}

func producto(id string, quantity, minStock int) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     "Producto " + id,
		Article:  "ART-" + id,
		Quantity: quantity,
		MinStock: minStock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

// INCOME suma stock y deja el movimiento en el ledger con sus notas derivadas.
func TestRegisterMovement_IncomeSumaStock(t *testing.T) {
	uc, productRepo, movementRepo, _ := buildUseCase(producto("p1", 50, 10))

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeIncome,
		Quantity:       20,
		DocumentNumber: "FAC-001",
	})
	require.NoError(t, err)

	assert.Equal(t, 70, productRepo.products["p1"].Quantity, "INCOME de 20 sobre 50 debe dejar 70")
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, "reposición de stock", mov.Notes)
	assert.Equal(t, entity.MovementTypeIncome, mov.Type)
	assert.NotEmpty(t, mov.ID)
}

// OUTCOME resta stock con las notas de despacho.
func TestRegisterMovement_OutcomeRestaStock(t *testing.T) {
	uc, productRepo, _, _ := buildUseCase(producto("p1", 50, 10))

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeOutcome,
		Quantity:       15,
		DocumentNumber: "REM-002",
	})
	require.NoError(t, err)

	assert.Equal(t, 35, productRepo.products["p1"].Quantity)
	assert.Equal(t, "salida por despacho", mov.Notes)
}

// WRITE_OFF resta stock igual que OUTCOME pero con notas de baja.
func TestRegisterMovement_WriteOffRestaStock(t *testing.T) {
	uc, productRepo, _, _ := buildUseCase(producto("p1", 50, 10))

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeWriteOff,
		Quantity:       5,
		DocumentNumber: "ACT-003",
	})
	require.NoError(t, err)

	assert.Equal(t, 45, productRepo.products["p1"].Quantity)
	assert.Equal(t, "baja por pérdida o daño", mov.Notes)
}

// Una salida que pide más de lo que hay se rechaza sin tocar el stock ni el ledger.
func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	uc, productRepo, movementRepo, _ := buildUseCase(producto("p1", 10, 5))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeOutcome,
		Quantity:       25,
		DocumentNumber: "REM-004",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 10, ise.Available)
	assert.Equal(t, 25, ise.Requested)
	assert.Equal(t, "stock insuficiente: hay 10, se requieren 25", err.Error())

	assert.Equal(t, 10, productRepo.products["p1"].Quantity, "el rechazo no debe modificar el stock")
	assert.Empty(t, movementRepo.movements, "el rechazo no debe dejar rastro en el ledger")
}

// Sacar exactamente lo que hay es válido y deja el stock en cero.
func TestRegisterMovement_SacarTodoElStock(t *testing.T) {
	uc, productRepo, _, _ := buildUseCase(producto("p1", 10, 5))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeOutcome,
		Quantity:       10,
		DocumentNumber: "REM-005",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, productRepo.products["p1"].Quantity)
}

// Un tipo fuera de INCOME/OUTCOME/WRITE_OFF se rechaza antes de cualquier
// llamada a storage.
func TestRegisterMovement_TipoDesconocido(t *testing.T) {
	uc, productRepo, movementRepo, _ := buildUseCase(producto("p1", 50, 10))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           "RETURN",
		Quantity:       5,
		DocumentNumber: "DEV-006",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownMovementType)

	var ute *domain.UnknownMovementTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "RETURN", ute.Type)

	assert.Zero(t, productRepo.getByIDCalls, "un tipo desconocido no debe consultar productos")
	assert.Zero(t, productRepo.forUpdateCalls)
	assert.Empty(t, movementRepo.movements)
}

// Producto inexistente.
func TestRegisterMovement_ProductoNoExiste(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "no-existe",
		Type:           entity.MovementTypeIncome,
		Quantity:       5,
		DocumentNumber: "FAC-007",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Entradas inválidas: cantidad no positiva o documento vacío.
func TestRegisterMovement_EntradaInvalida(t *testing.T) {
	uc, _, movementRepo, _ := buildUseCase(producto("p1", 50, 10))

	casos := []inventory.MovementInputDTO{
		{ProductID: "p1", Type: entity.MovementTypeIncome, Quantity: 0, DocumentNumber: "FAC-008"},
		{ProductID: "p1", Type: entity.MovementTypeIncome, Quantity: -3, DocumentNumber: "FAC-009"},
		{ProductID: "p1", Type: entity.MovementTypeIncome, Quantity: 5, DocumentNumber: ""},
		{ProductID: "", Type: entity.MovementTypeIncome, Quantity: 5, DocumentNumber: "FAC-010"},
	}
	for _, in := range casos {
		_, err := uc.RegisterMovement(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, movementRepo.movements)
}

// El ledger acumula los movimientos en orden y el stock final es consistente
// con la suma de deltas.
func TestRegisterMovement_LedgerConsistente(t *testing.T) {
	uc, productRepo, movementRepo, _ := buildUseCase(producto("p1", 100, 10))

	pasos := []struct {
		tipo     string
		cantidad int
	}{
		{entity.MovementTypeIncome, 50},   // 150
		{entity.MovementTypeOutcome, 30},  // 120
		{entity.MovementTypeWriteOff, 20}, // 100
		{entity.MovementTypeOutcome, 60},  // 40
	}
	for i, paso := range pasos {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
			ProductID:      "p1",
			Type:           paso.tipo,
			Quantity:       paso.cantidad,
			DocumentNumber: "DOC",
		})
		require.NoError(t, err, "paso %d", i)
	}

	assert.Equal(t, 40, productRepo.products["p1"].Quantity)
	require.Len(t, movementRepo.movements, 4)
	for i, paso := range pasos {
		assert.Equal(t, paso.tipo, movementRepo.movements[i].Type)
		assert.Equal(t, paso.cantidad, movementRepo.movements[i].Quantity)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de stock bajo tras el movimiento
// ──────────────────────────────────────────────────────────────────────────────

// Una salida que deja el producto en su mínimo dispara el barrido y la alerta
// queda cacheada en el registry.
func TestRegisterMovement_SalidaDisparaAlerta(t *testing.T) {
	uc, _, _, registry := buildUseCase(producto("p1", 12, 10))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeOutcome,
		Quantity:       2, // queda en 12-2=10, igual al mínimo
		DocumentNumber: "REM-011",
	})
	require.NoError(t, err)

	require.Equal(t, 1, registry.Count(), "quantity == min_stock debe alertar (umbral inclusivo)")
	cached := registry.AllCached()
	assert.Equal(t, "p1", cached[0].ProductID)
	assert.Contains(t, cached[0].Message, "stock bajo")
	assert.Contains(t, cached[0].Message, "tiene 10 unidades (mínimo 10)")
}

// Un producto por encima de su mínimo no alerta.
func TestRegisterMovement_SinAlertaSobreElMinimo(t *testing.T) {
	uc, _, _, registry := buildUseCase(producto("p1", 50, 10))

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeOutcome,
		Quantity:       5, // queda en 45, muy por encima del mínimo
		DocumentNumber: "REM-012",
	})
	require.NoError(t, err)
	assert.Zero(t, registry.Count())
}

// El barrido recorre el catálogo completo: un movimiento sobre p1 también
// alerta sobre p2 si p2 ya estaba bajo su mínimo.
func TestRegisterMovement_BarridoCatalogoCompleto(t *testing.T) {
	uc, _, _, registry := buildUseCase(
		producto("p1", 100, 10),
		producto("p2", 3, 10), // ya estaba bajo mínimo
	)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeIncome,
		Quantity:       1,
		DocumentNumber: "FAC-013",
	})
	require.NoError(t, err)

	require.Equal(t, 1, registry.Count())
	assert.Equal(t, "p2", registry.AllCached()[0].ProductID)
}

// brokenSweepRepo repositorio cuyo barrido siempre falla; el resto de
// operaciones delega en el fake en memoria.
type brokenSweepRepo struct {
	*fakeProductRepo
}

func (f *brokenSweepRepo) FindAtOrBelowMinStock(_ context.Context) ([]*entity.Product, error) {
	return nil, errors.New("conexión perdida")
}

// Un fallo del barrido post-commit se registra y no afecta al movimiento:
// el caso de uso devuelve el movimiento y las mutaciones quedan aplicadas.
func TestRegisterMovement_FalloDelBarridoNoAfectaElMovimiento(t *testing.T) {
	productRepo := &brokenSweepRepo{fakeProductRepo: newFakeProductRepo(producto("p1", 50, 10))}
	movementRepo := &fakeMovementRepo{}
	registry := notify.NewRegistry()
	sweeper := inventory.NewStockAlertEngine(productRepo, notify.NewFanout(logger.Nop()), registry)
	uc := inventory.NewRegisterMovementUseCase(
		&fakeTxRunner{products: productRepo.fakeProductRepo, movements: movementRepo},
		productRepo, movementRepo, sweeper, logger.Nop(),
	)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeOutcome,
		Quantity:       5,
		DocumentNumber: "REM-020",
	})
	require.NoError(t, err, "el fallo del barrido no debe propagarse al caller")
	require.NotNil(t, mov)

	assert.Equal(t, 45, productRepo.products["p1"].Quantity, "la mutación de stock ya está confirmada")
	require.Len(t, movementRepo.movements, 1, "el movimiento queda en el ledger")
	assert.Zero(t, registry.Count())
}

// ctxAwareSweepRepo falla el barrido si su contexto ya fue cancelado; así se
// distingue un barrido sobre contexto desacoplado de uno que hereda el del request.
type ctxAwareSweepRepo struct {
	*fakeProductRepo
}

func (f *ctxAwareSweepRepo) FindAtOrBelowMinStock(ctx context.Context) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.fakeProductRepo.FindAtOrBelowMinStock(ctx)
}

// El barrido corre sobre un contexto desacoplado del request: una cancelación
// del caller no suprime el alertado posterior al commit.
func TestRegisterMovement_BarridoSobreviveCancelacionDelCaller(t *testing.T) {
	productRepo := &ctxAwareSweepRepo{fakeProductRepo: newFakeProductRepo(producto("p1", 12, 10))}
	movementRepo := &fakeMovementRepo{}
	registry := notify.NewRegistry()
	sweeper := inventory.NewStockAlertEngine(productRepo, notify.NewFanout(logger.Nop()), registry)
	uc := inventory.NewRegisterMovementUseCase(
		&fakeTxRunner{products: productRepo.fakeProductRepo, movements: movementRepo},
		productRepo, movementRepo, sweeper, logger.Nop(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // el caller ya canceló antes de que corra el barrido

	mov, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		ProductID:      "p1",
		Type:           entity.MovementTypeOutcome,
		Quantity:       4, // queda en 8, bajo el mínimo de 10
		DocumentNumber: "REM-021",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	require.Equal(t, 1, registry.Count(), "la alerta debe emitirse aunque el caller haya cancelado")
	assert.Equal(t, "p1", registry.AllCached()[0].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbral del motor de alertas (barrido directo)
// ──────────────────────────────────────────────────────────────────────────────

// Borde del umbral: min-1 y min alertan, min+1 no.
func TestStockAlertEngine_UmbralInclusivo(t *testing.T) {
	productRepo := newFakeProductRepo(
		producto("debajo", 9, 10),
		producto("exacto", 10, 10),
		producto("encima", 11, 10),
	)
	registry := notify.NewRegistry()
	engine := inventory.NewStockAlertEngine(productRepo, notify.NewFanout(logger.Nop()), registry)

	alerts, err := engine.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	ids := []string{alerts[0].ProductID, alerts[1].ProductID}
	assert.ElementsMatch(t, []string{"debajo", "exacto"}, ids)
	assert.Equal(t, 2, registry.Count())
}

// Un barrido sin productos bajo mínimo es válido y silencioso.
func TestStockAlertEngine_BarridoVacio(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", 100, 10))
	registry := notify.NewRegistry()
	engine := inventory.NewStockAlertEngine(productRepo, notify.NewFanout(logger.Nop()), registry)

	alerts, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Zero(t, registry.Count())
}

// El barrido no deduplica: dos pasadas sobre el mismo producto calificado
// emiten dos alertas con ids distintos.
func TestStockAlertEngine_SinDeduplicacion(t *testing.T) {
	productRepo := newFakeProductRepo(producto("p1", 2, 10))
	registry := notify.NewRegistry()
	engine := inventory.NewStockAlertEngine(productRepo, notify.NewFanout(logger.Nop()), registry)

	primera, err := engine.Run(context.Background())
	require.NoError(t, err)
	segunda, err := engine.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, primera, 1)
	require.Len(t, segunda, 1)
	assert.NotEqual(t, primera[0].ID, segunda[0].ID)
	assert.Equal(t, 2, registry.Count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestListByProduct_ProductoNoExiste(t *testing.T) {
	uc, _, _, _ := buildUseCase()
	_, err := uc.ListByProduct(context.Background(), "no-existe", 10, 0)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

// Un período invertido (to antes de from) se rechaza.
func TestListByPeriod_PeriodoInvertido(t *testing.T) {
	uc, _, _, _ := buildUseCase()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -7)
	_, err := uc.ListByPeriod(context.Background(), from, to)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
