package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// sweepTimeout límite del barrido post-commit.
const sweepTimeout = 10 * time.Second

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (INCOME, OUTCOME, WRITE_OFF) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback, y dispara el barrido de stock bajo
// después del commit.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	sweeper      *StockAlertEngine
	log          *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	sweeper *StockAlertEngine,
	log *logger.Logger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		sweeper:      sweeper,
		log:          log,
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
type MovementInputDTO struct {
	ProductID      string
	Type           string
	Quantity       int
	DocumentNumber string
}

// RegisterMovement valida la entrada, verifica que el producto exista, aplica
// el delta del tipo de movimiento y persiste el registro, todo dentro de una
// transacción con la fila del producto bloqueada. Tras el commit dispara el
// barrido de stock bajo sobre el catálogo completo.
//
// El handler HTTP ya valida el body, pero el núcleo no confía en el caller:
// tipo y cantidad se re-verifican aquí antes de tocar storage.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, error) {
	proc, err := processorFor(input.Type)
	if err != nil {
		return nil, err
	}
	if input.ProductID == "" || input.Quantity <= 0 || input.DocumentNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	movement := &entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      input.ProductID,
		Type:           input.Type,
		Quantity:       input.Quantity,
		DocumentNumber: input.DocumentNumber,
		Notes:          proc.notes,
		CreatedAt:      time.Now(),
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto (SELECT FOR UPDATE): el check de stock
		// y el update quedan serializados por producto, sin lost updates.
		locked, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrProductNotFound
		}
		if proc.requiresStock && locked.Quantity < input.Quantity {
			return &domain.InsufficientStockError{Available: locked.Quantity, Requested: input.Quantity}
		}
		if _, err := productRepo.IncrementQuantity(ctx, input.ProductID, proc.delta(input.Quantity)); err != nil {
			return err
		}
		return movementRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	uc.runSweep(ctx)
	return movement, nil
}

// runSweep barrido post-commit. Corre sobre un contexto desacoplado del
// request: una cancelación del caller después del commit no debe suprimir el
// alertado. Un fallo del barrido se registra y nunca revierte el movimiento.
func (uc *RegisterMovementUseCase) runSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sweepTimeout)
	defer cancel()
	if _, err := uc.sweeper.Run(sweepCtx); err != nil {
		uc.log.Error().Err(err).Msg("barrido de stock bajo falló")
	}
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*entity.Movement, error) {
	return uc.RegisterMovement(ctx, MovementInputDTO{
		ProductID:      in.ProductID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		DocumentNumber: in.DocumentNumber,
	})
}

// ListByProduct lista el ledger de un producto con paginación.
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.movementRepo.ListByProduct(ctx, productID, limit, offset)
}

// ListByPeriod lista los movimientos de todo el catálogo dentro del período.
func (uc *RegisterMovementUseCase) ListByPeriod(ctx context.Context, from, to time.Time) ([]*entity.Movement, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByPeriod(ctx, from, to)
}
