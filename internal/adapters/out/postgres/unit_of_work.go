// Package postgres provides the GORM-based Unit of Work over the orders,
// boxes and containers tables.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin share that transaction and report every row they write back to
// the unit of work. After a successful Commit the written rows are announced
// on the change feed through the configured ports.ChangePublisher.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.BoxRepository().Update(ctx, b); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after Commit is a no-op that returns gorm.ErrInvalidTransaction,
// which makes the deferred rollback above safe.
package postgres

import (
	"context"
	"log/slog"
	"time"

	"morna/internal/adapters/out/postgres/boxrepo"
	"morna/internal/adapters/out/postgres/containerrepo"
	"morna/internal/adapters/out/postgres/orderrepo"
	"morna/internal/adapters/out/postgres/pgerr"
	"morna/internal/core/domain/model/box"
	"morna/internal/core/domain/model/container"
	"morna/internal/core/domain/model/kernel"
	"morna/internal/core/domain/model/order"
	"morna/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	Change    ports.EventType
	ID        kernel.ID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.ChangePublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory. publisher may be nil when row
// changes are announced by the database itself.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.ChangePublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}

	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.ChangePublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return pgerr.Translate(err, "transaction", "begin")
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return pgerr.Translate(err, "transaction", "commit")
	}

	uow.publish(ctx)
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BoxRepository() ports.BoxRepository {
	return boxrepo.NewGormBoxRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ContainerRepository() ports.ContainerRepository {
	return containerrepo.NewGormContainerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TrackAggregate(change ports.EventType, id kernel.ID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		Change:    change,
		ID:        id,
		Aggregate: aggregate,
	})
}

// ChangeEvents returns the change notifications for the rows written so far.
func (uow *GormUnitOfWork) ChangeEvents() []ports.ChangeEvent {
	now := time.Now().UTC()
	events := make([]ports.ChangeEvent, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		table, ok := tableOf(tracked.Aggregate)
		if !ok {
			continue
		}
		events = append(events, ports.ChangeEvent{
			Table: table,
			Type:  tracked.Change,
			ID:    tracked.ID.String(),
			At:    now,
		})
	}
	return events
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// publish runs after the transaction is durable. A failure only delays
// dashboards until their next resync, so it is logged and swallowed.
func (uow *GormUnitOfWork) publish(ctx context.Context) {
	events := uow.ChangeEvents()
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.publisher == nil || len(events) == 0 {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish change events",
			"events", len(events), "error", err)
	}
}

func tableOf(aggregate any) (ports.Table, bool) {
	switch aggregate.(type) {
	case *order.Order:
		return ports.TableOrders, true
	case *box.Box:
		return ports.TableBoxes, true
	case *container.Container:
		return ports.TableContainers, true
	default:
		return "", false
	}
}
