package lifecyclesvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/ieventpub"
	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/inotifier"
	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/iorderrepo"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/event"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

const (
	// confirmWindow bounds the identity-confirmation step after checkout.
	confirmWindow = 10 * time.Minute
	// merchantSLA is how long the merchant has to act on a pending order.
	merchantSLA = 5 * time.Minute
	// assemblyWindow is how long the merchant has to prepare an accepted order.
	assemblyWindow = 15 * time.Minute
)

// LifecycleService is the order lifecycle engine. It owns every status
// mutation: orders are created here and move through the transition graph of
// the order model exclusively through these operations.
type LifecycleService struct {
	orderRepo iorderrepo.IOrderRepository
	notifier  inotifier.INotifier
	events    ieventpub.IEventPublisher
}

// option is a function that configures the LifecycleService.
type option func(*LifecycleService)

// MustNewLifecycleService creates a new LifecycleService.
func MustNewLifecycleService(opts ...option) *LifecycleService {
	s := &LifecycleService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.orderRepo == nil {
		panic("lifecyclesvc: order repository is required")
	}

	return s
}

// WithOrderRepository sets the order store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo iorderrepo.IOrderRepository) option {
	return func(s *LifecycleService) {
		s.orderRepo = repo
	}
}

// WithNotifier sets the notification channel.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(notifier inotifier.INotifier) option {
	return func(s *LifecycleService) {
		s.notifier = notifier
	}
}

// WithEventPublisher sets the order-event publisher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventPublisher(events ieventpub.IEventPublisher) option {
	return func(s *LifecycleService) {
		s.events = events
	}
}

// CreateOrder validates the payload and appends a new order in CREATED
// state, with the identity-confirmation window started.
func (s *LifecycleService) CreateOrder(ctx context.Context, model order.NewOrderModel) (order.Order, error) {
	now := time.Now()
	expiresAt := now.Add(confirmWindow)

	o := order.Order{
		ID:              order.NewID(),
		MerchantID:      model.MerchantID,
		Items:           model.Items,
		Total:           model.Total,
		UserAddress:     model.UserAddress,
		Status:          order.StatusCreated,
		CreatedAt:       now,
		StatusUpdatedAt: now,
		ExpiresAt:       &expiresAt,
	}

	if err := o.Validate(); err != nil {
		return order.Order{}, err
	}

	created, err := s.orderRepo.Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	s.publishEvent(ctx, created)

	return created, nil
}

// ConfirmIdentity links the customer's phone number to the order and hands
// it to the merchant for review. Calling it on an order that already left
// CREATED is a no-op returning the stored order unchanged, so a duplicate
// confirmation never resets the merchant SLA timer. The channel that ingested
// the confirmation owns the user-visible acknowledgment.
func (s *LifecycleService) ConfirmIdentity(ctx context.Context, orderID string, phone string) (*order.Order, error) {
	current, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if current.Status != order.StatusCreated {
		return current, nil
	}

	now := time.Now()
	deadline := now.Add(merchantSLA)

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, order.StatusCreated, order.StatusPatch{
		Status:              order.StatusPendingConfirm,
		StatusUpdatedAt:     now,
		UserPhone:           &phone,
		MerchantSLADeadline: &deadline,
	})
	if errors.Is(err, order.ErrStatusConflict) {
		// Lost the race against another confirmation; the order already
		// moved on, which is exactly the idempotent outcome.
		return updated, nil
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, *updated)

	return updated, nil
}

// Accept moves a pending order to ACCEPTED and starts the assembly window.
func (s *LifecycleService) Accept(ctx context.Context, orderID string) (*order.Order, error) {
	deadline := time.Now().Add(assemblyWindow)

	updated, err := s.transition(ctx, orderID, order.StatusPendingConfirm, order.StatusPatch{
		Status:           order.StatusAccepted,
		AssemblyDeadline: &deadline,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated.UserPhone,
		fmt.Sprintf("Your order #%s (%s) for %d MAD has been confirmed! 🍕 It's being prepared.",
			updated.ID, itemsRecap(updated.Items), updated.Total))

	return updated, nil
}

// Reject declines a pending order. REJECTED is terminal.
func (s *LifecycleService) Reject(ctx context.Context, orderID string) (*order.Order, error) {
	updated, err := s.transition(ctx, orderID, order.StatusPendingConfirm, order.StatusPatch{
		Status: order.StatusRejected,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated.UserPhone,
		fmt.Sprintf("Sorry, your order #%s was declined by the merchant.", updated.ID))

	return updated, nil
}

// MarkReady moves an accepted order out for delivery.
func (s *LifecycleService) MarkReady(ctx context.Context, orderID string) (*order.Order, error) {
	updated, err := s.transition(ctx, orderID, order.StatusAccepted, order.StatusPatch{
		Status: order.StatusOutForDelivery,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated.UserPhone,
		fmt.Sprintf("Good news! Your order #%s is on the way! 🛵", updated.ID))

	return updated, nil
}

// MarkDelivered completes the order.
func (s *LifecycleService) MarkDelivered(ctx context.Context, orderID string) (*order.Order, error) {
	updated, err := s.transition(ctx, orderID, order.StatusOutForDelivery, order.StatusPatch{
		Status: order.StatusDelivered,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, updated.UserPhone,
		fmt.Sprintf("Your order #%s has been delivered. Enjoy your meal! ✅", updated.ID))

	return updated, nil
}

// TransitionTo dispatches to the operation that targets the requested
// status. It backs the PATCH endpoint, which identifies transitions by their
// destination state.
func (s *LifecycleService) TransitionTo(ctx context.Context, orderID string, target order.Status) (*order.Order, error) {
	switch target {
	case order.StatusAccepted:
		return s.Accept(ctx, orderID)
	case order.StatusRejected:
		return s.Reject(ctx, orderID)
	case order.StatusOutForDelivery:
		return s.MarkReady(ctx, orderID)
	case order.StatusDelivered:
		return s.MarkDelivered(ctx, orderID)
	default:
		current, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		return nil, &order.InvalidTransitionError{Current: current.Status, Requested: target}
	}
}

// GetOrder returns a single order.
func (s *LifecycleService) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// GetOrders lists orders newest first, optionally filtered by merchant.
func (s *LifecycleService) GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	return s.orderRepo.Query(ctx, filter)
}

// transition applies a guarded status change. A conditional-update miss on a
// live order is reported as InvalidTransition carrying the actual state.
func (s *LifecycleService) transition(
	ctx context.Context,
	orderID string,
	from order.Status,
	patch order.StatusPatch,
) (*order.Order, error) {
	patch.StatusUpdatedAt = time.Now()

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, from, patch)
	if errors.Is(err, order.ErrStatusConflict) {
		return nil, &order.InvalidTransitionError{Current: updated.Status, Requested: patch.Status}
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, *updated)

	return updated, nil
}

// notify makes a best-effort delivery attempt. The state change is already
// committed; a channel failure is logged and swallowed.
func (s *LifecycleService) notify(ctx context.Context, recipient string, text string) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.Notify(ctx, recipient, text, nil); err != nil {
		slog.Error("Failed to notify customer",
			"recipient", recipient,
			"error", err,
		)
	}
}

func (s *LifecycleService) publishEvent(ctx context.Context, o order.Order) {
	if s.events == nil {
		return
	}

	ev := event.OrderEvent{
		OrderID:    o.ID,
		MerchantID: o.MerchantID,
		Status:     o.Status,
		OccurredAt: o.StatusUpdatedAt,
	}
	if err := s.events.PublishOrderEvent(ctx, ev); err != nil {
		slog.Error("Failed to publish order event", "order_id", o.ID, "error", err)
	}
}

func itemsRecap(items []order.Item) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%dx %s", item.Qty, item.Name)
	}

	return strings.Join(parts, ", ")
}
