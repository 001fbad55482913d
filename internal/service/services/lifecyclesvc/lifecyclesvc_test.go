package lifecyclesvc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	memoryrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/order/memory"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

type notification struct {
	recipient string
	text      string
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []notification
	filter error
}

func (f *fakeNotifier) Notify(ctx context.Context, recipient string, text string, cta *message.CTA) error {
	if f.filter != nil {
		return f.filter
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, notification{recipient: recipient, text: text})

	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.sent)
}

func newTestService(notifier *fakeNotifier) *LifecycleService {
	return MustNewLifecycleService(
		WithOrderRepository(memoryrepo.NewOrderRepository()),
		WithNotifier(notifier),
	)
}

func pizzaOrder() order.NewOrderModel {
	return order.NewOrderModel{
		MerchantID:  "m1",
		Items:       []order.Item{{ProductID: "p1", Name: "Pizza", Price: 65, Qty: 2}},
		Total:       130,
		UserAddress: "Casablanca, Morocco",
	}
}

func TestLifecycleService_CreateOrder(t *testing.T) {
	svc := newTestService(&fakeNotifier{})

	created, err := svc.CreateOrder(context.Background(), pizzaOrder())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if created.ID == "" {
		t.Error("Expected order ID to be set")
	}
	if created.Status != order.StatusCreated {
		t.Errorf("Expected status %s, got %s", order.StatusCreated, created.Status)
	}
	if created.Total != 130 {
		t.Errorf("Expected total 130, got %d", created.Total)
	}
	if created.ExpiresAt == nil {
		t.Fatal("Expected expiresAt to be set")
	}
	wantExpiry := created.CreatedAt.Add(10 * time.Minute)
	if !created.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("Expected expiresAt %v, got %v", wantExpiry, *created.ExpiresAt)
	}
	if created.MerchantSLADeadline != nil {
		t.Error("Expected no merchant SLA deadline before identity confirmation")
	}
}

func TestLifecycleService_CreateOrder_Validation(t *testing.T) {
	svc := newTestService(&fakeNotifier{})

	tests := []struct {
		name    string
		model   order.NewOrderModel
		wantErr error
	}{
		{
			name:    "empty items",
			model:   order.NewOrderModel{MerchantID: "m1", Total: 0},
			wantErr: order.ErrEmptyItems,
		},
		{
			name: "mismatched total",
			model: order.NewOrderModel{
				MerchantID: "m1",
				Items:      []order.Item{{ProductID: "p1", Name: "Pizza", Price: 65, Qty: 2}},
				Total:      100,
			},
			wantErr: order.ErrTotalMismatch,
		},
		{
			name: "zero quantity",
			model: order.NewOrderModel{
				MerchantID: "m1",
				Items:      []order.Item{{ProductID: "p1", Name: "Pizza", Price: 65, Qty: 0}},
				Total:      0,
			},
			wantErr: order.ErrInvalidQty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), tt.model)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLifecycleService_ConfirmIdentity(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())

	confirmed, err := svc.ConfirmIdentity(context.Background(), created.ID, "+212600000000")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// The ingesting channel acknowledges the confirmation; the engine must
	// not send a second one.
	if got := notifier.count(); got != 0 {
		t.Errorf("Expected no notification from identity confirmation, got %d", got)
	}

	if confirmed.Status != order.StatusPendingConfirm {
		t.Errorf("Expected status %s, got %s", order.StatusPendingConfirm, confirmed.Status)
	}
	if confirmed.UserPhone != "+212600000000" {
		t.Errorf("Expected phone to be recorded, got %q", confirmed.UserPhone)
	}
	if confirmed.MerchantSLADeadline == nil {
		t.Fatal("Expected merchant SLA deadline to be set")
	}
	until := time.Until(*confirmed.MerchantSLADeadline)
	if until < 4*time.Minute || until > 5*time.Minute {
		t.Errorf("Expected SLA deadline about 5 minutes out, got %v", until)
	}
}

func TestLifecycleService_ConfirmIdentity_Idempotent(t *testing.T) {
	svc := newTestService(&fakeNotifier{})
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())

	first, err := svc.ConfirmIdentity(context.Background(), created.ID, "+212600000000")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	second, err := svc.ConfirmIdentity(context.Background(), created.ID, "+212611111111")
	if err != nil {
		t.Fatalf("Expected no error on duplicate confirmation, got: %v", err)
	}

	if second.Status != order.StatusPendingConfirm {
		t.Errorf("Expected status unchanged, got %s", second.Status)
	}
	if second.UserPhone != first.UserPhone {
		t.Errorf("Expected phone unchanged, got %q", second.UserPhone)
	}
	if !second.MerchantSLADeadline.Equal(*first.MerchantSLADeadline) {
		t.Error("Expected SLA deadline not to be reset by duplicate confirmation")
	}
}

func TestLifecycleService_ConfirmIdentity_NotFound(t *testing.T) {
	svc := newTestService(&fakeNotifier{})

	_, err := svc.ConfirmIdentity(context.Background(), "MISSING123", "+212600000000")
	if !errors.Is(err, order.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestLifecycleService_Accept(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestService(notifier)
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())
	_, _ = svc.ConfirmIdentity(context.Background(), created.ID, "+212600000000")

	accepted, err := svc.Accept(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if accepted.Status != order.StatusAccepted {
		t.Errorf("Expected status %s, got %s", order.StatusAccepted, accepted.Status)
	}
	if accepted.AssemblyDeadline == nil {
		t.Fatal("Expected assembly deadline to be set")
	}
	until := time.Until(*accepted.AssemblyDeadline)
	if until < 14*time.Minute || until > 15*time.Minute {
		t.Errorf("Expected assembly deadline about 15 minutes out, got %v", until)
	}

	if notifier.count() != 1 {
		t.Fatalf("Expected 1 notification, got %d", notifier.count())
	}
	last := notifier.sent[len(notifier.sent)-1]
	if last.recipient != "+212600000000" {
		t.Errorf("Expected notification to customer phone, got %q", last.recipient)
	}
}

func TestLifecycleService_RejectOnlyFromPending(t *testing.T) {
	svc := newTestService(&fakeNotifier{})
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())
	_, _ = svc.ConfirmIdentity(context.Background(), created.ID, "+212600000000")
	_, _ = svc.Accept(context.Background(), created.ID)

	_, err := svc.Reject(context.Background(), created.ID)

	var invalid *order.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidTransitionError, got: %v", err)
	}
	if invalid.Current != order.StatusAccepted || invalid.Requested != order.StatusRejected {
		t.Errorf("Expected error to carry ACCEPTED -> REJECTED, got %s -> %s",
			invalid.Current, invalid.Requested)
	}

	current, _ := svc.GetOrder(context.Background(), created.ID)
	if current.Status != order.StatusAccepted {
		t.Errorf("Expected status unchanged after failed transition, got %s", current.Status)
	}
}

func TestLifecycleService_FullChain(t *testing.T) {
	svc := newTestService(&fakeNotifier{})
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())

	steps := []struct {
		op   func(context.Context, string) (*order.Order, error)
		want order.Status
	}{
		{svc.Accept, order.StatusAccepted},
		{svc.MarkReady, order.StatusOutForDelivery},
		{svc.MarkDelivered, order.StatusDelivered},
	}

	// Accept before confirmation must fail: no skipping the pending state.
	if _, err := svc.Accept(context.Background(), created.ID); err == nil {
		t.Fatal("Expected Accept to fail while order is still CREATED")
	}

	_, _ = svc.ConfirmIdentity(context.Background(), created.ID, "+212600000000")

	for _, step := range steps {
		updated, err := step.op(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("Expected transition to %s to succeed, got: %v", step.want, err)
		}
		if updated.Status != step.want {
			t.Errorf("Expected status %s, got %s", step.want, updated.Status)
		}
	}

	final, _ := svc.GetOrder(context.Background(), created.ID)
	if !final.Status.Terminal() {
		t.Errorf("Expected terminal status, got %s", final.Status)
	}
}

func TestLifecycleService_ConcurrentAccept(t *testing.T) {
	svc := newTestService(&fakeNotifier{})
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())
	_, _ = svc.ConfirmIdentity(context.Background(), created.ID, "+212600000000")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Accept(context.Background(), created.ID)
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			failures++
			var invalid *order.InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Errorf("Expected InvalidTransitionError for the loser, got: %v", err)
			}
		}
	}
	if failures != 1 {
		t.Errorf("Expected exactly one of two concurrent accepts to fail, got %d failures", failures)
	}
}

func TestLifecycleService_NotificationFailureDoesNotRollBack(t *testing.T) {
	notifier := &fakeNotifier{filter: errors.New("channel down")}
	svc := newTestService(notifier)
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())
	_, _ = svc.ConfirmIdentity(context.Background(), created.ID, "+212600000000")

	accepted, err := svc.Accept(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Expected transition to succeed despite notification failure, got: %v", err)
	}
	if accepted.Status != order.StatusAccepted {
		t.Errorf("Expected status %s, got %s", order.StatusAccepted, accepted.Status)
	}
}

func TestLifecycleService_TransitionTo_UnknownTarget(t *testing.T) {
	svc := newTestService(&fakeNotifier{})
	created, _ := svc.CreateOrder(context.Background(), pizzaOrder())

	_, err := svc.TransitionTo(context.Background(), created.ID, order.StatusCreated)

	var invalid *order.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidTransitionError, got: %v", err)
	}
}
