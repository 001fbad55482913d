package chatsvc

import (
	"context"
	"strings"
	"testing"

	memoryrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/message/memory"
	"github.com/TaoufikZa/watami-mvp/internal/dal/repositories/notifier/bot"
	ordermemory "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/order/memory"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
	"github.com/TaoufikZa/watami-mvp/internal/service/services/lifecyclesvc"
)

type fakeLifecycle struct {
	confirmed []string
	err       error
}

func (f *fakeLifecycle) ConfirmIdentity(ctx context.Context, orderID string, phone string) (*order.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.confirmed = append(f.confirmed, orderID)

	return &order.Order{ID: orderID, Status: order.StatusPendingConfirm, UserPhone: phone}, nil
}

func newTestChat(l *fakeLifecycle) (*ChatService, *memoryrepo.MessageRepository) {
	repo := memoryrepo.NewMessageRepository()
	svc := MustNewChatService(
		WithMessageRepository(repo),
		WithLifecycle(l),
	)

	return svc, repo
}

func TestChatService_GreetingGetsReplyWithCTA(t *testing.T) {
	svc, repo := newTestChat(&fakeLifecycle{})

	_, err := svc.PostMessage(context.Background(), message.Message{
		Text:   "hello watami",
		Sender: message.SenderCustomer,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	msgs, _ := repo.List(context.Background())
	if len(msgs) != 2 {
		t.Fatalf("Expected customer message plus bot reply, got %d messages", len(msgs))
	}

	reply := msgs[1]
	if reply.Sender != message.SenderBot {
		t.Errorf("Expected bot reply, got sender %s", reply.Sender)
	}
	if reply.CTA == nil || reply.CTA.Link != "/nearby" {
		t.Error("Expected reply to carry the nearby-shops CTA")
	}
}

func TestChatService_ConfirmTokenDrivesLifecycle(t *testing.T) {
	lc := &fakeLifecycle{}
	svc, repo := newTestChat(lc)

	_, err := svc.PostMessage(context.Background(), message.Message{
		Text:   "CONFIRM_ORDER_ABC123",
		Sender: message.SenderCustomer,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(lc.confirmed) != 1 || lc.confirmed[0] != "ABC123" {
		t.Fatalf("Expected ConfirmIdentity(ABC123), got %v", lc.confirmed)
	}

	msgs, _ := repo.List(context.Background())
	reply := msgs[len(msgs)-1]
	if reply.Sender != message.SenderBot || !strings.Contains(reply.Text, "ABC123") {
		t.Errorf("Expected bot confirmation reply mentioning the order, got %q", reply.Text)
	}
}

func TestChatService_UnknownOrderGetsErrorReply(t *testing.T) {
	svc, repo := newTestChat(&fakeLifecycle{err: order.ErrNotFound})

	_, err := svc.PostMessage(context.Background(), message.Message{
		Text:   "confirm_order_NOPE",
		Sender: message.SenderCustomer,
	})
	if err != nil {
		t.Fatalf("Expected no error surfaced to caller, got: %v", err)
	}

	msgs, _ := repo.List(context.Background())
	reply := msgs[len(msgs)-1]
	if !strings.Contains(reply.Text, "not found") {
		t.Errorf("Expected not-found bot reply, got %q", reply.Text)
	}
}

func TestChatService_MerchantMessagesGetNoReply(t *testing.T) {
	svc, repo := newTestChat(&fakeLifecycle{})

	_, _ = svc.PostMessage(context.Background(), message.Message{
		Text:   "watami",
		Sender: message.SenderMerchant,
	})

	msgs, _ := repo.List(context.Background())
	if len(msgs) != 1 {
		t.Errorf("Expected no bot reply to merchant messages, got %d messages", len(msgs))
	}
}

func TestChatService_ConfirmationLoggedExactlyOnce(t *testing.T) {
	repo := memoryrepo.NewMessageRepository()

	engine := lifecyclesvc.MustNewLifecycleService(
		lifecyclesvc.WithOrderRepository(ordermemory.NewOrderRepository()),
		lifecyclesvc.WithNotifier(bot.NewBotNotifier(repo)),
	)
	svc := MustNewChatService(
		WithMessageRepository(repo),
		WithLifecycle(engine),
	)

	created, err := engine.CreateOrder(context.Background(), order.NewOrderModel{
		MerchantID:  "m1",
		Items:       []order.Item{{ProductID: "p1", Name: "Pizza", Price: 65, Qty: 1}},
		Total:       65,
		UserAddress: "Casablanca, Morocco",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	_, err = svc.PostMessage(context.Background(), message.Message{
		Text:   "CONFIRM_ORDER_" + created.ID,
		Sender: message.SenderCustomer,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	msgs, _ := repo.List(context.Background())
	var confirmations int
	for _, msg := range msgs {
		if msg.Sender == message.SenderBot && strings.Contains(msg.Text, "has been confirmed") {
			confirmations++
		}
	}
	if confirmations != 1 {
		t.Fatalf("Expected exactly one bot confirmation message, got %d", confirmations)
	}
}
