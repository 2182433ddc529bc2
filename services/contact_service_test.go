package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/pkg/email"
	"github.com/selimakt/prodstore/repository"
)

type mockContactRepo struct {
	messages map[string]*models.ContactMessage
	seq      int
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{messages: make(map[string]*models.ContactMessage)}
}

func (m *mockContactRepo) Create(_ context.Context, msg *models.ContactMessage) error {
	m.seq++
	msg.ID = fmt.Sprintf("msg-%d", m.seq)
	msg.CreatedAt = time.Now()
	cp := *msg
	m.messages[msg.ID] = &cp
	return nil
}

func (m *mockContactRepo) GetByID(_ context.Context, id string) (*models.ContactMessage, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *mockContactRepo) GetAll(_ context.Context) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	for _, msg := range m.messages {
		out = append(out, *msg)
	}
	return out, nil
}

func (m *mockContactRepo) MarkRead(_ context.Context, id string) error {
	msg, ok := m.messages[id]
	if !ok {
		return pkg.ErrNotFound
	}
	msg.IsRead = true
	return nil
}

func (m *mockContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.messages[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

// mockSender, gönderilen bildirimleri kaydeder.
// Submit bildirimi goroutine'de gönderdiği için mutex + done channel kullanılır.
type mockSender struct {
	mu   sync.Mutex
	sent []string // subject kayıtları
	done chan struct{}
}

func newMockSender() *mockSender {
	return &mockSender{done: make(chan struct{}, 8)}
}

func (m *mockSender) SendContactNotification(_ context.Context, _, _, subject, _ string) error {
	m.mu.Lock()
	m.sent = append(m.sent, subject)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

var (
	_ repository.ContactRepository = (*mockContactRepo)(nil)
	_ email.EmailSender            = (*mockSender)(nil)
)

func TestSubmitStoresMessageAndNotifies(t *testing.T) {
	repo := newMockContactRepo()
	sender := newMockSender()
	svc := NewContactService(repo, sender)

	msg, err := svc.Submit(context.Background(), &models.CreateContactRequest{
		Name: "Ada", Email: "ada@example.com", Subject: "Licensing", Body: "Hello!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)

	stored, err := repo.GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.Name)

	// Bildirim arka planda gider — tamamlanmasını bekle
	select {
	case <-sender.done:
	case <-time.After(time.Second):
		t.Fatal("notification was never sent")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Licensing", sender.sent[0])
}

func TestSubmitWithoutSenderStillStores(t *testing.T) {
	repo := newMockContactRepo()
	svc := NewContactService(repo, nil) // email yapılandırılmamış

	msg, err := svc.Submit(context.Background(), &models.CreateContactRequest{
		Name: "Ada", Email: "ada@example.com", Body: "Hello!",
	})
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), msg.ID)
	assert.NoError(t, err)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewContactService(newMockContactRepo(), nil)

	_, err := svc.Submit(context.Background(), &models.CreateContactRequest{
		Name: "", Email: "bad", Body: "",
	})
	assert.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestContactAdminOperations(t *testing.T) {
	repo := newMockContactRepo()
	svc := NewContactService(repo, nil)

	msg, err := svc.Submit(context.Background(), &models.CreateContactRequest{
		Name: "Ada", Email: "ada@example.com", Body: "Hello!",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), msg.ID))
	read, err := svc.Get(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(context.Background(), msg.ID))
	_, err = svc.Get(context.Background(), msg.ID)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestTokenSweeperRemovesExpired(t *testing.T) {
	revoked := newMockRevokedRepo()
	revoked.records["stale"] = &models.RevokedToken{JTI: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	revoked.records["live"] = &models.RevokedToken{JTI: "live", ExpiresAt: time.Now().Add(time.Hour)}

	sweeper := NewTokenSweeper(revoked, 10*time.Millisecond)
	sweeper.Start()
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		exists, _ := revoked.Exists(context.Background(), "stale")
		return !exists
	}, time.Second, 10*time.Millisecond)

	exists, err := revoked.Exists(context.Background(), "live")
	require.NoError(t, err)
	assert.True(t, exists)
}
