package contact

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/entities"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeContactRepository struct {
	contacts  map[string]*entities.Contact
	createErr error
}

func newFakeContactRepository() *fakeContactRepository {
	return &fakeContactRepository{contacts: make(map[string]*entities.Contact)}
}

func (f *fakeContactRepository) CreateContact(_ context.Context, contact *entities.Contact) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.contacts[contact.ID.String()] = contact
	return nil
}

func (f *fakeContactRepository) GetContactByEmail(_ context.Context, email string) (*entities.Contact, error) {
	for _, contact := range f.contacts {
		if contact.Email == email {
			return contact, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type recordingMailer struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
}

func (m *recordingMailer) Send(toEmail, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type recordingSMS struct {
	mu   sync.Mutex
	sent []string
}

func (s *recordingSMS) Send(toNumber, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, toNumber)
	return nil
}

func (s *recordingSMS) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func newTestService(repo *fakeContactRepository, mailer *recordingMailer, smsSender *recordingSMS) ContactService {
	service := NewContactService(repo, mailer, smsSender).(*contactService)
	service.adminEmail = "admin@billfold.test"
	service.adminPhone = "+1000"
	return service
}

func TestCreateContactNotifiesAdminAndSender(t *testing.T) {
	repo := newFakeContactRepository()
	mailer := &recordingMailer{}
	smsSender := &recordingSMS{}
	service := newTestService(repo, mailer, smsSender)

	res, err := service.CreateContact(context.Background(), domain.CreateContactRequest{
		Name:  "Ada",
		Email: "Ada@Example.com",
		Phone: "555-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.Email)
	assert.Len(t, repo.contacts, 1)

	require.Eventually(t, func() bool {
		return len(mailer.recipients()) == 2 && len(smsSender.recipients()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"admin@billfold.test", "ada@example.com"}, mailer.recipients())
	assert.Equal(t, []string{"+1000"}, smsSender.recipients())
}

func TestCreateContactRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeContactRepository()
	mailer := &recordingMailer{}
	smsSender := &recordingSMS{}
	service := newTestService(repo, mailer, smsSender)

	repo.contacts["seed"] = &entities.Contact{ID: uuid.New(), Email: "ada@example.com"}

	_, err := service.CreateContact(context.Background(), domain.CreateContactRequest{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	require.ErrorIs(t, err, domain.ErrContactAlreadyExists)
	assert.Empty(t, mailer.recipients())
	assert.Empty(t, smsSender.recipients())
}

func TestCreateContactStoreFailureSkipsNotifications(t *testing.T) {
	repo := newFakeContactRepository()
	repo.createErr = errors.New("store down")
	mailer := &recordingMailer{}
	smsSender := &recordingSMS{}
	service := newTestService(repo, mailer, smsSender)

	_, err := service.CreateContact(context.Background(), domain.CreateContactRequest{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	require.Error(t, err)
	assert.Empty(t, mailer.recipients())
	assert.Empty(t, smsSender.recipients())
}

func TestCreateContactMailFailureStillSendsSMS(t *testing.T) {
	repo := newFakeContactRepository()
	mailer := &recordingMailer{sendErr: errors.New("smtp down")}
	smsSender := &recordingSMS{}
	service := newTestService(repo, mailer, smsSender)

	_, err := service.CreateContact(context.Background(), domain.CreateContactRequest{
		Name:  "Ada",
		Email: "ada@example.com",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(smsSender.recipients()) == 1
	}, time.Second, 10*time.Millisecond)
}
