package contact

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/entities"
	"Billfold-Backend/internal/utils"
	"Billfold-Backend/internal/utils/mailing"
	"Billfold-Backend/internal/utils/sms"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ContactService interface {
		CreateContact(ctx context.Context, req domain.CreateContactRequest) (domain.ContactResponse, error)
	}

	contactService struct {
		contactRepository ContactRepository
		mailer            mailing.Mailer
		smsSender         sms.Sender
		adminEmail        string
		adminPhone        string
	}
)

func NewContactService(contactRepository ContactRepository, mailer mailing.Mailer, smsSender sms.Sender) ContactService {
	return &contactService{
		contactRepository: contactRepository,
		mailer:            mailer,
		smsSender:         smsSender,
		adminEmail:        utils.GetConfig("ADMIN_EMAIL"),
		adminPhone:        utils.GetConfig("ADMIN_PHONE"),
	}
}

func (s *contactService) CreateContact(ctx context.Context, req domain.CreateContactRequest) (domain.ContactResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.contactRepository.GetContactByEmail(ctx, email); err == nil {
		return domain.ContactResponse{}, domain.ErrContactAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ContactResponse{}, err
	}

	contact := &entities.Contact{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Phone: strings.TrimSpace(req.Phone),
	}

	if err := s.contactRepository.CreateContact(ctx, contact); err != nil {
		return domain.ContactResponse{}, err
	}

	// Notification fan-out is fire-and-forget: the contact record is already
	// persisted, delivery failures are only logged.
	go s.notify(contact)

	return domain.ContactResponse{
		ID:    contact.ID.String(),
		Name:  contact.Name,
		Email: contact.Email,
		Phone: contact.Phone,
	}, nil
}

func (s *contactService) notify(contact *entities.Contact) {
	adminBody := fmt.Sprintf(
		"<p>New contact message from <b>%s</b> (%s, %s).</p>",
		contact.Name, contact.Email, contact.Phone,
	)
	if err := s.mailer.Send(s.adminEmail, "New contact message", adminBody); err != nil {
		log.Printf("failed to send contact mail to admin: %v", err)
	}

	confirmBody := fmt.Sprintf(
		"<p>Hi %s, thanks for reaching out. We received your message and will get back to you soon.</p>",
		contact.Name,
	)
	if err := s.mailer.Send(contact.Email, "We received your message", confirmBody); err != nil {
		log.Printf("failed to send contact confirmation mail: %v", err)
	}

	smsBody := fmt.Sprintf("New contact message from %s (%s)", contact.Name, contact.Phone)
	if err := s.smsSender.Send(s.adminPhone, smsBody); err != nil {
		log.Printf("failed to send contact SMS to admin: %v", err)
	}
}
