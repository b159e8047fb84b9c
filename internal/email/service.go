package email

import (
	"fmt"
	"net/smtp"

	"github.com/example/ecofinds/internal/domain/order"
)

// Service sends purchase receipts via SMTP. Checkout treats it as optional
// and best-effort.
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service
func NewService(host, port, from string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
	}
}

// SendPurchaseReceipt sends a receipt for a completed checkout.
func (s *Service) SendPurchaseReceipt(to string, o order.Order) error {
	shortID := o.ID
	if len(shortID) > 14 {
		shortID = shortID[:14]
	}
	subject := fmt.Sprintf("Your EcoFinds purchase (order %s)", shortID)
	body := BuildPurchaseReceiptBody(o)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
