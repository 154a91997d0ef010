package notifications

import (
	"fmt"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// Event что произошло с заявкой клиента
// Outbound: кроме записи в портале, отправить сообщение через Sender
type Event struct {
	UserID        int64
	Topic         string
	Title         string
	Message       string
	Severity      domain.Severity
	ReferenceType domain.ReferenceType
	ReferenceID   int64
	Outbound      bool
}

// Вехи, о которых клиент узнаёт и вне портала
var outboundMilestones = map[string]bool{
	"created":   true,
	"approved":  true,
	"rejected":  true,
	"ready":     true,
	"completed": true,
}

// BookingEvent событие по бронированию; milestone: created, approved, rejected, completed, cancelled, rescheduled
func BookingEvent(b *domain.Booking, milestone string) Event {
	when := fmt.Sprintf("%s %s", b.BookingDate.Format(domain.DateFormat), b.BookingTime)

	ev := Event{
		UserID:        b.UserID,
		Topic:         "booking." + milestone,
		ReferenceType: domain.ReferenceBooking,
		ReferenceID:   b.ID,
		Outbound:      outboundMilestones[milestone],
		Severity:      domain.SeverityInfo,
	}

	switch milestone {
	case "created":
		ev.Title = "Booking received"
		ev.Message = fmt.Sprintf("Your booking #%d for %s was received and is awaiting review.", b.ID, when)
	case "approved":
		ev.Title = "Booking approved"
		ev.Message = fmt.Sprintf("Your booking #%d for %s has been approved.", b.ID, when)
		ev.Severity = domain.SeveritySuccess
	case "rejected":
		ev.Title = "Booking rejected"
		ev.Message = fmt.Sprintf("Your booking #%d for %s was rejected: %s", b.ID, when, deref(b.RejectionReason))
		ev.Severity = domain.SeverityError
	case "completed":
		ev.Title = "Booking completed"
		ev.Message = fmt.Sprintf("Your booking #%d for %s is complete. God bless!", b.ID, when)
		ev.Severity = domain.SeveritySuccess
	case "cancelled":
		ev.Title = "Booking cancelled"
		ev.Message = fmt.Sprintf("Your booking #%d for %s was cancelled.", b.ID, when)
		ev.Severity = domain.SeverityWarning
	case "rescheduled":
		ev.Title = "Booking rescheduled"
		ev.Message = fmt.Sprintf("Your booking #%d was moved to %s.", b.ID, when)
		ev.Severity = domain.SeverityWarning
	default:
		ev.Title = "Booking updated"
		ev.Message = fmt.Sprintf("Your booking #%d was updated.", b.ID)
	}

	return ev
}

// DocumentEvent событие по заявке на документ; milestone: created, approved, ready, completed, rejected, cancelled
func DocumentEvent(d *domain.DocumentRequest, milestone string) Event {
	ev := Event{
		UserID:        d.UserID,
		Topic:         "document_request." + milestone,
		ReferenceType: domain.ReferenceDocumentRequest,
		ReferenceID:   d.ID,
		Outbound:      outboundMilestones[milestone],
		Severity:      domain.SeverityInfo,
	}

	switch milestone {
	case "created":
		ev.Title = "Document request received"
		ev.Message = fmt.Sprintf("Your document request #%d was received.", d.ID)
	case "approved":
		ev.Title = "Document request approved"
		ev.Message = fmt.Sprintf("Your document request #%d is now being processed.", d.ID)
		ev.Severity = domain.SeveritySuccess
	case "ready":
		ev.Title = "Document ready"
		ev.Message = fmt.Sprintf("Your document for request #%d is ready for download or pick-up.", d.ID)
		ev.Severity = domain.SeveritySuccess
	case "completed":
		ev.Title = "Document request completed"
		ev.Message = fmt.Sprintf("Your document request #%d is complete.", d.ID)
		ev.Severity = domain.SeveritySuccess
	case "rejected":
		ev.Title = "Document request rejected"
		ev.Message = fmt.Sprintf("Your document request #%d was rejected: %s", d.ID, deref(d.RejectionReason))
		ev.Severity = domain.SeverityError
	case "cancelled":
		ev.Title = "Document request cancelled"
		ev.Message = fmt.Sprintf("Your document request #%d was cancelled.", d.ID)
		ev.Severity = domain.SeverityWarning
	default:
		ev.Title = "Document request updated"
		ev.Message = fmt.Sprintf("Your document request #%d was updated.", d.ID)
	}

	return ev
}

// PaymentEvent событие по платежу; milestone: verified, rejected
func PaymentEvent(p *domain.Payment, milestone string) Event {
	ev := Event{
		UserID:        p.UserID,
		Topic:         "payment." + milestone,
		ReferenceType: p.ReferenceType,
		ReferenceID:   p.ReferenceID,
		Outbound:      outboundMilestones[milestone],
		Severity:      domain.SeverityInfo,
	}

	switch milestone {
	case "verified":
		ev.Title = "Payment verified"
		ev.Message = fmt.Sprintf("Your payment of %s for %s #%d has been verified.", p.Amount.StringFixed(2), p.ReferenceType, p.ReferenceID)
		ev.Severity = domain.SeveritySuccess
	case "rejected":
		ev.Title = "Payment rejected"
		ev.Message = fmt.Sprintf("Your payment for %s #%d was rejected: %s. You may submit it again.",
			p.ReferenceType, p.ReferenceID, deref(p.RejectionReason))
		ev.Severity = domain.SeverityError
	default:
		ev.Title = "Payment submitted"
		ev.Message = fmt.Sprintf("Your payment for %s #%d was submitted and is awaiting verification.", p.ReferenceType, p.ReferenceID)
	}

	return ev
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
