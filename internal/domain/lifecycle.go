package domain

import "fmt"

// Event a trigger that may move an entity to another status
type Event string

const (
	EventApprove    Event = "approve"
	EventMarkReady  Event = "mark_ready"
	EventComplete   Event = "complete"
	EventReject     Event = "reject"
	EventCancel     Event = "cancel"
	EventReschedule Event = "reschedule"
	EventVerify     Event = "verify"
)

var documentTransitions = map[DocumentStatus]map[Event]DocumentStatus{
	DocumentPending: {
		EventApprove: DocumentProcessing,
		EventReject:  DocumentRejected,
		EventCancel:  DocumentCancelled,
	},
	DocumentProcessing: {
		EventMarkReady: DocumentReady,
	},
	DocumentReady: {
		EventComplete: DocumentCompleted,
	},
}

var bookingTransitions = map[BookingStatus]map[Event]BookingStatus{
	BookingPending: {
		EventApprove: BookingApproved,
		EventReject:  BookingRejected,
		EventCancel:  BookingCancelled,
	},
	BookingApproved: {
		EventComplete:   BookingCompleted,
		EventCancel:     BookingCancelled,
		EventReschedule: BookingApproved,
	},
}

var paymentTransitions = map[PaymentRecordStatus]map[Event]PaymentRecordStatus{
	PaymentRecordPending: {
		EventVerify: PaymentRecordVerified,
		EventReject: PaymentRecordRejected,
	},
}

// NextDocumentStatus returns the status reached from `from` on `event`
func NextDocumentStatus(from DocumentStatus, event Event) (DocumentStatus, error) {
	if to, ok := documentTransitions[from][event]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: document request cannot %s from %s", ErrInvalidTransition, event, from)
}

// NextBookingStatus returns the status reached from `from` on `event`
func NextBookingStatus(from BookingStatus, event Event) (BookingStatus, error) {
	if to, ok := bookingTransitions[from][event]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: booking cannot %s from %s", ErrInvalidTransition, event, from)
}

// NextPaymentStatus returns the status reached from `from` on `event`
func NextPaymentStatus(from PaymentRecordStatus, event Event) (PaymentRecordStatus, error) {
	if to, ok := paymentTransitions[from][event]; ok {
		return to, nil
	}
	return from, fmt.Errorf("%w: payment cannot %s from %s", ErrInvalidTransition, event, from)
}

// IsTerminal reports whether no event is accepted from this status
func (s DocumentStatus) IsTerminal() bool {
	return len(documentTransitions[s]) == 0
}

// IsTerminal reports whether no event is accepted from this status
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// IsTerminal reports whether no event is accepted from this status
func (s PaymentRecordStatus) IsTerminal() bool {
	return len(paymentTransitions[s]) == 0
}

// CheckApprovalPayment is the admission-control gate shared by documents and bookings:
// a fee-bearing request cannot be approved while nothing has been paid or submitted.
func CheckApprovalPayment(requiresPayment bool, status PaymentStatus) error {
	if requiresPayment && status == PaymentUnpaid {
		return fmt.Errorf("%w: fee is unpaid", ErrPaymentRequired)
	}
	return nil
}
