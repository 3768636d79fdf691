package domain

import "time"

// SegmentStatus is left open (string constants rather than a closed enum):
// segment states originate in the delivery workflow and only "delivered"
// carries meaning for scoring.
type SegmentStatus string

const (
	SegmentPending   SegmentStatus = "pending"
	SegmentDelivered SegmentStatus = "delivered"
	SegmentCancelled SegmentStatus = "cancelled"
)

// RecipientType identifies who accepted a delivery.
type RecipientType string

const (
	RecipientCustomer  RecipientType = "customer"
	RecipientNeighbour RecipientType = "neighbour"
)

// Represents one delivery stop within a tour, referencing a single order.
// The proof-of-delivery flags record presence of stored artifacts
// (non-null and non-empty), not their content.
type RouteSegment struct {
	SegmentID     int64
	TourID        int64
	OrderID       int64
	Status        SegmentStatus
	RecipientType RecipientType
	DeliveredAt   *time.Time

	HasCustomerSignature  bool
	HasDeliveredItemPhoto bool
	HasNeighbourSignature bool
	HasNeighbourPhoto     bool
}

// Delivered reports whether the segment reached the delivered state.
func (s *RouteSegment) Delivered() bool {
	return s.Status == SegmentDelivered
}

// ValidPOD reports whether the segment carries a complete proof of delivery
// for its recipient type: customers need signature plus item photo,
// neighbours need neighbour signature plus neighbour photo.
func (s *RouteSegment) ValidPOD() bool {
	switch s.RecipientType {
	case RecipientCustomer:
		return s.HasCustomerSignature && s.HasDeliveredItemPhoto
	case RecipientNeighbour:
		return s.HasNeighbourSignature && s.HasNeighbourPhoto
	default:
		return false
	}
}
