package frontdesk

import (
	"context"

	"atithi/internal/domain"
)

// TotalsProvider computes the folio figures used by checkout.
type TotalsProvider interface {
	Totals(ctx context.Context, booking *domain.Booking) (domain.FolioTotals, error)
}

// TaskCreator queues a housekeeping job for a vacated room.
type TaskCreator interface {
	CreateCleaningTask(ctx context.Context, roomID int64, priority domain.TaskPriority, description string) error
}

// Recorder appends audit entries; nil disables auditing.
type Recorder interface {
	Record(ctx context.Context, action, details string, actorID int64)
}

// BoardPublisher pushes live updates to connected staff dashboards;
// nil disables the board.
type BoardPublisher interface {
	PublishRoomStatus(roomID int64, roomNumber string, status domain.RoomStatus)
	PublishBookingStatus(bookingID int64, status domain.BookingStatus)
}
