package booking

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingCancelled = "booking.cancelled"
)

// Partition key = booking_id, supaya semua event 1 booking maintain urutan.
func PartitionKey(bookingID string) []byte { return []byte(bookingID) }
