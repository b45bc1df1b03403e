package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-kost-market.git/internal/booking"
	kafkax "github.com/ariefcatur/go-kost-market.git/internal/kafka"
	"github.com/ariefcatur/go-kost-market.git/internal/kost"
	"github.com/ariefcatur/go-kost-market.git/internal/redisx"
)

// Service memberi tahu owner saat ada booking baru. Pengiriman nyata
// (email/WA) dicolok lewat Sender; default cuma nge-log.
type Service struct {
	Kosts       *kost.Repo
	Redis       *redis.Client
	Sender      Sender
	ServiceName string
}

type Sender interface {
	Send(ctx context.Context, ownerID, message string) error
}

// LogSender: fallback pengirim yang hanya menulis ke log.
type LogSender struct{}

func (LogSender) Send(_ context.Context, ownerID, message string) error {
	log.Printf("notify owner=%s: %s", ownerID, message)
	return nil
}

// HandleBookingCreated: dipasang sebagai handler consumer.
func (s *Service) HandleBookingCreated(ctx context.Context, m kafkago.Message) error {
	// 1) decode envelope
	var env booking.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != booking.EventBookingCreated {
		return nil
	} // ignore

	// 2) dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	// 3) decode payload
	p, err := kafkax.UnwrapPayload[booking.BookingCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	// nama kost cuma pemanis pesan; gagal lookup bukan alasan retry
	kostName := p.KostID
	if k, err := s.Kosts.Get(ctx, p.KostID); err == nil {
		kostName = k.Name
	}

	msg := fmt.Sprintf("booking baru di %s: %s (%s), %d bulan mulai %s, total %.0f",
		kostName, p.TenantName, p.TenantEmail, p.DurationMonths,
		p.StartDate.Format("2006-01-02"), p.Amount)

	sender := s.Sender
	if sender == nil {
		sender = LogSender{}
	}
	return sender.Send(ctx, p.OwnerID, msg)
}
