package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Mount: route owner (dashboard) di belakang auth, route tenant publik.
func Mount(r *chi.Mux, rdb *redis.Client, sh *StatsHandler, kh *KostHandler, bh *BookingHandler) {
	r.Group(func(pr chi.Router) {
		pr.Use(Auth(rdb))
		pr.Get("/stats", sh.getStats)
		pr.Post("/kosts", kh.createKost)
		pr.Get("/kosts", kh.listMyKosts)
	})

	r.Get("/kosts/{id}", kh.getKost)
	r.Post("/kosts/{id}/reviews", kh.addReview)

	r.Post("/bookings", bh.createBooking)
	r.Get("/bookings/{id}", bh.getBooking)
	r.Post("/bookings/{id}/cancel", bh.cancelBooking)
	r.Post("/bookings/{id}/payment", bh.updatePayment)
}
