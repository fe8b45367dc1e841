package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/fleetops/api"
	"github.com/Domenick1991/fleetops/config"
	"github.com/Domenick1991/fleetops/internal/service/airports"
	"github.com/Domenick1991/fleetops/internal/service/booking"
	"github.com/Domenick1991/fleetops/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, airportSvc airports.AirportUseCase, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	router := gin.Default()

	api.NewAirportHandler(airportSvc).Register(router.Group("/api/airports"))
	api.NewFlightHandler(flightSvc).Register(router.Group("/api/flights"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/api/bookings"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
