package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Abhijith12371/InfosysProject/api"
	"github.com/Abhijith12371/InfosysProject/config"
	"github.com/Abhijith12371/InfosysProject/internal/service/booking"
	"github.com/Abhijith12371/InfosysProject/internal/service/flights"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) error {
	router := NewRouter(flightSvc, bookingSvc)

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

// NewRouter wires every handler onto a gin engine.
func NewRouter(flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.NewFlightHandler(flightSvc).Register(router.Group("/api/flights"))
	api.NewBookingHandler(bookingSvc).Register(router.Group("/api/bookings"))
	return router
}
