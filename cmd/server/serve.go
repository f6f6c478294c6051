package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	helmetGrpc "github.com/chantelleNokue/smart-helmet-backend/pkg/grpc"
	helmetHttp "github.com/chantelleNokue/smart-helmet-backend/pkg/http"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/identity"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/iot"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/mqtt"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the device gRPC gateway and the MQTT ingest",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := common.GetLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	core, cleanup, err := buildCore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	limiter := fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.MQTTEnabled() {
		ingestor := &mqtt.Ingestor{Telemetry: core.Telemetry}
		subscriber, err := mqtt.Subscribe(cfg.MQTT, ingestor.HandleMessage)
		if err != nil {
			return err
		}
		g.Go(func() error {
			<-ctx.Done()
			subscriber.Close()
			return nil
		})
	}

	if cfg.GrpcHostPort != "" {
		gateway := &helmetGrpc.DeviceGateway{
			Iot:              core,
			RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		}
		interceptor := gateway.CreateRateLimitInterceptor([]string{
			helmetGrpc.MethodPostReading,
			helmetGrpc.MethodRaisePanic,
		})
		s := grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		helmetGrpc.RegisterDeviceGatewayServer(s, gateway)
		logger.Info("gRPC server created with:", zap.String("default_limiter", limiter))

		listener, err := net.Listen("tcp", cfg.GrpcHostPort)
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}

		g.Go(func() error {
			logger.Info("start gRPC server on " + cfg.GrpcHostPort)
			return s.Serve(listener)
		})
		g.Go(func() error {
			<-ctx.Done()
			s.GracefulStop()
			return nil
		})
	}

	rs := &helmetHttp.RestfulServer{
		Server:           gin.Default(),
		Iot:              core,
		RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		AllowedOrigins:   cfg.AllowedOrigins,
	}
	if cfg.IdentityEnabled() {
		rs.Identity = identity.NewService(identity.NewClerkClient(cfg.Clerk.APIURL, cfg.Clerk.SecretKey), core.Store)
		logger.Info("User management enabled")
	}
	rs.Setup()
	logger.Info("http server created with:", zap.String("default_limiter", limiter))

	srv := &nethttp.Server{Addr: cfg.HttpHostPort, Handler: rs.Server}
	g.Go(func() error {
		logger.Info("Starting HTTP server on: " + cfg.HttpHostPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("http server failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("Server stopped")
	return err
}
