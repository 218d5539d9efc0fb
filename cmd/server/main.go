package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/telemonitoring-service/pkg/cache"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/db"
	tmGrpc "liyu1981.xyz/telemonitoring-service/pkg/grpc"
	tmHttp "liyu1981.xyz/telemonitoring-service/pkg/http"
	"liyu1981.xyz/telemonitoring-service/pkg/mailer"
	"liyu1981.xyz/telemonitoring-service/pkg/metrics"
	"liyu1981.xyz/telemonitoring-service/pkg/monitor"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	dbType := os.Getenv(common.EnvKeyDBType)
	dialector, err := db.DialectorFor(dbType)
	if err != nil {
		log.Fatal(err)
	}
	dbInstance := db.GetInstance(dialector)

	grpcHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyGrpcHostPort))
	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyDefaultRate), 64); err != nil {
		log.Fatal("Invalid TM_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid TM_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	metrics.Init()

	monitorCore := monitor.Monitor{
		Db:     *dbInstance,
		Mailer: mailer.FromEnv(),
		Notify: monitor.NotifyOptions{
			Sender:        common.EnvString(common.EnvKeyEmailSender, "no-reply@telemonitoring.local"),
			Timeout:       common.EnvSeconds(common.EnvKeySmtpTimeoutSeconds, monitor.DefaultNotifyTimeout),
			NotifyPatient: common.EnvBool(common.EnvKeyNotifyPatient, false),
		},
	}
	// a nil *RedisThresholdCache must not end up inside the interface
	if thresholdCache := cache.FromEnv(); thresholdCache != nil {
		monitorCore.Cache = thresholdCache
		logger.Info("Thresholds cache enabled", zap.String("redis_addr", os.Getenv(common.EnvKeyRedisAddr)))
	}
	monitorCore.WithDefaultServices()

	limiterDesc := fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)

	if grpcHostPort != "" {
		logger.Info("Starting gRPC server on port " + grpcHostPort)
		go func() {
			s := tmGrpc.NewServer(&tmGrpc.MonitoringServer{
				Monitor:          &monitorCore,
				RateLimiterStore: monitor.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
			})
			logger.Info("gRPC server created with:", zap.String("default_limiter", limiterDesc))

			listener, err := net.Listen("tcp", grpcHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("start gRPC server on " + grpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &tmHttp.RestfulServer{
		Server:           gin.Default(),
		Monitor:          &monitorCore,
		RateLimiterStore: monitor.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:", zap.String("default_limiter", limiterDesc))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
