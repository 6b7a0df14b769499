package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"

	"hotel-service/config"
	"hotel-service/domain"
	"hotel-service/handlers"
	"hotel-service/repository"
	"hotel-service/routes"
	"hotel-service/services"
)

var (
	server      *gin.Engine
	ctx         context.Context
	cfg         *config.Config
	mongoclient *mongo.Client

	reservationService      services.ReservationService
	ReservationHandler      handlers.ReservationHandler
	ReservationRouteHandler routes.ReservationRouteHandler
)

func init() {
	ctx = context.TODO()
	cfg = config.LoadConfig()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if logDir := os.Getenv("LOG_DIR"); logDir != "" {
		lumberjackLog := &lumberjack.Logger{
			Filename:  logDir + "/hotel-service.log",
			MaxSize:   1,
			LocalTime: true,
		}
		logger.SetOutput(lumberjackLog)
	}

	tracer := initTracer(cfg)

	var store domain.Store
	if cfg.StorageDriver == "mongo" {
		mongoconn := options.Client().ApplyURI(cfg.MongoURI)
		var err error
		mongoclient, err = mongo.Connect(ctx, mongoconn)
		if err != nil {
			panic(err)
		}
		if err := mongoclient.Ping(ctx, readpref.Primary()); err != nil {
			panic(err)
		}
		fmt.Println("MongoDB successfully connected...")
		store = repository.NewMongoStore(mongoclient, logger)
	} else {
		store = repository.NewFileStore(cfg.DataFile, logger)
	}

	reservationService = services.NewReservationServiceImpl(store, logger, tracer, ctx)
	ReservationHandler = handlers.NewReservationHandler(reservationService, logger, tracer, cfg)
	ReservationRouteHandler = routes.NewReservationRouteHandler(ReservationHandler, reservationService)

	server = gin.Default()
}

func main() {
	if mongoclient != nil {
		defer mongoclient.Disconnect(ctx)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"https://localhost:4200"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")

	server.Use(cors.New(corsConfig))

	router := server.Group("/api")
	router.GET("/healthchecker", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "success", "message": "Message"})
	})

	ReservationRouteHandler.ReservationRoute(router)

	err := server.Run(":" + cfg.Port)
	if err != nil {
		fmt.Println(err)
		return
	}
}

func initTracer(cfg *config.Config) trace.Tracer {
	if cfg.JaegerAddress == "" {
		// No collector configured, fall back to the no-op provider.
		return otel.GetTracerProvider().Tracer(cfg.ServiceName)
	}
	tracerProvider, err := NewTracerProvider(cfg.ServiceName, cfg.JaegerAddress)
	if err != nil {
		log.Fatal("JaegerTraceProvider failed to Initialize", err)
	}
	return tracerProvider.Tracer(cfg.ServiceName)
}

func NewTracerProvider(serviceName, collectorEndpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(collectorEndpoint)))
	if err != nil {
		return nil, fmt.Errorf("unable to initialize exporter due: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.DeploymentEnvironmentKey.String("development"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
