package main

import (
	"io"
	"log"
	"net/http"

	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/asset"
	"wrench/domain/catalog"
	"wrench/domain/order"
	"wrench/domain/order/parts"
	"wrench/domain/order/rating"
	"wrench/domain/party"
	"wrench/event"
	"wrench/infra/tracing"
	"wrench/notification"
	"wrench/persistence"
	"wrench/session"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"
	"github.com/uber/jaeger-lib/metrics"
)

func main() {
	log.Println("service start")

	tracerCloser := bootstrapTracing()
	if tracerCloser != nil {
		defer tracerCloser.Close()
	}

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database conneciton failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB().AutoMigrate(
		&domain.WorkOrder{}, &domain.PartLine{}, &domain.ActivityRecord{}, &domain.Rating{},
		&domain.Asset{}, &domain.AssetCategory{}, &domain.CatalogItem{},
		&domain.Technician{}, &domain.ThirdParty{},
		&event.EventRecord{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	event.EventHandlers = append(event.EventHandlers, notification.WorkOrderWebhookHandler)

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "wrench")
	})

	securedRoute := session.SimpleAuthFilter()
	order.RegisterWorkOrdersRestAPI(engine, securedRoute)
	parts.RegisterPartLinesRestAPI(engine, securedRoute)
	rating.RegisterRatingsRestAPI(engine, securedRoute)
	asset.RegisterAssetsRestAPI(engine, securedRoute)
	catalog.RegisterCatalogRestAPI(engine, securedRoute)
	party.RegisterPartiesRestAPI(engine, securedRoute)

	err = engine.Run(":80")
	if err != nil {
		panic(err)
	}
}

func bootstrapTracing() io.Closer {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Printf("failed to parse tracing config %v\n", err)
		return nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "wrench"
	}

	tracer, closer, err := cfg.NewTracer(
		jaegercfg.Logger(jaegerlog.StdLogger),
		jaegercfg.Metrics(metrics.NullFactory),
	)
	if err != nil {
		log.Printf("failed to build tracer %v\n", err)
		return nil
	}
	opentracing.SetGlobalTracer(tracer)
	return closer
}
