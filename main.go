package main

import (
	"context"
	"log"

	"github.com/Kariqs/amexan-store/catalog"
	"github.com/Kariqs/amexan-store/checkout"
	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/gateway"
	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/notify"
	"github.com/Kariqs/amexan-store/orders"
	"github.com/Kariqs/amexan-store/pricing"
	"github.com/Kariqs/amexan-store/routes"
	"github.com/Kariqs/amexan-store/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := initializers.LoadEnv()
	db := initializers.ConnectToDB(cfg.DatabaseURL)
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal("Failed to sync database: ", err)
	}
	rdb := initializers.ConnectToRedis(cfg.RedisAddr, cfg.RedisPass)

	products := catalog.New(db)
	images, err := catalog.NewS3Uploader(context.Background(), cfg.S3Bucket)
	if err != nil {
		log.Fatal("Failed to configure AWS: ", err)
	}
	orderStore := orders.NewStore(db)
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL, cfg.Checkout.MaxQuantity)
	pricer := pricing.NewEngine(products, cfg.Checkout.TaxPercent)

	var notifier notify.Notifier
	if cfg.Kafka.Enabled() {
		kafkaNotifier := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.NotifyTopic)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	} else {
		notifier = notify.NewMailer(notify.SMTPConfig{
			From:     cfg.Mail.From,
			Password: cfg.Mail.Password,
			Host:     cfg.Mail.Host,
			Address:  cfg.Mail.Address,
		})
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	orchestrator := checkout.New(checkout.Deps{
		Pricer: pricer,
		Gateway: gateway.NewRazorpay(gateway.RazorpayConfig{
			KeyID:     cfg.Razorpay.KeyID,
			KeySecret: cfg.Razorpay.KeySecret,
			BaseURL:   cfg.Razorpay.BaseURL,
			Timeout:   cfg.Razorpay.Timeout,
		}),
		Orders:   orderStore,
		Notifier: notifier,
		Sessions: sessions,
		Metrics:  checkout.NewMetrics(registry),
		Config: checkout.Config{
			Currency:                 cfg.Razorpay.Currency,
			GatewayTimeout:           cfg.Razorpay.Timeout,
			NotifyTimeout:            cfg.Checkout.NotifyTimeout,
			ClearCartOnFailedPayment: cfg.Checkout.ClearCartOnFailedPayment,
		},
	})

	server := routes.NewServer(routes.Options{
		Handler: &controllers.Handler{
			DB:        db,
			Catalog:   products,
			Images:    images,
			Orders:    orderStore,
			Pricer:    pricer,
			Sessions:  sessions,
			Checkout:  orchestrator,
			JWTSecret: cfg.JWTSecret,
		},
		Sessions:    sessions,
		SessionTTL:  cfg.SessionTTL,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    registry,

		SecureCookie: cfg.SecureCookie,
	})

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
