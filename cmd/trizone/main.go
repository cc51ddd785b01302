package main

import (
	"context"

	bookinghandler "trizone/internal/bookings/handler"
	bookingrepo "trizone/internal/bookings/repository"
	bookingservice "trizone/internal/bookings/service"
	bookingvalidator "trizone/internal/bookings/validator"
	menuhandler "trizone/internal/menu/handler"
	menurepo "trizone/internal/menu/repository"
	menuservice "trizone/internal/menu/service"
	orderhandler "trizone/internal/orders/handler"
	orderrepo "trizone/internal/orders/repository"
	orderservice "trizone/internal/orders/service"
	registryhandler "trizone/internal/registry/handler"
	registryrepo "trizone/internal/registry/repository"
	registryservice "trizone/internal/registry/service"
	"trizone/pkg/app"
	"trizone/pkg/config"
	"trizone/pkg/events"
)

const ServiceName = "trizone"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	publisher := initPublisher(cfg)

	registry := registryservice.NewRegistryService(
		registryrepo.NewMongoResourceRepository(cfg),
		publisher,
		cfg,
	)
	bookings := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		registry,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	menu := menuservice.NewMenuService(menurepo.NewMongoMenuRepository(cfg), cfg)
	orders := orderservice.NewOrderService(orderrepo.NewMongoOrderRepository(cfg), publisher, cfg)

	seed(cfg, registry, menu)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		registryhandler.NewResourceHandler(registry, cfg.Log),
		bookinghandler.NewBookingHandler(bookings, cfg.Log),
		menuhandler.NewMenuHandler(menu, cfg.Log),
		orderhandler.NewOrderHandler(orders, cfg.Log),
	)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured; event publishing disabled")
		return events.NopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}
	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaTopic)
	return publisher
}

func seed(cfg *config.Config, registry registryservice.RegistryService, menu menuservice.MenuService) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()

	if err := registry.Seed(ctx); err != nil {
		cfg.Log.Fatal("Failed to seed resource registry", "error", err)
	}
	if err := menu.Seed(ctx); err != nil {
		cfg.Log.Fatal("Failed to seed menu", "error", err)
	}
}
