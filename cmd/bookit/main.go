package main

import (
	"time"

	bookinghandler "bookit/internal/bookings/handler"
	"bookit/internal/bookings/repository"
	bookingservice "bookit/internal/bookings/service"
	"bookit/internal/bookings/validator"
	"bookit/internal/catalog"
	"bookit/internal/events"
	"bookit/internal/promo"
	"bookit/internal/requests"
	"bookit/internal/wallet"
	"bookit/pkg/app"
	"bookit/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg := config.Load("bookit")
	cfg.Log.Info("Starting booking service")

	var mongoClient *mongo.Client
	if cfg.StoreBackend == config.StoreBackendMongo {
		cfg.SetMongo()
		mongoClient = cfg.Client.Mongo
	}

	bookingRepo := newBookingRepository(cfg)
	publisher := newPublisher(cfg)

	experiences, slots := catalog.Seed(cfg.SlotsPerExperience, cfg.SlotCapacity, time.Now())
	store := catalog.NewStore(experiences, slots)
	cfg.Log.Info("Catalog seeded", "experiences", len(experiences), "slots", len(slots))

	walletService := wallet.NewWalletService(wallet.NewMemoryUserRepository(), cfg.TopUpMaxAmount, cfg.Log)
	promoService := promo.NewPromoService(bookingRepo, cfg.Log)
	bookingService := bookingservice.NewBookingService(
		store,
		bookingRepo,
		walletService,
		promoService,
		publisher,
		validator.NewCheckoutValidator(cfg.MaxGuestsPerOrder, cfg.Log),
		nil,
		cfg,
	)
	requestService := requests.NewRequestService(
		requests.NewMemoryCallbackRepository(),
		requests.NewMemoryMessageRepository(),
		store,
		cfg.Log,
	)

	application := app.NewApplication(cfg)
	application.AddCloser(publisher)
	application.SetApp(
		mongoClient,
		catalog.NewCatalogHandler(catalog.NewCatalogService(store, cfg), cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		promo.NewPromoHandler(promoService, cfg.Log),
		wallet.NewWalletHandler(walletService, cfg.Log),
		requests.NewRequestHandler(requestService, cfg.Log),
	)
	application.Run()
}

func newBookingRepository(cfg *config.Config) repository.BookingRepository {
	if cfg.StoreBackend == config.StoreBackendMongo {
		cfg.Log.Info("Using MongoDB booking store", "database", cfg.MongoDatabaseName)
		return repository.NewMongoBookingRepository(cfg)
	}
	cfg.Log.Info("Using in-memory booking store")
	return repository.NewMemoryBookingRepository()
}

func newPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) > 0 {
		cfg.Log.Info("Kafka booking events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaBookingTopic)
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, cfg.Log)
	}
	cfg.Log.Info("Kafka brokers not configured, booking events disabled")
	return events.NoopPublisher{}
}
