package main

import (
	bookinghandler "dmaxcricket/internal/bookings/handler"
	bookingrepository "dmaxcricket/internal/bookings/repository"
	bookingservice "dmaxcricket/internal/bookings/service"
	bookingvalidator "dmaxcricket/internal/bookings/validator"
	contacthandler "dmaxcricket/internal/contact/handler"
	contactrepository "dmaxcricket/internal/contact/repository"
	contactservice "dmaxcricket/internal/contact/service"
	customerrepository "dmaxcricket/internal/customers/repository"
	customerservice "dmaxcricket/internal/customers/service"
	lockrepository "dmaxcricket/internal/locks/repository"
	lockservice "dmaxcricket/internal/locks/service"
	"dmaxcricket/internal/notifications"
	pricingrepository "dmaxcricket/internal/pricing/repository"
	pricingservice "dmaxcricket/internal/pricing/service"
	"dmaxcricket/internal/proofs"
	slothandler "dmaxcricket/internal/slots/handler"
	slotrepository "dmaxcricket/internal/slots/repository"
	slotservice "dmaxcricket/internal/slots/service"
	tournamenthandler "dmaxcricket/internal/tournaments/handler"
	tournamentrepository "dmaxcricket/internal/tournaments/repository"
	tournamentservice "dmaxcricket/internal/tournaments/service"
	tournamentvalidator "dmaxcricket/internal/tournaments/validator"
	"dmaxcricket/pkg/app"
	"dmaxcricket/pkg/config"
	"dmaxcricket/pkg/contracts"
	"dmaxcricket/pkg/kafka"
	kafka_config "dmaxcricket/pkg/kafka/config"
	"dmaxcricket/pkg/sealer"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "booking-engine"

// routes fans a single registration call out to every domain handler.
type routes []contracts.Handler

func (r routes) RegisterRoutes(router *httprouter.Router) {
	for _, h := range r {
		h.RegisterRoutes(router)
	}
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting booking engine")

	producer := initProducer(cfg)
	defer producer.Close()

	handlers := initHandlers(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.NotificationsTopic, cfg.NotificationsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	return producer
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) routes {
	tokenSealer, err := sealer.New(cfg.SealerKey)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize token sealer", "error", err)
	}

	proofStore, err := proofs.NewDiskStore(cfg.ProofDir, cfg.ProofMaxBytes, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize proof store", "error", err)
	}

	notifier := notifications.NewKafkaNotifier(producer, ServiceName, cfg.Log)

	slotRepo := slotrepository.NewMongoSlotRepository(cfg)
	lockRepo := lockrepository.NewMongoLockRepository(cfg)
	customerRepo := customerrepository.NewMongoCustomerRepository(cfg)
	rateRepo := pricingrepository.NewMongoRateRepository(cfg)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	tournamentRepo := tournamentrepository.NewMongoTournamentRepository(cfg)
	contactRepo := contactrepository.NewMongoContactRepository(cfg)

	lockSvc := lockservice.NewLockService(lockRepo, slotRepo, bookingRepo, cfg)
	slotSvc := slotservice.NewSlotService(slotRepo, bookingRepo, lockSvc, cfg)
	customerSvc := customerservice.NewCustomerService(customerRepo, cfg)
	pricingSvc := pricingservice.NewPricingService(rateRepo, cfg)
	tournamentSvc := tournamentservice.NewTournamentService(
		tournamentRepo,
		tournamentvalidator.NewTournamentValidator(cfg.Log),
		cfg,
	)
	contactSvc := contactservice.NewContactService(contactRepo, cfg)

	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		customerSvc,
		pricingSvc,
		lockSvc,
		slotRepo,
		tokenSealer,
		notifier,
		bookingvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return routes{
		slothandler.NewSlotHandler(slotSvc, lockSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		tournamenthandler.NewTournamentHandler(tournamentSvc, cfg.Log),
		contacthandler.NewContactHandler(contactSvc, cfg.Log),
		proofs.NewPaymentHandler(proofStore, tokenSealer, cfg.PaymentWindow, cfg.Log),
	}
}
