package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "casa360/internal/common/api"
	"casa360/internal/config"
	"casa360/internal/database"
	"casa360/internal/features/auth"
	"casa360/internal/features/automation"
	"casa360/internal/features/bankfeed"
	"casa360/internal/features/calendar"
	cron_feature "casa360/internal/features/cron"
	"casa360/internal/features/dashboard"
	"casa360/internal/features/document"
	"casa360/internal/features/family"
	"casa360/internal/features/file"
	"casa360/internal/features/finance"
	"casa360/internal/features/health"
	"casa360/internal/features/notification"
	"casa360/internal/features/pet"
	"casa360/internal/features/shopping"
	"casa360/internal/features/system"
	"casa360/internal/features/vehicle"
	"casa360/internal/features/work"
	"casa360/internal/logger"
	"casa360/internal/middleware"
	"casa360/internal/realtime"
	"casa360/pkg/utils"

	_ "casa360/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// NewLocation resolves the household timezone once so every consumer
// shares the same *time.Location.
func NewLocation(cfg *config.Config) *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("invalid timezone %q, using local", cfg.Timezone)
		return time.Local
	}
	return loc
}

// NewVirtualSources collects every service that projects deadlines into
// the calendar. Order fixes tie-breaking when events share an instant.
func NewVirtualSources(
	vehicleSvc vehicle.VehicleService,
	petSvc pet.PetService,
	workSvc work.ShiftService,
	documentSvc document.DocumentService,
) []calendar.VirtualSource {
	return []calendar.VirtualSource{vehicleSvc, petSvc, workSvc, documentSvc}
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           Casa360 API
// @version         1.0
// @description     Household management backend: calendar, shopping, finance, vehicles, pets, shifts, documents.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Shared infrastructure
			NewLocation,
			realtime.NewHub,

			// Initialize Repository
			family.NewGroupRepository,
			family.NewMemberRepository,
			calendar.NewEventRepository,
			vehicle.NewVehicleRepository,
			pet.NewPetRepository,
			pet.NewReminderRepository,
			pet.NewMedicalRecordRepository,
			work.NewShiftRepository,
			document.NewDocumentRepository,
			shopping.NewItemRepository,
			finance.NewTransactionRepository,
			health.NewMedicationRepository,
			health.NewMeasurementRepository,
			health.NewProfileRepository,
			notification.NewNotificationRepository,
			automation.NewRuleRepository,
			file.NewFileRepository,

			// Initialize Service
			family.NewFamilyService,
			auth.NewAuthService,
			vehicle.NewVehicleService,
			pet.NewPetService,
			work.NewShiftService,
			document.NewDocumentService,
			NewVirtualSources,
			calendar.NewAggregator,
			calendar.NewCalendarService,
			shopping.NewShoppingService,
			finance.NewFinanceService,
			health.NewHealthService,
			dashboard.NewDashboardService,
			notification.NewNotificationService,
			automation.NewAutomationService,
			automation.NewEngine,
			file.NewFileService,
			bankfeed.NewImporter,
			cron_feature.NewScheduler,

			// Initialize Controller
			family.NewFamilyController,
			auth.NewAuthController,
			calendar.NewCalendarController,
			vehicle.NewVehicleController,
			pet.NewPetController,
			work.NewShiftController,
			document.NewDocumentController,
			shopping.NewShoppingController,
			finance.NewFinanceController,
			health.NewHealthController,
			dashboard.NewDashboardController,
			notification.NewNotificationController,
			automation.NewAutomationController,
			file.NewFileController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(family.NewFamilyApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(calendar.NewCalendarApi),
			AsRoute(vehicle.NewVehicleApi),
			AsRoute(pet.NewPetApi),
			AsRoute(work.NewWorkApi),
			AsRoute(document.NewDocumentApi),
			AsRoute(shopping.NewShoppingApi),
			AsRoute(finance.NewFinanceApi),
			AsRoute(health.NewHealthApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(automation.NewAutomationApi),
			AsRoute(bankfeed.NewBankFeedApi),
			AsRoute(file.NewFileApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,

			// Server-side automation listens to the same change stream the
			// websocket clients do.
			func(engine *automation.Engine, hub *realtime.Hub) {
				engine.Attach(hub)
			},

			// Daily expiry scan
			func(lc fx.Lifecycle, scheduler *cron_feature.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start()
					},
					OnStop: func(ctx context.Context) error {
						scheduler.Stop()
						return nil
					},
				})
			},

			// Bank feed connection teardown
			func(lc fx.Lifecycle, importer *bankfeed.Importer) {
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						return importer.Close()
					},
				})
			},
		),
	)

	app.Run()
}
