package api

import (
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/config"
	"airport-booking/skyport/internal/constants"
	"airport-booking/skyport/internal/db/repositories"
	"airport-booking/skyport/internal/logging"
	"airport-booking/skyport/internal/metrics"
	"airport-booking/skyport/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Repositories struct {
	Airports      *repositories.AirportRepository
	AirplaneTypes *repositories.AirplaneTypeRepository
	Airplanes     *repositories.AirplaneRepository
	Routes        *repositories.RouteRepository
	Crew          *repositories.CrewRepository
	Flights       *repositories.FlightRepository
	Tickets       *repositories.TicketRepository
	Orders        *repositories.OrderRepository
	Users         *repositories.UserRepository
	Stats         *repositories.StatsRepository
}

type Services struct {
	Cache         common.CacheInterface
	Tokens        *auth.TokenService
	Users         *services.UserService
	Airports      *services.AirportService
	AirplaneTypes *services.AirplaneTypeService
	Airplanes     *services.AirplaneService
	Routes        *services.RouteService
	Crew          *services.CrewService
	Flights       *services.FlightService
	Orders        *services.OrderService
	Stats         *services.StatsService
	AirportLoader *common.AirportLoaderService
	OrderEvents   *common.OrderEventStream
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry

	// Health check targets; Redis is nil when not configured
	SQLDB   *sqlx.DB
	Redis   *redis.Client
	UpSince time.Time
}

// InitDependencies wires repositories and services. redisClient may be nil, in which
// case caching stays in process and order events are not published.
func InitDependencies(
	cfg *config.Config,
	gdb *gorm.DB,
	sqlDB *sqlx.DB,
	redisClient *redis.Client,
	metricsReg *metrics.MetricsRegistry,
) *Dependencies {
	repos := &Repositories{
		Airports:      repositories.NewAirportRepository(gdb),
		AirplaneTypes: repositories.NewAirplaneTypeRepository(gdb),
		Airplanes:     repositories.NewAirplaneRepository(gdb),
		Routes:        repositories.NewRouteRepository(gdb),
		Crew:          repositories.NewCrewRepository(gdb),
		Flights:       repositories.NewFlightRepository(gdb),
		Tickets:       repositories.NewTicketRepository(gdb),
		Orders:        repositories.NewOrderRepository(gdb),
		Users:         repositories.NewUserRepository(gdb),
		Stats:         repositories.NewStatsRepository(sqlDB),
	}

	var cache common.CacheInterface
	var orderEvents *common.OrderEventStream
	var publisher services.OrderEventPublisher
	if redisClient != nil {
		cache = common.NewRedisCacheService(redisClient)
		orderEvents = common.NewOrderEventStream(redisClient, constants.OrderCreatedStream)
		publisher = orderEvents
		logging.Info("Using Redis for cache and order events")
	} else {
		cache = common.NewCacheService(cfg.CacheTTL, 2*cfg.CacheTTL)
		logging.Info("Redis not configured, using in-memory cache; order events disabled")
	}

	listCache := services.NewListCache(cache, cfg.CacheTTL, metricsReg)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTTTL, cache)

	svcs := &Services{
		Cache:         cache,
		Tokens:        tokens,
		Users:         services.NewUserService(repos.Users, tokens, cfg.BcryptCost),
		Airports:      services.NewAirportService(repos.Airports, listCache),
		AirplaneTypes: services.NewAirplaneTypeService(repos.AirplaneTypes, listCache),
		Airplanes:     services.NewAirplaneService(repos.Airplanes, repos.AirplaneTypes),
		Routes:        services.NewRouteService(repos.Routes, repos.Airports),
		Crew:          services.NewCrewService(repos.Crew, listCache),
		Flights:       services.NewFlightService(repos.Flights, repos.Routes, repos.Airplanes, repos.Crew, repos.Tickets),
		Orders: services.NewOrderService(
			gdb,
			services.NewSeatInventory(repos.Flights, repos.Tickets),
			services.NewOrderStore(repos.Orders, repos.Tickets),
			repos.Orders,
			repos.Tickets,
			publisher,
			metricsReg,
		),
		Stats:         services.NewStatsService(repos.Stats),
		AirportLoader: common.NewAirportLoaderService(gdb),
		OrderEvents:   orderEvents,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		SQLDB:    sqlDB,
		Redis:    redisClient,
		UpSince:  time.Now(),
	}
}
