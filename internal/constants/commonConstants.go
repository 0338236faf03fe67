package constants

import "time"

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirports      CachePrefix = "AIRPORTS_"
	CachePrefixAirplaneTypes CachePrefix = "AIRPLANE_TYPES_"
	CachePrefixCrew          CachePrefix = "CREW_"
)

const (
	OrderCreatedStream      = "orders:created"
	OrderEventsConsumerName = "order-event-workers"

	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultCacheTTL = 5 * time.Minute
)
