package constants

const (
	MsgSeatOccupied        = "seat already occupied"
	MsgOutOfRangeFormat    = "out of range (1-%d)"
	MsgTicketsRequired     = "at least one ticket required"
	MsgFlightDoesNotExist  = "flight does not exist"
	MsgInvalidOrder        = "invalid order"
	MsgInvalidPayload      = "invalid request payload"
	MsgValidationFailed    = "validation failed"
	MsgNotFound            = "resource not found"
	MsgProtected           = "resource is referenced by other records"
	MsgAlreadyExists       = "resource already exists"
	MsgUnauthorized        = "unauthorized"
	MsgForbidden           = "forbidden: insufficient permissions"
	MsgInvalidCredentials  = "invalid email or password"
	MsgEmailTaken          = "a user with this email already exists"
	MsgInternalError       = "internal server error"
	MsgRateLimited         = "Too many requests"
	MsgMustBePositive      = "must be greater than 0"
	MsgRequired            = "this field is required"
	MsgRouteSameEndpoints  = "must differ from source"
	MsgArrivalBeforeDepart = "must be after departure_time"
	MsgTooLongFormat       = "ensure this field has no more than %d characters"
	MsgUnknownReference    = "does not exist"
	MsgTooShortFormat      = "ensure this field has at least %d characters"
	MsgInvalidEmail        = "enter a valid email address"
)

// Error field keys used in validation responses
const (
	FieldOccupancy = "occupancy"
	FieldRow       = "row"
	FieldSeat      = "seat"
	FieldFlight    = "flight"
	FieldTickets   = "tickets"
)
