package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Vehicle errors
var (
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleAlreadyExists = errors.New("vehicle already exists")
	ErrVehicleInactive      = errors.New("vehicle is inactive")
	ErrInvalidVehicleNo     = errors.New("invalid vehicle registration number")
	ErrInvalidVehicleData   = errors.New("invalid vehicle data")
)

// Transporter errors
var (
	ErrTransporterNotFound    = errors.New("transporter not found")
	ErrTransporterInactive    = errors.New("transporter is inactive")
	ErrInvalidTransporterData = errors.New("invalid transporter data")
)

// Trip errors
var (
	ErrTripNotFound           = errors.New("trip not found")
	ErrInvalidMovementType    = errors.New("invalid movement type")
	ErrInvalidDocumentType    = errors.New("invalid document type")
	ErrMissingDocumentRef     = errors.New("linked document reference is required")
	ErrInvalidWeight          = errors.New("weight must be a finite non-negative number")
	ErrNegativeNetWeight      = errors.New("gross weight is less than tare weight")
	ErrInvalidTripState       = errors.New("operation is not allowed in the current trip state")
	ErrTripTerminal           = errors.New("trip is already completed or cancelled")
	ErrNetWeightNotComputed   = errors.New("net weight has not been computed yet")
	ErrConcurrentModification = errors.New("trip was modified concurrently, fetch the latest state and retry")
	ErrCorruptedEventStream   = errors.New("trip event stream is corrupted")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// General errors
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)
