package utils

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrCreciAlreadyExists   = errors.New("creci already registered")
	ErrProgramSoldOut       = errors.New("founding program sold out")
	ErrMissingFields        = errors.New("missing required fields")
	ErrCompanyFieldsMissing = errors.New("company fields missing")
	ErrMemberNotFound       = errors.New("founding member not found")
	ErrListingNotFound      = errors.New("listing not found")
	ErrInvalidListingStatus = errors.New("invalid listing status")
	ErrFlowNotFound         = errors.New("signup flow not found or expired")
	ErrFlowWrongStep        = errors.New("signup flow is not on the expected step")
	ErrPaymentGateway       = errors.New("payment gateway error")
	ErrDatabaseError        = errors.New("database error")

	ErrPostNotFound     = errors.New("social post not found")
	ErrPostForbidden    = errors.New("social post belongs to another user")
	ErrPostPublished    = errors.New("social post already published")
	ErrPostContentEmpty = errors.New("social post content empty")
	ErrNoPlatforms      = errors.New("no platforms selected")
	ErrInvalidPlatform  = errors.New("invalid platform")
	ErrScheduleInPast   = errors.New("scheduled time not in the future")
	ErrBadScheduleTime  = errors.New("scheduled time not parseable")
	ErrPostNotScheduled = errors.New("social post not in scheduled status")
)
