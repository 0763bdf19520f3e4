package service

import "errors"

// Sentinel errors handlers translate into HTTP status codes. Business
// rejections carry the message the client displays verbatim.
var (
	ErrInsufficientFunds  = errors.New("insufficient Flame Coin balance")
	ErrEquipmentLimit     = errors.New("equipment slots are full")
	ErrAlreadyRepaired    = errors.New("equipment is already at full durability")
	ErrNotOwner           = errors.New("equipment does not belong to this user")
	ErrNoActiveSession    = errors.New("no active mining session")
	ErrPremiumRequired    = errors.New("premium subscription required for this site")
	ErrInsufficientPower  = errors.New("insufficient mining power for this site")
	ErrWalletNotConnected = errors.New("TON wallet not connected")
	ErrInvalidAddress     = errors.New("invalid TON address format")
	ErrInvalidTier        = errors.New("invalid subscription tier")
	ErrInvalidPayment     = errors.New("invalid payment type")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrUsernameRequired   = errors.New("username is required")
)
