package service

import (
	"github.com/mwallace/shopfront/internal/domain"
)

// Session errors - use domain.ENOTFOUND
var (
	ErrSessionNotFound = domain.Errorf(domain.ENOTFOUND, "", "Session not found")
)

// Validation errors - use domain.EINVALID
var (
	ErrInvalidQuantity = domain.Errorf(domain.EINVALID, "", "Quantity must be greater than 0")
	ErrInvalidProduct  = domain.Errorf(domain.EINVALID, "", "Invalid product ID")
)
