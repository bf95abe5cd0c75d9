package store

import "github.com/uakotik/DB-lab5/internal/types"

// Store error codes. Graph failures keep the graph package codes.
const (
	ErrCodeInvalidArgument  types.ErrorCode = "STORE_INVALID_ARGUMENT"
	ErrCodeEndpointNotFound types.ErrorCode = "STORE_ENDPOINT_NOT_FOUND"
)
