// Package errors provides application error types for the collections API.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for common error types
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Types
//
//   - NotFound: Resource does not exist (404)
//   - Validation: Invalid input data (400)
//   - Unauthorized: Authentication required (401)
//   - Forbidden: Insufficient permissions (403)
//   - Conflict: Lifecycle transition not allowed (409)
//   - Configuration: Serializer asked for an undeclared view or key (500)
//   - Inconsistent: Stored entity breaks a model invariant (500)
//
// # Usage
//
//	return apperrors.NotFound("history dataset collection")
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
package errors
