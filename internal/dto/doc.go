// Package dto contains Data Transfer Objects for HTTP request handling.
//
// DTOs are parsed from request bodies or query strings and validated with
// go-playground/validator through ParseAndValidate and ParseQueryAndValidate:
//
//	var req dto.SetTagsRequest
//	if err := dto.ParseAndValidate(c, &req); err != nil {
//	    return dto.WriteError(c, err)
//	}
//
// Failures are *RequestError values; WriteError renders them as 400 responses.
package dto
