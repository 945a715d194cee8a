// Package validator provides struct validation for request DTOs.
//
// It wraps go-playground/validator with field names taken from json or
// query struct tags, human-readable messages, and two custom rules:
//   - tag: a history item tag ("name", "name:value" or "#name")
//   - keylist: a comma separated list of serializer keys
//
// Use validator.Validate() directly or through dto.ParseAndValidate().
// The validator instance is package-level and thread-safe.
package validator
