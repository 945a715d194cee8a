// Package service contains the business logic layer for the collections API.
//
// Managers fetch and authorize entities and apply state changes through
// repository interfaces defined in this package. HDCAManager is assembled
// from one capability provider per concern (access, ownership, deletion,
// tagging, annotation); their operations are promoted onto the manager.
//
// # Thread Safety
//
// All managers are safe for concurrent use from multiple goroutines.
package service
