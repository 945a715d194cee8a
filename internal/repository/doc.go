// Package repository contains data access implementations for the
// collections API.
//
// Repositories load and persist history dataset collection associations
// (HDCAs), the collections they wrap, the nested element trees and the
// leaf datasets at the bottom of those trees.
//
// # Architecture
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces). This package contains the concrete PostgreSQL implementations.
//
// # Loading
//
// An HDCA is loaded together with its history, tags, annotation and the
// complete collection tree, so serializers never touch the database.
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use.
// Connection pools are managed at the database layer.
package repository
