// Package domain contains the entities behind the dataset-collection API.
//
// This package defines:
//   - DatasetCollection and its ordered CollectionElements
//   - HDA, the leaf dataset an element may wrap
//   - History, the container that owns datasets and collection associations
//   - HDCA, the association binding one collection into one history
//   - Tags, users and lifecycle enums
//
// # Design Philosophy
//
// Domain types are persistence-agnostic. Entities are loaded whole by the
// repository layer and treated as immutable snapshots while serialized.
//
// # Element Objects
//
// A CollectionElement wraps exactly one ElementObject: either a leaf *HDA or a
// nested *DatasetCollection. ElementObject is sealed to this package.
package domain
