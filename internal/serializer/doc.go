// Package serializer projects domain entities into view-specific documents.
//
// A ModelSerializer maps an entity to a named view, an ordered list of keys,
// calling a registered field function for each key and falling back to a
// per-type attribute read. Views are declared once at construction; a view may
// include the keys of an earlier one.
//
// The concrete serializers compose:
//
//	HDCASerializer -> DCASerializer -> DCSerializer -> DCESerializer -> HDASerializer
//	                                        ^                |
//	                                        +----------------+  (nested collections)
//
// Association serializers proxy their collection-shaped keys to one shared
// DCSerializer through an explicit resolver table (see CollectionProxy).
//
// Serialization is a pure function of entity state and the Context; nothing
// here touches the database or the network.
package serializer
