// Package store persists the dream collection.
//
// The whole collection is serialized as one JSON array and written under a
// single key of a [Backend]. Four backends exist:
//
//   - file: one JSON file per key, replaced atomically
//   - badger: an embedded BadgerDB
//   - sqlite: a single kv table in an SQLite file
//   - memory: process memory, nothing survives exit
//
// The list operations [Upsert], [Remove], [Find] and [Merge] are pure and
// never touch a backend. Callers load, transform and save:
//
//	list, err := s.Load(ctx)
//	list = store.Upsert(list, d)
//	err = s.Save(ctx, list)
package store
