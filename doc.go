// File: lixenwraith/tomldir/doc.go

// Package tomldir loads configuration documents (TOML by default, JSON and
// YAML on request) into a pluggable store and flattens them into dotted
// key/value pairs.
//
// Features:
//   - Choice of table container: HashStore, OrderedStore (document order)
//     or SortedStore (key order), or any custom Store
//   - Dotted-path access with strictly typed getters (no implicit coercion)
//   - Deterministic flattening into map[string]string or any container
//   - Cheap read-only SharedConfig handles for concurrent readers
//   - Struct decoding through mapstructure
//
// Quick Start:
//
//	cfg, err := tomldir.LoadWithStore(`
//	[database]
//	host = "localhost"
//	port = 5432
//	`, tomldir.NewOrderedStore)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := cfg.GetString("database.host")
//	port, _ := cfg.GetInt("database.port")
//
//	flat := cfg.Flatten() // {"database.host": "localhost", "database.port": "5432"}
//
// Flattening:
// Tables contribute "parent.child" keys, array elements contribute
// "parent.<index>" keys, and empty tables or arrays contribute nothing.
// The walk visits each table in its store's iteration order, so repeated
// calls on an unchanged Config produce the same sequence.
//
//	entries := tomldir.FlattenInto(cfg, tomldir.CollectEntries)
//	asMap := tomldir.FlattenInto(cfg, maps.Collect[string, string])
//
// Thread Safety:
// Loading and flattening are synchronous and lock-free. Call Config.Shared
// once the configuration is complete; the returned SharedConfig may be copied
// to any number of goroutines and read concurrently. Shared freezes the
// Config, so Set fails with ErrFrozen afterwards.
package tomldir
