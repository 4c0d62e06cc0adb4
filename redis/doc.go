// Package redis provides a Redis client wrapper built on go-redis with
// linguist logging and configuration conventions.
//
// # Typed Operations
//
// TypedStore provides generic JSON-serialized get/set operations under a key
// prefix:
//
//	store := redis.NewTypedStore[history.Entry](client, "linguist:history")
//
// For ad-hoc typed operations, use GetJSON/SetJSON on the Client directly:
//
//	client.SetJSON(ctx, "key", myStruct, 5*time.Minute)
//	client.GetJSON(ctx, "key", &myStruct)
//
// Sorted-set helpers (ZAdd, ZRevRange, ZRem) back time-ordered indexes.
package redis
