// Package storage provides a small object storage abstraction.
//
// Storage is the streaming interface implemented by backends; ByteClient wraps
// it for callers that hold whole objects in memory.
//
// # Backends
//
//   - storage/local: local filesystem storage
//   - storage/s3: Amazon S3 or an S3-compatible service (MinIO, R2)
//
// # Configuration
//
//	history:
//	  backend: "local"
//	  local:
//	    base_path: "./data/history"
//	  s3:
//	    bucket: "linguist-history"
//	    endpoint: "http://localhost:9000"
package storage
