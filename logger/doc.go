// Package logger provides structured logging for linguist using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("router")
//	log.Info("transcription finished", logger.Fields("segments", 12))
package logger
