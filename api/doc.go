// Package api exposes the linguistic tasks and the transcription history over
// HTTP using Gin.
//
// Routes:
//
//	POST   /api/v1/transcriptions        multipart "file"
//	POST   /api/v1/speech                {"text"}
//	POST   /api/v1/pronunciation         multipart "file", "text"
//	POST   /api/v1/definitions           {"word", "context"}
//	GET    /api/v1/history
//	GET    /api/v1/history/:id/audio
//	DELETE /api/v1/history/:id
//	GET    /health
//
// Successful JSON responses are wrapped in {"data": ...}. Failures use the
// errors.ErrorResponse body with a "category" detail for provider failures.
package api
