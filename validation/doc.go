// Package validation validates request inputs and decoded provider payloads.
//
// Struct tag validation runs go-playground/validator against `validate`
// tags and reports fields by their JSON names:
//
//	type segmentWire struct {
//	    Text      *string  `json:"text" validate:"required"`
//	    StartTime *float64 `json:"startTime" validate:"required"`
//	}
//	err := validation.Validate(seg)
//
// Programmatic validation collects field errors fluently:
//
//	v := validation.New()
//	v.Required("word", req.Word).MaxLength("word", req.Word, 128)
//	if err := v.Validate(); err != nil { ... }
//
// Both forms return *errors.AppError with Details["fields"].
package validation
