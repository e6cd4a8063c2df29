package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida para los DTOs de entrada (es segura para uso
// concurrente y cachea la metadata de structs).
var validate = validator.New()
