package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida para validar tags de los DTOs.
var validate = validator.New()
