package domain

import (
	"errors"

	"go.uber.org/multierr"
)

// ErrorType clasifica los errores de dominio (sin dependencias de transporte).
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation" // entrada inválida, detectable antes de mutar
	ErrorTypeNotFound   ErrorType = "not_found"  // referencia desconocida
	ErrorTypeConflict   ErrorType = "conflict"   // clave duplicada
	ErrorTypeFailure    ErrorType = "failure"    // mutación aplicada parcialmente, requiere conciliación
)

// Error es el resultado tipado de una operación de dominio fallida.
// Code es estable (ej. "StockItem.InsufficientStock"); Description es legible.
type Error struct {
	Type        ErrorType
	Code        string
	Description string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Description
}

// Is compara por Code para que errors.Is funcione con errores parametrizados.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Validation construye un error de validación.
func Validation(code, description string) *Error {
	return &Error{Type: ErrorTypeValidation, Code: code, Description: description}
}

// NotFound construye un error de recurso no encontrado.
func NotFound(code, description string) *Error {
	return &Error{Type: ErrorTypeNotFound, Code: code, Description: description}
}

// Conflict construye un error de conflicto (clave duplicada).
func Conflict(code, description string) *Error {
	return &Error{Type: ErrorTypeConflict, Code: code, Description: description}
}

// Failure construye un error de falla (aplicación parcial).
func Failure(code, description string) *Error {
	return &Error{Type: ErrorTypeFailure, Code: code, Description: description}
}

// AsError extrae el primer *Error de err (incluye errores combinados con multierr).
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	for _, e := range multierr.Errors(err) {
		var de *Error
		if errors.As(e, &de) {
			return de, true
		}
	}
	return nil, false
}

// Details devuelve todos los errores de dominio contenidos en err, en orden.
func Details(err error) []*Error {
	var out []*Error
	for _, e := range multierr.Errors(err) {
		var de *Error
		if errors.As(e, &de) {
			out = append(out, de)
		}
	}
	return out
}

// Errores genéricos reutilizados por la capa de aplicación.
var (
	ErrInvalidInput = Validation("Request.Invalid", "entrada inválida")
	ErrNotFound     = NotFound("Resource.NotFound", "recurso no encontrado")
	ErrDuplicate    = Conflict("Resource.Duplicate", "recurso duplicado")
)
