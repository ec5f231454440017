package models

import "errors"

// Errores de dominio; los handlers los traducen a códigos HTTP.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicateCollab    = errors.New("el usuario ya es colaborador del proyecto")
	ErrLastAdmin          = errors.New("Debe haber al menos un administrador")
	ErrCreatorImmutable   = errors.New("no se puede eliminar al creador del proyecto")
	ErrInvalidRole        = errors.New("rol inválido")
	ErrCrossProjectMove   = errors.New("la categoría destino pertenece a otro proyecto")
	ErrEmailTaken         = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
