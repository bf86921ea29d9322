package domain

import "errors"

// Backend error codes reported by the authentication service.
const (
	CodeInvalidEmail      = "auth/invalid-email"
	CodeWrongPassword     = "auth/wrong-password"
	CodeUserNotFound      = "auth/user-not-found"
	CodeNetworkFailed     = "auth/network-request-failed"
	CodeEmailAlreadyInUse = "auth/email-already-in-use"
	CodeWeakPassword      = "auth/weak-password"
	CodeInvalidResetToken = "auth/invalid-action-code"
	CodeRemoteUnavailable = "directory/unavailable"
)

const defaultMessage = "Error desconocido. Por favor, contacta a soporte."

var codeMessages = map[string]string{
	CodeInvalidEmail:      "El formato del correo electrónico no es válido.",
	CodeWrongPassword:     "La contraseña es incorrecta.",
	CodeUserNotFound:      "No se encontró un usuario con este correo electrónico.",
	CodeNetworkFailed:     "Problema de conexión a internet. Verifica tu red.",
	CodeEmailAlreadyInUse: "Este correo electrónico ya está registrado.",
	CodeWeakPassword:      "La contraseña es demasiado débil.",
	CodeInvalidResetToken: "El enlace de restablecimiento no es válido o ha expirado.",
	CodeRemoteUnavailable: "Ocurrió un error",
}

// MessageFor maps a backend error code to the short message shown to staff.
func MessageFor(code string) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return defaultMessage
}

// CodeFor returns the backend code for a known sentinel error, or "".
func CodeFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return CodeWrongPassword
	case errors.Is(err, ErrUserExists):
		return CodeEmailAlreadyInUse
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrInvalidResetToken):
		return CodeInvalidResetToken
	case errors.Is(err, ErrRemoteOperation):
		return CodeRemoteUnavailable
	}
	return ""
}
