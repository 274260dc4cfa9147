package handler

// Client-facing messages. Clients match on these strings, keep them stable.
const (
	MsgMissingCredentials = "Falta usuario o contraseña"
	MsgPasswordTooLong    = "La contraseña es demasiado larga"
	MsgUsernameTaken      = "Ese nombre de usuario ya está ocupado"
	MsgUserCreated        = "¡Usuario creado con éxito!"
	MsgRegisterFailed     = "Error interno del servidor"

	MsgInvalidRequest     = "Solicitud inválida"
	MsgLoginOK            = "¡Login exitoso!"
	MsgUserNotFound       = "Usuario no encontrado"
	MsgWrongPassword      = "Clave incorrecta"
	MsgInvalidCredentials = "Usuario o clave incorrectos"
	MsgLoginFailed        = "Error en el servidor"

	MsgProfileNoToken      = "Acceso denegado: No hay token"
	MsgProfileInvalidToken = "Token inválido o expirado"
	MsgWelcomePrefix       = "Bienvenido al sistema, "

	MsgScoreNoToken      = "No hay token"
	MsgScoreInvalidToken = "Token inválido"
	MsgMissingAmount     = "Falta la cantidad"
	MsgAmountOutOfRange  = "Cantidad fuera de rango"
	MsgScoreUpdated      = "¡Puntos actualizados en la base de datos!"
	MsgScoreFailed       = "Error al actualizar puntos"
)
