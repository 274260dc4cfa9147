package dto

// ProfileResponse reports the score snapshot held by the token
type ProfileResponse struct {
	Mensaje   string `json:"mensaje"`
	TusPuntos int64  `json:"tus_puntos"`
}

// IncrementScoreRequest is the body of /sumar-puntos
type IncrementScoreRequest struct {
	Cantidad *int64 `json:"cantidad"`
}

// IncrementScoreResponse reports the score stored after the increment
type IncrementScoreResponse struct {
	Mensaje      string `json:"mensaje"`
	NuevosPuntos int64  `json:"nuevos_puntos"`
}
