package dto

// LoginRequest stub de selección de rol: no hay credenciales reales,
// solo se elige con qué rol operar y se emite un token con ese claim.
type LoginRequest struct {
	Role string `json:"role" validate:"required"`
}

// LoginResponse token emitido para el rol elegido.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
