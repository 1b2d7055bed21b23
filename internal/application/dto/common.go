package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusCountResponse contagem de documentos por status.
type StatusCountResponse struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// ProximoNumeroResponse próximo número sequencial de uma série.
type ProximoNumeroResponse struct {
	Serie  int `json:"serie"`
	Numero int `json:"numero"`
}

// NumeroDisponivelResponse resultado da consulta de disponibilidade.
type NumeroDisponivelResponse struct {
	Serie      int  `json:"serie"`
	Numero     int  `json:"numero"`
	Disponivel bool `json:"disponivel"`
}

// TokenRequest body para POST /api/auth/token.
type TokenRequest struct {
	APIKey       string `json:"api_key"`
	UserID       string `json:"user_id"`
	EmitenteCnpj string `json:"emitente_cnpj,omitempty"`
}

// TokenResponse token JWT emitido.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // segundos
}
