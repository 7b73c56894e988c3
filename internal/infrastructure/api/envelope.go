package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// Result es la forma uniforme que toda operación devuelve al llamador,
// independientemente de la variación de envelope del backend.
// Invariante: Success ⇔ 200 <= StatusCode < 300.
type Result[T any] struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       T               `json:"data,omitempty"`
	StatusCode int             `json:"statusCode"`
	Raw        json.RawMessage `json:"-"` // payload extraído sin decodificar
}

// LoginData payload normalizado de /auth/login.
type LoginData struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// extractionRules claves bajo las que el backend anida el payload según el
// endpoint, evaluadas en orden de prioridad. El orden es contrato versionado
// con el backend (v1): cambiarlo rompe el desempaquetado de respuestas que
// traigan varias claves a la vez. Si ninguna aplica, el payload es el cuerpo
// completo del envelope.
var extractionRules = []string{
	"products",
	"product",
	"categories",
	"suppliers",
	"transactions",
	"data",
}

// normalize convierte una respuesta del backend en un Result uniforme.
// Dos niveles:
//  1. Si el cuerpo es un envelope nativo {status, message, ...payload}, el
//     status del envelope manda y el payload se extrae según extractionRules
//     (o se arma {token, user} si el envelope trae token).
//  2. Si no, se usa el status HTTP de transporte y el cuerpo se pasa tal cual.
//
// Un payload indecodificable solo es error cuando la respuesta fue exitosa:
// los envelopes de fallo rara vez traen un payload con la forma de T.
func normalize[T any](httpStatus int, body []byte) (*Result[T], error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil && envelope != nil {
		if rawStatus, ok := envelope["status"]; ok {
			var status int
			if err := json.Unmarshal(rawStatus, &status); err == nil {
				return normalizeEnvelope[T](status, envelope, body)
			}
		}
	}

	// Nivel 2: sin envelope reconocible, manda el transporte.
	res := &Result[T]{
		Success:    httpStatus >= 200 && httpStatus < 300,
		Message:    statusMessage(httpStatus),
		StatusCode: httpStatus,
		Raw:        body,
	}
	if err := decodeData(res); err != nil {
		return nil, err
	}
	return res, nil
}

func normalizeEnvelope[T any](status int, envelope map[string]json.RawMessage, body []byte) (*Result[T], error) {
	res := &Result[T]{
		Success:    status >= 200 && status < 300,
		Message:    "Success",
		StatusCode: status,
	}
	if rawMsg, ok := envelope["message"]; ok {
		var msg string
		if err := json.Unmarshal(rawMsg, &msg); err == nil && msg != "" {
			res.Message = msg
		}
	}

	if rawToken, ok := envelope["token"]; ok {
		// Login: token y datos del usuario vienen en la raíz del envelope.
		// Los subcampos ausentes quedan en su valor cero ('' / 0).
		login := LoginData{}
		_ = json.Unmarshal(rawToken, &login.Token)
		if login.Token != "" {
			_ = json.Unmarshal(orNull(envelope["role"]), &login.User.Role)
			_ = json.Unmarshal(orNull(envelope["email"]), &login.User.Email)
			_ = json.Unmarshal(orNull(envelope["name"]), &login.User.Name)
			_ = json.Unmarshal(orNull(envelope["id"]), &login.User.ID)
			raw, err := json.Marshal(login)
			if err != nil {
				return nil, fmt.Errorf("api: serializar datos de login: %w", err)
			}
			res.Raw = raw
			if err := decodeData(res); err != nil {
				return nil, err
			}
			return res, nil
		}
	}

	res.Raw = body
	for _, key := range extractionRules {
		if raw, ok := envelope[key]; ok {
			res.Raw = raw
			break
		}
	}
	if err := decodeData(res); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeData[T any](res *Result[T]) error {
	if len(res.Raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Raw, &res.Data); err != nil {
		if res.Success {
			return fmt.Errorf("api: payload inesperado (status %d): %w", res.StatusCode, err)
		}
		// Fallo del backend con payload de otra forma: el mensaje ya lo describe.
		var zero T
		res.Data = zero
	}
	return nil
}

func orNull(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return json.RawMessage("null")
	}
	return raw
}

func statusMessage(httpStatus int) string {
	if text := http.StatusText(httpStatus); text != "" {
		return text
	}
	return "Success"
}
