package utils

import (
	"encoding/json"
	"net/http"

	"prepagent/internal/errs"
	"prepagent/internal/models"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error through the taxonomy: the kind picks the status
// code and the code/message become the response body.
func Error(w http.ResponseWriter, err error) {
	JSON(w, errs.HTTPStatus(err), models.ErrorResponse{
		Code:    errs.CodeOf(err),
		Message: err.Error(),
	})
}

// Markdown writes a plain-text markdown document.
func Markdown(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write([]byte(body))
}
