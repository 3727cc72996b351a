package notification

import (
	"errors"
	"net"
	"strings"
)

// Firmas de errores de red que se consideran transitorios: se espera que un
// reintento los resuelva. Cualquier otro error es permanente y corta el ciclo
// de reintentos de inmediato.
var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"connection lost",
	"broken pipe",
	"timeout",
	"timed out",
	"temporary failure",
	"no such host",
	"eof",
}

// IsTransient clasifica un error de entrega como transitorio o permanente.
// Los timeouts de red (net.Error) siempre son transitorios; el resto se
// decide por coincidencia de subcadena contra el set conocido.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
