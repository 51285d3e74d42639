package sources

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
)

// transportErrorKind classifies a failed outbound exchange. Using typed
// kinds instead of inspecting error strings keeps the user-facing
// message mapping in one place.
type transportErrorKind int

const (
	kindGeneric transportErrorKind = iota
	kindTimeout
	kindNetwork
)

// classifyTransportError maps a client-side error (no HTTP response) to
// a kind. Timeouts cover both the request context deadline and socket
// level timeouts.
func classifyTransportError(err error) transportErrorKind {
	if err == nil {
		return kindGeneric
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return kindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return kindTimeout
		}
		return kindNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return kindNetwork
	}
	return kindGeneric
}

// transportMessage renders the user-facing diagnostic for a failed
// exchange with the named platform
func transportMessage(kind transportErrorKind, platformName string) string {
	switch kind {
	case kindTimeout:
		return fmt.Sprintf("Timeout na conexão com o %s. Tente novamente.", platformName)
	case kindNetwork:
		return "Erro de rede. Verifique sua conexão."
	default:
		return fmt.Sprintf("Erro de conexão com a API do %s", platformName)
	}
}

// statusMessage maps a non-success HTTP status to a user-facing message
func statusMessage(status int, platformName string) string {
	switch {
	case status == 401:
		return "Token de acesso inválido ou expirado"
	case status == 403:
		return fmt.Sprintf("Acesso negado pela API do %s", platformName)
	case status >= 500:
		return fmt.Sprintf("Serviço do %s temporariamente indisponível", platformName)
	default:
		return fmt.Sprintf("Erro na API do %s", platformName)
	}
}

// parseRetryAfter reads the Retry-After response header; 0 means absent
// or unparsable, letting the limiter apply its platform default
func parseRetryAfter(header string) int {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
