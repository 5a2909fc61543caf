package http

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/pollgate/internal/core/domain"
)

// Bytes decodes from either a 0x-prefixed hex string or standard base64, and
// encodes as 0x-prefixed hex.
type Bytes []byte

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		decoded, err := hex.DecodeString(s[2:])
		if err != nil {
			return fmt.Errorf("invalid hex: %w", err)
		}
		*b = decoded
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid base64: %w", err)
	}
	*b = decoded
	return nil
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(b))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrDecode),
		errors.Is(err, domain.ErrUnsupportedOperation),
		errors.Is(err, domain.ErrInvalidPollID),
		errors.Is(err, domain.ErrInvalidGatewayKey):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPollNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrVotingEnded),
		errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func uintParam(r *http.Request, name string) (uint64, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}
