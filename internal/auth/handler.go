package auth

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/transport"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)
		if err == ErrInvalidCredentials {
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if _, ok := apperrors.IsAppError(err); ok {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)
		switch err {
		case ErrInvalidToken, ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// IdentityMiddleware attaches the authenticated user ID to the request
// context when a valid bearer token is present. Requests without a token
// pass through untouched; nothing is enforced here.
func (h *Handler) IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := h.ExtractTokenFromHeader(r); token != "" {
			if claims, err := h.Service.ValidateAccessToken(token); err == nil {
				ctx := apperrors.ContextWithUserID(r.Context(), strconv.FormatInt(claims.UserID, 10))
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}
