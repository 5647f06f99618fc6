package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshRequest представляет запрос на обновление пары токенов
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserProfile описывает пользователя, как его возвращает сервер.
// Клиент хранит профиль как есть и никогда не меняет его локально.
type UserProfile struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	User         *UserProfile `json:"user,omitempty"`
	AccessToken  string       `json:"access_token"`  // JWT access token
	RefreshToken string       `json:"refresh_token"` // одноразовый refresh token
	ExpiresIn    int64        `json:"expires_in"`    // время жизни access token в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Errors  map[string]string `json:"errors,omitempty"`  // ошибки валидации по полям
	Error   string            `json:"error"`             // описание ошибки
	Message string            `json:"message,omitempty"` // дополнительное сообщение
}

// Роли пользователей
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)
