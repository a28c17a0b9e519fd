package appErrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Ресурсы
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Бизнес-логика
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeConflict           ErrorCode = "CONFLICT"
	CodePlanUnavailable    ErrorCode = "PLAN_UNAVAILABLE"
	CodeFileRequired       ErrorCode = "FILE_REQUIRED"
	CodeFileTooLarge       ErrorCode = "FILE_TOO_LARGE"

	// Системные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
