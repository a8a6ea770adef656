package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidDate    ErrCode = "INVALID_DATE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrUnknownPackage   ErrCode = "UNKNOWN_PACKAGE"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Ledger-specific ───────────────────────────────────────────────
	ErrStudentNotFound ErrCode = "STUDENT_NOT_FOUND"

	// ─── Biometric ─────────────────────────────────────────────────────
	ErrScannerOffline   ErrCode = "SCANNER_OFFLINE"
	ErrFingerprintNoHit ErrCode = "FINGERPRINT_NOT_RECOGNIZED"
	ErrAlreadyEnrolled  ErrCode = "ALREADY_ENROLLED"

	// ─── Notification ──────────────────────────────────────────────────
	ErrNotificationFailed ErrCode = "NOTIFICATION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidDate:
		return "Unrecognized date. Use YYYY-MM-DD."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrUnknownPackage:
		return "Unknown class package."
	case ErrConflict:
		return "Resource already exists."
	case ErrDependencyExists:
		return "Record cannot be deleted because other data still references it."

	// ─── Ledger-specific ───────────────────────────────────────────────
	case ErrStudentNotFound:
		return "Student not found."

	// ─── Biometric ─────────────────────────────────────────────────────
	case ErrScannerOffline:
		return "Fingerprint scanner is not connected."
	case ErrFingerprintNoHit:
		return "Fingerprint not recognized."
	case ErrAlreadyEnrolled:
		return "A fingerprint is already enrolled for this student."

	// ─── Notification ──────────────────────────────────────────────────
	case ErrNotificationFailed:
		return "The ledger update succeeded but the notification could not be sent."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
