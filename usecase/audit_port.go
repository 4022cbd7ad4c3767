package usecase

// AuditTrail abstracts the audit recorder so use cases stay
// storage-agnostic. Implementations must not block and must swallow
// their own failures; recording never influences a request's outcome.
type AuditTrail interface {
	Record(action, userID, target, detail string)
}
