package event

// Event kinds double as routing keys on the account events exchange.
const (
	TypeAccountCreated = "account.created"
	TypeAccountUpdated = "account.updated"
)

// Event is a closed set of domain event payloads: AccountCreated and
// AccountUpdated. Each variant carries a fixed serialization mapping.
type Event interface {
	EventType() string
}

// AccountCreated is emitted after a new account has been persisted.
type AccountCreated struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

func (AccountCreated) EventType() string { return TypeAccountCreated }

// AccountUpdated is emitted after an account's display name has changed.
type AccountUpdated struct {
	AccountID int64  `json:"account_id"`
	Name      string `json:"name"`
}

func (AccountUpdated) EventType() string { return TypeAccountUpdated }
