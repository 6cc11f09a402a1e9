package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventTypesMatchRoutingKeys(t *testing.T) {
	req := require.New(t)
	req.Equal("account.created", AccountCreated{}.EventType())
	req.Equal("account.updated", AccountUpdated{}.EventType())
}

func TestPayloadSerialization(t *testing.T) {
	req := require.New(t)

	b, err := json.Marshal(AccountCreated{AccountID: 7, Name: "Ann", Email: "ann@x.com"})
	req.NoError(err)
	req.JSONEq(`{"account_id":7,"name":"Ann","email":"ann@x.com"}`, string(b))

	b, err = json.Marshal(AccountUpdated{AccountID: 7, Name: "Annie"})
	req.NoError(err)
	req.JSONEq(`{"account_id":7,"name":"Annie"}`, string(b))
}
