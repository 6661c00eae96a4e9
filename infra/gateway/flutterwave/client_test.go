package flutterwave

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nokolie/kudiwallet/config"
	"github.com/nokolie/kudiwallet/pkg/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEncryptionKey = "FLWSECK_TEST0123456789ab"

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(config.GatewayConfig{
		BaseURL:       srv.URL,
		SecretKey:     "FLWSECK_TEST-secret",
		EncryptionKey: testEncryptionKey,
		HTTPTimeout:   5 * time.Second,
		VerifyRetries: 2,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return c, srv
}

func TestChargeCardSendsEncryptedPayload(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(gateway.ChargeResponse{
			Status:  gateway.StatusSuccess,
			Message: "Charge initiated",
			Data:    gateway.ChargeData{ID: 42, TxRef: "CCREF_deadbeef"},
			Meta: gateway.ChargeMeta{
				Authorization: gateway.MetaAuthorization{Mode: gateway.AuthModePin},
			},
		})
	}))

	res, err := c.ChargeCard(context.Background(), gateway.CardChargeRequest{
		Amount:     "500",
		CardNumber: "4556052704172643",
		TxRef:      "CCREF_deadbeef",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer FLWSECK_TEST-secret", gotAuth)
	assert.Equal(t, int64(42), res.Data.ID)
	assert.Equal(t, gateway.AuthModePin, res.Meta.Authorization.Mode)

	// The card payload travels only as ciphertext.
	require.Contains(t, gotBody, "client")
	assert.NotContains(t, gotBody["client"], "4556052704172643")
}

func TestGatewayErrorMapped(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"Invalid card number"}`))
	}))

	_, err := c.ChargeCard(context.Background(), gateway.CardChargeRequest{Amount: "500"})
	require.Error(t, err)
	gwErr, ok := err.(*gateway.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Equal(t, "Invalid card number", gwErr.Message)
}

func TestVerifyTransactionRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(gateway.VerifyResponse{
			Status: gateway.StatusSuccess,
			Data:   gateway.VerifyData{ID: 77, Status: "successful"},
		})
	}))

	res, err := c.VerifyTransaction(context.Background(), 77)
	require.NoError(t, err)
	assert.Equal(t, int64(77), res.Data.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestVerifyTransactionDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","message":"No transaction was found for this id"}`))
	}))

	_, err := c.VerifyTransaction(context.Background(), 77)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeleteBeneficiary(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/beneficiaries/314", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success","message":"Beneficiary deleted"}`))
	}))
	require.NoError(t, c.DeleteBeneficiary(context.Background(), 314))
}

func TestDeleteBeneficiaryRejectedStatus(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","message":"Beneficiary not found"}`))
	}))
	err := c.DeleteBeneficiary(context.Background(), 314)
	require.Error(t, err)
}

func TestInitiateTransferPath(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfers", r.URL.Path)
		var req gateway.TransferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(gateway.TransferResponse{
			Status: gateway.StatusSuccess,
			Data: gateway.TransferData{
				ID:        9001,
				Reference: req.Reference,
				Status:    "NEW",
			},
		})
	}))

	res, err := c.InitiateTransfer(context.Background(), gateway.TransferRequest{
		Amount:    "400",
		Reference: "BWREF_cafebabe",
	})
	require.NoError(t, err)
	assert.Equal(t, "BWREF_cafebabe", res.Data.Reference)
}

func TestEncrypt3DES(t *testing.T) {
	out, err := encrypt3DES(testEncryptionKey, []byte(`{"card_number":"4556052704172643"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotContains(t, out, "4556052704172643")

	// Same input encrypts to the same ciphertext (ECB, no IV).
	again, err := encrypt3DES(testEncryptionKey, []byte(`{"card_number":"4556052704172643"}`))
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = encrypt3DES("short-key", []byte("x"))
	assert.Error(t, err)
}
