package beneficiary_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/nokolie/kudiwallet/pkg/domain"
	"github.com/nokolie/kudiwallet/pkg/gateway"
	"github.com/nokolie/kudiwallet/pkg/service/beneficiary"
	"github.com/nokolie/kudiwallet/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(uow *testutils.MemoryUoW, gw *testutils.FakeGateway) *beneficiary.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return beneficiary.New(uow, gw, logger)
}

func TestCreatePersistsGatewayIdentity(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	gw := &testutils.FakeGateway{
		CreateBeneficiaryFunc: func(ctx context.Context, req gateway.BeneficiaryRequest) (*gateway.BeneficiaryResponse, error) {
			return &gateway.BeneficiaryResponse{
				Status: gateway.StatusSuccess,
				Data: gateway.BeneficiaryData{
					ID:            314,
					AccountNumber: req.AccountNumber,
					BankCode:      req.AccountBank,
					BankName:      "Test Bank",
					FullName:      req.BeneficiaryName,
				},
			}, nil
		},
	}
	svc := newService(uow, gw)
	userID := uuid.New()

	b, err := svc.Create(context.Background(), userID, beneficiary.CreateInput{
		AccountNumber:   "0123456789",
		BankCode:        "058",
		BeneficiaryName: "Ada Obi",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(314), b.ID)
	assert.Equal(t, "NGN", b.Currency)
	assert.Equal(t, userID, b.UserID)

	stored := uow.Beneficiaries[314]
	require.NotNil(t, stored)
	assert.Equal(t, "Ada Obi", stored.BeneficiaryName)
}

func TestCreateGatewayFailureDoesNotPersist(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	gw := &testutils.FakeGateway{
		CreateBeneficiaryFunc: func(ctx context.Context, req gateway.BeneficiaryRequest) (*gateway.BeneficiaryResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newService(uow, gw)

	_, err := svc.Create(context.Background(), uuid.New(), beneficiary.CreateInput{
		AccountNumber:   "0123456789",
		BankCode:        "058",
		BeneficiaryName: "Ada Obi",
	})
	require.ErrorIs(t, err, domain.ErrGateway)
	assert.Empty(t, uow.Beneficiaries)
}

func TestDeleteGatewayFailureKeepsLocalRecord(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	userID := uuid.New()
	benRepo, _ := uow.BeneficiaryRepository()
	require.NoError(t, benRepo.Create(context.Background(), &domain.Beneficiary{
		ID:     314,
		UserID: userID,
	}))

	gw := &testutils.FakeGateway{
		DeleteBeneficiaryFunc: func(ctx context.Context, id int64) error {
			return errors.New("upstream unavailable")
		},
	}
	svc := newService(uow, gw)

	err := svc.Delete(context.Background(), userID, 314)
	require.ErrorIs(t, err, domain.ErrGateway)
	assert.NotNil(t, uow.Beneficiaries[314], "local record must survive a gateway delete failure")
}

func TestDeleteRemovesLocalAfterGatewaySuccess(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	userID := uuid.New()
	benRepo, _ := uow.BeneficiaryRepository()
	require.NoError(t, benRepo.Create(context.Background(), &domain.Beneficiary{
		ID:     314,
		UserID: userID,
	}))

	gw := &testutils.FakeGateway{
		DeleteBeneficiaryFunc: func(ctx context.Context, id int64) error { return nil },
	}
	svc := newService(uow, gw)

	require.NoError(t, svc.Delete(context.Background(), userID, 314))
	assert.Empty(t, uow.Beneficiaries)
	assert.Equal(t, 1, gw.DeleteBeneficiaryCalls)
}

func TestDeleteScopedToOwner(t *testing.T) {
	uow := testutils.NewMemoryUoW()
	owner := uuid.New()
	benRepo, _ := uow.BeneficiaryRepository()
	require.NoError(t, benRepo.Create(context.Background(), &domain.Beneficiary{
		ID:     314,
		UserID: owner,
	}))

	gw := &testutils.FakeGateway{}
	svc := newService(uow, gw)

	err := svc.Delete(context.Background(), uuid.New(), 314)
	require.ErrorIs(t, err, domain.ErrBeneficiaryNotFound)
	assert.Zero(t, gw.DeleteBeneficiaryCalls)
	assert.NotNil(t, uow.Beneficiaries[314])
}
