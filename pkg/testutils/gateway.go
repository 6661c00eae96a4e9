package testutils

import (
	"context"
	"errors"

	"github.com/nokolie/kudiwallet/pkg/gateway"
)

// FakeGateway is a gateway.Client whose behavior is overridden per test via
// function fields. Unset methods fail, so a test that reaches an endpoint it
// did not stub is visible immediately. Call counters track invocations.
type FakeGateway struct {
	ChargeCardFunc         func(ctx context.Context, req gateway.CardChargeRequest) (*gateway.ChargeResponse, error)
	ValidateChargeFunc     func(ctx context.Context, otp, flwRef string) (*gateway.ChargeResponse, error)
	ChargeBankTransferFunc func(ctx context.Context, req gateway.BankTransferRequest) (*gateway.BankTransferResponse, error)
	VerifyTransactionFunc  func(ctx context.Context, id int64) (*gateway.VerifyResponse, error)
	CreateBeneficiaryFunc  func(ctx context.Context, req gateway.BeneficiaryRequest) (*gateway.BeneficiaryResponse, error)
	DeleteBeneficiaryFunc  func(ctx context.Context, id int64) error
	InitiateTransferFunc   func(ctx context.Context, req gateway.TransferRequest) (*gateway.TransferResponse, error)
	GetTransferFunc        func(ctx context.Context, id int64) (*gateway.TransferResponse, error)

	ChargeCardCalls        int
	InitiateTransferCalls  int
	DeleteBeneficiaryCalls int
	VerifyCalls            int
}

var errNotStubbed = errors.New("gateway method not stubbed")

func (f *FakeGateway) ChargeCard(ctx context.Context, req gateway.CardChargeRequest) (*gateway.ChargeResponse, error) {
	f.ChargeCardCalls++
	if f.ChargeCardFunc == nil {
		return nil, errNotStubbed
	}
	return f.ChargeCardFunc(ctx, req)
}

func (f *FakeGateway) ValidateCharge(ctx context.Context, otp, flwRef string) (*gateway.ChargeResponse, error) {
	if f.ValidateChargeFunc == nil {
		return nil, errNotStubbed
	}
	return f.ValidateChargeFunc(ctx, otp, flwRef)
}

func (f *FakeGateway) ChargeBankTransfer(ctx context.Context, req gateway.BankTransferRequest) (*gateway.BankTransferResponse, error) {
	if f.ChargeBankTransferFunc == nil {
		return nil, errNotStubbed
	}
	return f.ChargeBankTransferFunc(ctx, req)
}

func (f *FakeGateway) VerifyTransaction(ctx context.Context, id int64) (*gateway.VerifyResponse, error) {
	f.VerifyCalls++
	if f.VerifyTransactionFunc == nil {
		return nil, errNotStubbed
	}
	return f.VerifyTransactionFunc(ctx, id)
}

func (f *FakeGateway) CreateBeneficiary(ctx context.Context, req gateway.BeneficiaryRequest) (*gateway.BeneficiaryResponse, error) {
	if f.CreateBeneficiaryFunc == nil {
		return nil, errNotStubbed
	}
	return f.CreateBeneficiaryFunc(ctx, req)
}

func (f *FakeGateway) DeleteBeneficiary(ctx context.Context, id int64) error {
	f.DeleteBeneficiaryCalls++
	if f.DeleteBeneficiaryFunc == nil {
		return errNotStubbed
	}
	return f.DeleteBeneficiaryFunc(ctx, id)
}

func (f *FakeGateway) InitiateTransfer(ctx context.Context, req gateway.TransferRequest) (*gateway.TransferResponse, error) {
	f.InitiateTransferCalls++
	if f.InitiateTransferFunc == nil {
		return nil, errNotStubbed
	}
	return f.InitiateTransferFunc(ctx, req)
}

func (f *FakeGateway) GetTransfer(ctx context.Context, id int64) (*gateway.TransferResponse, error) {
	if f.GetTransferFunc == nil {
		return nil, errNotStubbed
	}
	return f.GetTransferFunc(ctx, id)
}
