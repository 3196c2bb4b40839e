package service_test

import (
	"context"
	"testing"

	"nexuscore-backend/internal/domain"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/flow/flowtest"
	"nexuscore-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayService_Gateways(t *testing.T) {
	svc := service.NewGatewayService(nil, testLatency, nil)

	gws := svc.Gateways()
	require.Len(t, gws, 3)
	assert.Equal(t, domain.GatewayStripe, gws[0].Kind)
	assert.Equal(t, "Web3 Bridge", gws[1].Title)
	assert.Equal(t, domain.GatewayLocal, gws[2].Kind)
}

func TestGatewayService_Link(t *testing.T) {
	ctx := context.Background()
	ctrl, clock := newController(t)
	signIn(t, ctrl, "sarah.j@nexuscore.io")
	before := len(ctrl.Wallets())
	repo := repoFor(ctrl)
	svc := service.NewGatewayService(repo, testLatency, nil)

	st, err := svc.Open(ctx, testSessionID, domain.GatewayCrypto)
	require.NoError(t, err)
	assert.Equal(t, flow.LinkInit, st.State)
	assert.Equal(t, "Web3 Bridge", st.Gateway.Title)

	st, err = svc.Initiate(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, flow.LinkSecurityCheck, st.State)

	linkState := func(want flow.State) func() bool {
		return func() bool {
			st, err := svc.Status(ctx, testSessionID)
			return err == nil && st.State == want
		}
	}

	flowtest.Step(t, clock, 1, testLatency.GatewaySecurity)
	flowtest.Eventually(t, linkState(flow.LinkHandshake), "security check done")

	flowtest.Step(t, clock, 1, testLatency.GatewayHandshake)
	flowtest.Eventually(t, linkState(flow.LinkSuccess), "handshake done")
	assert.Len(t, ctrl.Wallets(), before)

	flowtest.Step(t, clock, 1, testLatency.GatewayConfirm)
	flowtest.Eventually(t, func() bool { return len(ctrl.Wallets()) == before+1 }, "wallet linked")
	flowtest.Eventually(t, linkState(flow.LinkCompleted), "link completed")

	wallets := ctrl.Wallets()
	require.Len(t, wallets, before+1)
	assert.Equal(t, "user-2", wallets[len(wallets)-1].OwnerID)
	assert.Equal(t, domain.CurrencyUSDT, wallets[len(wallets)-1].Currency)
	repo.AssertExpectations(t)
}

func TestGatewayService_Errors(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newController(t)
	svc := service.NewGatewayService(repoFor(ctrl), testLatency, nil)

	_, err := svc.Open(ctx, testSessionID, domain.GatewayStripe)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	_, err = svc.Initiate(ctx, testSessionID)
	assert.ErrorIs(t, err, domain.ErrNoActiveFlow)

	signIn(t, ctrl, "sarah.j@nexuscore.io")
	_, err = svc.Open(ctx, testSessionID, "PAYPAL")
	assert.ErrorIs(t, err, flow.ErrUnknownGateway)

	_, err = svc.Open(ctx, testSessionID, domain.GatewayLocal)
	require.NoError(t, err)
	st, err := svc.Cancel(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, flow.LinkCancelled, st.State)

	_, err = svc.Open(ctx, testSessionID, domain.GatewayStripe)
	require.NoError(t, err)
	_, err = svc.Initiate(ctx, testSessionID)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, testSessionID)
	assert.ErrorIs(t, err, flow.ErrNotCancellable)
}
