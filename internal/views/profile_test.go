package views_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
	"github.com/melodify-live/melodify-client/internal/mocks"
	"github.com/melodify-live/melodify-client/internal/txbuilder"
	"github.com/melodify-live/melodify-client/internal/views"
)

type testProfileMocks struct {
	ctrl   *gomock.Controller
	ledger *mocks.MockLedgerClient
	signer *mocks.MockSigner
	view   *views.ProfileView
}

func setupTestProfile(t *testing.T) *testProfileMocks {
	ctrl := gomock.NewController(t)

	tm := &testProfileMocks{
		ctrl:   ctrl,
		ledger: mocks.NewMockLedgerClient(ctrl),
		signer: mocks.NewMockSigner(ctrl),
	}

	builder := txbuilder.NewBuilder(txbuilder.Config{PackageID: testPackageID})
	tm.view = views.NewProfileView(tm.ledger, builder, tm.signer, pond.NewPool(4), testPackageID)

	return tm
}

func TestProfileView_Load(t *testing.T) {
	tm := setupTestProfile(t)
	defer tm.ctrl.Finish()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	capRecord := ledger.RawRecord{
		ObjectID: "0xcap",
		Fields: map[string]interface{}{
			"track_id":   "0xtrack",
			"listener":   testUser,
			"created_at": strconv.FormatInt(now.UnixMilli(), 10),
			"expires_at": strconv.FormatInt(now.Add(time.Hour).UnixMilli(), 10),
		},
	}
	positionRecord := ledger.RawRecord{
		ObjectID: "0xposition",
		Fields: map[string]interface{}{
			"track_id":        "0xtrack",
			"staker":          testUser,
			"amount":          "1000000",
			"staked_at_epoch": "412",
			"unlock_epoch":    "413",
			"staked_at_ms":    strconv.FormatInt(now.UnixMilli(), 10),
		},
	}

	tm.signer.EXPECT().Address().Return(testUser)
	tm.ledger.
		EXPECT().
		GetOwnedObjects(gomock.Any(), testUser, ledger.TrackType(testPackageID)).
		Return([]ledger.RawRecord{*trackRecord("0xtrack", "a")}, nil)
	tm.ledger.
		EXPECT().
		GetOwnedObjects(gomock.Any(), testUser, ledger.ListenCapType(testPackageID)).
		Return([]ledger.RawRecord{capRecord}, nil)
	tm.ledger.
		EXPECT().
		GetOwnedObjects(gomock.Any(), testUser, ledger.StakePositionType(testPackageID)).
		Return([]ledger.RawRecord{positionRecord}, nil)

	require.NoError(t, tm.view.Load(context.Background()))

	state := tm.view.Snapshot()
	assert.Equal(t, testUser, state.Address)
	require.Len(t, state.Tracks, 1)
	assert.Equal(t, "0xtrack", state.Tracks[0].ID)
	require.Len(t, state.Capabilities, 1)
	assert.Equal(t, "0xcap", state.Capabilities[0].ID)
	require.Len(t, state.Positions, 1)
	assert.Equal(t, "0xposition", state.Positions[0].ID)
}

func TestProfileView_Load_PartialFailure(t *testing.T) {
	tm := setupTestProfile(t)
	defer tm.ctrl.Finish()

	tm.signer.EXPECT().Address().Return(testUser)
	tm.ledger.
		EXPECT().
		GetOwnedObjects(gomock.Any(), testUser, ledger.TrackType(testPackageID)).
		Return([]ledger.RawRecord{*trackRecord("0xtrack", "a")}, nil)
	tm.ledger.
		EXPECT().
		GetOwnedObjects(gomock.Any(), testUser, ledger.ListenCapType(testPackageID)).
		Return(nil, domain.ErrUpstreamUnavailable)
	tm.ledger.
		EXPECT().
		GetOwnedObjects(gomock.Any(), testUser, ledger.StakePositionType(testPackageID)).
		Return(nil, nil)

	// One failed set renders empty, the rest still shows
	require.NoError(t, tm.view.Load(context.Background()))

	state := tm.view.Snapshot()
	require.Len(t, state.Tracks, 1)
	assert.Empty(t, state.Capabilities)
	assert.Empty(t, state.Positions)
}

func TestProfileView_WithdrawRevenue(t *testing.T) {
	tm := setupTestProfile(t)
	defer tm.ctrl.Finish()

	tm.signer.
		EXPECT().
		SignAndSubmit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, desc *txbuilder.TxDescriptor) (*ledger.Receipt, error) {
			assert.Equal(t, testPackageID+"::track::withdraw_revenue", desc.Target)
			return &ledger.Receipt{Digest: "digest-1", Status: "success"}, nil
		})

	assert.NoError(t, tm.view.WithdrawRevenue(context.Background(), "0xtrack", 500_000))
}

func TestProfileView_WithdrawRevenue_InvalidAmount(t *testing.T) {
	tm := setupTestProfile(t)
	defer tm.ctrl.Finish()

	err := tm.view.WithdrawRevenue(context.Background(), "0xtrack", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
