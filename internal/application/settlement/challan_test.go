package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sktraders/tradevat-api/internal/application/apptest"
	"github.com/sktraders/tradevat-api/internal/application/settlement"
	"github.com/sktraders/tradevat-api/internal/domain"
	"github.com/sktraders/tradevat-api/internal/domain/entity"
)

func challanInput(token string) settlement.ChallanInput {
	return settlement.ChallanInput{
		TokenNo:     token,
		Bank:        "Sonali Bank",
		Branch:      "Motijheel",
		Date:        time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC),
		AccountCode: "1/1133/0030/0311",
		Amount:      dec("500"),
		Period:      march,
	}
}

func TestRecordChallan(t *testing.T) {
	store := apptest.NewStore()
	uc := settlement.NewChallanUseCase(store.ChallanRepo())

	ch, err := uc.RecordChallan(context.Background(), challanInput("T-1001"))
	require.NoError(t, err)
	assert.NotEmpty(t, ch.ID)
	assert.Equal(t, "T-1001", ch.TokenNo)

	sum, err := store.ChallanRepo().SumByPeriod(march)
	require.NoError(t, err)
	assert.True(t, sum.Equal(dec("500")))
}

func TestRecordChallan_DuplicateToken(t *testing.T) {
	store := apptest.NewStore()
	uc := settlement.NewChallanUseCase(store.ChallanRepo())

	_, err := uc.RecordChallan(context.Background(), challanInput("T-1001"))
	require.NoError(t, err)
	_, err = uc.RecordChallan(context.Background(), challanInput("T-1001"))
	assert.ErrorIs(t, err, domain.ErrDuplicateReference)
}

func TestRecordChallan_Validation(t *testing.T) {
	store := apptest.NewStore()
	uc := settlement.NewChallanUseCase(store.ChallanRepo())
	ctx := context.Background()

	in := challanInput("T-1")
	in.Bank = ""
	_, err := uc.RecordChallan(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = challanInput("T-2")
	in.Amount = decimal.Zero
	_, err = uc.RecordChallan(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = challanInput("T-3")
	in.Period = entity.Period{Year: 2024, Month: 13}
	_, err = uc.RecordChallan(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListChallansByPeriod(t *testing.T) {
	store := apptest.NewStore()
	uc := settlement.NewChallanUseCase(store.ChallanRepo())
	ctx := context.Background()

	_, err := uc.RecordChallan(ctx, challanInput("T-1"))
	require.NoError(t, err)
	other := challanInput("T-2")
	other.Period = april
	_, err = uc.RecordChallan(ctx, other)
	require.NoError(t, err)

	list, err := uc.ListByPeriod(ctx, march)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "T-1", list[0].TokenNo)
}
