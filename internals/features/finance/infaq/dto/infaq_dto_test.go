package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tpqku_backend/internals/features/finance/infaq/model"
)

func TestCreateInfaqRequest_ToModel(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	desc := " infaq Jumat "
	in := CreateInfaqRequest{
		InfaqDate:        "2024-06-07",
		InfaqType:        "masuk",
		InfaqAmount:      50000,
		InfaqDescription: &desc,
	}

	m, err := in.ToModel(jakarta)
	require.NoError(t, err)

	assert.Equal(t, model.InfaqMasuk, m.InfaqType)
	assert.Equal(t, int64(50000), m.InfaqAmount)
	assert.Equal(t, "2024-06-07", m.InfaqDate.Format("2006-01-02"))
	require.NotNil(t, m.InfaqDescription)
	assert.Equal(t, "infaq Jumat", *m.InfaqDescription)

	// entri manual langsung lunas
	assert.Equal(t, model.InfaqPaid, m.InfaqStatus)
	require.NotNil(t, m.InfaqPaidAt)

	in.InfaqDate = "07-06-2024"
	_, err = in.ToModel(jakarta)
	assert.Error(t, err)
}
