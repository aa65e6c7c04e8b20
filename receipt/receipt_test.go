package receipt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testData() Data {
	return Data{
		ReceiptID:     "42",
		UserName:      "Asha Rao",
		UserEmail:     "asha@example.com",
		HackathonName: "CodeStorm",
		Amount:        499900,
		Currency:      "INR",
		PaymentDate:   "15/08/2026",
		PaymentMethod: "CARD",
		Status:        "SUCCESS",
		InvoiceID:     "INV-1755222000000-123",
	}
}

func TestPathIsPureFunctionOfPaymentID(t *testing.T) {
	svc, err := NewService(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, svc.Path(42), svc.Path(42))
	require.Equal(t, "receipt-42.pdf", filepath.Base(svc.Path(42)))
	require.NotEqual(t, svc.Path(42), svc.Path(43))
}

func TestGenerateWritesPDF(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(dir)
	require.NoError(t, err)

	require.False(t, svc.Exists(42))

	path, err := svc.Generate(42, testData())
	require.NoError(t, err)
	require.Equal(t, svc.Path(42), path)
	require.True(t, svc.Exists(42))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	head := make([]byte, 5)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Read(head)
	require.NoError(t, err)
	require.Equal(t, "%PDF-", string(head))
}

func TestGenerateOverwritesInPlace(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(dir)
	require.NoError(t, err)

	first, err := svc.Generate(42, testData())
	require.NoError(t, err)

	second, err := svc.Generate(42, testData())
	require.NoError(t, err)
	require.Equal(t, first, second)

	// one file, no leftover temp artifacts
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "receipt-42.pdf", entries[0].Name())
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{0, "INR", "FREE"},
		{0, "USD", "FREE"},
		{100, "INR", "INR 100"},
		{1000, "INR", "INR 1,000"},
		{100000, "INR", "INR 1,00,000"},
		{499900, "INR", "INR 4,99,900"},
		{1234567, "USD", "USD 12,34,567"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, formatAmount(tc.amount, tc.currency))
	}
}
