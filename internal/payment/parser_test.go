package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcknowledgment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ack, err := ParseAcknowledgment([]byte(
			`<TransactionRequest><Result>True</Result><URI>https://pay/x</URI></TransactionRequest>`,
		))
		require.NoError(t, err)
		assert.True(t, ack.Success)
		require.NotNil(t, ack.RedirectURI)
		assert.Equal(t, "https://pay/x", *ack.RedirectURI)
		assert.Nil(t, ack.Error)
	})

	t.Run("Failure", func(t *testing.T) {
		ack, err := ParseAcknowledgment([]byte(
			`<TransactionRequest><Result>False</Result><Error>Invalid CustomerID</Error></TransactionRequest>`,
		))
		require.NoError(t, err)
		assert.False(t, ack.Success)
		assert.Nil(t, ack.RedirectURI)
		require.NotNil(t, ack.Error)
		assert.Equal(t, "Invalid CustomerID", *ack.Error)
	})

	t.Run("With declaration and whitespace", func(t *testing.T) {
		body := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<TransactionRequest>\n  <Result>true</Result>\n  <URI>https://pay/y</URI>\n</TransactionRequest>"
		ack, err := ParseAcknowledgment([]byte(body))
		require.NoError(t, err)
		assert.True(t, ack.Success)
		assert.Equal(t, "https://pay/y", *ack.RedirectURI)
	})

	t.Run("Unknown root is empty", func(t *testing.T) {
		ack, err := ParseAcknowledgment([]byte(`<Foo><Result>True</Result></Foo>`))
		require.NoError(t, err)
		assert.False(t, ack.Success)
		assert.Nil(t, ack.RedirectURI)
		assert.Nil(t, ack.Error)
	})

	t.Run("Empty elements stay unset", func(t *testing.T) {
		ack, err := ParseAcknowledgment([]byte(
			`<TransactionRequest><Result/><URI></URI><Unknown>x</Unknown></TransactionRequest>`,
		))
		require.NoError(t, err)
		assert.False(t, ack.Success)
		assert.Nil(t, ack.RedirectURI)
	})

	t.Run("Invalid boolean", func(t *testing.T) {
		_, err := ParseAcknowledgment([]byte(`<TransactionRequest><Result>yes</Result></TransactionRequest>`))
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("Syntax error", func(t *testing.T) {
		_, err := ParseAcknowledgment([]byte(`<TransactionRequest><Result>True</Result>`))
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestParseTransactionOutcome(t *testing.T) {
	t.Run("Full response", func(t *testing.T) {
		body := `<TransactionResponse>
			<AuthCode>123456</AuthCode>
			<ResponseCode>00</ResponseCode>
			<ReturnAmount>10.05</ReturnAmount>
			<TrxnStatus>True</TrxnStatus>
			<TrxnNumber>9876</TrxnNumber>
			<MerchantOption1>1001</MerchantOption1>
			<MerchantOption2>b</MerchantOption2>
			<MerchantOption3>c</MerchantOption3>
			<MerchantInvoice>inv-1001</MerchantInvoice>
			<MerchantReference>ref-1001</MerchantReference>
			<TrxnResponseMessage>Transaction Approved</TrxnResponseMessage>
		</TransactionResponse>`

		out, err := ParseTransactionOutcome([]byte(body))
		require.NoError(t, err)

		assert.Equal(t, "123456", *out.AuthCode)
		assert.Equal(t, "00", *out.ResponseCode)
		assert.Equal(t, "10.05", *out.ReturnAmount)
		assert.Equal(t, "True", *out.TransactionStatus)
		assert.Equal(t, "9876", *out.TransactionNumber)
		assert.Equal(t, "1001", *out.MerchantOption1)
		assert.Equal(t, "b", *out.MerchantOption2)
		assert.Equal(t, "c", *out.MerchantOption3)
		assert.Equal(t, "inv-1001", *out.ReferenceInvoice)
		assert.Equal(t, "ref-1001", *out.ReferenceNumber)
		assert.Equal(t, "Transaction Approved", *out.ResponseMessage)
		assert.Nil(t, out.ErrorMessage)
		assert.True(t, out.Succeeded())

		id, err := out.CorrelationID()
		require.NoError(t, err)
		assert.Equal(t, uint(1001), id)
	})

	t.Run("CDATA status", func(t *testing.T) {
		out, err := ParseTransactionOutcome([]byte(
			`<TransactionResponse><TrxnStatus><![CDATA[true]]></TrxnStatus><MerchantOption1><![CDATA[42]]></MerchantOption1></TransactionResponse>`,
		))
		require.NoError(t, err)

		require.NotNil(t, out.TransactionStatus)
		assert.Equal(t, "true", *out.TransactionStatus)
		assert.True(t, out.Succeeded())

		id, err := out.CorrelationID()
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
	})

	t.Run("Declined", func(t *testing.T) {
		out, err := ParseTransactionOutcome([]byte(
			`<TransactionResponse><TrxnStatus>false</TrxnStatus><MerchantOption1>5</MerchantOption1></TransactionResponse>`,
		))
		require.NoError(t, err)
		assert.False(t, out.Succeeded())
	})

	t.Run("Request shape carries error only", func(t *testing.T) {
		out, err := ParseTransactionOutcome([]byte(
			`<TransactionRequest><Result>False</Result><Error>Bad code</Error></TransactionRequest>`,
		))
		require.NoError(t, err)
		require.NotNil(t, out.ErrorMessage)
		assert.Equal(t, "Bad code", *out.ErrorMessage)
		assert.Nil(t, out.TransactionStatus)
		assert.False(t, out.Succeeded())
	})

	t.Run("Unknown root is empty", func(t *testing.T) {
		out, err := ParseTransactionOutcome([]byte(`<Foo><TrxnStatus>True</TrxnStatus></Foo>`))
		require.NoError(t, err)
		assert.Equal(t, &TransactionOutcome{}, out)
		assert.False(t, out.Succeeded())
	})

	t.Run("Syntax error", func(t *testing.T) {
		_, err := ParseTransactionOutcome([]byte(`<TransactionResponse><TrxnStatus>True`))
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestTransactionOutcome_Succeeded(t *testing.T) {
	s := func(v string) *string { return &v }

	tests := []struct {
		name    string
		outcome *TransactionOutcome
		want    bool
	}{
		{"Nil outcome", nil, false},
		{"True lower case", &TransactionOutcome{TransactionStatus: s("true")}, true},
		{"True mixed case", &TransactionOutcome{TransactionStatus: s("TrUe")}, true},
		{"False", &TransactionOutcome{TransactionStatus: s("False")}, false},
		{"Missing status", &TransactionOutcome{}, false},
		{"Empty status", &TransactionOutcome{TransactionStatus: s("")}, false},
		{"Error wins", &TransactionOutcome{TransactionStatus: s("True"), ErrorMessage: s("boom")}, false},
		{"Empty error ignored", &TransactionOutcome{TransactionStatus: s("True"), ErrorMessage: s("")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Succeeded())
		})
	}
}

func TestTransactionOutcome_CorrelationID(t *testing.T) {
	s := func(v string) *string { return &v }

	_, err := (&TransactionOutcome{}).CorrelationID()
	assert.Error(t, err)

	_, err = (&TransactionOutcome{MerchantOption1: s("abc")}).CorrelationID()
	assert.Error(t, err)

	id, err := (&TransactionOutcome{MerchantOption1: s(" 17 ")}).CorrelationID()
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)
}
