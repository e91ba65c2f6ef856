package types_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"testing"

	"github.com/blockberries/webclient/types"

	"github.com/stretchr/testify/require"
)

func TestSequenceAfter(t *testing.T) {
	require.Equal(t, "1", types.SequenceAfter(0))
	require.Equal(t, "8", types.SequenceAfter(7))
	require.Equal(t, "18446744073709551616", types.SequenceAfter(math.MaxUint64))
}

func TestSignDoc_Fields(t *testing.T) {
	doc := types.NewSignDoc("nomic-stakenet-3", 41, types.NewMsg("nomic/MsgClaimRewards", nil))

	require.Equal(t, "0", doc.AccountNumber)
	require.Equal(t, "", doc.Memo)
	require.Equal(t, "42", doc.Sequence)
	require.Equal(t, []types.Coin{{Amount: "0", Denom: "unom"}}, doc.Fee.Amount)
	require.Equal(t, "10000", doc.Fee.Gas)
	require.Len(t, doc.Msgs, 1)
}

func TestSignDoc_CanonicalBytes(t *testing.T) {
	msg := types.NewMsg("cosmos-sdk/MsgDelegate", map[string]any{
		"validator_address": "v",
		"delegator_address": "d",
		"amount":            map[string]any{"denom": "unom", "amount": "5"},
	})
	sb, err := types.NewSignDoc("nomic-stakenet-3", 0, msg).SignBytes()
	require.NoError(t, err)

	want := `{"account_number":"0","chain_id":"nomic-stakenet-3",` +
		`"fee":{"amount":[{"amount":"0","denom":"unom"}],"gas":"10000"},"memo":"",` +
		`"msgs":[{"type":"cosmos-sdk/MsgDelegate","value":{"amount":{"amount":"5","denom":"unom"},` +
		`"delegator_address":"d","validator_address":"v"}}],"sequence":"1"}`
	require.Equal(t, want, string(sb))
}

func TestSignDoc_EmptyPayloadIsObject(t *testing.T) {
	sb, err := types.NewSignDoc("c", 0, types.NewMsg("nomic/MsgClaimRewards", nil)).SignBytes()
	require.NoError(t, err)
	require.Contains(t, string(sb), `"value":{}`)
}

func TestSignedTx_Marshal(t *testing.T) {
	doc := types.NewSignDoc("c", 2, types.NewMsg("nomic/MsgClaimRewards", nil))
	sig := types.Signature{
		PubKey:    types.PubKey{Type: types.PubKeySecp256k1Type, Value: []byte{2, 3}},
		Signature: []byte{9, 9},
	}
	data, err := types.NewSignedTx(doc, sig).Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "msg")
	require.Contains(t, decoded, "fee")
	require.Equal(t, "", decoded["memo"])

	sigs := decoded["signatures"].([]any)
	require.Len(t, sigs, 1)
	s := sigs[0].(map[string]any)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte{9, 9}), s["signature"])
}

func TestDepositCommitment(t *testing.T) {
	addr := types.Address{1, 2, 3}
	c := types.AddressCommitment(addr)

	raw := c.Bytes()
	require.Len(t, raw, 1+types.AddressSize)
	require.Equal(t, byte(0x00), raw[0])
	require.Equal(t, addr[:], raw[1:])

	decoded, err := base64.StdEncoding.DecodeString(c.Base64())
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestAddress_Bech32(t *testing.T) {
	addr := types.Address{0xDE, 0xAD, 0xBE, 0xEF}
	s := addr.String()
	require.Regexp(t, `^nomic1`, s)

	got, err := types.ParseAddress(s)
	require.NoError(t, err)
	require.Equal(t, addr, got)

	_, err = types.ParseAddress("cosmos1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnhrmxl")
	require.Error(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	var back types.Address
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, addr, back)
}

func decodeExact(t *testing.T, data []byte) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	require.NoError(t, dec.Decode(&out))
	return out
}

func TestSignDoc_LargeIntegersSignedExactly(t *testing.T) {
	msg := types.NewMsg("nomic/MsgIbcTransferOut", map[string]any{
		"amount":            uint64(9007199254740993),
		"timeout_timestamp": int64(1700000000000000001),
	})
	doc := types.NewSignDoc("c", 0, msg)

	sb, err := doc.SignBytes()
	require.NoError(t, err)
	require.Contains(t, string(sb), `"amount":9007199254740993`)
	require.Contains(t, string(sb), `"timeout_timestamp":1700000000000000001`)

	tx, err := types.NewSignedTx(doc, types.Signature{}).Marshal()
	require.NoError(t, err)

	// The broadcast msg payload is the signed msgs payload.
	signed := decodeExact(t, sb)["msgs"]
	broadcast := decodeExact(t, tx)["msg"]
	require.Equal(t, signed, broadcast)
}
