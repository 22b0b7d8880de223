package database

import (
	"encoding/hex"
	"encoding/json"
)

// MarshalJSON renders an Address the same way Address.String does, so
// wire JSON and persisted account keys use one textual form.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON parses an Address written by MarshalJSON.
func (a *Address) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// signatureWire is the JSON wire form of a Signature: hex-encoded bytes,
// empty for Unsigned.
type signatureWire struct {
	Signed bool   `json:"signed"`
	Bytes  string `json:"bytes,omitempty"`
}

// MarshalJSON renders a Signature as hex bytes plus a signed flag.
func (s Signature) MarshalJSON() ([]byte, error) {
	w := signatureWire{Signed: s.Kind == SignatureSigned}
	if w.Signed {
		w.Bytes = hex.EncodeToString(s.Bytes)
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses a Signature written by MarshalJSON.
func (s *Signature) UnmarshalJSON(b []byte) error {
	var w signatureWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if !w.Signed {
		*s = Unsigned
		return nil
	}
	raw, err := hex.DecodeString(w.Bytes)
	if err != nil {
		return err
	}
	*s = NewSignature(raw)
	return nil
}

// transactionDataWire is the JSON wire form of a TransactionData.
type transactionDataWire struct {
	Kind   TxKind  `json:"kind"`
	Dst    Address `json:"dst,omitempty"`
	Amount Money   `json:"amount,omitempty"`
	Raw    string  `json:"raw,omitempty"`
}

// MarshalJSON renders TransactionData, exposing Dst/Amount for
// RegularSend and hex-encoded Raw otherwise.
func (d TransactionData) MarshalJSON() ([]byte, error) {
	w := transactionDataWire{Kind: d.Kind}
	if d.Kind == TxRegularSend {
		w.Dst = d.Dst
		w.Amount = d.Amount
	} else {
		w.Raw = hex.EncodeToString(d.Raw)
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses TransactionData written by MarshalJSON.
func (d *TransactionData) UnmarshalJSON(b []byte) error {
	var w transactionDataWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Kind == TxRegularSend {
		*d = RegularSend(w.Dst, w.Amount)
		return nil
	}
	raw, err := hex.DecodeString(w.Raw)
	if err != nil {
		return err
	}
	*d = TransactionData{Kind: w.Kind, Raw: raw}
	return nil
}
