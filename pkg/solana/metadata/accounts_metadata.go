package metadata

import (
	"crypto/ed25519"
	"strings"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"
)

// Key is the account type tag at the start of every metadata program account.
type Key uint8

const (
	KeyUninitialized Key = 0
	KeyMetadataV1    Key = 4
)

// Fixed widths the program pads string fields to with NUL bytes.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxUriLength    = 200
)

type Creator struct {
	Address  ed25519.PublicKey
	Verified bool
	Share    uint8
}

// MetadataAccount is the prefix of a Metaplex metadata account. Fields that
// follow IsMutable (editions, collections, uses) are not decoded.
type MetadataAccount struct {
	Key                  Key
	UpdateAuthority      ed25519.PublicKey
	Mint                 ed25519.PublicKey
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             []Creator
	PrimarySaleHappened  bool
	IsMutable            bool
}

type rawCreator struct {
	Address  [32]byte
	Verified bool
	Share    uint8
}

type rawMetadataAccount struct {
	Key                  uint8
	UpdateAuthority      [32]byte
	Mint                 [32]byte
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]rawCreator
	PrimarySaleHappened  bool
	IsMutable            bool
}

func (obj *MetadataAccount) Unmarshal(data []byte) error {
	var raw rawMetadataAccount
	if err := borsh.Deserialize(&raw, data); err != nil {
		return errors.Wrap(ErrInvalidAccountData, err.Error())
	}

	if Key(raw.Key) != KeyMetadataV1 {
		return errors.Wrapf(ErrInvalidAccountData, "unexpected key %d", raw.Key)
	}

	obj.Key = Key(raw.Key)
	obj.UpdateAuthority = ed25519.PublicKey(raw.UpdateAuthority[:])
	obj.Mint = ed25519.PublicKey(raw.Mint[:])
	obj.Name = trimPadding(raw.Name)
	obj.Symbol = trimPadding(raw.Symbol)
	obj.Uri = trimPadding(raw.Uri)
	obj.SellerFeeBasisPoints = raw.SellerFeeBasisPoints
	obj.PrimarySaleHappened = raw.PrimarySaleHappened
	obj.IsMutable = raw.IsMutable

	obj.Creators = nil
	if raw.Creators != nil {
		for _, c := range *raw.Creators {
			obj.Creators = append(obj.Creators, Creator{
				Address:  ed25519.PublicKey(append([]byte{}, c.Address[:]...)),
				Verified: c.Verified,
				Share:    c.Share,
			})
		}
	}

	return nil
}

// Marshal encodes the account with string fields padded the way the program
// stores them.
func (obj *MetadataAccount) Marshal() ([]byte, error) {
	raw := rawMetadataAccount{
		Key:                  uint8(obj.Key),
		Name:                 pad(obj.Name, MaxNameLength),
		Symbol:               pad(obj.Symbol, MaxSymbolLength),
		Uri:                  pad(obj.Uri, MaxUriLength),
		SellerFeeBasisPoints: obj.SellerFeeBasisPoints,
		PrimarySaleHappened:  obj.PrimarySaleHappened,
		IsMutable:            obj.IsMutable,
	}
	copy(raw.UpdateAuthority[:], obj.UpdateAuthority)
	copy(raw.Mint[:], obj.Mint)

	if len(obj.Creators) > 0 {
		creators := make([]rawCreator, len(obj.Creators))
		for i, c := range obj.Creators {
			copy(creators[i].Address[:], c.Address)
			creators[i].Verified = c.Verified
			creators[i].Share = c.Share
		}
		raw.Creators = &creators
	}

	return borsh.Serialize(raw)
}

func trimPadding(value string) string {
	return strings.TrimRight(value, "\x00")
}

func pad(value string, length int) string {
	if len(value) >= length {
		return value
	}
	return value + strings.Repeat("\x00", length-len(value))
}
