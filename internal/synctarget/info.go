// Package synctarget implements the Sync Target Check: before running any
// sync phase, the engine verifies the remote describes a sync target this
// core actually supports, and bootstraps info.json on a pristine remote.
package synctarget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
)

// supportedVersion is the only info.json schema version this core
// understands.
const supportedVersion = 3

// infoPath is the well-known remote object this core reads before touching
// anything else.
const infoPath = "info.json"

// ErrNotSupported means the remote's sync target descriptor describes a
// configuration this core refuses to operate against — most commonly
// end-to-end encryption, since this core never had a master key to decrypt
// with.
var ErrNotSupported = errors.New("synctarget: remote sync target is not supported by this core")

// Value wraps a field with the time (UpdatedTime, epoch milliseconds) it was
// last set at, mirroring the original sync target info's per-field
// timestamps.
type Value[T any] struct {
	Value   T   `json:"value"`
	UpdatedTime int64 `json:"updatedTime"`
}

// MasterKey is an E2EE master key descriptor. This core never populates
// one but must round-trip any it reads back out unchanged.
type MasterKey struct {
	ID                 string `json:"id"`
	CreatedTime        int64  `json:"createdTime"`
	UpdatedTime        int64  `json:"updatedTime"`
	Source             string `json:"source"`
	Checksum           string `json:"checksum"`
	EncryptionMethod   int    `json:"encryptionMethod"`
	Content            string `json:"content"`
	HasBeenUsed        bool   `json:"hasBeenUsed"`
}

// PublicPrivateKeyPair is an E2EE share key pair descriptor.
type PublicPrivateKeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// Info is the info.json sync target descriptor.
type Info struct {
	Version           int               `json:"version"`
	E2EE              Value[bool]       `json:"e2ee"`
	ActiveMasterKeyID Value[string]     `json:"activeMasterKeyId"`
	MasterKeys        []MasterKey       `json:"masterKeys"`
	PPK               *Value[*PublicPrivateKeyPair] `json:"ppk"`
}

// NewSupportedInfo returns the descriptor this core writes on a pristine
// remote: version 3, e2ee off, no active master key, no ppk.
func NewSupportedInfo() Info {
	return Info{
		Version:           supportedVersion,
		E2EE:              Value[bool]{Value: false},
		ActiveMasterKeyID: Value[string]{Value: ""},
		MasterKeys:        nil,
		PPK:               nil,
	}
}

// Supported reports whether this core can operate against the described
// target: version 3, e2ee disabled, no active master key, no ppk.
func (i Info) Supported() bool {
	return i.Version == supportedVersion &&
		!i.E2EE.Value &&
		i.ActiveMasterKeyID.Value == "" &&
		(i.PPK == nil || i.PPK.Value == nil)
}

// Verify reads info.json from drv. If it does not exist, a fresh supported
// descriptor is written and returned. If it exists but describes an
// unsupported configuration, ErrNotSupported is returned.
func Verify(ctx context.Context, drv filedriver.Driver) (Info, error) {
	text, err := drv.GetText(ctx, infoPath)
	if errors.Is(err, filedriver.ErrNotExist) {
		info := NewSupportedInfo()

		if writeErr := write(ctx, drv, info); writeErr != nil {
			return Info{}, writeErr
		}

		return info, nil
	}

	if err != nil {
		return Info{}, fmt.Errorf("synctarget: reading info.json: %w", err)
	}

	var info Info
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		return Info{}, fmt.Errorf("synctarget: parsing info.json: %w", err)
	}

	if !info.Supported() {
		return info, ErrNotSupported
	}

	return info, nil
}

func write(ctx context.Context, drv filedriver.Driver, info Info) error {
	b, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("synctarget: encoding info.json: %w", err)
	}

	if err := drv.PutText(ctx, infoPath, string(b)); err != nil {
		return fmt.Errorf("synctarget: writing info.json: %w", err)
	}

	return nil
}
