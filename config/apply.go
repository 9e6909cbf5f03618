package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/nonceforge/nonce"
	"github.com/nonceforge/nonce/cipher"
)

// cipherKinds maps a config file's cipher name to a cipher.Kind.
var cipherKinds = map[string]cipher.Kind{
	"":          cipher.None,
	"none":      cipher.None,
	"blowfish":  cipher.Blowfish,
	"tripledes": cipher.TripleDES,
	"3des":      cipher.TripleDES,
	"aes":       cipher.AES,
	"speck":     cipher.Speck,
}

// InitAll calls nonce.Init for every factory described in cfg, in
// file order. It stops and returns the first error encountered.
func InitAll(cfg Config) error {
	for _, f := range cfg.Factories {
		opts, err := factoryOptions(f)
		if err != nil {
			return fmt.Errorf("nonce/config: factory %q: %w", f.Name, err)
		}
		if err := nonce.Init(opts...); err != nil {
			return fmt.Errorf("nonce/config: init %q: %w", f.Name, err)
		}
	}
	return nil
}

func factoryOptions(f Factory) ([]nonce.Option, error) {
	opts := []nonce.Option{
		nonce.WithName(f.Name),
		nonce.WithMachineID(f.MachineID),
		nonce.WithSpeck(f.SpeckEnabled),
	}

	if f.EpochRFC3339 != "" {
		t, err := time.Parse(time.RFC3339, f.EpochRFC3339)
		if err != nil {
			return nil, fmt.Errorf("invalid epoch %q: %w", f.EpochRFC3339, err)
		}
		opts = append(opts, nonce.WithEpoch(t))
	}

	if f.BaseKeyHex != "" {
		key, err := hex.DecodeString(f.BaseKeyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid baseKeyHex: %w", err)
		}
		opts = append(opts, nonce.WithBaseKey(key))
	}

	c64, err := cipherKind(f.Cipher64)
	if err != nil {
		return nil, err
	}
	c96, err := cipherKind(f.Cipher96)
	if err != nil {
		return nil, err
	}
	c128, err := cipherKind(f.Cipher128)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		nonce.WithCipher64(c64),
		nonce.WithCipher96(c96),
		nonce.WithCipher128(c128),
	)

	if f.PBKDF2Iterations != 0 {
		opts = append(opts, nonce.WithPBKDF2Iterations(f.PBKDF2Iterations))
	}

	return opts, nil
}

func cipherKind(name string) (cipher.Kind, error) {
	k, ok := cipherKinds[name]
	if !ok {
		return cipher.None, fmt.Errorf("unknown cipher %q", name)
	}
	return k, nil
}
