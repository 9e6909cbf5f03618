package nonce

import (
	"fmt"
	"time"

	"github.com/nonceforge/nonce/cipher"
	"github.com/nonceforge/nonce/logx"
)

// initConfig accumulates Option values before Init validates and
// commits them into a *State.
type initConfig struct {
	name      string
	machineID uint16

	epochMs int64

	baseKey               []byte
	key64, key96, key128  []byte
	cipher64, cipher96, cipher128 cipher.Kind
	pbkdf2Iterations      int
	speckEnabled          bool
}

// Option configures a call to Init.
type Option func(*initConfig)

// WithName sets the factory's registry key. Defaults to
// DefaultFactoryName when omitted.
func WithName(name string) Option {
	return func(c *initConfig) { c.name = name }
}

// WithMachineID sets the 9-bit machine/node identifier embedded in
// every nonce this factory produces. Must be in [0, 511]. Init does not
// detect an omitted WithMachineID; such a factory uses machine ID 0.
func WithMachineID(id uint16) Option {
	return func(c *initConfig) { c.machineID = id }
}

// WithEpoch overrides the default epoch (2025-01-01T00:00:00Z) that
// timestamps are measured from.
func WithEpoch(t time.Time) Option {
	return func(c *initConfig) { c.epochMs = t.UnixMilli() }
}

// WithBaseKey supplies the master key material that per-width cipher
// keys are derived from via PBKDF2. Must be at least 32 bytes (256
// bits).
func WithBaseKey(key []byte) Option {
	return func(c *initConfig) { c.baseKey = key }
}

// WithKey64, WithKey96, WithKey128 override the derived key for a
// given width with exact key material, bypassing PBKDF2 for that slot.
func WithKey64(key []byte) Option  { return func(c *initConfig) { c.key64 = key } }
func WithKey96(key []byte) Option  { return func(c *initConfig) { c.key96 = key } }
func WithKey128(key []byte) Option { return func(c *initConfig) { c.key128 = key } }

// WithCipher64, WithCipher96, WithCipher128 select the block cipher
// used by EncryptedNonce/Encrypt/Decrypt at that width. Defaults are
// Blowfish at 64 and 96 bits and AES at 128 bits; cipher.None leaves a
// width without a cipher.
func WithCipher64(k cipher.Kind) Option  { return func(c *initConfig) { c.cipher64 = k } }
func WithCipher96(k cipher.Kind) Option  { return func(c *initConfig) { c.cipher96 = k } }
func WithCipher128(k cipher.Kind) Option { return func(c *initConfig) { c.cipher128 = k } }

// WithPBKDF2Iterations overrides the PBKDF2 iteration count used to
// derive per-width keys from a base key. Defaults to 50000. Deployments
// upgrading from an older default must pass their original value here
// — changing it changes every derived key.
func WithPBKDF2Iterations(n int) Option {
	return func(c *initConfig) { c.pbkdf2Iterations = n }
}

// WithSpeck enables the Speck cipher family as a selectable Kind for
// WithCipher64/96/128. Off by default.
func WithSpeck(enabled bool) Option {
	return func(c *initConfig) { c.speckEnabled = enabled }
}

// DefaultFactoryName is the registry key Init uses when WithName is
// not supplied.
const DefaultFactoryName = "default"

// Init validates opts and publishes a new named factory into the
// process-global registry. It is safe to call concurrently for
// distinct names; calling it twice for the same name replaces the
// prior factory's state entirely (including its counters).
func Init(opts ...Option) error {
	cfg := &initConfig{
		epochMs:   DefaultEpoch.UnixMilli(),
		cipher64:  cipher.Blowfish,
		cipher96:  cipher.Blowfish,
		cipher128: cipher.AES,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.name == "" {
		cfg.name = DefaultFactoryName
	}
	if cfg.machineID > MaxMachineID {
		return ErrMachineIDOutOfRange
	}

	c64, c96, c128, err := cipher.Build(cipher.KeySpec{
		BaseKey:          cfg.baseKey,
		Key64:            cfg.key64,
		Key96:            cfg.key96,
		Key128:           cfg.key128,
		Cipher64:         cfg.cipher64,
		Cipher96:         cfg.cipher96,
		Cipher128:        cfg.cipher128,
		PBKDF2Iterations: cfg.pbkdf2Iterations,
		SpeckEnabled:     cfg.speckEnabled,
	})
	if err != nil {
		return fmt.Errorf("nonce: Init(%q): %w", cfg.name, err)
	}

	now := time.Now()
	if now.UnixMilli() < cfg.epochMs {
		return fmt.Errorf("nonce: Init(%q): %w: current time precedes epoch", cfg.name, ErrTimestampOverflow)
	}
	initAtMs := uint64(now.UnixMilli() - cfg.epochMs)
	if initAtMs >= 1<<TimestampBits {
		logx.Default().Warn("timestamp already exceeds 42-bit field at init",
			"factory", cfg.name, "init_at_ms", initAtMs)
		return fmt.Errorf("nonce: Init(%q): %w", cfg.name, ErrTimestampOverflow)
	}

	s := &State{
		name:             cfg.name,
		machineID:        cfg.machineID,
		initInstant:      now,
		initAtMs:         initAtMs,
		epochMs:          cfg.epochMs,
		pbkdf2Iterations: cfg.pbkdf2Iterations,
		cipher64:         c64,
		cipher96:         c96,
		cipher128:        c128,
	}
	// First Add(1) on a freshly zeroed atomic.Uint64 yields 1; start the
	// counter one below zero so it yields 0, matching the zero-based
	// counter invariant.
	s.counter.Store(^uint64(0))

	publish(s)
	return nil
}
