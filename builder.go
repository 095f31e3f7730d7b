package shopflow

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/shopflow/account"
	"github.com/MrEthical07/shopflow/auth"
	"github.com/MrEthical07/shopflow/jwt"
	"github.com/MrEthical07/shopflow/password"
	"github.com/MrEthical07/shopflow/profile"
	"github.com/MrEthical07/shopflow/sample"
	"github.com/MrEthical07/shopflow/share"
	"github.com/MrEthical07/shopflow/store"
	"github.com/MrEthical07/shopflow/user"
)

// Builder collects configuration and collaborators and wires the Engine
// once. Construction is allocation-only; nothing touches Redis until an
// Engine method runs.
type Builder struct {
	cfg      *Config
	rdb      redis.UniversalClient
	accounts Accounts
	users    Users
	samples  Samples
	profiles Profiles
	ids      IDGenerator
	clock    Clock
	built    bool
}

// New starts a Builder with default configuration, the system clock, and
// UUID identifiers.
func New() *Builder {
	return &Builder{
		cfg:   defaultConfig(),
		ids:   share.UUIDGenerator{},
		clock: share.SystemClock{},
	}
}

// WithConfig replaces the configuration. The Builder keeps its own copy.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cloneConfig(&cfg)
	return b
}

// WithRedis supplies the client backing the default repositories.
func (b *Builder) WithRedis(rdb redis.UniversalClient) *Builder {
	b.rdb = rdb
	return b
}

// WithAccounts overrides the account repository.
func (b *Builder) WithAccounts(repo Accounts) *Builder {
	b.accounts = repo
	return b
}

// WithUsers overrides the user repository.
func (b *Builder) WithUsers(repo Users) *Builder {
	b.users = repo
	return b
}

// WithSamples overrides the sample repository.
func (b *Builder) WithSamples(repo Samples) *Builder {
	b.samples = repo
	return b
}

// WithProfiles overrides the profile repository.
func (b *Builder) WithProfiles(repo Profiles) *Builder {
	b.profiles = repo
	return b
}

// WithIDGenerator overrides identifier minting. Test hook, mostly.
func (b *Builder) WithIDGenerator(ids IDGenerator) *Builder {
	b.ids = ids
	return b
}

// WithClock overrides the time source. Test hook, mostly.
func (b *Builder) WithClock(clock Clock) *Builder {
	b.clock = clock
	return b
}

// Build validates everything and wires the workflows. A Builder builds at
// most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{
		MemoryKB:    b.cfg.Password.MemoryKB,
		Time:        b.cfg.Password.Time,
		Parallelism: b.cfg.Password.Parallelism,
		SaltLength:  b.cfg.Password.SaltLength,
		KeyLength:   b.cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	issuer, err := jwt.NewProvider(jwt.Config{
		Method:     jwt.SigningMethod(b.cfg.JWT.Method),
		Secret:     b.cfg.JWT.Secret,
		PrivateKey: b.cfg.JWT.PrivateKey,
		PublicKey:  b.cfg.JWT.PublicKey,
		Issuer:     b.cfg.JWT.Issuer,
		TTL:        b.cfg.JWT.TTL,
		Leeway:     b.cfg.JWT.Leeway,
	})
	if err != nil {
		return nil, err
	}

	if b.accounts == nil || b.users == nil || b.samples == nil || b.profiles == nil {
		if b.rdb == nil {
			return nil, errors.New("builder requires WithRedis or a full set of repositories")
		}
		shared, err := store.New(b.rdb, b.cfg.Store.KeyPrefix)
		if err != nil {
			return nil, err
		}
		if b.accounts == nil {
			b.accounts = store.NewAccounts(shared)
		}
		if b.users == nil {
			b.users = store.NewUsers(shared)
		}
		if b.samples == nil {
			b.samples = store.NewSamples(shared)
		}
		if b.profiles == nil {
			b.profiles = store.NewProfiles(shared)
		}
	}

	sampleFactory := sample.Factory{IDs: b.ids, Clock: b.clock}
	profileFactory := profile.Factory{IDs: b.ids, Clock: b.clock}
	addressFactory := profile.AddressFactory{IDs: b.ids, Clock: b.clock}

	e := &Engine{
		accounts: b.accounts,
		issuer:   issuer,
		login: auth.NewLoginWorkflow(
			auth.FindAccountByEmail(b.accounts),
			auth.VerifyPassword(hasher),
			auth.GenerateToken(issuer),
		),
		signup: auth.NewSignupWorkflow(
			auth.CheckEmailUnused(b.accounts),
			auth.CreateAccountWithEmail(hasher, auth.Factory{IDs: b.ids}),
		),
		legacyLogin: account.NewLoginWorkflow(
			account.FindUserByEmail(b.users),
			account.VerifyPassword(hasher),
			account.GenerateToken(issuer),
		),
		registerUser: user.NewRegisterWorkflow(
			user.CheckEmailUnused(b.users),
			user.HashPassword(hasher),
			user.CreateUser(user.Factory{IDs: b.ids}, b.users),
		),
		createSample: sample.NewCreateWorkflow(
			sample.ValidateInput(),
			sample.DraftSample(sampleFactory),
			sample.SaveSample(b.samples),
		),
		createProfile: profile.NewCreateWorkflow(
			profile.CheckNotAssociated(b.profiles),
			profile.CreateProfile(profileFactory, b.profiles),
		),
		addAddress: profile.NewAddAddressWorkflow(
			profile.FindProfile(b.profiles),
			profile.AttachAddress(addressFactory, b.profiles, b.clock),
		),
		removeAddress: profile.NewRemoveAddressWorkflow(
			profile.FindProfileForRemoval(b.profiles),
			profile.DetachAddress(b.profiles, b.clock),
		),
		ready: true,
	}
	b.built = true
	return e, nil
}
