package synth

import (
	"errors"
	"fmt"
	"log/slog"

	"flatstruct/descriptor"
)

// Factory synthesizes, caches and instantiates implementations of descriptors
// with one Synthesizer.
type Factory struct {
	synth  Synthesizer
	cache  *Cache
	logger *slog.Logger
	init   func(*Instance) error
}

type Option func(*Factory)

// WithLogger sets the logger for cache and synthesis events. They are logged
// at debug level; by default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithCache makes the factory use c instead of a private cache.
func WithCache(c *Cache) Option {
	return func(f *Factory) {
		f.cache = c
	}
}

// WithInit runs init on every instance New constructs.
func WithInit(init func(*Instance) error) Option {
	return func(f *Factory) {
		f.init = init
	}
}

func NewFactory(s Synthesizer, opts ...Option) *Factory {
	f := &Factory{synth: s}

	for _, opt := range opts {
		opt(f)
	}

	if f.cache == nil {
		f.cache = NewCache()
	}

	if f.logger == nil {
		f.logger = slog.New(slog.DiscardHandler)
	}

	return f
}

// NewStructureFactory is NewFactory(Structure(), opts...).
func NewStructureFactory(opts ...Option) *Factory {
	return NewFactory(Structure(), opts...)
}

// NewValueFactory is NewFactory(Value(), opts...).
func NewValueFactory(opts ...Option) *Factory {
	return NewFactory(Value(), opts...)
}

func (f *Factory) Synthesizer() Synthesizer {
	return f.synth
}

func (f *Factory) Cache() *Cache {
	return f.cache
}

// DeriveName is the name s gives the implementation of d:
// "{namespace}.{synthesizer}_of_{name}", without the namespace part when d
// has none.
func DeriveName(s Synthesizer, d *descriptor.Descriptor) string {
	simple := s.Name() + "_of_" + d.Name
	if d.Namespace == "" {
		return simple
	}

	return d.Namespace + "." + simple
}

// DeriveName is DeriveName(f.Synthesizer(), d).
func (f *Factory) DeriveName(d *descriptor.Descriptor) string {
	return DeriveName(f.synth, d)
}

// ValidateDescriptor rejects nil descriptors, descriptors that are not pure
// contracts and descriptors missing required names.
func ValidateDescriptor(d *descriptor.Descriptor) error {
	if d == nil {
		return &Error{Kind: ErrInvalidDescriptor, Detail: "descriptor is nil"}
	}

	if d.Form != descriptor.FormContract {
		return &Error{
			Kind:       ErrInvalidDescriptor,
			Descriptor: d.QualifiedName(),
			Detail:     fmt.Sprintf("%s should be a contract, not %s", d.QualifiedName(), d.Form),
		}
	}

	if err := descriptor.Validate(d); err != nil {
		return &Error{Kind: ErrInvalidDescriptor, Descriptor: d.QualifiedName(), Err: err}
	}

	return nil
}

// Synthesize validates d and emits it into b with s. It is the shared entry
// point of every target.
func Synthesize(s Synthesizer, d *descriptor.Descriptor, b Builder) (*Registry, error) {
	if err := ValidateDescriptor(d); err != nil {
		return nil, err
	}

	reg, err := s.Emit(d, b)
	if err != nil {
		return nil, wrapFailure(d.QualifiedName(), err)
	}

	return reg, nil
}

// CreateImpl synthesizes a new implementation of d. It never consults or
// fills the cache.
func (f *Factory) CreateImpl(d *descriptor.Descriptor) (*Type, error) {
	if err := ValidateDescriptor(d); err != nil {
		return nil, err
	}

	name := f.DeriveName(d)
	b := newTypeBuilder(name)

	if _, err := Synthesize(f.synth, d, b); err != nil {
		f.logger.Debug("synthesis failed",
			slog.String("descriptor", d.QualifiedName()),
			slog.String("synthesizer", f.synth.Name()),
			slog.Any("error", err))

		return nil, err
	}

	t, err := b.build(d, f.synth.Name())
	if err != nil {
		return nil, &Error{Kind: ErrSynthesisFailure, Descriptor: d.QualifiedName(), Err: err}
	}

	f.logger.Debug("synthesized",
		slog.String("descriptor", d.QualifiedName()),
		slog.String("type", name),
		slog.Int("fields", len(t.fields)),
		slog.Int("methods", len(t.order)))

	return t, nil
}

// GetImpl returns the cached implementation of d, synthesizing it on first
// request. Concurrent first requests synthesize once. A failure is returned
// to every waiter and is not cached.
func (f *Factory) GetImpl(d *descriptor.Descriptor) (*Type, error) {
	if err := ValidateDescriptor(d); err != nil {
		return nil, err
	}

	key := cacheKey{
		synthesizer: f.synth.Name(),
		name:        d.QualifiedName(),
		fingerprint: d.Fingerprint(),
	}

	t, hit, err := f.cache.getOrCreate(key, func() (*Type, error) {
		return f.CreateImpl(d)
	})
	if err != nil {
		return nil, err
	}

	if hit {
		f.logger.Debug("cache hit", slog.String("type", t.name))
	} else {
		f.logger.Debug("cache miss", slog.String("type", t.name))
	}

	return t, nil
}

// New returns a fresh instance of the implementation of d.
func (f *Factory) New(d *descriptor.Descriptor) (*Instance, error) {
	t, err := f.GetImpl(d)
	if err != nil {
		return nil, err
	}

	return f.Instantiate(t)
}

// Instantiate constructs a zero-valued instance of t and runs the init hook.
func (f *Factory) Instantiate(t *Type) (inst *Instance, err error) {
	if t == nil {
		return nil, &Error{Kind: ErrInstantiationFailure, Detail: "type is nil"}
	}

	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, &Error{
				Kind:       ErrInstantiationFailure,
				Descriptor: t.name,
				Err:        fmt.Errorf("panic: %v", r),
			}
		}
	}()

	inst = t.newInstance()

	if f.init != nil {
		if err := f.init(inst); err != nil {
			return nil, &Error{Kind: ErrInstantiationFailure, Descriptor: t.name, Err: err}
		}
	}

	return inst, nil
}

// IsSynthesisError reports whether err is one of the synthesis-time kinds, as
// opposed to an instantiation or call error.
func IsSynthesisError(err error) bool {
	for _, kind := range []error{
		ErrInvalidDescriptor,
		ErrMalformedFieldDeclaration,
		ErrDuplicateField,
		ErrUnknownField,
		ErrFieldTypeMismatch,
		ErrSynthesisFailure,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}

	return false
}
